// File: internal/platform/registry_test.go
package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdapter struct{ Adapter }

func (stubAdapter) Name() string { return "stub" }

func TestRegisterAndNew(t *testing.T) {
	Register("stub", func() Adapter { return stubAdapter{} })
	t.Cleanup(func() { unregister("stub") })

	adapter, err := New("stub")
	require.NoError(t, err)
	assert.Equal(t, "stub", adapter.Name())

	// Lookup is case and whitespace insensitive.
	adapter, err = New("  STUB ")
	require.NoError(t, err)
	assert.Equal(t, "stub", adapter.Name())
}

func TestNewUnknownPlatform(t *testing.T) {
	_, err := New("myspace")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported platform")
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	Register("dup", func() Adapter { return stubAdapter{} })
	t.Cleanup(func() { unregister("dup") })

	assert.Panics(t, func() {
		Register("dup", func() Adapter { return stubAdapter{} })
	})
}

func TestNamesSorted(t *testing.T) {
	Register("zeta", func() Adapter { return stubAdapter{} })
	Register("alpha", func() Adapter { return stubAdapter{} })
	t.Cleanup(func() {
		unregister("zeta")
		unregister("alpha")
	})

	names := Names()
	idxAlpha, idxZeta := -1, -1
	for i, n := range names {
		switch n {
		case "alpha":
			idxAlpha = i
		case "zeta":
			idxZeta = i
		}
	}
	require.GreaterOrEqual(t, idxAlpha, 0)
	require.GreaterOrEqual(t, idxZeta, 0)
	assert.Less(t, idxAlpha, idxZeta)
}

// unregister keeps the global registry clean between tests.
func unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, name)
}
