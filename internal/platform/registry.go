// File: internal/platform/registry.go
package platform

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory constructs a platform adapter.
type Factory func() Adapter

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes an adapter available under its platform name. Platform
// packages call this from init.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("platform %q registered twice", name))
	}
	registry[name] = factory
}

// New returns a fresh adapter for the named platform.
func New(name string) (Adapter, error) {
	registryMu.RLock()
	factory, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported platform %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
	return factory(), nil
}

// Names lists the registered platform names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
