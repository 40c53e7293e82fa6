// File: internal/platform/kuaishou/kuaishou_test.go
package kuaishou

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spreado/spreado-cli/internal/platform"
)

type probePage struct {
	counts  map[string]int
	visible map[string]bool
	clicks  []string
	typed   []string
}

func (p *probePage) Navigate(ctx context.Context, url string) error { return nil }
func (p *probePage) URL() string                                    { return "" }
func (p *probePage) Count(s string) (int, error)                    { return p.counts[s], nil }
func (p *probePage) IsVisible(s string) (bool, error)               { return p.visible[s], nil }
func (p *probePage) Click(s string) error {
	p.clicks = append(p.clicks, s)
	return nil
}
func (p *probePage) Fill(string, string) error { return nil }
func (p *probePage) Type(s, text string, d time.Duration) error {
	p.typed = append(p.typed, text)
	return nil
}
func (p *probePage) Press(string, string) error                   { return nil }
func (p *probePage) SetInputFiles(string, string) error           { return nil }
func (p *probePage) WaitForSelector(string, time.Duration) error  { return nil }
func (p *probePage) WaitForURL(context.Context, func(string) bool, time.Duration) error {
	return nil
}
func (p *probePage) Closed() bool { return false }

func TestRegisteredInRegistry(t *testing.T) {
	adapter, err := platform.New("kuaishou")
	require.NoError(t, err)
	assert.Equal(t, "kuaishou", adapter.Name())
	assert.Contains(t, adapter.UploadURL(), "cp.kuaishou.com")
	assert.Contains(t, adapter.SuccessURLPattern(), "from=publish")
}

func TestProcessingDoneWhenUploadBadgeGone(t *testing.T) {
	a := &Adapter{}

	done, err := a.ProcessingDone(context.Background(), &probePage{counts: map[string]int{uploadingTextSel: 1}})
	require.NoError(t, err)
	assert.False(t, done)

	done, err = a.ProcessingDone(context.Background(), &probePage{counts: map[string]int{}})
	require.NoError(t, err)
	assert.True(t, done)
}

func TestConfirmDoneAcknowledgesDialog(t *testing.T) {
	a := &Adapter{}
	page := &probePage{visible: map[string]bool{confirmPubSel: true}, counts: map[string]int{}}

	done, err := a.ConfirmDone(context.Background(), page)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, []string{confirmPubSel}, page.clicks)
}

func TestApplyTagStripsHashBeforeTyping(t *testing.T) {
	a := &Adapter{}
	page := &probePage{counts: map[string]int{}}

	require.NoError(t, a.ApplyTag(context.Background(), page, "#vlog"))
	assert.Equal(t, []string{"#", "vlog"}, page.typed)
}
