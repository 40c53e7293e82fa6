// File: internal/platform/tencent/tencent_test.go
package tencent

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
}

func (p *probePage) Navigate(ctx context.Context, url string) error { return nil }
func (p *probePage) URL() string                                    { return "" }
func (p *probePage) Count(s string) (int, error)                    { return p.counts[s], nil }
func (p *probePage) IsVisible(s string) (bool, error)               { return p.visible[s], nil }
func (p *probePage) Click(string) error                             { return nil }
func (p *probePage) Fill(string, string) error                      { return nil }
func (p *probePage) Type(string, string, time.Duration) error       { return nil }
func (p *probePage) Press(string, string) error                     { return nil }
func (p *probePage) SetInputFiles(string, string) error             { return nil }
func (p *probePage) WaitForSelector(string, time.Duration) error    { return nil }
func (p *probePage) WaitForURL(context.Context, func(string) bool, time.Duration) error {
	return nil
}
func (p *probePage) Closed() bool { return false }

func TestRegisteredInRegistry(t *testing.T) {
	adapter, err := platform.New("tencent")
	require.NoError(t, err)
	assert.Equal(t, "tencent", adapter.Name())
	assert.Contains(t, adapter.UploadURL(), "channels.weixin.qq.com")
	assert.Contains(t, adapter.SuccessURLPattern(), "/platform/post/list")
}

func TestProcessingDoneTracksPublishButtonState(t *testing.T) {
	a := &Adapter{}

	done, err := a.ProcessingDone(context.Background(), &probePage{
		counts:  map[string]int{disabledPubSel: 1},
		visible: map[string]bool{},
	})
	require.NoError(t, err)
	assert.False(t, done, "disabled publish button means still transcoding")

	done, err = a.ProcessingDone(context.Background(), &probePage{
		counts:  map[string]int{},
		visible: map[string]bool{},
	})
	require.NoError(t, err)
	assert.True(t, done)
}

func TestProcessingDoneRejectedMediaIsFatal(t *testing.T) {
	a := &Adapter{}

	_, err := a.ProcessingDone(context.Background(), &probePage{
		counts:  map[string]int{},
		visible: map[string]bool{uploadErrorSel: true},
	})
	assert.Error(t, err)
}
