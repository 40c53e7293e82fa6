// File: internal/platform/douyin/douyin_test.go
package douyin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spreado/spreado-cli/internal/platform"
)

// recordPage captures clicks and typed text; visibility and counts are
// scripted per selector.
type recordPage struct {
	visible map[string]bool
	counts  map[string]int
	clicks  []string
	typed   []string
	filled  map[string]string
	files   map[string]string
}

func newRecordPage() *recordPage {
	return &recordPage{
		visible: map[string]bool{},
		counts:  map[string]int{},
		filled:  map[string]string{},
		files:   map[string]string{},
	}
}

func (p *recordPage) Navigate(ctx context.Context, url string) error { return nil }
func (p *recordPage) URL() string                                    { return "https://creator.douyin.com/creator-micro/content/upload" }
func (p *recordPage) Count(selector string) (int, error)             { return p.counts[selector], nil }
func (p *recordPage) IsVisible(selector string) (bool, error)        { return p.visible[selector], nil }
func (p *recordPage) Click(selector string) error {
	p.clicks = append(p.clicks, selector)
	return nil
}
func (p *recordPage) Fill(selector, value string) error {
	p.filled[selector] = value
	return nil
}
func (p *recordPage) Type(selector, text string, delay time.Duration) error {
	p.typed = append(p.typed, text)
	return nil
}
func (p *recordPage) Press(string, string) error { return nil }
func (p *recordPage) SetInputFiles(selector, path string) error {
	p.files[selector] = path
	return nil
}
func (p *recordPage) WaitForSelector(string, time.Duration) error { return nil }
func (p *recordPage) WaitForURL(ctx context.Context, match func(string) bool, timeout time.Duration) error {
	return nil
}
func (p *recordPage) Closed() bool { return false }

func TestRegisteredInRegistry(t *testing.T) {
	adapter, err := platform.New("douyin")
	require.NoError(t, err)
	assert.Equal(t, "douyin", adapter.Name())
	assert.Equal(t, 30, adapter.TitleLimit())
	assert.Contains(t, adapter.UploadURL(), "creator-micro/content/upload")
	assert.Contains(t, adapter.SuccessURLPattern(), "creator-micro/content/manage")
	assert.NotEmpty(t, adapter.LoginSelectors())
}

func TestApplyTagPrefixesHash(t *testing.T) {
	page := newRecordPage()
	a := &Adapter{}

	require.NoError(t, a.ApplyTag(context.Background(), page, "golang"))
	require.NoError(t, a.ApplyTag(context.Background(), page, "#already"))
	assert.Equal(t, []string{"#golang", "#already"}, page.typed)
}

func TestApplyTitlePrefersInputField(t *testing.T) {
	page := newRecordPage()
	page.counts[titleInputSelector] = 1
	a := &Adapter{}

	require.NoError(t, a.ApplyTitle(context.Background(), page, "hello"))
	assert.Equal(t, "hello", page.filled[titleInputSelector])
	assert.Empty(t, page.clicks)
}

func TestSubmitMediaTargetsUploadInput(t *testing.T) {
	page := newRecordPage()
	a := &Adapter{}

	require.NoError(t, a.SubmitMedia(context.Background(), page, "/videos/a.mp4"))
	assert.Equal(t, "/videos/a.mp4", page.files[uploadInputSelector])
}

func TestConfirmDoneAppliesRecommendedCover(t *testing.T) {
	page := newRecordPage()
	page.visible[coverRequiredTextSel] = true
	page.visible[coverConfirmTextSel] = true
	page.counts[recommendedCoverSel] = 1
	a := &Adapter{}

	done, err := a.ConfirmDone(context.Background(), page)
	require.NoError(t, err)
	assert.False(t, done, "cover fallback keeps polling; success comes from the URL")
	assert.Equal(t, []string{recommendedCoverSel, `button:text-is("确定")`, publishButtonSel}, page.clicks)
}

func TestConfirmDoneNoCoverPromptIsNoop(t *testing.T) {
	page := newRecordPage()
	a := &Adapter{}

	done, err := a.ConfirmDone(context.Background(), page)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Empty(t, page.clicks)
}
