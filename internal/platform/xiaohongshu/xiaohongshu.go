// File: internal/platform/xiaohongshu/xiaohongshu.go

// Package xiaohongshu implements the Xiaohongshu creator-platform adapter.
package xiaohongshu

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spreado/spreado-cli/internal/browser"
	"github.com/spreado/spreado-cli/internal/platform"
)

func init() {
	platform.Register("xiaohongshu", func() platform.Adapter { return &Adapter{} })
}

const (
	uploadInputSelector = "input.upload-input"
	titleInputSelector  = "input[placeholder*='填写标题']"
	descriptionSelector = "div.tiptap-container div[contenteditable]"
	publishButtonSel    = `button:has-text("发布")`
	scheduleLabelSel    = "label:has-text('定时发布')"
	scheduleInputSel    = `.el-input__inner[placeholder="选择日期和时间"]`
	coverFileInputSel   = `input[type='file'][accept='image/png, image/jpeg, image/*']`
)

// previewSelectors signal that the uploaded media reached preview state.
var previewSelectors = []string{
	"div.upload-content div.preview-new",
	"div.preview-new",
	`div[class*="preview"]`,
}

// progressSelectors signal that an upload is still in flight.
var progressSelectors = []string{
	"div.el-progress-bar",
	`div[class*="progress"]`,
	`div[class*="uploading"]`,
}

type Adapter struct{}

func (a *Adapter) Name() string     { return "xiaohongshu" }
func (a *Adapter) LoginURL() string { return "https://creator.xiaohongshu.com/" }
func (a *Adapter) UploadURL() string {
	return "https://creator.xiaohongshu.com/publish/publish?from=homepage&target=video"
}
func (a *Adapter) SuccessURLPattern() string {
	return "https://creator.xiaohongshu.com/publish/success"
}
func (a *Adapter) LoginSelectors() []string {
	return []string{
		`text="手机号登录"`,
		`text="扫码登录"`,
		`text="登录"`,
		".login-btn",
	}
}
func (a *Adapter) TitleLimit() int { return 20 }

func (a *Adapter) SubmitMedia(ctx context.Context, page browser.Page, mediaPath string) error {
	if err := page.WaitForSelector(uploadInputSelector, 10*time.Second); err != nil {
		return fmt.Errorf("upload control not found: %w", err)
	}
	return page.SetInputFiles(uploadInputSelector, mediaPath)
}

// ProcessingDone checks, in order: a preview element, the title editor
// becoming available, then the absence of any progress bar. The page has no
// single definitive "done" marker.
func (a *Adapter) ProcessingDone(ctx context.Context, page browser.Page) (bool, error) {
	for _, sel := range previewSelectors {
		if ok, _ := page.IsVisible(sel); ok {
			return true, nil
		}
	}
	if ok, _ := page.IsVisible(titleInputSelector); ok {
		return true, nil
	}
	for _, sel := range progressSelectors {
		if ok, _ := page.IsVisible(sel); ok {
			return false, nil
		}
	}
	return false, nil
}

func (a *Adapter) ApplyTitle(ctx context.Context, page browser.Page, title string) error {
	n, err := page.Count(titleInputSelector)
	if err != nil {
		return err
	}
	if n > 0 {
		return page.Fill(titleInputSelector, title)
	}
	if err := page.Click(".notranslate"); err != nil {
		return err
	}
	if err := page.Press(".notranslate", "Control+KeyA"); err != nil {
		return err
	}
	if err := page.Press(".notranslate", "Delete"); err != nil {
		return err
	}
	return page.Type(".notranslate", title, 0)
}

func (a *Adapter) ApplyDescription(ctx context.Context, page browser.Page, description string) error {
	if err := page.Click(descriptionSelector); err != nil {
		return err
	}
	return page.Fill(descriptionSelector, description)
}

// ApplyTag types "#tag" into the rich-text editor and confirms the topic
// suggestion with Enter. The editor needs real keystrokes for the topic
// dropdown to appear, hence Type with a delay rather than Fill.
func (a *Adapter) ApplyTag(ctx context.Context, page browser.Page, tag string) error {
	clean := strings.TrimPrefix(tag, "#")
	if err := page.Press(descriptionSelector, "End"); err != nil {
		return err
	}
	if err := page.Type(descriptionSelector, " #", 50*time.Millisecond); err != nil {
		return err
	}
	if err := page.Type(descriptionSelector, clean, 50*time.Millisecond); err != nil {
		return err
	}
	return page.Press(descriptionSelector, "Enter")
}

func (a *Adapter) ApplyCover(ctx context.Context, page browser.Page, coverPath string) error {
	clicked := false
	for _, sel := range []string{
		`div[class*="upload"]:has-text("封面")`,
		`text="封面"`,
		`button:has-text("封面")`,
	} {
		if ok, _ := page.IsVisible(sel); ok {
			if err := page.Click(sel); err != nil {
				continue
			}
			clicked = true
			break
		}
	}
	if !clicked {
		return fmt.Errorf("cover button not found")
	}
	if err := page.WaitForSelector(coverFileInputSel, 10*time.Second); err != nil {
		return err
	}
	if err := page.SetInputFiles(coverFileInputSel, coverPath); err != nil {
		return err
	}
	for _, sel := range []string{`button:has-text("确认")`, `button:has-text("确定")`} {
		if ok, _ := page.IsVisible(sel); ok {
			return page.Click(sel)
		}
	}
	return fmt.Errorf("cover confirm button not found")
}

func (a *Adapter) ApplySchedule(ctx context.Context, page browser.Page, at time.Time) error {
	if err := page.Click(scheduleLabelSel); err != nil {
		if err2 := page.Click(".el-radio__label:has-text('定时发布')"); err2 != nil {
			return err
		}
	}
	if err := page.WaitForSelector(scheduleInputSel, 5*time.Second); err != nil {
		return err
	}
	if err := page.Fill(scheduleInputSel, at.Format("2006-01-02 15:04")); err != nil {
		return err
	}
	return page.Press(scheduleInputSel, "Enter")
}

func (a *Adapter) Submit(ctx context.Context, page browser.Page) error {
	return page.Click(publishButtonSel)
}

// ConfirmDone relies on the success URL; the page navigates to
// /publish/success on its own once the post lands.
func (a *Adapter) ConfirmDone(ctx context.Context, page browser.Page) (bool, error) {
	return strings.Contains(page.URL(), "published=true"), nil
}
