// File: internal/platform/kuaishou/kuaishou.go

// Package kuaishou implements the Kuaishou creator-platform adapter.
//
// Kuaishou has no separate title field: title, description and hashtags all
// go into the single #work-description-edit editor.
package kuaishou

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spreado/spreado-cli/internal/browser"
	"github.com/spreado/spreado-cli/internal/platform"
)

func init() {
	platform.Register("kuaishou", func() platform.Adapter { return &Adapter{} })
}

const (
	uploadInputSel   = "button[class^='_upload-btn'] input[type='file']"
	uploadButtonSel  = "button[class^='_upload-btn']"
	descriptionSel   = "#work-description-edit"
	uploadingTextSel = "text=上传中"
	publishButtonSel = `text="发布"`
	confirmPubSel    = `text="确认发布"`
	scheduleInputSel = `div.ant-picker-input input[placeholder="选择日期时间"]`
)

type Adapter struct{}

func (a *Adapter) Name() string      { return "kuaishou" }
func (a *Adapter) LoginURL() string  { return "https://cp.kuaishou.com" }
func (a *Adapter) UploadURL() string { return "https://cp.kuaishou.com/article/publish/video" }
func (a *Adapter) SuccessURLPattern() string {
	return "https://cp.kuaishou.com/article/manage/video?status=2&from=publish"
}
func (a *Adapter) LoginSelectors() []string {
	return []string{
		`text="立即登录"`,
		`text="扫码登录"`,
		`text="登录"`,
		".login-btn",
	}
}
func (a *Adapter) TitleLimit() int { return 100 }

func (a *Adapter) SubmitMedia(ctx context.Context, page browser.Page, mediaPath string) error {
	if err := page.WaitForSelector(uploadButtonSel, 10*time.Second); err != nil {
		return fmt.Errorf("upload control not found: %w", err)
	}
	if err := page.SetInputFiles(uploadInputSel, mediaPath); err != nil {
		return err
	}
	// A first-visit feature tour sometimes blocks the editor.
	if ok, _ := page.IsVisible(`button:has-text("Skip")`); ok {
		_ = page.Click(`button:has-text("Skip")`)
	}
	return nil
}

// ProcessingDone reports completion once the "上传中" badge disappears.
func (a *Adapter) ProcessingDone(ctx context.Context, page browser.Page) (bool, error) {
	n, err := page.Count(uploadingTextSel)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

func (a *Adapter) ApplyTitle(ctx context.Context, page browser.Page, title string) error {
	if err := page.Click(descriptionSel); err != nil {
		return err
	}
	return page.Type(descriptionSel, title+"\n", 0)
}

func (a *Adapter) ApplyDescription(ctx context.Context, page browser.Page, description string) error {
	return page.Type(descriptionSel, description+"\n", 0)
}

// ApplyTag types "#name" and confirms the topic suggestion with Enter. The
// per-key delay gives the suggestion dropdown time to populate.
func (a *Adapter) ApplyTag(ctx context.Context, page browser.Page, tag string) error {
	name := strings.TrimPrefix(tag, "#")
	if err := page.Type(descriptionSel, "#", 0); err != nil {
		return err
	}
	if err := page.Type(descriptionSel, name, 100*time.Millisecond); err != nil {
		return err
	}
	return page.Press(descriptionSel, "Enter")
}

func (a *Adapter) ApplyCover(ctx context.Context, page browser.Page, coverPath string) error {
	if err := page.Click(`text="封面设置"`); err != nil {
		return err
	}
	if err := page.WaitForSelector("div.ant-modal-body:has(*:text('上传封面'))", 5*time.Second); err != nil {
		return err
	}
	if err := page.Click(`text="上传封面"`); err != nil {
		return err
	}
	if err := page.SetInputFiles("div[class*='upload'] input[type='file']", coverPath); err != nil {
		return err
	}
	return page.Click(`button:has-text("确认")`)
}

func (a *Adapter) ApplySchedule(ctx context.Context, page browser.Page, at time.Time) error {
	if err := page.Click("label:text('发布时间') ~ div .ant-radio-input >> nth=1"); err != nil {
		return err
	}
	if err := page.WaitForSelector(scheduleInputSel, 5*time.Second); err != nil {
		return err
	}
	if err := page.Click(scheduleInputSel); err != nil {
		return err
	}
	if err := page.Press(scheduleInputSel, "Control+KeyA"); err != nil {
		return err
	}
	if err := page.Type(scheduleInputSel, at.Format("2006-01-02 15:04"), 0); err != nil {
		return err
	}
	return page.Press(scheduleInputSel, "Enter")
}

func (a *Adapter) Submit(ctx context.Context, page browser.Page) error {
	return page.Click(publishButtonSel)
}

// ConfirmDone acknowledges the "确认发布" dialog when present; URL matching in
// the surrounding poll detects the redirect to the manage page.
func (a *Adapter) ConfirmDone(ctx context.Context, page browser.Page) (bool, error) {
	if ok, _ := page.IsVisible(confirmPubSel); ok {
		if err := page.Click(confirmPubSel); err != nil {
			return false, err
		}
	}
	return false, nil
}
