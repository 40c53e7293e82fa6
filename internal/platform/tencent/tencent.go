// File: internal/platform/tencent/tencent.go

// Package tencent implements the WeChat Channels (视频号) adapter.
//
// Channels inverts the usual flow: metadata can be entered while the media
// is still transcoding, and the "发表" button only becomes enabled once
// processing finishes. ProcessingDone therefore probes the publish button's
// disabled state.
package tencent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spreado/spreado-cli/internal/browser"
	"github.com/spreado/spreado-cli/internal/platform"
)

func init() {
	platform.Register("tencent", func() platform.Adapter { return &Adapter{} })
}

const (
	fileInputSel     = `input[type="file"]`
	editorSel        = "div.input-editor"
	publishButtonSel = `div.form-btns button:has-text("发表")`
	disabledPubSel   = `div.form-btns button.weui-desktop-btn_disabled:has-text("发表")`
	uploadErrorSel   = "div.status-msg.error"
)

type Adapter struct{}

func (a *Adapter) Name() string      { return "tencent" }
func (a *Adapter) LoginURL() string  { return "https://channels.weixin.qq.com" }
func (a *Adapter) UploadURL() string { return "https://channels.weixin.qq.com/platform/post/create" }
func (a *Adapter) SuccessURLPattern() string {
	return "https://channels.weixin.qq.com/platform/post/list"
}
func (a *Adapter) LoginSelectors() []string {
	return []string{
		`div.title-name:has-text("微信小店")`,
		`text="登录"`,
		".login-btn",
	}
}
func (a *Adapter) TitleLimit() int { return 100 }

func (a *Adapter) SubmitMedia(ctx context.Context, page browser.Page, mediaPath string) error {
	if err := page.WaitForSelector(fileInputSel, 10*time.Second); err != nil {
		return fmt.Errorf("upload control not found: %w", err)
	}
	return page.SetInputFiles(fileInputSel, mediaPath)
}

// ProcessingDone reports completion when the publish button sheds its
// disabled class. A visible upload-error status is fatal; retrying the same
// file would hit the same rejection.
func (a *Adapter) ProcessingDone(ctx context.Context, page browser.Page) (bool, error) {
	if ok, _ := page.IsVisible(uploadErrorSel); ok {
		return false, fmt.Errorf("platform rejected the media file")
	}
	n, err := page.Count(disabledPubSel)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

func (a *Adapter) ApplyTitle(ctx context.Context, page browser.Page, title string) error {
	if err := page.Click(editorSel); err != nil {
		return err
	}
	if err := page.Type(editorSel, title, 0); err != nil {
		return err
	}
	return page.Press(editorSel, "Enter")
}

func (a *Adapter) ApplyDescription(ctx context.Context, page browser.Page, description string) error {
	if err := page.Type(editorSel, description, 0); err != nil {
		return err
	}
	return page.Press(editorSel, "Enter")
}

func (a *Adapter) ApplyTag(ctx context.Context, page browser.Page, tag string) error {
	if !strings.HasPrefix(tag, "#") {
		tag = "#" + tag
	}
	if err := page.Type(editorSel, tag, 0); err != nil {
		return err
	}
	return page.Press(editorSel, "Space")
}

func (a *Adapter) ApplyCover(ctx context.Context, page browser.Page, coverPath string) error {
	if err := page.Click(`text="个人主页卡片"`); err != nil {
		return err
	}
	if err := page.WaitForSelector("div.weui-desktop-dialog:has(*:text('编辑个人主页卡片'))", 5*time.Second); err != nil {
		return err
	}
	if err := page.Click(`div:has-text("上传封面"):visible >> nth=0`); err != nil {
		return err
	}
	if err := page.SetInputFiles(`div.single-cover-uploader-wrap input[type="file"]`, coverPath); err != nil {
		return err
	}
	return page.Click("button:visible:has-text('确认')")
}

func (a *Adapter) ApplySchedule(ctx context.Context, page browser.Page, at time.Time) error {
	if err := page.Click(`label:has-text("定时") >> nth=1`); err != nil {
		return err
	}
	if err := page.Click(`input[placeholder="请选择发表时间"]`); err != nil {
		return err
	}
	daySel := fmt.Sprintf(`table.weui-desktop-picker__table a:text-is("%d")`, at.Day())
	if err := page.Click(daySel); err != nil {
		return err
	}
	if err := page.Click(`input[placeholder="请选择时间"]`); err != nil {
		return err
	}
	if err := page.Press(`input[placeholder="请选择时间"]`, "Control+KeyA"); err != nil {
		return err
	}
	if err := page.Type(`input[placeholder="请选择时间"]`, fmt.Sprintf("%d", at.Hour()), 0); err != nil {
		return err
	}
	// Click away so the picker commits the value.
	return page.Click(editorSel)
}

func (a *Adapter) Submit(ctx context.Context, page browser.Page) error {
	return page.Click(publishButtonSel)
}

// ConfirmDone re-presses publish while the button is still actionable; the
// redirect to /platform/post/list is detected by the surrounding URL check.
func (a *Adapter) ConfirmDone(ctx context.Context, page browser.Page) (bool, error) {
	if ok, _ := page.IsVisible(publishButtonSel); ok {
		_ = page.Click(publishButtonSel)
	}
	return false, nil
}
