// File: internal/platform/douyin/douyin.go

// Package douyin implements the Douyin creator-studio adapter.
package douyin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spreado/spreado-cli/internal/browser"
	"github.com/spreado/spreado-cli/internal/platform"
)

func init() {
	platform.Register("douyin", func() platform.Adapter { return &Adapter{} })
}

const (
	uploadInputSelector  = "div[class^='container'] input"
	reuploadReadySel     = "div[class*='preview-button-']:has(div:text('重新上传'))"
	titleInputSelector   = "input[placeholder*='填写作品标题']"
	descriptionSelector  = ".zone-container"
	publishButtonSel     = `button:text-is("发布")`
	scheduleRadioSel     = "[class^='radio']:has-text('定时发布')"
	scheduleInputSel     = `.semi-input[placeholder="日期和时间"]`
	coverRequiredTextSel = `text="请设置封面后再发布"`
	recommendedCoverSel  = `[class^="recommendCover-"]`
	coverConfirmTextSel  = `text="是否确认应用此封面？"`
)

type Adapter struct{}

func (a *Adapter) Name() string     { return "douyin" }
func (a *Adapter) LoginURL() string { return "https://creator.douyin.com/" }
func (a *Adapter) UploadURL() string {
	return "https://creator.douyin.com/creator-micro/content/upload"
}
func (a *Adapter) SuccessURLPattern() string {
	return "https://creator.douyin.com/creator-micro/content/manage"
}
func (a *Adapter) LoginSelectors() []string {
	return []string{
		`text="手机号登录"`,
		`text="扫码登录"`,
		`text="登录"`,
		".login-btn",
	}
}
func (a *Adapter) TitleLimit() int { return 30 }

func (a *Adapter) SubmitMedia(ctx context.Context, page browser.Page, mediaPath string) error {
	if err := page.WaitForSelector(uploadInputSelector, 10*time.Second); err != nil {
		return fmt.Errorf("upload control not found: %w", err)
	}
	return page.SetInputFiles(uploadInputSelector, mediaPath)
}

// ProcessingDone reports the "重新上传" control, which appears only once the
// media has been ingested.
func (a *Adapter) ProcessingDone(ctx context.Context, page browser.Page) (bool, error) {
	return page.IsVisible(reuploadReadySel)
}

func (a *Adapter) ApplyTitle(ctx context.Context, page browser.Page, title string) error {
	n, err := page.Count(titleInputSelector)
	if err != nil {
		return err
	}
	if n > 0 {
		return page.Fill(titleInputSelector, title)
	}
	// Older page variant renders the title as an editable div.
	if err := page.Click(".notranslate"); err != nil {
		return err
	}
	if err := page.Press(".notranslate", "Control+KeyA"); err != nil {
		return err
	}
	if err := page.Press(".notranslate", "Delete"); err != nil {
		return err
	}
	if err := page.Type(".notranslate", title, 0); err != nil {
		return err
	}
	return page.Press(".notranslate", "Enter")
}

func (a *Adapter) ApplyDescription(ctx context.Context, page browser.Page, description string) error {
	return page.Type(descriptionSelector, description, 0)
}

func (a *Adapter) ApplyTag(ctx context.Context, page browser.Page, tag string) error {
	if !strings.HasPrefix(tag, "#") {
		tag = "#" + tag
	}
	if err := page.Type(descriptionSelector, tag, 0); err != nil {
		return err
	}
	return page.Press(descriptionSelector, "Space")
}

func (a *Adapter) ApplyCover(ctx context.Context, page browser.Page, coverPath string) error {
	if err := page.Click(`text="选择封面"`); err != nil {
		return err
	}
	if err := page.WaitForSelector("div.dy-creator-content-modal", 5*time.Second); err != nil {
		return err
	}
	if err := page.Click(`text="设置竖封面"`); err != nil {
		return err
	}
	if err := page.SetInputFiles("div[class^='semi-upload upload'] >> input.semi-upload-hidden-input", coverPath); err != nil {
		return err
	}
	return page.Click("button:visible:has-text('完成')")
}

func (a *Adapter) ApplySchedule(ctx context.Context, page browser.Page, at time.Time) error {
	if err := page.Click(scheduleRadioSel); err != nil {
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

// ConfirmDone handles Douyin's mandatory-cover interstitial: when the page
// demands a cover before publishing, pick the first recommended cover,
// acknowledge the confirm dialog, and re-press publish. The URL check in the
// surrounding poll detects actual success.
func (a *Adapter) ConfirmDone(ctx context.Context, page browser.Page) (bool, error) {
	needsCover, err := page.IsVisible(coverRequiredTextSel)
	if err != nil || !needsCover {
		return false, err
	}

	if n, _ := page.Count(recommendedCoverSel); n > 0 {
		if err := page.Click(recommendedCoverSel); err != nil {
			return false, err
		}
		if ok, _ := page.IsVisible(coverConfirmTextSel); ok {
			if err := page.Click(`button:text-is("确定")`); err != nil {
				return false, err
			}
		}
		if err := page.Click(publishButtonSel); err != nil {
			return false, err
		}
	}
	return false, nil
}
