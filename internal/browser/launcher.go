// File: internal/browser/launcher.go
package browser

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

const defaultLaunchTimeout = 60 * time.Second

// Launch arguments applied to every process. The anti-automation flags match
// what the destination platforms tolerate; containers need the sandbox and
// shm flags.
var defaultLaunchArgs = []string{
	"--disable-blink-features=AutomationControlled",
	"--no-sandbox",
	"--disable-infobars",
	"--disable-dev-shm-usage",
	"--disable-gpu",
}

// PlaywrightLauncher starts Chromium through the Playwright driver.
type PlaywrightLauncher struct {
	installTimeout time.Duration
	launchTimeout  time.Duration
	log            *zap.Logger
}

// NewPlaywrightLauncher creates a launcher. installTimeout bounds the
// one-time browser installation check on first launch.
func NewPlaywrightLauncher(installTimeout, launchTimeout time.Duration, logger *zap.Logger) *PlaywrightLauncher {
	if launchTimeout <= 0 {
		launchTimeout = defaultLaunchTimeout
	}
	return &PlaywrightLauncher{
		installTimeout: installTimeout,
		launchTimeout:  launchTimeout,
		log:            logger.Named("launcher"),
	}
}

// Launch ensures the Playwright browsers are installed, starts the driver
// and launches a Chromium process.
func (l *PlaywrightLauncher) Launch(ctx context.Context, opts LaunchOptions) (Process, error) {
	if err := l.ensureInstallation(ctx); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright driver: %w", err)
	}

	launchOptions := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     append(append([]string{}, defaultLaunchArgs...), opts.Args...),
		Timeout:  playwright.Float(float64(l.launchTimeout.Milliseconds())),
	}

	executable := opts.ExecutablePath
	if executable == "" {
		executable = FindLocalChrome()
	}
	if executable != "" {
		launchOptions.ExecutablePath = playwright.String(executable)
		l.log.Info("Using local Chrome executable.", zap.String("path", executable))
	}

	chromium, err := pw.Chromium.Launch(launchOptions)
	if err != nil {
		pw.Stop() // Clean up the driver if the browser launch fails.
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return &playwrightProcess{pw: pw, browser: chromium, log: l.log}, nil
}

func (l *PlaywrightLauncher) ensureInstallation(ctx context.Context) error {
	installCtx, cancel := context.WithTimeout(ctx, l.installTimeout)
	defer cancel()

	// playwright.Install blocks; run it in a goroutine so the timeout holds.
	errChan := make(chan error, 1)
	go func() {
		errChan <- playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}})
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("failed to install playwright browsers: %w", err)
		}
		return nil
	case <-installCtx.Done():
		return fmt.Errorf("timeout waiting for playwright installation: %w", installCtx.Err())
	}
}

// playwrightProcess wraps the driver and the launched Chromium instance.
type playwrightProcess struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	log     *zap.Logger
}

// NewSession creates an isolated BrowserContext seeded from the optional
// storage-state blob and opens its single page.
func (p *playwrightProcess) NewSession(ctx context.Context, opts SessionOptions) (SessionContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	contextOptions := playwright.BrowserNewContextOptions{
		Locale:     playwright.String("zh-CN"),
		TimezoneId: playwright.String("Asia/Shanghai"),
	}

	// Playwright consumes storage state from a file. The blob stays opaque:
	// it is staged into a temp file verbatim and removed once the context
	// holds it.
	if len(opts.StorageState) > 0 {
		tmp, err := os.CreateTemp("", "spreado-state-*.json")
		if err != nil {
			return nil, fmt.Errorf("failed to stage storage state: %w", err)
		}
		tmpName := tmp.Name()
		defer os.Remove(tmpName)

		if _, err := tmp.Write(opts.StorageState); err != nil {
			tmp.Close()
			return nil, fmt.Errorf("failed to stage storage state: %w", err)
		}
		if err := tmp.Close(); err != nil {
			return nil, fmt.Errorf("failed to stage storage state: %w", err)
		}
		contextOptions.StorageStatePath = playwright.String(tmpName)
	}

	browserCtx, err := p.browser.NewContext(contextOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	if err := browserCtx.AddInitScript(playwright.Script{Content: playwright.String(stealthInitScript)}); err != nil {
		browserCtx.Close()
		return nil, fmt.Errorf("failed to inject init script: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		browserCtx.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	page.SetDefaultTimeout(30000)
	page.SetDefaultNavigationTimeout(30000)

	return newSession(opts.Platform, browserCtx, page, p.log), nil
}

// Close shuts down the browser and the driver.
func (p *playwrightProcess) Close() error {
	var closeErr error
	if err := p.browser.Close(); err != nil {
		closeErr = fmt.Errorf("failed to close browser: %w", err)
	}
	if err := p.pw.Stop(); err != nil && closeErr == nil {
		closeErr = fmt.Errorf("failed to stop playwright driver: %w", err)
	}
	return closeErr
}

// stealthInitScript hides the most common automation tells before any page
// script runs.
const stealthInitScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
Object.defineProperty(navigator, 'languages', { get: () => ['zh-CN', 'zh'] });
window.chrome = window.chrome || { runtime: {} };
`
