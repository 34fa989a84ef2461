// Keep one authenticated Facebook session alive
// Cookie restore first, form login as fallback, fresh cookies saved after
// every successful login

package facebook

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"facebook-scorer/internal/browser"
	"facebook-scorer/internal/config"
	"facebook-scorer/utils"
)

const (
	baseURL  = "https://facebook.com"
	loginURL = "https://facebook.com/login"

	// cookieFileName inside the mounted cookies directory.
	cookieFileName = "facebook_cookies.json"

	loginTimeoutMs    = 15000
	accountMenuWaitMs = 20000
)

// ErrAuthFailed reports that no authenticated session could be established.
// The API layer maps it to 503.
var ErrAuthFailed = errors.New("facebook authentication failed")

// Authenticator establishes an authenticated Facebook session on a page.
type Authenticator struct {
	email       string
	password    string
	cookieFile  string
	logger      *zap.Logger
	screenshots *utils.ScreenShotDebugger
}

func NewAuthenticator(cfg *config.Config, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		email:       cfg.FacebookEmail,
		password:    cfg.FacebookPassword,
		cookieFile:  filepath.Join(cfg.CookiesPath, cookieFileName),
		logger:      logger,
		screenshots: utils.NewScreenShotDebugger(logger),
	}
}

// EnsureAuthenticated makes the page's context an authenticated session.
// Saved cookies are tried first; a full form login runs only when the
// cookie session is stale or absent.
func (a *Authenticator) EnsureAuthenticated(page playwright.Page) error {
	if a.tryCookieSession(page) {
		return nil
	}
	return a.formLogin(page)
}

func (a *Authenticator) tryCookieSession(page playwright.Page) bool {
	cookies, err := browser.LoadCookies(a.cookieFile)
	if err != nil {
		a.logger.Warn("⚠️ could not load saved cookies", zap.Error(err))
		return false
	}
	if len(cookies) == 0 {
		return false
	}

	if err := page.Context().AddCookies(cookies); err != nil {
		a.logger.Warn("⚠️ could not inject saved cookies", zap.Error(err))
		return false
	}

	if _, err := page.Goto(baseURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(loginTimeoutMs),
	}); err != nil {
		return false
	}

	//a redirect to any login URL means the cookies expired
	if strings.Contains(strings.ToLower(page.URL()), "login") {
		return false
	}

	a.logger.Info("🍪 session restored from saved cookies")
	return true
}

func (a *Authenticator) formLogin(page playwright.Page) error {
	a.logger.Info("🔑 performing form login")

	if _, err := page.Goto(loginURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(loginTimeoutMs),
	}); err != nil {
		return fmt.Errorf("%w: load login page: %v", ErrAuthFailed, err)
	}

	if err := page.Fill("#email", a.email); err != nil {
		return fmt.Errorf("%w: fill email: %v", ErrAuthFailed, err)
	}
	if err := page.Fill("#pass", a.password); err != nil {
		return fmt.Errorf("%w: fill password: %v", ErrAuthFailed, err)
	}

	browser.RandomDelay(500, 1200)

	//button[name='login'] is more stable than #loginbutton
	if err := page.Click("button[name='login']"); err != nil {
		return fmt.Errorf("%w: submit login form: %v", ErrAuthFailed, err)
	}

	//the account menu only renders for logged-in sessions
	if _, err := page.WaitForSelector("[aria-label='Account']", playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(accountMenuWaitMs),
	}); err != nil {
		a.screenshots.CaptureAndLog(page, "facebook-login-failed", "🚨 Facebook login failed: account menu never appeared")
		return fmt.Errorf("%w: account menu not found: %v", ErrAuthFailed, err)
	}

	if strings.Contains(strings.ToLower(page.URL()), "login") {
		a.screenshots.CaptureAndLog(page, "facebook-login-stuck", "🚨 Facebook login failed: still on login page")
		return fmt.Errorf("%w: still on login page", ErrAuthFailed)
	}

	cookies, err := page.Context().Cookies()
	if err != nil {
		a.logger.Warn("⚠️ could not read session cookies", zap.Error(err))
		return nil
	}
	if err := browser.SaveCookies(a.cookieFile, cookies); err != nil {
		a.logger.Warn("⚠️ could not persist session cookies", zap.Error(err))
		return nil
	}

	a.logger.Info("💾 session cookies saved", zap.Int("count", len(cookies)))
	return nil
}
