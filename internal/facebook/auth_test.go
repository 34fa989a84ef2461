package facebook

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"facebook-scorer/internal/browser"
	"facebook-scorer/internal/config"
)

//helper start mock browser, needs installed playwright browsers
func setupPlaywright(t *testing.T) (*playwright.Playwright, playwright.Browser, playwright.Page) {
	t.Helper()
	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("could not launch playwright: %v", err)
	}
	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("could not launch browser: %v", err)
	}
	page, err := b.NewPage()
	if err != nil {
		t.Fatalf("could not create page: %v", err)
	}
	return pw, b, page
}

const mockLoginHTML = `<html><body>
<form action="https://facebook.com/home" method="get">
	<input id="email" name="email">
	<input id="pass" name="pass">
	<button name="login" type="submit">Log in</button>
</form>
</body></html>`

const mockHomeHTML = `<html><body><div aria-label="Account">menu</div></body></html>`

func TestEnsureAuthenticated_FormLogin(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}

	pw, b, page := setupPlaywright(t)
	defer pw.Stop()
	defer b.Close()

	//serve a fake login page, anything else gets the logged-in home
	page.Route("**/*", func(route playwright.Route) {
		html := mockHomeHTML
		if strings.Contains(route.Request().URL(), "login") {
			html = mockLoginHTML
		}
		route.Fulfill(playwright.RouteFulfillOptions{
			Status:      playwright.Int(200),
			ContentType: playwright.String("text/html"),
			Body:        html,
		})
	})

	cookiesDir := t.TempDir()
	cfg := &config.Config{
		FacebookEmail:    "scorer@example.com",
		FacebookPassword: "hunter2",
		CookiesPath:      cookiesDir,
	}

	auth := NewAuthenticator(cfg, zap.NewNop())
	err := auth.formLogin(page)
	require.NoError(t, err)

	//a cookie file must exist after login, even if the mock session is empty
	_, err = browser.LoadCookies(filepath.Join(cookiesDir, cookieFileName))
	assert.NoError(t, err)
}

func TestEnsureAuthenticated_CookieSession(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}

	pw, b, page := setupPlaywright(t)
	defer pw.Stop()
	defer b.Close()

	page.Route("**/*", func(route playwright.Route) {
		route.Fulfill(playwright.RouteFulfillOptions{
			Status:      playwright.Int(200),
			ContentType: playwright.String("text/html"),
			Body:        mockHomeHTML,
		})
	})

	cookiesDir := t.TempDir()
	live := []playwright.Cookie{{
		Name:   "c_user",
		Value:  "100001234567890",
		Domain: ".facebook.com",
		Path:   "/",
		Secure: true,
	}}
	require.NoError(t, browser.SaveCookies(filepath.Join(cookiesDir, cookieFileName), live))

	cfg := &config.Config{
		FacebookEmail:    "scorer@example.com",
		FacebookPassword: "hunter2",
		CookiesPath:      cookiesDir,
	}

	auth := NewAuthenticator(cfg, zap.NewNop())
	assert.True(t, auth.tryCookieSession(page))
}
