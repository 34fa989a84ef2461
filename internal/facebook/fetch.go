package facebook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"facebook-scorer/internal/browser"
	"facebook-scorer/internal/config"
)

// ErrProfileUnavailable reports that no URL variant produced a usable
// profile page for the requested username.
var ErrProfileUnavailable = errors.New("facebook profile unavailable")

// Client fetches profile pages through an authenticated browser session.
type Client struct {
	manager *browser.Manager
	auth    *Authenticator
	timeout time.Duration
	logger  *zap.Logger
}

func NewClient(manager *browser.Manager, auth *Authenticator, cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		manager: manager,
		auth:    auth,
		timeout: cfg.NavigationTimeout,
		logger:  logger,
	}
}

// FetchProfile returns the HTML of a profile page. Each fetch runs in a
// fresh browser context so a broken page never poisons later requests.
func (c *Client) FetchProfile(ctx context.Context, username string) (string, error) {
	browserCtx, err := c.manager.NewContext(nil)
	if err != nil {
		return "", fmt.Errorf("create browser context: %w", err)
	}
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		return "", fmt.Errorf("create page: %w", err)
	}

	if err := c.auth.EnsureAuthenticated(page); err != nil {
		return "", err
	}

	for _, url := range profileURLs(username) {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		c.logger.Info("🔍 fetching profile", zap.String("username", username), zap.String("url", url))
		if _, err := page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			Timeout:   playwright.Float(float64(c.timeout.Milliseconds())),
		}); err != nil {
			c.logger.Warn("⚠️ profile navigation failed", zap.String("url", url), zap.Error(err))
			continue
		}

		content, err := page.Content()
		if err != nil {
			c.logger.Warn("⚠️ could not read page content", zap.String("url", url), zap.Error(err))
			continue
		}
		if strings.Contains(strings.ToLower(content), "content isn't available") {
			continue
		}

		//linger like a reader so late-rendered counters make it into the HTML
		if err := browser.HumanScroll(page); err != nil {
			c.logger.Warn("⚠️ scroll simulation failed", zap.String("url", url), zap.Error(err))
		}
		if err := browser.MouseJiggle(page); err != nil {
			c.logger.Warn("⚠️ mouse simulation failed", zap.String("url", url), zap.Error(err))
		}
		browser.RandomDelay(1500, 2500)

		if refreshed, err := page.Content(); err == nil {
			content = refreshed
		}
		return content, nil
	}

	return "", fmt.Errorf("%w: %s", ErrProfileUnavailable, username)
}

func profileURLs(username string) []string {
	return []string{
		fmt.Sprintf("%s/%s", baseURL, username),
		fmt.Sprintf("%s/profile.php?id=%s", baseURL, username),
	}
}
