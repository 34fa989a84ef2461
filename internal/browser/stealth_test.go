package browser

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//helper start headless browser, needs installed playwright browsers
func setupPage(t *testing.T) playwright.Page {
	t.Helper()
	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("could not launch playwright: %v", err)
	}
	t.Cleanup(func() { pw.Stop() })

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("could not launch browser: %v", err)
	}
	t.Cleanup(func() { b.Close() })

	page, err := b.NewPage()
	if err != nil {
		t.Fatalf("could not create page: %v", err)
	}
	return page
}

func TestHumanScroll(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}

	page := setupPage(t)
	require.NoError(t, page.SetContent(`<html><body style="height:5000px">tall page</body></html>`))

	require.NoError(t, HumanScroll(page))

	//the page must have moved off the top and back up a bit
	offset, err := page.Evaluate("window.scrollY")
	require.NoError(t, err)
	assert.Greater(t, offset.(int), 0)
}

func TestMouseJiggle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}

	page := setupPage(t)
	require.NoError(t, page.SetContent(`<html><body>page</body></html>`))

	assert.NoError(t, MouseJiggle(page))
}
