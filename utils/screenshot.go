package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// ScreenShotDebugger captures full-page screenshots on failure paths so
// login and scrape breakage can be diagnosed after the fact.
type ScreenShotDebugger struct {
	outputDir string
	logger    *zap.Logger
}

func NewScreenShotDebugger(logger *zap.Logger) *ScreenShotDebugger {
	dir := filepath.Join(".", "logs", "screenshots")
	os.MkdirAll(dir, 0755)
	return &ScreenShotDebugger{
		outputDir: dir,
		logger:    logger,
	}
}

func (s *ScreenShotDebugger) CaptureAndLog(page playwright.Page, name, message string) error {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.png", name, timestamp)
	path := filepath.Join(s.outputDir, filename)
	s.logger.Warn("📸 "+message, zap.String("screenshot", path))

	//Take screenshot
	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		s.logger.Warn("failed to capture screenshot", zap.Error(err))
		return err
	}

	return nil
}
