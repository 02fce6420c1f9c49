package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"form_automation/domain/entities"
	"form_automation/domain/interfaces"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

const browserStateDir = ".form_automation"
const browserStateFile = "state.json"

// PlaywrightSession drives a Chromium instance through Playwright.
type PlaywrightSession struct {
	pw          *playwright.Playwright
	browser     playwright.Browser
	context     playwright.BrowserContext
	page        playwright.Page
	storagePath string
	logger      *logrus.Logger
}

// NewPlaywrightSession - launches Chromium with a maximized window and
// restores stored browser state when present
func NewPlaywrightSession(logger *logrus.Logger) (*PlaywrightSession, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	stateDir := filepath.Join(homeDir, browserStateDir)
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	storagePath := filepath.Join(stateDir, browserStateFile)

	contextOptions := playwright.BrowserNewContextOptions{
		// no fixed viewport, the window size dictates it
		NoViewport:        playwright.Bool(true),
		JavaScriptEnabled: playwright.Bool(true),
		IgnoreHttpsErrors: playwright.Bool(true),
	}

	if _, err := os.Stat(storagePath); err == nil {
		data, err := os.ReadFile(storagePath)
		if err == nil {
			var storageState playwright.StorageState
			if err := json.Unmarshal(data, &storageState); err == nil {
				contextOptions.StorageState = storageState.ToOptionalStorageState()
			}
		}
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(false),
		Args: []string{
			"--start-maximized",
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browserContext, err := browser.NewContext(contextOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := browserContext.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &PlaywrightSession{
		pw:          pw,
		browser:     browser,
		context:     browserContext,
		page:        page,
		storagePath: storagePath,
		logger:      logger,
	}, nil
}

// Navigate - navigates the page to the specified URL
func (s *PlaywrightSession) Navigate(ctx context.Context, url string) error {
	s.logger.Infof("Navigating to: %s", url)
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(30000),
	})
	return err
}

// WaitReady - polls the document ready state until it is "complete"
func (s *PlaywrightSession) WaitReady(ctx context.Context) error {
	deadline := time.Now().Add(pageReadyTimeout)
	for {
		state, err := s.page.Evaluate("document.readyState")
		if err == nil {
			if str, ok := state.(string); ok && str == "complete" {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return &entities.TimeoutError{Op: "page ready state", Timeout: pageReadyTimeout}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(readyPollInterval):
		}
	}
}

// Document - returns the handle for the currently loaded document
func (s *PlaywrightSession) Document() interfaces.Document {
	return &playwrightDocument{page: s.page}
}

// saveState - saves browser state to persistent storage
func (s *PlaywrightSession) saveState() error {
	if s.context == nil || s.storagePath == "" {
		return nil
	}
	if _, err := s.context.StorageState(s.storagePath); err != nil {
		if strings.Contains(err.Error(), "closed") {
			return nil
		}
		return fmt.Errorf("failed to save browser state: %w", err)
	}
	return nil
}

// Close - saves state and disposes of the browser
func (s *PlaywrightSession) Close() error {
	if err := s.saveState(); err != nil {
		s.logger.Warnf("Failed to save browser state: %v", err)
	}
	var closeErr error
	if s.context != nil {
		if err := s.context.Close(); err != nil && !strings.Contains(err.Error(), "closed") {
			closeErr = fmt.Errorf("failed to close context: %w", err)
		}
		s.context = nil
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil && !strings.Contains(err.Error(), "closed") {
			if closeErr != nil {
				closeErr = fmt.Errorf("%v; failed to close browser: %w", closeErr, err)
			} else {
				closeErr = fmt.Errorf("failed to close browser: %w", err)
			}
		}
		s.browser = nil
	}
	return closeErr
}

var _ interfaces.Session = (*PlaywrightSession)(nil)
