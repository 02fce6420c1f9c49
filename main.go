package main

import (
	"context"
	"os"

	"form_automation/application/scenarios"
	"form_automation/domain/interfaces"
	"form_automation/infrastructure/browser"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const defaultFormURL = "https://demoqa.com/automation-practice-form"

func main() {
	godotenv.Load()

	logger := logrus.New()
	if os.Getenv("LOG_LEVEL") == "debug" {
		logger.SetLevel(logrus.DebugLevel)
	}

	formURL := os.Getenv("FORM_URL")
	if formURL == "" {
		formURL = defaultFormURL
	}

	var session interfaces.Session
	var err error
	switch os.Getenv("BROWSER_BACKEND") {
	case "playwright":
		session, err = browser.NewPlaywrightSession(logger)
	default:
		session, err = browser.NewSeleniumSession(logger)
	}
	if err != nil {
		logger.Fatalf("Failed to start browser session: %v", err)
	}
	defer session.Close()

	ctx := context.Background()
	if err := session.Navigate(ctx, formURL); err != nil {
		logger.Fatalf("Failed to navigate to %s: %v", formURL, err)
	}
	if err := session.WaitReady(ctx); err != nil {
		logger.Fatalf("Page did not become ready: %v", err)
	}

	doc := session.Document()

	value, err := scenarios.FillTextField(doc, logger, "First Name", "John")
	if err != nil {
		logger.Errorf("First Name scenario failed: %v", err)
	} else {
		logger.Infof("First Name set to %q", value)
	}

	selected, err := scenarios.ChooseRadio(doc, logger, "Male")
	if err != nil {
		logger.Errorf("Gender scenario failed: %v", err)
	} else {
		logger.Infof("Male radio selected: %v", selected)
	}

	chosen, err := scenarios.ChooseOption(ctx, doc, logger, "State", "NCR")
	if err != nil {
		logger.Errorf("State scenario failed: %v", err)
	} else {
		logger.Infof("State set to %q", chosen)
	}
}
