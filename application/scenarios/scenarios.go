// Package scenarios holds the three linear form interaction flows the
// resolver was built for. Each one resolves a control by label,
// performs the category-appropriate interaction and reads the outcome
// back; no resolution or matching logic lives here.
package scenarios

import (
	"context"

	"form_automation/application/resolver"
	"form_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// FillTextField - resolves a text input by label, replaces its value
// and returns the value read back from the control
func FillTextField(doc interfaces.Document, logger *logrus.Logger, label, value string) (string, error) {
	input, err := resolver.New(doc, logger).ResolveInput(label)
	if err != nil {
		return "", err
	}
	if err := input.Clear(); err != nil {
		return "", err
	}
	if err := input.Fill(value); err != nil {
		return "", err
	}
	return input.Value()
}

// ChooseRadio - resolves a radio by label, clicks it only when it is
// not already selected and returns the resulting selection state
func ChooseRadio(doc interfaces.Document, logger *logrus.Logger, label string) (bool, error) {
	logger = ensureLogger(logger)
	radio, err := resolver.New(doc, logger).ResolveRadio(label)
	if err != nil {
		return false, err
	}
	selected, err := radio.Selected()
	if err != nil {
		return false, err
	}
	if !selected {
		if err := radio.ScrollIntoView(); err != nil {
			logger.Warnf("Failed to scroll to radio %q: %v", label, err)
		}
		if err := radio.Click(); err != nil {
			return false, err
		}
	}
	return radio.Selected()
}

// ensureLogger - callers may pass nil when they have no logger configured
func ensureLogger(logger *logrus.Logger) *logrus.Logger {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

// ChooseOption - resolves a select-like control by label, waits for
// its options to populate, selects the option with the given visible
// text and returns the text of the now-selected option
func ChooseOption(ctx context.Context, doc interfaces.Document, logger *logrus.Logger, label, option string) (string, error) {
	sel, err := resolver.New(doc, logger).ResolveSelect(label)
	if err != nil {
		return "", err
	}
	if err := sel.WaitOptions(ctx, resolver.OptionWaitTimeout); err != nil {
		return "", err
	}
	if err := sel.SelectByText(option); err != nil {
		return "", err
	}
	return sel.SelectedText()
}
