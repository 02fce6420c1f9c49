package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"form_automation/application/scenarios"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const testFormPage = `<!DOCTYPE html>
<html><body><form>
	<label for="first-name">First Name</label>
	<input id="first-name" placeholder="First Name">
	<input type="radio" name="gender" value="Male" id="gender-male">
	<label for="gender-male">Male</label>
	<label for="state">State</label>
	<select id="state">
		<option>Canada</option>
		<option>Germany</option>
	</select>
</form></body></html>`

// Needs a local chromedriver and Chrome; opt in with
// FORM_AUTOMATION_BROWSER_TEST=1.
func TestSeleniumSessionRunsScenarios(t *testing.T) {
	if os.Getenv("FORM_AUTOMATION_BROWSER_TEST") == "" {
		t.Skip("set FORM_AUTOMATION_BROWSER_TEST=1 to run live browser tests")
	}
	if _, err := findChromeDriver(); err != nil {
		t.Skipf("chromedriver not available: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(testFormPage))
	}))
	defer server.Close()

	logger := logrus.New()
	session, err := NewSeleniumSession(logger)
	require.NoError(t, err)
	defer session.Close()

	ctx := context.Background()
	require.NoError(t, session.Navigate(ctx, server.URL))
	require.NoError(t, session.WaitReady(ctx))

	doc := session.Document()

	value, err := scenarios.FillTextField(doc, logger, "First Name", "John")
	require.NoError(t, err)
	require.Equal(t, "John", value)

	selected, err := scenarios.ChooseRadio(doc, logger, "Male")
	require.NoError(t, err)
	require.True(t, selected)

	chosen, err := scenarios.ChooseOption(ctx, doc, logger, "State", "Canada")
	require.NoError(t, err)
	require.Equal(t, "Canada", chosen)
}

// Needs playwright browsers installed; opt in with
// FORM_AUTOMATION_BROWSER_TEST=1. Covers native option selection,
// which goes through SelectOption on this backend.
func TestPlaywrightSessionRunsScenarios(t *testing.T) {
	if os.Getenv("FORM_AUTOMATION_BROWSER_TEST") == "" {
		t.Skip("set FORM_AUTOMATION_BROWSER_TEST=1 to run live browser tests")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(testFormPage))
	}))
	defer server.Close()

	logger := logrus.New()
	session, err := NewPlaywrightSession(logger)
	require.NoError(t, err)
	defer session.Close()

	ctx := context.Background()
	require.NoError(t, session.Navigate(ctx, server.URL))
	require.NoError(t, session.WaitReady(ctx))

	doc := session.Document()

	value, err := scenarios.FillTextField(doc, logger, "First Name", "John")
	require.NoError(t, err)
	require.Equal(t, "John", value)

	selected, err := scenarios.ChooseRadio(doc, logger, "Male")
	require.NoError(t, err)
	require.True(t, selected)

	chosen, err := scenarios.ChooseOption(ctx, doc, logger, "State", "Canada")
	require.NoError(t, err)
	require.Equal(t, "Canada", chosen)
}
