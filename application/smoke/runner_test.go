package smoke

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pom_automation/application/pages"
	"pom_automation/application/pom"
	"pom_automation/domain/entities"
	"pom_automation/infrastructure/api"
	"pom_automation/infrastructure/browser/browsertest"
	"pom_automation/infrastructure/fixtures"
	"pom_automation/infrastructure/security"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validLoginBody = `{
	"success": true,
	"message": "Successfully logged in.",
	"data": {
		"user": {
			"id": 1,
			"name": "Admin",
			"email": "admin@admin.com",
			"is_active": 1,
			"created_at": "2024-01-01T00:00:00.000000Z",
			"updated_at": "2024-01-01T00:00:00.000000Z"
		},
		"access_token": "abc",
		"access_token_expire_at": "2999-01-01T00:00:00.000000Z"
	}
}`

var testSettings = pom.Settings{
	BaseURL:        "http://app.test",
	ProbeTimeout:   30 * time.Millisecond,
	LoadTimeout:    100 * time.Millisecond,
	OutcomeTimeout: 300 * time.Millisecond,
	ScreenshotDir:  "shots",
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newAuthServer(t *testing.T, loginBody string) *api.AuthClient {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		w.Header().Set("Content-Type", "application/json")
		if payload["email"] == "admin@admin.com" && payload["password"] == "password" {
			_, _ = w.Write([]byte(loginBody))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	}))
	t.Cleanup(server.Close)

	logger := quietLogger()
	client, err := api.NewAuthClient(server.URL, logger, security.NewRedactor(logger), api.WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return client
}

// newFakeSite renders a small site whose login accepts only the admin user
func newFakeSite(b *browsertest.Browser) {
	chrome := func(b *browsertest.Browser) {
		b.Show("header", "").Show("footer", "")
	}
	b.OnNavigate("http://app.test/", func(b *browsertest.Browser) {
		chrome(b)
		b.Show("section.hero", "").Show(".features .feature", "")
	})
	b.OnNavigate("http://app.test/login", func(b *browsertest.Browser) {
		chrome(b)
		b.Remove("[role='alert']").
			Show("form[data-testid='login-form']", "").
			Show("input[name='email']", "").
			Show("input[name='password']", "").
			Show("button[type='submit']", "Sign in")
	})
	b.OnClick("button[type='submit']", func(b *browsertest.Browser) {
		if b.Value("input[name='email']") == "admin@admin.com" {
			b.SetURL("http://app.test/dashboard")
			return
		}
		b.Show("[role='alert']", "Invalid credentials")
	})
	b.OnNavigate("http://app.test/contact", func(b *browsertest.Browser) {
		chrome(b)
		b.Show("form#contact-form", "")
		for _, field := range []string{"name", "email", "phone", "subject"} {
			b.Show("#contact-form input[name='"+field+"']", "")
		}
		b.Show("#contact-form textarea[name='message']", "").
			Show("#contact-form button[type='submit']", "Send")
	})
	b.OnClick("#contact-form button[type='submit']", func(b *browsertest.Browser) {
		b.Show(".alert-success", "Thanks!")
	})
}

func newTestRunner(t *testing.T, b *browsertest.Browser, withAPI bool) *Runner {
	t.Helper()
	site, err := pages.NewSite(b, testSettings, quietLogger())
	require.NoError(t, err)
	fx, err := fixtures.Default()
	require.NoError(t, err)

	if withAPI {
		return NewRunner(site, newAuthServer(t, validLoginBody), fx, "test", quietLogger())
	}
	return NewRunner(site, nil, fx, "test", quietLogger())
}

func TestRunAllStepsPass(t *testing.T) {
	b := browsertest.New()
	newFakeSite(b)
	runner := newTestRunner(t, b, true)

	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "test", report.Environment)
	require.Len(t, report.Steps, len(runner.Steps()))
	for _, step := range report.Steps {
		assert.Equal(t, entities.StepStatusPassed, step.Status, "%s: %s", step.Name, step.Error)
	}
	assert.True(t, report.Passed())
	assert.Empty(t, b.Screenshots())
	assert.Equal(t, report.Steps, runner.History())
}

func TestRunSkipsAPIStepsWithoutClient(t *testing.T) {
	b := browsertest.New()
	newFakeSite(b)
	runner := newTestRunner(t, b, false)

	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Count(entities.StepStatusSkipped))
	assert.Equal(t, entities.StepStatusSkipped, report.Steps[0].Status)
	assert.True(t, report.Passed())
}

func TestRunRecordsFailureAndScreenshot(t *testing.T) {
	b := browsertest.New()
	runner := newTestRunner(t, b, false)

	report, err := runner.Run(context.Background(), Step{
		Name: "home page loads",
		Run:  runner.homePageLoads,
	})
	require.NoError(t, err)

	require.Len(t, report.Steps, 1)
	step := report.Steps[0]
	assert.Equal(t, entities.StepStatusFailed, step.Status)
	assert.Equal(t, "home page did not load", step.Error)
	assert.NotEmpty(t, step.Screenshot)
	assert.False(t, report.Passed())
	assert.Len(t, b.Screenshots(), 1)
}

func TestRunKeepsGoingAfterFailure(t *testing.T) {
	b := browsertest.New()
	newFakeSite(b)
	runner := newTestRunner(t, b, false)
	calls := 0

	report, err := runner.Run(context.Background(),
		Step{Name: "broken", Run: func(ctx context.Context) ([]string, error) {
			calls++
			return []string{"first warning"}, assert.AnError
		}},
		Step{Name: "fine", Run: func(ctx context.Context) ([]string, error) {
			calls++
			return nil, nil
		}},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, []string{"first warning"}, report.Steps[0].Warnings)
	assert.Equal(t, 1, report.Count(entities.StepStatusFailed))
	assert.Equal(t, 1, report.Count(entities.StepStatusPassed))
}

func TestRunStopsWhenCanceled(t *testing.T) {
	b := browsertest.New()
	runner := newTestRunner(t, b, false)
	ctx, cancel := context.WithCancel(context.Background())

	report, err := runner.Run(ctx,
		Step{Name: "cancel", Run: func(ctx context.Context) ([]string, error) {
			cancel()
			return nil, nil
		}},
		Step{Name: "never", Run: func(ctx context.Context) ([]string, error) {
			t.Fatal("step ran after cancellation")
			return nil, nil
		}},
	)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, report.Steps, 1)
}

func TestInvalidLoginStepFailsWhenLoginIsAccepted(t *testing.T) {
	b := browsertest.New()
	newFakeSite(b)
	b.OnClick("button[type='submit']", func(b *browsertest.Browser) {
		b.SetURL("http://app.test/dashboard")
	})
	runner := newTestRunner(t, b, false)

	_, err := runner.invalidLoginShowsError(context.Background())
	assert.ErrorContains(t, err, "expected an error banner")
}

func TestAPILoginContractKeepsSoftDeviationsAsWarnings(t *testing.T) {
	body := strings.Replace(validLoginBody, `"is_active": 1`, `"is_active": "1"`, 1)
	runner := newTestRunner(t, browsertest.New(), false)
	runner.api = newAuthServer(t, body)

	warnings, err := runner.apiLoginContract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Unexpected data.user.is_active value: 1"}, warnings)
}

func TestAPILoginContractReportsSchemaDriftAsWarning(t *testing.T) {
	body := strings.Replace(validLoginBody, `"name": "Admin"`, `"name": 7`, 1)
	runner := newTestRunner(t, browsertest.New(), false)
	runner.api = newAuthServer(t, body)

	warnings, err := runner.apiLoginContract(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, warnings)
	assert.Contains(t, strings.Join(warnings, "\n"), "contract: data.user.name")
}

func TestAPILoginContractFailsOnValidatorErrors(t *testing.T) {
	body := strings.Replace(validLoginBody, `"email": "admin@admin.com"`, `"email": "someone@else.com"`, 1)
	runner := newTestRunner(t, browsertest.New(), false)
	runner.api = newAuthServer(t, body)

	_, err := runner.apiLoginContract(context.Background())
	assert.ErrorContains(t, err, "Expected user email admin@admin.com")
}
