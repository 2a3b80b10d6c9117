package pages

import (
	"context"

	"pom_automation/application/pom"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

type LoginElement string

const (
	LoginForm       LoginElement = "form"
	LoginEmail      LoginElement = "email"
	LoginPassword   LoginElement = "password"
	LoginRememberMe LoginElement = "rememberMe"
	LoginSubmit     LoginElement = "submit"
	LoginError      LoginElement = "error"
	LoginSuccess    LoginElement = "success"
)

const LoginPath = "/login"

var loginSelectors = pom.SelectorTable[LoginElement]{
	LoginForm:       "form[data-testid='login-form']",
	LoginEmail:      "input[name='email']",
	LoginPassword:   "input[name='password']",
	LoginRememberMe: "input[name='remember']",
	LoginSubmit:     "button[type='submit']",
	LoginError:      "[role='alert']",
	LoginSuccess:    "[data-testid='login-success']",
}

type LoginPage struct {
	*pom.Page[LoginElement]
	Header *Header
	Footer *Footer
}

func NewLoginPage(b interfaces.Browser, settings pom.Settings, logger *logrus.Logger) (*LoginPage, error) {
	page, err := pom.NewPage(b, "login", LoginPath, loginSelectors, settings, logger)
	if err != nil {
		return nil, err
	}
	header, err := NewHeader(b, settings, logger)
	if err != nil {
		return nil, err
	}
	footer, err := NewFooter(b, settings, logger)
	if err != nil {
		return nil, err
	}
	return &LoginPage{Page: page, Header: header, Footer: footer}, nil
}

func (l *LoginPage) IsLoaded(ctx context.Context) (bool, error) {
	return l.Loaded(ctx,
		l.Header.IsVisible,
		func(ctx context.Context) (bool, error) { return l.IsElementVisible(ctx, LoginForm) },
	)
}

func (l *LoginPage) FillEmail(ctx context.Context, email string) error {
	return l.Fill(ctx, LoginEmail, email)
}

func (l *LoginPage) FillPassword(ctx context.Context, password string) error {
	return l.Fill(ctx, LoginPassword, password)
}

func (l *LoginPage) CheckRememberMe(ctx context.Context) error {
	return l.Click(ctx, LoginRememberMe)
}

// Login submits the form and reports which reaction came first: the success
// indicator, the error banner or a URL change. Unknown means none did in time.
func (l *LoginPage) Login(ctx context.Context, email, password string) (entities.Outcome, error) {
	if err := l.FillEmail(ctx, email); err != nil {
		return entities.Outcome{}, err
	}
	if err := l.FillPassword(ctx, password); err != nil {
		return entities.Outcome{}, err
	}

	conditions := []pom.Condition{
		l.Reappears(ctx, LoginSuccess, pom.Succeed),
		l.Reappears(ctx, LoginError, l.FailureText(LoginError)),
		l.URLChanges(ctx, pom.Succeed),
	}
	if err := l.Click(ctx, LoginSubmit); err != nil {
		return entities.Outcome{}, err
	}
	return l.Await(ctx, conditions...), nil
}

func (l *LoginPage) LoginAs(ctx context.Context, credential entities.Credential) (entities.Outcome, error) {
	return l.Login(ctx, credential.Email, credential.Password)
}

// GetErrorMessage returns the banner text, ok is false when no banner is shown
func (l *LoginPage) GetErrorMessage(ctx context.Context) (string, bool) {
	return l.OptionalText(ctx, LoginError)
}

// IsLoggedIn probes the header user menu
func (l *LoginPage) IsLoggedIn(ctx context.Context) (bool, error) {
	return l.Header.IsUserLoggedIn(ctx)
}
