package pages

import (
	"context"

	"pom_automation/application/pom"
	"pom_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

type HeaderElement string

const (
	HeaderLogo       HeaderElement = "logo"
	HeaderNavHome    HeaderElement = "navHome"
	HeaderNavLogin   HeaderElement = "navLogin"
	HeaderNavContact HeaderElement = "navContact"
	HeaderUserMenu   HeaderElement = "userMenu"
	HeaderLogout     HeaderElement = "logout"
)

const HeaderRoot = "header"

var headerSelectors = pom.SelectorTable[HeaderElement]{
	HeaderLogo:       "[data-testid='logo']",
	HeaderNavHome:    "nav a[href='/']",
	HeaderNavLogin:   "nav a[href='/login']",
	HeaderNavContact: "nav a[href='/contact']",
	HeaderUserMenu:   "[data-testid='user-menu']",
	HeaderLogout:     "[data-testid='logout']",
}

// Header is the site-wide navigation bar
type Header struct {
	*pom.Component[HeaderElement]
}

func NewHeader(b interfaces.Browser, settings pom.Settings, logger *logrus.Logger) (*Header, error) {
	c, err := pom.NewComponent(b, "header", HeaderRoot, headerSelectors, settings, logger)
	if err != nil {
		return nil, err
	}
	return &Header{Component: c}, nil
}

func (h *Header) ClickLogo(ctx context.Context) error {
	return h.Click(ctx, HeaderLogo)
}

func (h *Header) GoToHome(ctx context.Context) error {
	return h.Click(ctx, HeaderNavHome)
}

func (h *Header) GoToLogin(ctx context.Context) error {
	return h.Click(ctx, HeaderNavLogin)
}

func (h *Header) GoToContact(ctx context.Context) error {
	return h.Click(ctx, HeaderNavContact)
}

// IsUserLoggedIn probes for the user menu
func (h *Header) IsUserLoggedIn(ctx context.Context) (bool, error) {
	return h.IsElementVisible(ctx, HeaderUserMenu)
}

// Logout opens the user menu and clicks logout
func (h *Header) Logout(ctx context.Context) error {
	if err := h.Click(ctx, HeaderUserMenu); err != nil {
		return err
	}
	return h.Click(ctx, HeaderLogout)
}
