// Package pages holds the page objects of the site under test.
package pages

import (
	"pom_automation/application/pom"
	"pom_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Site bundles every page of one test case; they all share one browser tab.
type Site struct {
	Home    *HomePage
	Login   *LoginPage
	Contact *ContactPage
}

func NewSite(b interfaces.Browser, settings pom.Settings, logger *logrus.Logger) (*Site, error) {
	home, err := NewHomePage(b, settings, logger)
	if err != nil {
		return nil, err
	}
	login, err := NewLoginPage(b, settings, logger)
	if err != nil {
		return nil, err
	}
	contact, err := NewContactPage(b, settings, logger)
	if err != nil {
		return nil, err
	}
	return &Site{Home: home, Login: login, Contact: contact}, nil
}
