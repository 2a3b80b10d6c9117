package pages

import (
	"context"

	"pom_automation/application/pom"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

type FooterElement string

const (
	FooterCopyright         FooterElement = "copyright"
	FooterPrivacy           FooterElement = "privacy"
	FooterTerms             FooterElement = "terms"
	FooterNewsletter        FooterElement = "newsletter"
	FooterNewsletterEmail   FooterElement = "newsletterEmail"
	FooterNewsletterSubmit  FooterElement = "newsletterSubmit"
	FooterNewsletterSuccess FooterElement = "newsletterSuccess"
	FooterNewsletterError   FooterElement = "newsletterError"
)

const FooterRoot = "footer"

var footerSelectors = pom.SelectorTable[FooterElement]{
	FooterCopyright:         ".copyright",
	FooterPrivacy:           "a[href='/privacy']",
	FooterTerms:             "a[href='/terms']",
	FooterNewsletter:        "form.newsletter",
	FooterNewsletterEmail:   "form.newsletter input[type='email']",
	FooterNewsletterSubmit:  "form.newsletter button[type='submit']",
	FooterNewsletterSuccess: ".newsletter-success",
	FooterNewsletterError:   ".newsletter-error",
}

// Footer is the site-wide footer; the newsletter box is optional
type Footer struct {
	*pom.Component[FooterElement]
}

func NewFooter(b interfaces.Browser, settings pom.Settings, logger *logrus.Logger) (*Footer, error) {
	c, err := pom.NewComponent(b, "footer", FooterRoot, footerSelectors, settings, logger)
	if err != nil {
		return nil, err
	}
	return &Footer{Component: c}, nil
}

func (f *Footer) GetCopyrightText(ctx context.Context) (string, error) {
	return f.GetText(ctx, FooterCopyright)
}

func (f *Footer) ClickPrivacy(ctx context.Context) error {
	return f.Click(ctx, FooterPrivacy)
}

func (f *Footer) ClickTerms(ctx context.Context) error {
	return f.Click(ctx, FooterTerms)
}

func (f *Footer) IsNewsletterVisible(ctx context.Context) (bool, error) {
	return f.IsElementVisible(ctx, FooterNewsletter)
}

// SubscribeNewsletter submits email and reports how the box reacted
func (f *Footer) SubscribeNewsletter(ctx context.Context, email string) (entities.Outcome, error) {
	if err := f.Fill(ctx, FooterNewsletterEmail, email); err != nil {
		return entities.Outcome{}, err
	}
	success := f.Reappears(ctx, FooterNewsletterSuccess, pom.Succeed)
	failure := f.Reappears(ctx, FooterNewsletterError, f.FailureText(FooterNewsletterError))
	if err := f.Click(ctx, FooterNewsletterSubmit); err != nil {
		return entities.Outcome{}, err
	}
	return f.Await(ctx, success, failure), nil
}
