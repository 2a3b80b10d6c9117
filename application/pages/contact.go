package pages

import (
	"context"

	"pom_automation/application/pom"
	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

type ContactElement string

const (
	ContactForm    ContactElement = "form"
	ContactName    ContactElement = "name"
	ContactEmail   ContactElement = "email"
	ContactPhone   ContactElement = "phone"
	ContactSubject ContactElement = "subject"
	ContactMessage ContactElement = "message"
	ContactSubmit  ContactElement = "submit"
	ContactSuccess ContactElement = "success"
	ContactError   ContactElement = "error"
)

const ContactPath = "/contact"

var contactSelectors = pom.SelectorTable[ContactElement]{
	ContactForm:    "form#contact-form",
	ContactName:    "#contact-form input[name='name']",
	ContactEmail:   "#contact-form input[name='email']",
	ContactPhone:   "#contact-form input[name='phone']",
	ContactSubject: "#contact-form input[name='subject']",
	ContactMessage: "#contact-form textarea[name='message']",
	ContactSubmit:  "#contact-form button[type='submit']",
	ContactSuccess: ".alert-success",
	ContactError:   ".alert-error",
}

type ContactPage struct {
	*pom.Page[ContactElement]
	Header *Header
	Footer *Footer
}

func NewContactPage(b interfaces.Browser, settings pom.Settings, logger *logrus.Logger) (*ContactPage, error) {
	page, err := pom.NewPage(b, "contact", ContactPath, contactSelectors, settings, logger)
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
	return &ContactPage{Page: page, Header: header, Footer: footer}, nil
}

func (c *ContactPage) IsLoaded(ctx context.Context) (bool, error) {
	return c.Loaded(ctx,
		c.Header.IsVisible,
		c.Footer.IsVisible,
		func(ctx context.Context) (bool, error) { return c.IsElementVisible(ctx, ContactForm) },
	)
}

func (c *ContactPage) FillName(ctx context.Context, name string) error {
	return c.Fill(ctx, ContactName, name)
}

func (c *ContactPage) FillEmail(ctx context.Context, email string) error {
	return c.Fill(ctx, ContactEmail, email)
}

func (c *ContactPage) FillPhone(ctx context.Context, phone string) error {
	return c.Fill(ctx, ContactPhone, phone)
}

func (c *ContactPage) FillSubject(ctx context.Context, subject string) error {
	return c.Fill(ctx, ContactSubject, subject)
}

func (c *ContactPage) FillMessage(ctx context.Context, message string) error {
	return c.Fill(ctx, ContactMessage, message)
}

// FillContactForm fills every non-empty field of data in form order.
// Empty fields are skipped, so whatever the input already holds stays there.
func (c *ContactPage) FillContactForm(ctx context.Context, data entities.ContactFormData) error {
	fields := []struct {
		value string
		fill  func(context.Context, string) error
	}{
		{data.Name, c.FillName},
		{data.Email, c.FillEmail},
		{data.Phone, c.FillPhone},
		{data.Subject, c.FillSubject},
		{data.Message, c.FillMessage},
	}
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		if err := field.fill(ctx, field.value); err != nil {
			return err
		}
	}
	return nil
}

// SubmitContactForm clicks submit and races the success banner, the error banner and a URL change
func (c *ContactPage) SubmitContactForm(ctx context.Context) (entities.Outcome, error) {
	conditions := []pom.Condition{
		c.Reappears(ctx, ContactSuccess, pom.Succeed),
		c.Reappears(ctx, ContactError, c.FailureText(ContactError)),
		c.URLChanges(ctx, pom.Succeed),
	}
	if err := c.Click(ctx, ContactSubmit); err != nil {
		return entities.Outcome{}, err
	}
	return c.Await(ctx, conditions...), nil
}

func (c *ContactPage) GetSuccessMessage(ctx context.Context) (string, bool) {
	return c.OptionalText(ctx, ContactSuccess)
}

func (c *ContactPage) GetErrorMessage(ctx context.Context) (string, bool) {
	return c.OptionalText(ctx, ContactError)
}
