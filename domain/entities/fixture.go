package entities

import (
	"fmt"
	"sort"
)

// Credential is a login scenario record
type Credential struct {
	Email    string `json:"email" yaml:"email"`
	Password string `json:"password" yaml:"password"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
}

// ExpectedUser returns the user a successful login with c should report
func (c Credential) ExpectedUser() *ExpectedUser {
	return &ExpectedUser{Email: c.Email, Name: c.Name}
}

// Environment holds the URLs of one deployment
type Environment struct {
	BaseURL string `json:"base_url" yaml:"base_url"`
	APIURL  string `json:"api_url" yaml:"api_url"`
}

// ContactFormData is the input of the contact form. Empty fields are left untouched.
type ContactFormData struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Email   string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone   string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Subject string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Fixtures is the static test data of a run. It is read-only once loaded.
type Fixtures struct {
	Users        map[string]Credential      `json:"users" yaml:"users"`
	Environments map[string]Environment     `json:"environments" yaml:"environments"`
	Contacts     map[string]ContactFormData `json:"contacts" yaml:"contacts"`
}

// Scenario names shipped with the default fixtures
const (
	ValidUser        = "validUser"
	InvalidUser      = "invalidUser"
	EmptyCredentials = "emptyCredentials"
)

func (f *Fixtures) User(name string) (Credential, error) {
	c, ok := f.Users[name]
	if !ok {
		return Credential{}, fmt.Errorf("user %q: %w", name, ErrFixtureNotFound)
	}
	return c, nil
}

func (f *Fixtures) Environment(name string) (Environment, error) {
	e, ok := f.Environments[name]
	if !ok {
		return Environment{}, fmt.Errorf("environment %q (known: %v): %w", name, sortedKeys(f.Environments), ErrFixtureNotFound)
	}
	return e, nil
}

func (f *Fixtures) Contact(name string) (ContactFormData, error) {
	c, ok := f.Contacts[name]
	if !ok {
		return ContactFormData{}, fmt.Errorf("contact %q: %w", name, ErrFixtureNotFound)
	}
	return c, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
