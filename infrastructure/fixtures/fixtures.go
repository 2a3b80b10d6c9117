package fixtures

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultFixtures []byte

type fileSource struct {
	path string
}

// NewSource - creates a fixture source reading path, or the embedded defaults when path is empty
func NewSource(path string) interfaces.FixtureSource {
	return &fileSource{path: path}
}

// Load - reads and validates the fixture file
func (s *fileSource) Load() (*entities.Fixtures, error) {
	data := defaultFixtures
	if s.path != "" {
		var err error
		data, err = os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read fixtures: %w", err)
		}
	}
	return Parse(data)
}

// Parse decodes fixture YAML, rejecting unknown fields
func Parse(data []byte) (*entities.Fixtures, error) {
	var f entities.Fixtures
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	for name, env := range f.Environments {
		if env.BaseURL == "" {
			return nil, fmt.Errorf("environment %q has no base_url", name)
		}
		env.BaseURL = strings.TrimRight(env.BaseURL, "/")
		env.APIURL = strings.TrimRight(env.APIURL, "/")
		f.Environments[name] = env
	}
	if f.Users == nil {
		f.Users = map[string]entities.Credential{}
	}
	if f.Contacts == nil {
		f.Contacts = map[string]entities.ContactFormData{}
	}
	return &f, nil
}

// Default - returns the embedded fixtures
func Default() (*entities.Fixtures, error) {
	return Parse(defaultFixtures)
}

// UniqueEmail - returns an address that has not been used by an earlier run
func UniqueEmail(prefix string) string {
	if prefix == "" {
		prefix = "e2e"
	}
	return fmt.Sprintf("%s+%s@example.com", prefix, strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
