package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"pom_automation/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFixtures(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)

	valid, err := f.User(entities.ValidUser)
	require.NoError(t, err)
	assert.Equal(t, "admin@admin.com", valid.Email)
	assert.Equal(t, "Admin", valid.Name)

	empty, err := f.User(entities.EmptyCredentials)
	require.NoError(t, err)
	assert.Empty(t, empty.Email)
	assert.Empty(t, empty.Password)

	_, err = f.User(entities.InvalidUser)
	assert.NoError(t, err)

	local, err := f.Environment("local")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", local.BaseURL)

	emailOnly, err := f.Contact("emailOnly")
	require.NoError(t, err)
	assert.Equal(t, entities.ContactFormData{Email: "only.email@example.com"}, emailOnly)
}

func TestMissingFixture(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)

	_, err = f.User("nobody")
	assert.ErrorIs(t, err, entities.ErrFixtureNotFound)

	_, err = f.Environment("mars")
	assert.ErrorIs(t, err, entities.ErrFixtureNotFound)
	assert.Contains(t, err.Error(), "local")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	content := `
users:
  validUser:
    email: qa@example.com
    password: secret
environments:
  ci:
    base_url: http://app:8080/
    api_url: http://app:8080/api/
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	f, err := NewSource(path).Load()
	require.NoError(t, err)

	env, err := f.Environment("ci")
	require.NoError(t, err)
	assert.Equal(t, "http://app:8080", env.BaseURL)
	assert.Equal(t, "http://app:8080/api", env.APIURL)
	assert.NotNil(t, f.Contacts)
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := Parse([]byte("users:\n  a:\n    email: x\n    pasword: typo\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("environments:\n  broken:\n    api_url: http://x\n"))
	assert.ErrorContains(t, err, "base_url")

	_, err = NewSource(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	assert.Error(t, err)
}

func TestUniqueEmail(t *testing.T) {
	a := UniqueEmail("contact")
	b := UniqueEmail("contact")
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^contact\+[0-9a-f]{12}@example\.com$`, a)
	assert.Regexp(t, `^e2e\+`, UniqueEmail(""))
}
