package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckContractAcceptsLoginResponse(t *testing.T) {
	violations, err := CheckContract([]byte(loginBody))
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestCheckContractReportsViolations(t *testing.T) {
	violations, err := CheckContract([]byte(`{"success": "yes", "data": {"access_token": ""}}`))
	require.NoError(t, err)

	joined := strings.Join(violations, "\n")
	assert.Contains(t, joined, "message")
	assert.Contains(t, joined, "success")
	assert.Contains(t, joined, "user")
	assert.Contains(t, joined, "access_token")
}

func TestCheckContractRejectsInvalidJSON(t *testing.T) {
	_, err := CheckContract([]byte("<html>"))
	assert.Error(t, err)
}

func TestCheckContractLeavesActiveFlagToValidator(t *testing.T) {
	body := strings.Replace(loginBody, `"is_active": 1`, `"is_active": "1"`, 1)
	require.NotEqual(t, loginBody, body)

	violations, err := CheckContract([]byte(body))
	require.NoError(t, err)
	assert.Empty(t, violations)

	violations, err = CheckContract([]byte(strings.Replace(loginBody, `"id": 1`, `"id": 1.5`, 1)))
	require.NoError(t, err)
	assert.Empty(t, violations)
}
