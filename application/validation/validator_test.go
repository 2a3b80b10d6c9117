package validation

import (
	"encoding/json"
	"testing"
	"time"

	"pom_automation/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginBody = `{
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

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func newTestValidator() *Validator {
	v := NewValidator()
	v.Now = func() time.Time { return fixedNow }
	return v
}

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &body))
	return body
}

func okResponse(t *testing.T) entities.APIResponse {
	return entities.APIResponse{Status: 200, Body: decode(t, loginBody), Raw: []byte(loginBody)}
}

func dataOf(resp entities.APIResponse) map[string]any {
	return resp.Body["data"].(map[string]any)
}

func userOf(resp entities.APIResponse) map[string]any {
	return dataOf(resp)["user"].(map[string]any)
}

func TestValidateWellFormedResponse(t *testing.T) {
	result := newTestValidator().Validate(okResponse(t), &entities.ExpectedUser{Email: "admin@admin.com"})

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.NotNil(t, result.Errors)
	assert.NotNil(t, result.Warnings)
}

func TestValidateExpiredTokenIsWarning(t *testing.T) {
	resp := okResponse(t)
	dataOf(resp)["access_token_expire_at"] = "2020-01-01T00:00:00.000000Z"

	result := newTestValidator().Validate(resp, &entities.ExpectedUser{Email: "admin@admin.com"})

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []string{"Access token expired at 2020-01-01T00:00:00Z"}, result.Warnings)
}

func TestValidateMissingMessage(t *testing.T) {
	resp := okResponse(t)
	delete(resp.Body, "message")

	result := newTestValidator().Validate(resp, nil)

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Missing required field: message"}, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateMissingData(t *testing.T) {
	resp := okResponse(t)
	delete(resp.Body, "data")

	result := newTestValidator().Validate(resp, &entities.ExpectedUser{Email: "admin@admin.com"})

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "data")
}

func TestValidateUnexpectedActiveFlagIsWarning(t *testing.T) {
	resp := okResponse(t)
	userOf(resp)["is_active"] = 2

	result := newTestValidator().Validate(resp, nil)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []string{"Unexpected data.user.is_active value: 2"}, result.Warnings)
}

func TestValidateBooleanActiveFlag(t *testing.T) {
	resp := okResponse(t)
	userOf(resp)["is_active"] = true

	result := newTestValidator().Validate(resp, nil)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)
}

func TestValidateIsIdempotent(t *testing.T) {
	resp := okResponse(t)
	userOf(resp)["is_active"] = "yes"
	delete(dataOf(resp), "access_token")
	v := newTestValidator()

	first := v.Validate(resp, &entities.ExpectedUser{Email: "admin@admin.com", Name: "Root"})
	second := v.Validate(resp, &entities.ExpectedUser{Email: "admin@admin.com", Name: "Root"})

	assert.Equal(t, first, second)
	assert.Equal(t, "yes", userOf(resp)["is_active"])
}

func TestValidateExpectedUser(t *testing.T) {
	result := newTestValidator().Validate(okResponse(t), &entities.ExpectedUser{
		Email: "someone@example.com",
		Name:  "Someone",
	})

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Expected user email someone@example.com, got admin@admin.com"}, result.Errors)
	assert.Equal(t, []string{"Expected user name Someone, got Admin"}, result.Warnings)
}

func TestValidateNameMismatchAloneStaysValid(t *testing.T) {
	result := newTestValidator().Validate(okResponse(t), &entities.ExpectedUser{
		Email: "admin@admin.com",
		Name:  "Administrator",
	})

	assert.True(t, result.IsValid)
	assert.Len(t, result.Warnings, 1)
}

func TestValidateUnparsableExpiry(t *testing.T) {
	resp := okResponse(t)
	dataOf(resp)["access_token_expire_at"] = "tomorrow"

	result := newTestValidator().Validate(resp, nil)

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Invalid date format for data.access_token_expire_at: tomorrow"}, result.Errors)
}

func TestValidateTypeChecks(t *testing.T) {
	resp := okResponse(t)
	userOf(resp)["id"] = "1"
	userOf(resp)["email"] = 42.0

	result := newTestValidator().Validate(resp, nil)

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{
		"Field data.user.id must be a number, got string",
		"Field data.user.email must be a string, got float64",
	}, result.Errors)
}

func TestValidateMissingUserFields(t *testing.T) {
	resp := okResponse(t)
	delete(userOf(resp), "created_at")
	delete(userOf(resp), "updated_at")

	result := newTestValidator().Validate(resp, nil)

	assert.Equal(t, []string{
		"Missing required field: data.user.created_at",
		"Missing required field: data.user.updated_at",
	}, result.Errors)
}

func TestValidateFailedLogin(t *testing.T) {
	resp := entities.APIResponse{
		Status: 401,
		Body:   decode(t, `{"success": false, "message": "Invalid credentials"}`),
	}

	result := newTestValidator().Validate(resp, nil)

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{
		"Expected status 200, got 401",
		"Missing required field: data",
		"Expected success to be true, got false",
	}, result.Errors)
}

func TestValidateNonJSONBody(t *testing.T) {
	result := newTestValidator().Validate(entities.APIResponse{Status: 502, Raw: []byte("<html>")}, nil)

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{
		"Expected status 200, got 502",
		"Missing required field: success",
		"Missing required field: message",
		"Missing required field: data",
	}, result.Errors)
}

func TestValidateDataNotObject(t *testing.T) {
	resp := okResponse(t)
	resp.Body["data"] = []any{}

	result := newTestValidator().Validate(resp, nil)

	assert.Equal(t, []string{"Field data must be an object, got []interface {}"}, result.Errors)
}

func TestValidateLoginResponseUsesWallClock(t *testing.T) {
	result := ValidateLoginResponse(okResponse(t), nil)
	assert.True(t, result.IsValid)
}
