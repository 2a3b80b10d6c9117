// Package validation checks login API responses. It does no I/O.
package validation

import (
	"fmt"
	"net/http"
	"time"

	"pom_automation/domain/entities"
)

var (
	RequiredFields     = []string{"success", "message", "data"}
	RequiredDataFields = []string{"user", "access_token", "access_token_expire_at"}
	RequiredUserFields = []string{"id", "name", "email", "is_active", "created_at", "updated_at"}

	// ActiveFlagValues are the encodings of is_active the API is known to use
	ActiveFlagValues = []any{0, 1, true, false}
)

// Validator checks the structure of a login response. The zero value is not
// usable; start from NewValidator and override fields as needed.
type Validator struct {
	ExpectedStatus  int
	ExpectedSuccess bool
	Now             func() time.Time
}

func NewValidator() *Validator {
	return &Validator{
		ExpectedStatus:  http.StatusOK,
		ExpectedSuccess: true,
		Now:             time.Now,
	}
}

// ValidateLoginResponse runs a default Validator
func ValidateLoginResponse(resp entities.APIResponse, expected *entities.ExpectedUser) entities.ValidationResult {
	return NewValidator().Validate(resp, expected)
}

type report struct {
	errors   []string
	warnings []string
}

func (r *report) errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *report) warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

// Validate runs every check and collects all defects; nothing short-circuits.
// The response is never modified, so repeated calls give equal results.
func (v *Validator) Validate(resp entities.APIResponse, expected *entities.ExpectedUser) entities.ValidationResult {
	r := &report{}
	body := resp.Body

	if resp.Status != v.ExpectedStatus {
		r.errorf("Expected status %d, got %d", v.ExpectedStatus, resp.Status)
	}

	for _, field := range RequiredFields {
		if _, ok := body[field]; !ok {
			r.errorf("Missing required field: %s", field)
		}
	}

	if success, ok := body["success"]; ok && success != v.ExpectedSuccess {
		r.errorf("Expected success to be %t, got %v", v.ExpectedSuccess, success)
	}

	if message, ok := body["message"]; ok {
		if s, isString := message.(string); !isString || s == "" {
			r.errorf("Field message must be a non-empty string, got %v", message)
		}
	}

	var data, user map[string]any
	if raw, ok := body["data"]; ok {
		data = v.object(r, "data", raw)
	}
	if data != nil {
		for _, field := range RequiredDataFields {
			if _, ok := data[field]; !ok {
				r.errorf("Missing required field: data.%s", field)
			}
		}
		if raw, ok := data["user"]; ok {
			user = v.object(r, "data.user", raw)
		}
	}

	if user != nil {
		v.checkUser(r, user)
		if expected != nil {
			v.checkExpectedUser(r, user, expected)
		}
	}

	if data != nil {
		if raw, ok := data["access_token_expire_at"]; ok {
			v.checkExpiry(r, raw)
		}
	}

	return entities.NewValidationResult(r.errors, r.warnings)
}

func (v *Validator) object(r *report, field string, raw any) map[string]any {
	m, ok := raw.(map[string]any)
	if !ok {
		r.errorf("Field %s must be an object, got %T", field, raw)
		return nil
	}
	return m
}

func (v *Validator) checkUser(r *report, user map[string]any) {
	for _, field := range RequiredUserFields {
		if _, ok := user[field]; !ok {
			r.errorf("Missing required field: data.user.%s", field)
		}
	}
	if id, ok := user["id"]; ok && !isNumber(id) {
		r.errorf("Field data.user.id must be a number, got %T", id)
	}
	if email, ok := user["email"]; ok {
		if _, isString := email.(string); !isString {
			r.errorf("Field data.user.email must be a string, got %T", email)
		}
	}
	if active, ok := user["is_active"]; ok && !IsOneOf(active, ActiveFlagValues...) {
		r.warnf("Unexpected data.user.is_active value: %v", active)
	}
}

func (v *Validator) checkExpectedUser(r *report, user map[string]any, expected *entities.ExpectedUser) {
	if expected.Email != "" {
		if email, _ := user["email"].(string); email != expected.Email {
			r.errorf("Expected user email %s, got %v", expected.Email, user["email"])
		}
	}
	if expected.Name != "" {
		if name, _ := user["name"].(string); name != expected.Name {
			r.warnf("Expected user name %s, got %v", expected.Name, user["name"])
		}
	}
}

func (v *Validator) checkExpiry(r *report, raw any) {
	s, ok := raw.(string)
	if !ok {
		r.errorf("Invalid date format for data.access_token_expire_at: %v", raw)
		return
	}
	expiresAt, err := ParseTimestamp(s)
	if err != nil {
		r.errorf("Invalid date format for data.access_token_expire_at: %s", s)
		return
	}
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	if !IsAfter(expiresAt, now()) {
		r.warnf("Access token expired at %s", expiresAt.Format(time.RFC3339))
	}
}
