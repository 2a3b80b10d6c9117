package validation

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/login_response.json
var loginResponseSchema []byte

var loadLoginSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(loginResponseSchema))
})

// CheckContract validates a raw login response body against the JSON schema of the
// endpoint and returns one line per violation. An error means raw could not be checked at all.
func CheckContract(raw []byte) ([]string, error) {
	schema, err := loadLoginSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to load login schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return violations, nil
}
