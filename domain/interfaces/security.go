package interfaces

// Redactor masks secrets before payloads reach the logs
type Redactor interface {
	// Redact returns a copy of body with sensitive values replaced
	Redact(body map[string]any) map[string]any

	// IsSensitive reports whether a field name holds a secret
	IsSensitive(field string) bool
}
