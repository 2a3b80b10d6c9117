package security

import (
	"strings"

	"pom_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const Mask = "[REDACTED]"

type Redactor struct {
	logger   *logrus.Logger
	keywords []string
}

// NewRedactor - creates a redactor masking the default secret field names plus extra
func NewRedactor(logger *logrus.Logger, extra ...string) *Redactor {
	keywords := []string{
		"password", "passwd", "secret",
		"token", "authorization", "cookie",
		"api_key", "apikey",
	}
	for _, k := range extra {
		keywords = append(keywords, strings.ToLower(k))
	}
	return &Redactor{
		logger:   logger,
		keywords: keywords,
	}
}

func (r *Redactor) IsSensitive(field string) bool {
	lower := strings.ToLower(field)
	for _, keyword := range r.keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// Redact returns a deep copy; the input map is never modified
func (r *Redactor) Redact(body map[string]any) map[string]any {
	if body == nil {
		return nil
	}
	redacted := 0
	out := r.redactMap(body, &redacted)
	if redacted > 0 {
		r.logger.Debugf("Redacted %d sensitive field(s)", redacted)
	}
	return out
}

func (r *Redactor) redactMap(m map[string]any, count *int) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		// expiry timestamps are not secrets even though their names contain "token"
		if r.IsSensitive(k) && !isTimestampField(k) {
			out[k] = Mask
			*count++
			continue
		}
		out[k] = r.redactValue(v, count)
	}
	return out
}

func (r *Redactor) redactValue(v any, count *int) any {
	switch val := v.(type) {
	case map[string]any:
		return r.redactMap(val, count)
	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = r.redactValue(item, count)
		}
		return items
	default:
		return val
	}
}

func isTimestampField(field string) bool {
	lower := strings.ToLower(field)
	return strings.HasSuffix(lower, "_at") || strings.HasSuffix(lower, "_expire") || strings.HasSuffix(lower, "_expires")
}

// Ensure Redactor implements Redactor interface
var _ interfaces.Redactor = (*Redactor)(nil)
