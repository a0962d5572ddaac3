// ABOUTME: Declarative rule-set validation for entity records
// ABOUTME: Pure function producing a field-to-message error map

package validate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"folio-admin/internal/entity"
)

// Errors maps field name to a human-readable message. Recomputed
// wholesale on every pass; at most one message per field.
type Errors map[string]string

// LocalFile marks a field value as a local file pending upload,
// as opposed to a serialized reference the backend already holds.
type LocalFile struct {
	Path string
}

// Validate checks a record against a rule set. For each field the
// minimum-length check runs first and the required-emptiness check
// overwrites it, so an empty required field reports "is required"
// while a non-empty short one reports the minimum-length message.
// The password/confirmPassword mismatch check applies regardless of
// the rule set. Returns nil when the record is valid.
func Validate(record entity.Record, rules entity.RuleSet) Errors {
	errs := Errors{}

	for field, rule := range rules {
		value := strings.TrimSpace(stringForm(record[field]))

		if rule.Min > 0 && len(value) < rule.Min {
			errs[field] = fmt.Sprintf("Minimum %d characters required", rule.Min)
		}

		if rule.Type == "date" && !isValidDate(value) {
			errs[field] = fmt.Sprintf("%s is not a valid date", humanize(field))
		}

		if rule.Required && value == "" {
			errs[field] = fmt.Sprintf("%s is required", humanize(field))
		}
	}

	password := strings.TrimSpace(stringForm(record["password"]))
	confirm := strings.TrimSpace(stringForm(record["confirmPassword"]))
	if password != "" && confirm != "" && password != confirm {
		errs["confirmPassword"] = "Passwords do not match"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// stringForm coerces a field value to its string representation.
// Slices join with commas, matching the original form encoding.
func stringForm(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case LocalFile:
		return val.Path
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = stringForm(item)
		}
		return strings.Join(parts, ",")
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func humanize(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func isValidDate(value string) bool {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}
