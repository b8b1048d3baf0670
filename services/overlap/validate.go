package overlap

import (
	"fmt"
	"strings"
	"time"

	"whenfree/models"
)

// FieldError describes one invalid field of a request or block.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level descriptions of malformed input. It is
// raised at ingestion, before the engine runs.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ValidateBlock checks a busy block against the ingestion contract: a
// non-empty minute range inside a single day (midnight-spanning blocks are
// rejected), at least one valid weekday, and a coherent active-date window.
func ValidateBlock(b models.BusyBlock) error {
	var ve ValidationError

	if b.OwnerID == "" {
		ve.add("ownerId", "must not be empty")
	}
	if b.StartMinute < 0 || b.StartMinute >= models.MinutesPerDay {
		ve.add("startMinute", "must be within 0..%d", models.MinutesPerDay-1)
	}
	if b.EndMinute <= 0 || b.EndMinute > models.MinutesPerDay {
		ve.add("endMinute", "must be within 1..%d", models.MinutesPerDay)
	}
	if b.StartMinute >= b.EndMinute {
		ve.add("endMinute", "must be after startMinute (blocks may not span midnight)")
	}

	if len(b.DaysOfWeek) == 0 {
		ve.add("daysOfWeek", "must not be empty")
	}
	for _, d := range b.DaysOfWeek {
		if d < time.Sunday || d > time.Saturday {
			ve.add("daysOfWeek", "invalid weekday %d", d)
			break
		}
	}

	from, err := time.ParseInLocation(dateLayout, b.ActiveFrom, time.UTC)
	if err != nil {
		ve.add("activeFrom", "must be a %q date", dateLayout)
	}
	if b.ActiveUntil != "" {
		until, uerr := time.ParseInLocation(dateLayout, b.ActiveUntil, time.UTC)
		switch {
		case uerr != nil:
			ve.add("activeUntil", "must be a %q date", dateLayout)
		case err == nil && until.Before(from):
			ve.add("activeUntil", "must not be before activeFrom")
		}
	}

	return ve.orNil()
}
