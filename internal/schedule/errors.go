package schedule

import (
	"errors"
	"fmt"
)

// ErrEmptyPhrase is returned when there is nothing to recognise.
var ErrEmptyPhrase = errors.New("schedule phrase is empty")

// UnsupportedPhrase is the guidance given when no pattern matches.
const UnsupportedPhrase = "Unsupported phrase. Try 'Every Monday at 9 AM', 'Every 15 minutes', 'Every 2 hours', or 'Every day at 3 PM'"

// InvalidExpressionGuidance is shown instead of the parser's reason when a
// built expression fails validation.
const InvalidExpressionGuidance = "Generated cron expression is invalid. Ensure your input matches supported formats like 'Every Monday at 9 AM' or 'Every 15 minutes'. See FAQs for examples."

// RecognitionError means a phrase could not be turned into a Descriptor.
type RecognitionError struct {
	Phrase string
	Cause  error
}

func (e *RecognitionError) Error() string {
	cause := "Unknown error"
	if e.Cause != nil {
		cause = e.Cause.Error()
	}
	return "Failed to parse input: " + cause
}

func (e *RecognitionError) Unwrap() error { return e.Cause }

func recognitionErr(phrase string, cause error) error {
	return &RecognitionError{Phrase: phrase, Cause: cause}
}

// ValidationError means a built expression was rejected for the timezone.
type ValidationError struct {
	Expression string
	Timezone   string
}

func (e *ValidationError) Error() string {
	return InvalidExpressionGuidance
}

// Detail is the expression and zone that were rejected, for logs.
func (e *ValidationError) Detail() string {
	return fmt.Sprintf("expression %q rejected for timezone %q", e.Expression, e.Timezone)
}

// TimezoneError means a zone name is not in the IANA database.
type TimezoneError struct {
	Name  string
	Cause error
}

func (e *TimezoneError) Error() string {
	return fmt.Sprintf("Unknown timezone %q. Use an IANA name such as 'America/New_York', 'Europe/London' or 'UTC'.", e.Name)
}

func (e *TimezoneError) Unwrap() error { return e.Cause }
