package profile

import (
	"errors"
	"fmt"
)

// Step names one of the four workflow steps for error reporting.
type Step string

const (
	StepParseIdentity Step = "parse_identity"
	StepDisplayName   Step = "display_name"
	StepFetchRelated  Step = "fetch_related"
	StepConvert       Step = "convert"
)

var errNilStep = errors.New("profile: step not supplied")

// StepError reports which workflow step failed and why.
type StepError struct {
	Step Step
	Err  error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("profile: step %s: %v", e.Step, e.Err)
}

// Unwrap returns the underlying step failure.
func (e *StepError) Unwrap() error { return e.Err }
