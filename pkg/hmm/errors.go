package hmm

import (
	"errors"
	"fmt"
)

// ErrEmptyObservations is returned (wrapped in an InvalidObservationError)
// when Decode is called with no observations.
var ErrEmptyObservations = errors.New("empty observation sequence")

// ErrNoModel is returned when a nil or zero-value Model is used; a Model
// must come from NewModel.
var ErrNoModel = errors.New("model is nil or was not built with NewModel")

// Table names used in ModelValidationError.
const (
	TableInitial    = "initial"
	TableTransition = "transition"
	TableEmission   = "emission"
)

// ModelValidationError reports a probability table that does not describe a
// valid distribution.
type ModelValidationError struct {
	Table  string // TableInitial, TableTransition or TableEmission
	Row    int    // -1 for the initial vector
	Column int    // -1 when the row as a whole is at fault
	// Deviation is how far the offending value (or row sum, or row length)
	// is from the nearest valid one.
	Deviation float64
	Reason    string
}

func (e *ModelValidationError) Error() string {
	loc := e.Table
	if e.Row >= 0 {
		loc = fmt.Sprintf("%s[%d]", loc, e.Row)
	}
	if e.Column >= 0 {
		loc = fmt.Sprintf("%s[%d]", loc, e.Column)
	}
	return fmt.Sprintf("invalid model: %s %s (deviation %g)", loc, e.Reason, e.Deviation)
}

// InvalidObservationError reports an observation sequence that cannot be
// decoded against a Model.
type InvalidObservationError struct {
	Position   int // -1 when the sequence is empty
	Symbol     int // -1 when the sequence is empty
	NumSymbols int
	Err        error
}

func (e *InvalidObservationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid observations: %v", e.Err)
	}
	return fmt.Sprintf("invalid observations: symbol %d at position %d is outside [0, %d)",
		e.Symbol, e.Position, e.NumSymbols)
}

func (e *InvalidObservationError) Unwrap() error {
	return e.Err
}
