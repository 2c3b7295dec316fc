package http

import (
	"errors"
	"math"

	"github.com/aretw0/viterbi/pkg/hmm"
	"github.com/hashicorp/go-multierror"
)

// DecodeRequest is the body of POST /models/{name}/decode.
type DecodeRequest struct {
	Observations []string `json:"observations"`
}

// ModelList is the body of GET /models.
type ModelList struct {
	Models []string `json:"models"`
}

// Violation is the JSON form of a hmm.ModelValidationError.
type Violation struct {
	Table  string `json:"table"`
	Row    int    `json:"row"`
	Column int    `json:"column"`

	// Deviation is omitted when the offending value is NaN.
	Deviation *float64 `json:"deviation,omitempty"`
	Reason    string   `json:"reason"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error      string      `json:"error"`
	Violations []Violation `json:"violations,omitempty"`
}

func newErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}

	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			var verr *hmm.ModelValidationError
			if errors.As(e, &verr) {
				resp.Violations = append(resp.Violations, toViolation(verr))
			}
		}
		return resp
	}

	var verr *hmm.ModelValidationError
	if errors.As(err, &verr) {
		resp.Violations = append(resp.Violations, toViolation(verr))
	}
	return resp
}

func toViolation(e *hmm.ModelValidationError) Violation {
	v := Violation{
		Table:  e.Table,
		Row:    e.Row,
		Column: e.Column,
		Reason: e.Reason,
	}
	if !math.IsNaN(e.Deviation) {
		d := e.Deviation
		v.Deviation = &d
	}
	return v
}
