package hmm

import (
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"
	"gonum.org/v1/gonum/floats"
)

// Tolerance is the maximum allowed distance between a distribution's sum and 1.
const Tolerance = 1e-6

// Model is an immutable discrete Hidden Markov Model.
// States are indexed 0..NumStates()-1 and observation symbols 0..NumSymbols()-1.
// A Model must be built with NewModel; Decode and Sample reject a zero value.
type Model struct {
	initial    []float64
	transition [][]float64
	emission   [][]float64
}

// NewModel validates the given tables and returns a Model holding private
// copies of them.
//
//   - initial[i] is P(state_0 = i).
//   - transition[i][j] is P(state_{t+1} = j | state_t = i).
//   - emission[i][k] is P(observation = k | state = i).
//
// The number of states is len(initial) and the number of symbols is
// len(emission[0]); every other row must agree. All failures are reported
// together: the returned error is a *multierror.Error whose entries are
// *ModelValidationError values, so errors.As works on it directly.
func NewModel(initial []float64, transition, emission [][]float64) (*Model, error) {
	var result *multierror.Error

	numStates := len(initial)
	if numStates == 0 {
		result = multierror.Append(result, &ModelValidationError{
			Table: TableInitial, Row: -1, Column: -1,
			Deviation: 1, Reason: "declares no states",
		})
		return nil, result
	}
	numSymbols := 0
	if len(emission) > 0 {
		numSymbols = len(emission[0])
	}
	if numSymbols == 0 {
		result = multierror.Append(result, &ModelValidationError{
			Table: TableEmission, Row: -1, Column: -1,
			Deviation: 1, Reason: "declares no observation symbols",
		})
		return nil, result
	}

	result = multierror.Append(result, checkDistribution(TableInitial, -1, initial)...)
	result = multierror.Append(result, checkMatrix(TableTransition, transition, numStates, numStates)...)
	result = multierror.Append(result, checkMatrix(TableEmission, emission, numStates, numSymbols)...)
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return &Model{
		initial:    cloneRow(initial),
		transition: cloneMatrix(transition),
		emission:   cloneMatrix(emission),
	}, nil
}

// MustNewModel is like NewModel but panics on invalid input.
// It is meant for package-level fixtures and tests.
func MustNewModel(initial []float64, transition, emission [][]float64) *Model {
	m, err := NewModel(initial, transition, emission)
	if err != nil {
		panic(err)
	}
	return m
}

// NumStates returns the number of hidden states.
func (m *Model) NumStates() int {
	return len(m.initial)
}

// NumSymbols returns the size of the observation alphabet.
func (m *Model) NumSymbols() int {
	if len(m.emission) == 0 {
		return 0
	}
	return len(m.emission[0])
}

func (m *Model) ready() bool {
	return m != nil && len(m.initial) > 0 && len(m.emission) > 0
}

// Initial returns a copy of the initial-state distribution.
func (m *Model) Initial() []float64 {
	return cloneRow(m.initial)
}

// Transition returns P(state_{t+1} = to | state_t = from).
func (m *Model) Transition(from, to int) float64 {
	return m.transition[from][to]
}

// TransitionRow returns a copy of the outgoing distribution of a state.
func (m *Model) TransitionRow(from int) []float64 {
	return cloneRow(m.transition[from])
}

// Emission returns P(observation = symbol | state).
func (m *Model) Emission(state, symbol int) float64 {
	return m.emission[state][symbol]
}

// EmissionRow returns a copy of the emission distribution of a state.
func (m *Model) EmissionRow(state int) []float64 {
	return cloneRow(m.emission[state])
}

func checkMatrix(table string, rows [][]float64, numRows, numCols int) []error {
	var errs []error
	if len(rows) != numRows {
		errs = append(errs, &ModelValidationError{
			Table: table, Row: -1, Column: -1,
			Deviation: math.Abs(float64(len(rows) - numRows)),
			Reason:    fmt.Sprintf("has %d rows, want %d", len(rows), numRows),
		})
	}
	for i, row := range rows {
		if len(row) != numCols {
			errs = append(errs, &ModelValidationError{
				Table: table, Row: i, Column: -1,
				Deviation: math.Abs(float64(len(row) - numCols)),
				Reason:    fmt.Sprintf("has %d entries, want %d", len(row), numCols),
			})
			continue
		}
		errs = append(errs, checkDistribution(table, i, row)...)
	}
	return errs
}

// checkDistribution reports out-of-range entries and, when every entry is in
// range, a sum that is not 1 within Tolerance.
func checkDistribution(table string, row int, p []float64) []error {
	var errs []error
	for j, v := range p {
		var dev float64
		switch {
		case math.IsNaN(v):
			dev = math.NaN()
		case v < 0:
			dev = -v
		case v > 1:
			dev = v - 1
		default:
			continue
		}
		errs = append(errs, &ModelValidationError{
			Table: table, Row: row, Column: j,
			Deviation: dev,
			Reason:    fmt.Sprintf("probability %g is outside [0, 1]", v),
		})
	}
	if len(errs) > 0 {
		return errs
	}

	sum := floats.Sum(p)
	if dev := math.Abs(sum - 1); dev > Tolerance {
		errs = append(errs, &ModelValidationError{
			Table: table, Row: row, Column: -1,
			Deviation: dev,
			Reason:    fmt.Sprintf("sums to %g, want 1", sum),
		})
	}
	return errs
}

func cloneRow(row []float64) []float64 {
	out := make([]float64, len(row))
	copy(out, row)
	return out
}

func cloneMatrix(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = cloneRow(row)
	}
	return out
}
