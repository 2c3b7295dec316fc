package hmm

import "gonum.org/v1/gonum/floats"

// Path is the result of a Viterbi decode.
type Path struct {
	// States holds one state index per observation, in time order.
	States []int
	// Score is the joint probability of the returned path and the
	// observations. It may underflow to zero on long sequences.
	Score float64
}

// Decode returns the most probable hidden-state path for observations.
// Every observation must be a symbol index in [0, m.NumSymbols()).
//
// Predecessors are scanned in ascending state order and replaced only on a
// strictly greater score, so ties go to the lowest-indexed state; the final
// state is chosen the same way. Runs in O(n·S²) time and O(n·S) space.
func Decode(m *Model, observations []int) (Path, error) {
	if !m.ready() {
		return Path{}, ErrNoModel
	}
	if err := m.checkObservations(observations); err != nil {
		return Path{}, err
	}

	n, numStates := len(observations), m.NumStates()
	score := make([][]float64, n)
	backpointer := make([][]int, n)
	for t := range score {
		score[t] = make([]float64, numStates)
		backpointer[t] = make([]int, numStates)
	}

	first := observations[0]
	for s := 0; s < numStates; s++ {
		score[0][s] = m.initial[s] * m.emission[s][first]
	}

	for t := 1; t < n; t++ {
		obs := observations[t]
		prev := score[t-1]
		for s := 0; s < numStates; s++ {
			best, bestPrev := -1.0, 0
			for p := 0; p < numStates; p++ {
				candidate := prev[p] * m.transition[p][s] * m.emission[s][obs]
				if candidate > best {
					best, bestPrev = candidate, p
				}
			}
			score[t][s] = best
			backpointer[t][s] = bestPrev
		}
	}

	// MaxIdx keeps the first index on ties.
	final := floats.MaxIdx(score[n-1])

	states := make([]int, n)
	current := final
	for t := n - 1; t >= 0; t-- {
		states[t] = current
		current = backpointer[t][current]
	}

	return Path{States: states, Score: score[n-1][final]}, nil
}

// Decode is shorthand for Decode(m, observations).
func (m *Model) Decode(observations []int) (Path, error) {
	return Decode(m, observations)
}

func (m *Model) checkObservations(observations []int) error {
	if len(observations) == 0 {
		return &InvalidObservationError{
			Position:   -1,
			Symbol:     -1,
			NumSymbols: m.NumSymbols(),
			Err:        ErrEmptyObservations,
		}
	}
	for i, o := range observations {
		if o < 0 || o >= m.NumSymbols() {
			return &InvalidObservationError{
				Position:   i,
				Symbol:     o,
				NumSymbols: m.NumSymbols(),
			}
		}
	}
	return nil
}
