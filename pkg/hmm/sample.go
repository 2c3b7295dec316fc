package hmm

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sample runs the model forward for n steps and returns the hidden states it
// visited together with the symbols they emitted. Every draw comes from src,
// so a seeded source reproduces the same run.
func Sample(m *Model, n int, src rand.Source) (states, observations []int, err error) {
	if !m.ready() {
		return nil, nil, ErrNoModel
	}
	if n < 1 {
		return nil, nil, fmt.Errorf("sample length must be positive, got %d", n)
	}

	initial := distuv.NewCategorical(m.initial, src)
	transition := categoricals(m.transition, src)
	emission := categoricals(m.emission, src)

	states = make([]int, n)
	observations = make([]int, n)

	state := int(initial.Rand())
	for t := 0; t < n; t++ {
		if t > 0 {
			state = int(transition[state].Rand())
		}
		states[t] = state
		observations[t] = int(emission[state].Rand())
	}
	return states, observations, nil
}

func categoricals(rows [][]float64, src rand.Source) []distuv.Categorical {
	out := make([]distuv.Categorical, len(rows))
	for i, row := range rows {
		out[i] = distuv.NewCategorical(row, src)
	}
	return out
}
