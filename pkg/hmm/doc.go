/*
Package hmm implements discrete Hidden Markov Models and Viterbi decoding.

A Model holds the initial-state distribution, the state-transition matrix and
the per-state emission distribution over a finite observation alphabet. It is
validated once, at construction, and is immutable afterwards, so a single Model
can be shared by any number of concurrent Decode calls.

Decode runs the Viterbi trellis over a sequence of observation indices and
returns the single most probable hidden-state path:

	m, err := hmm.NewModel(
		[]float64{0.5, 0.5},
		[][]float64{{0.95, 0.05}, {0.05, 0.95}},
		[][]float64{
			{1.0 / 6, 1.0 / 6, 1.0 / 6, 1.0 / 6, 1.0 / 6, 1.0 / 6},
			{0.1, 0.1, 0.1, 0.1, 0.1, 0.5},
		},
	)
	if err != nil {
		return err
	}
	path, err := hmm.Decode(m, []int{5, 5, 5, 5, 0, 1, 2, 5, 5, 5})

Ties are always resolved in favour of the lowest state index, both when
choosing a predecessor and when choosing the final state, which makes the
output fully deterministic for a given Model and observation sequence.

The package works in probability space. Very long sequences underflow towards
zero; an all-zero trellis column is not an error and still produces a
(tie-broken) path.

Mapping raw symbols (die faces, sensor readings) to indices is the caller's
job; see package domain for labelled models and alphabets.
*/
package hmm
