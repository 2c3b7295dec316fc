package hmm_test

import (
	"fmt"

	"github.com/aretw0/viterbi/pkg/hmm"
)

func ExampleDecode() {
	// SUNNY, CLOUDY, BLIZZARD observed through a HOT/COLD heat sensor.
	m, err := hmm.NewModel(
		[]float64{0.7, 0.2, 0.1},
		[][]float64{
			{0.7, 0.2, 0.1},
			{0.3, 0.4, 0.3},
			{0.2, 0.3, 0.5},
		},
		[][]float64{
			{0.9, 0.1},
			{0.4, 0.6},
			{0.05, 0.95},
		},
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	path, err := hmm.Decode(m, []int{0, 0, 1, 1, 1})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(path.States)
	fmt.Printf("%.6f\n", path.Score)
	// Output:
	// [0 0 2 2 2]
	// 0.008507
}

func ExampleNewModel_invalid() {
	_, err := hmm.NewModel(
		[]float64{0.5, 0.5},
		[][]float64{{0.85, 0.05}, {0.05, 0.95}},
		[][]float64{{1}, {1}},
	)
	fmt.Println(err != nil)
	// Output: true
}
