package viterbi_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/viterbi"
	"github.com/aretw0/viterbi/pkg/adapters/memory"
	"github.com/aretw0/viterbi/pkg/dsl"
)

// ExampleEngine_Decode decodes with the built-in weather model.
func ExampleEngine_Decode() {
	eng := viterbi.New(nil)

	res, err := eng.Decode(context.Background(), "weather", []string{"HOT", "HOT", "COLD", "COLD", "COLD"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.States)
	fmt.Printf("%.6f\n", res.Score)
	// Output:
	// [SUNNY SUNNY BLIZZARD BLIZZARD BLIZZARD]
	// 0.008507
}

// ExampleNew_memory serves a model built with the dsl package from memory.
func ExampleNew_memory() {
	b := dsl.New("coin").Symbols("H", "T")
	b.State("FAIR").Start(1).To("FAIR", 0.9).To("BIASED", 0.1).Emits("H", 0.5).Emits("T", 0.5)
	b.State("BIASED").To("BIASED", 0.9).To("FAIR", 0.1).Emits("H", 0.9).Emits("T", 0.1)
	def, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	eng := viterbi.New(memory.NewStore(def))
	res, err := eng.Decode(context.Background(), "coin", []string{"T", "H", "H", "H", "H", "H", "H"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.States)
	// Output:
	// [FAIR BIASED BIASED BIASED BIASED BIASED BIASED]
}
