/*
Package dsl provides a Go DSL for writing model definitions in code.

It builds the same domain.Definition that the YAML, JSON and Markdown loaders
produce, using a fluent builder instead of a file. This is handy for tests,
for models generated at runtime, and for getting compile-time help from the IDE.

Example usage:

	package main

	import (
		"github.com/aretw0/viterbi/pkg/dsl"
	)

	func main() {
		b := dsl.New("weather").
			Describe("Station weather from a heat sensor").
			Symbols("HOT", "COLD")

		b.State("SUNNY").Start(0.7).
			To("SUNNY", 0.7).To("CLOUDY", 0.2).To("BLIZZARD", 0.1).
			Emits("HOT", 0.9).Emits("COLD", 0.1)

		// ... CLOUDY and BLIZZARD

		def, err := b.Build()
		// def can be saved to any ports.ModelStore or compiled directly.
	}

States are numbered in the order they are first declared with State; symbols
in the order given to Symbols.
*/
package dsl
