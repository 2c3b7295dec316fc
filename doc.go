/*
Package viterbi decodes observation sequences against discrete Hidden Markov Models.

Given a model (initial, transition and emission probabilities) and a sequence
of observed symbols, the engine returns the single most likely sequence of
hidden states together with its joint probability, using the Viterbi
dynamic-programming algorithm.

# Concept

The numeric core lives in pkg/hmm and knows nothing but indices. Models are
written with labels (pkg/domain.Definition, or the pkg/dsl builder), kept in a
store (memory, Redis, files, or a Loam document directory) and compiled on
first use. The Engine ties these together and is what the CLI, the HTTP
server and the MCP server drive.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/viterbi"
	)

	func main() {
		// A nil loader serves the built-in "casino" and "weather" models.
		eng := viterbi.New(nil)

		res, err := eng.Decode(context.Background(), "weather",
			[]string{"HOT", "HOT", "COLD", "COLD", "COLD"})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(res.States) // [SUNNY SUNNY BLIZZARD BLIZZARD BLIZZARD]
	}

Probabilities are multiplied directly, so scores of long sequences underflow
to zero; the path is still well defined, with ties resolved towards the
lowest state index.
*/
package viterbi
