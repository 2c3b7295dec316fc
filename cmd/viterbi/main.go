// Command viterbi decodes observation sequences with Hidden Markov Models
// from the terminal, over HTTP or as an MCP server.
package main

func main() {
	Execute()
}
