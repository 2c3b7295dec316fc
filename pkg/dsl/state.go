package dsl

import "github.com/aretw0/viterbi/pkg/domain"

// StateBuilder provides a fluent API for configuring a hidden state.
type StateBuilder struct {
	label   string
	start   float64
	next    map[string]float64
	emits   map[string]float64
	uniform bool
	builder *Builder
}

// Start sets the probability of beginning in this state.
func (s *StateBuilder) Start(p float64) *StateBuilder {
	s.start = p
	return s
}

// To sets the probability of moving from this state to target.
// The target does not need to be declared yet.
func (s *StateBuilder) To(target string, p float64) *StateBuilder {
	s.next[target] = p
	return s
}

// Stay is shorthand for To(<this state>, p).
func (s *StateBuilder) Stay(p float64) *StateBuilder {
	return s.To(s.label, p)
}

// Emits sets the probability of observing symbol while in this state.
func (s *StateBuilder) Emits(symbol string, p float64) *StateBuilder {
	s.emits[symbol] = p
	return s
}

// EmitsUniform spreads the emission mass evenly over every symbol known at
// Build time. Explicit Emits calls on the same state are overridden.
func (s *StateBuilder) EmitsUniform() *StateBuilder {
	s.uniform = true
	return s
}

// State switches to (or declares) another state on the same builder.
func (s *StateBuilder) State(label string) *StateBuilder {
	return s.builder.State(label)
}

// Build finishes the chain by building the parent model.
func (s *StateBuilder) Build() (*domain.Definition, error) {
	return s.builder.Build()
}
