package dsl

import (
	"fmt"

	"github.com/aretw0/viterbi/pkg/domain"
)

// Builder manages the model construction.
type Builder struct {
	def    domain.Definition
	states map[string]*StateBuilder
	order  []*StateBuilder
}

// New creates a new model builder.
func New(name string) *Builder {
	return &Builder{
		def:    domain.Definition{Name: name},
		states: make(map[string]*StateBuilder),
	}
}

// Describe sets the human-readable description.
func (b *Builder) Describe(text string) *Builder {
	b.def.Description = text
	return b
}

// Symbols appends observation symbols to the alphabet.
func (b *Builder) Symbols(symbols ...string) *Builder {
	b.def.Symbols = append(b.def.Symbols, symbols...)
	return b
}

// State declares a hidden state.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(label string) *StateBuilder {
	if sb, ok := b.states[label]; ok {
		return sb
	}
	sb := &StateBuilder{
		label:   label,
		next:    make(map[string]float64),
		emits:   make(map[string]float64),
		builder: b,
	}
	b.states[label] = sb
	b.order = append(b.order, sb)
	return sb
}

// Build assembles the definition and compiles it once to make sure it is
// a valid model.
func (b *Builder) Build() (*domain.Definition, error) {
	def := b.def.Clone()
	def.Initial = make(map[string]float64)
	def.Transition = make(map[string]map[string]float64)
	def.Emission = make(map[string]map[string]float64)

	for _, sb := range b.order {
		def.States = append(def.States, sb.label)
		if sb.start != 0 {
			def.Initial[sb.label] = sb.start
		}
		def.Transition[sb.label] = cloneRow(sb.next)

		emits := cloneRow(sb.emits)
		if sb.uniform {
			for _, sym := range def.Symbols {
				emits[sym] = 1 / float64(len(def.Symbols))
			}
		}
		def.Emission[sb.label] = emits
	}

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build model: %w", err)
	}
	if _, err := def.Compile(); err != nil {
		return nil, fmt.Errorf("failed to build model: %w", err)
	}
	return def, nil
}

func cloneRow(row map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
