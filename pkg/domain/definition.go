package domain

import (
	"fmt"
	"slices"

	"github.com/aretw0/viterbi/pkg/hmm"
)

// Definition is a labelled HMM as written by users and persisted by stores.
// Table entries that are left out are zero.
type Definition struct {
	Name        string   `json:"name" yaml:"name" mapstructure:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	States      []string `json:"states" yaml:"states" mapstructure:"states"`
	Symbols     []string `json:"symbols" yaml:"symbols" mapstructure:"symbols"`

	// Initial maps a state to P(state_0 = state).
	Initial map[string]float64 `json:"initial" yaml:"initial" mapstructure:"initial"`
	// Transition maps from-state to to-state to probability.
	Transition map[string]map[string]float64 `json:"transition" yaml:"transition" mapstructure:"transition"`
	// Emission maps state to symbol to probability.
	Emission map[string]map[string]float64 `json:"emission" yaml:"emission" mapstructure:"emission"`
}

// Validate checks the structure of the definition: labels are present and
// distinct and every table key refers to a declared state or symbol.
// Probability values are checked by Compile.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDefinition)
	}
	_, _, err := d.alphabets()
	return err
}

func (d *Definition) alphabets() (states, symbols Alphabet, err error) {
	if states, err = NewAlphabet(d.States...); err != nil {
		return Alphabet{}, Alphabet{}, fmt.Errorf("states: %w", err)
	}
	if symbols, err = NewAlphabet(d.Symbols...); err != nil {
		return Alphabet{}, Alphabet{}, fmt.Errorf("symbols: %w", err)
	}

	for s := range d.Initial {
		if _, ok := states.Index(s); !ok {
			return Alphabet{}, Alphabet{}, fmt.Errorf("%w: initial refers to undeclared state %q", ErrInvalidDefinition, s)
		}
	}
	for from, row := range d.Transition {
		if _, ok := states.Index(from); !ok {
			return Alphabet{}, Alphabet{}, fmt.Errorf("%w: transition refers to undeclared state %q", ErrInvalidDefinition, from)
		}
		for to := range row {
			if _, ok := states.Index(to); !ok {
				return Alphabet{}, Alphabet{}, fmt.Errorf("%w: transition %s refers to undeclared state %q", ErrInvalidDefinition, from, to)
			}
		}
	}
	for s, row := range d.Emission {
		if _, ok := states.Index(s); !ok {
			return Alphabet{}, Alphabet{}, fmt.Errorf("%w: emission refers to undeclared state %q", ErrInvalidDefinition, s)
		}
		for sym := range row {
			if _, ok := symbols.Index(sym); !ok {
				return Alphabet{}, Alphabet{}, fmt.Errorf("%w: emission %s refers to undeclared symbol %q", ErrInvalidDefinition, s, sym)
			}
		}
	}
	return states, symbols, nil
}

// Compile validates the definition and builds its immutable model.
// Probability failures surface as *hmm.ModelValidationError values.
func (d *Definition) Compile() (*Compiled, error) {
	states, symbols, err := d.alphabets()
	if err != nil {
		return nil, fmt.Errorf("model %q: %w", d.Name, err)
	}

	initial := make([]float64, states.Len())
	transition := make([][]float64, states.Len())
	emission := make([][]float64, states.Len())
	for i, s := range d.States {
		initial[i] = d.Initial[s]
		transition[i] = make([]float64, states.Len())
		for j, to := range d.States {
			transition[i][j] = d.Transition[s][to]
		}
		emission[i] = make([]float64, symbols.Len())
		for k, sym := range d.Symbols {
			emission[i][k] = d.Emission[s][sym]
		}
	}

	m, err := hmm.NewModel(initial, transition, emission)
	if err != nil {
		return nil, fmt.Errorf("model %q: %w", d.Name, err)
	}

	return &Compiled{
		Definition: d.Clone(),
		Model:      m,
		States:     states,
		Symbols:    symbols,
	}, nil
}

// Clone returns a deep copy of the definition.
func (d *Definition) Clone() *Definition {
	if d == nil {
		return nil
	}
	out := &Definition{
		Name:        d.Name,
		Description: d.Description,
		States:      slices.Clone(d.States),
		Symbols:     slices.Clone(d.Symbols),
		Initial:     cloneRow(d.Initial),
		Transition:  cloneTable(d.Transition),
		Emission:    cloneTable(d.Emission),
	}
	return out
}

func cloneRow(row map[string]float64) map[string]float64 {
	if row == nil {
		return nil
	}
	out := make(map[string]float64, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func cloneTable(t map[string]map[string]float64) map[string]map[string]float64 {
	if t == nil {
		return nil
	}
	out := make(map[string]map[string]float64, len(t))
	for k, row := range t {
		out[k] = cloneRow(row)
	}
	return out
}

// Compiled is a validated Definition ready for decoding.
// It is immutable and safe for concurrent use.
type Compiled struct {
	Definition *Definition
	Model      *hmm.Model
	States     Alphabet
	Symbols    Alphabet
}

// Result is the labelled outcome of a decode.
type Result struct {
	Model        string   `json:"model"`
	Observations []string `json:"observations"`
	States       []string `json:"states"`
	Indices      []int    `json:"indices"`
	Score        float64  `json:"score"`
}

// Decode maps raw symbols through the symbol alphabet, runs the Viterbi
// decoder and labels the resulting path.
func (c *Compiled) Decode(symbols []string) (Result, error) {
	obs, err := c.Symbols.Encode(symbols)
	if err != nil {
		return Result{}, err
	}
	path, err := hmm.Decode(c.Model, obs)
	if err != nil {
		return Result{}, err
	}
	labels, err := c.States.Decode(path.States)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Model:        c.Definition.Name,
		Observations: slices.Clone(symbols),
		States:       labels,
		Indices:      path.States,
		Score:        path.Score,
	}, nil
}
