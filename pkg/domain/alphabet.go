package domain

import "fmt"

// Alphabet is an ordered set of labels. The position of a label is its index
// in the underlying model.
type Alphabet struct {
	labels []string
	index  map[string]int
}

// NewAlphabet builds an alphabet from distinct, non-empty labels.
func NewAlphabet(labels ...string) (Alphabet, error) {
	if len(labels) == 0 {
		return Alphabet{}, fmt.Errorf("%w: empty alphabet", ErrInvalidDefinition)
	}
	a := Alphabet{
		labels: make([]string, len(labels)),
		index:  make(map[string]int, len(labels)),
	}
	for i, l := range labels {
		if l == "" {
			return Alphabet{}, fmt.Errorf("%w: empty label at position %d", ErrInvalidDefinition, i)
		}
		if prev, ok := a.index[l]; ok {
			return Alphabet{}, fmt.Errorf("%w: label %q appears at positions %d and %d", ErrInvalidDefinition, l, prev, i)
		}
		a.labels[i] = l
		a.index[l] = i
	}
	return a, nil
}

// Len returns the number of labels.
func (a Alphabet) Len() int {
	return len(a.labels)
}

// Labels returns a copy of the labels in index order.
func (a Alphabet) Labels() []string {
	out := make([]string, len(a.labels))
	copy(out, a.labels)
	return out
}

// Index returns the index of label.
func (a Alphabet) Index(label string) (int, bool) {
	i, ok := a.index[label]
	return i, ok
}

// Label returns the label at index i.
func (a Alphabet) Label(i int) (string, bool) {
	if i < 0 || i >= len(a.labels) {
		return "", false
	}
	return a.labels[i], true
}

// Encode maps raw symbols to indices.
func (a Alphabet) Encode(symbols []string) ([]int, error) {
	out := make([]int, len(symbols))
	for pos, s := range symbols {
		i, ok := a.index[s]
		if !ok {
			return nil, &UnknownSymbolError{Position: pos, Symbol: s}
		}
		out[pos] = i
	}
	return out, nil
}

// Decode maps indices back to labels.
func (a Alphabet) Decode(indices []int) ([]string, error) {
	out := make([]string, len(indices))
	for pos, i := range indices {
		l, ok := a.Label(i)
		if !ok {
			return nil, fmt.Errorf("%w: index %d at position %d", ErrUnknownSymbol, i, pos)
		}
		out[pos] = l
	}
	return out, nil
}
