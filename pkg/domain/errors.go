package domain

import (
	"errors"
	"fmt"
)

// ErrModelNotFound is returned when a store has no definition under the requested name.
var ErrModelNotFound = errors.New("model not found")

// ErrUnknownSymbol is returned when an alphabet cannot map a label or index.
var ErrUnknownSymbol = errors.New("unknown symbol")

// ErrInvalidDefinition is returned when a Definition is structurally malformed,
// before any probability is looked at.
var ErrInvalidDefinition = errors.New("invalid model definition")

// UnknownSymbolError reports the first raw observation an alphabet could not map.
type UnknownSymbolError struct {
	Position int
	Symbol   string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("%v %q at position %d", ErrUnknownSymbol, e.Symbol, e.Position)
}

func (e *UnknownSymbolError) Unwrap() error {
	return ErrUnknownSymbol
}

// ErrReadOnly is returned when writing through a loader that cannot persist models.
var ErrReadOnly = errors.New("model store is read-only")
