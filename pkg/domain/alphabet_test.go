package domain

import (
	"errors"
	"slices"
	"testing"
)

func TestAlphabet_RoundTrip(t *testing.T) {
	a, err := NewAlphabet("HOT", "COLD")
	if err != nil {
		t.Fatalf("NewAlphabet() error = %v", err)
	}

	idx, err := a.Encode([]string{"COLD", "HOT", "COLD"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if want := []int{1, 0, 1}; !slices.Equal(idx, want) {
		t.Errorf("Encode() = %v, want %v", idx, want)
	}

	labels, err := a.Decode(idx)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if labels[0] != "COLD" || labels[1] != "HOT" {
		t.Errorf("Decode() = %v", labels)
	}
}

func TestAlphabet_Lookup(t *testing.T) {
	a, _ := NewAlphabet("1", "2", "3", "4", "5", "6")

	if i, ok := a.Index("6"); !ok || i != 5 {
		t.Errorf("Index(6) = %d, %v; want 5, true", i, ok)
	}
	if _, ok := a.Index("7"); ok {
		t.Error("Index(7) should not be found")
	}
	if l, ok := a.Label(0); !ok || l != "1" {
		t.Errorf("Label(0) = %q, %v", l, ok)
	}
	if _, ok := a.Label(6); ok {
		t.Error("Label(6) should be out of range")
	}
	if a.Len() != 6 {
		t.Errorf("Len() = %d, want 6", a.Len())
	}

	labels := a.Labels()
	labels[0] = "x"
	if l, _ := a.Label(0); l != "1" {
		t.Error("Labels() must return a copy")
	}
}

func TestAlphabet_DecodeOutOfRange(t *testing.T) {
	a, _ := NewAlphabet("A", "B")
	if _, err := a.Decode([]int{0, 2}); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("Decode() error = %v, want ErrUnknownSymbol", err)
	}
}

func TestNewAlphabet_Invalid(t *testing.T) {
	for _, labels := range [][]string{nil, {"A", ""}, {"A", "B", "A"}} {
		if _, err := NewAlphabet(labels...); !errors.Is(err, ErrInvalidDefinition) {
			t.Errorf("NewAlphabet(%q) error = %v, want ErrInvalidDefinition", labels, err)
		}
	}
}
