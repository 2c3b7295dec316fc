package viterbi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		limit   int
		wantErr bool
	}{
		{"Under Limit", 9, 10, false},
		{"Exact Limit", 10, 10, false},
		{"Over Limit", 11, 10, true},
		{"Default Limit", DefaultMaxInputSize, 0, false},
		{"Over Default Limit", DefaultMaxInputSize + 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeInput(strings.Repeat("6", tt.size), tt.limit)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInputTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeInput_ControlChars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Clean", "HOT COLD", "HOT COLD"},
		{"Keeps Whitespace", "HOT\tCOLD\r\n", "HOT\tCOLD\r\n"},
		{"Strips ANSI Escape", "\x1b[31mHOT\x1b[0m", "[31mHOT[0m"},
		{"Strips NUL And BEL", "HOT\x00\x07", "HOT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeInput_InvalidUTF8(t *testing.T) {
	_, err := SanitizeInput("HOT\xff", 0)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}
