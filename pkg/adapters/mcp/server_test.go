package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/viterbi"
	"github.com/aretw0/viterbi/pkg/adapters/memory"
	"github.com/aretw0/viterbi/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	engine := viterbi.New(memory.NewStore(domain.Builtins()...))
	return NewServer(engine, nil)
}

func TestListModels(t *testing.T) {
	s := newTestServer()

	res, err := s.handleListModels(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.CasinoModel, domain.WeatherModel}, res.Models)
}

func TestDescribeModel(t *testing.T) {
	s := newTestServer()

	t.Run("Found", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"model": domain.WeatherModel}

		res, err := s.handleDescribeModel(context.Background(), req)
		require.NoError(t, err)
		require.False(t, res.IsError)
		require.Len(t, res.Content, 1)

		text, ok := res.Content[0].(mcp.TextContent)
		require.True(t, ok)
		var def domain.Definition
		require.NoError(t, json.Unmarshal([]byte(text.Text), &def))
		assert.Equal(t, []string{"SUNNY", "CLOUDY", "BLIZZARD"}, def.States)
	})

	t.Run("Missing", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"model": "missing"}

		res, err := s.handleDescribeModel(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})
}

func TestDecode(t *testing.T) {
	s := newTestServer()
	want := []string{"SUNNY", "SUNNY", "BLIZZARD", "BLIZZARD", "BLIZZARD"}

	tests := []struct {
		name string
		obs  any
	}{
		{"JSON Array String", `["HOT","HOT","COLD","COLD","COLD"]`},
		{"Comma List", "HOT, HOT, COLD, COLD, COLD"},
		{"Native Array", []any{"HOT", "HOT", "COLD", "COLD", "COLD"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]interface{}{"model": domain.WeatherModel, "observations": tt.obs}
			res, err := s.handleDecode(context.Background(), mcp.CallToolRequest{}, args)
			require.NoError(t, err)
			assert.Equal(t, domain.WeatherModel, res.Model)
			assert.Equal(t, want, res.States)
			assert.InDelta(t, 0.0085073034375, res.Score, 1e-12)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"Missing Observations", map[string]interface{}{"model": domain.WeatherModel}, "observations are required"},
		{"Unknown Symbol", map[string]interface{}{"model": domain.WeatherModel, "observations": "HOT,WARM"}, "unknown symbol"},
		{"Unknown Model", map[string]interface{}{"model": "missing", "observations": "HOT"}, "model not found"},
		{"Bad JSON", map[string]interface{}{"model": domain.WeatherModel, "observations": "[HOT"}, "observations"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.handleDecode(context.Background(), mcp.CallToolRequest{}, tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseObservations(t *testing.T) {
	got, err := ParseObservations([]string{"1", "6"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "6"}, got)

	got, err = ParseObservations([]any{1, 6})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "6"}, got)

	got, err = ParseObservations("1 6\t6")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "6", "6"}, got)

	got, err = ParseObservations("HOT\x1b COLD")
	require.NoError(t, err)
	assert.Equal(t, []string{"HOT", "COLD"}, got)

	_, err = ParseObservations("HOT\xff")
	assert.ErrorIs(t, err, viterbi.ErrInvalidUTF8)

	_, err = ParseObservations(42)
	assert.Error(t, err)
}
