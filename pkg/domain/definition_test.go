package domain_test

import (
	"errors"
	"testing"

	"github.com/aretw0/viterbi/pkg/domain"
	"github.com/aretw0/viterbi/pkg/hmm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Builtins(t *testing.T) {
	for _, def := range domain.Builtins() {
		t.Run(def.Name, func(t *testing.T) {
			c, err := def.Compile()
			require.NoError(t, err)
			assert.Equal(t, len(def.States), c.Model.NumStates())
			assert.Equal(t, len(def.Symbols), c.Model.NumSymbols())
		})
	}
}

func TestCompiled_Decode_Casino(t *testing.T) {
	c, err := domain.DishonestCasino().Compile()
	require.NoError(t, err)

	res, err := c.Decode([]string{"6", "6", "6", "6", "1", "2", "3", "6", "6", "6"})
	require.NoError(t, err)

	assert.Equal(t, domain.CasinoModel, res.Model)
	assert.Equal(t, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, res.Indices)
	for _, s := range res.States {
		assert.Equal(t, "LOADED", s)
	}
	assert.InEpsilon(t, 2.461911756736755e-06, res.Score, 1e-9)
}

func TestCompiled_Decode_Weather(t *testing.T) {
	c, err := domain.WeatherSensor().Compile()
	require.NoError(t, err)

	res, err := c.Decode([]string{"HOT", "HOT", "COLD", "COLD", "COLD"})
	require.NoError(t, err)
	assert.Equal(t, []string{"SUNNY", "SUNNY", "BLIZZARD", "BLIZZARD", "BLIZZARD"}, res.States)
	assert.Equal(t, []string{"HOT", "HOT", "COLD", "COLD", "COLD"}, res.Observations)
}

func TestCompiled_Decode_UnknownSymbol(t *testing.T) {
	c, err := domain.DishonestCasino().Compile()
	require.NoError(t, err)

	_, err = c.Decode([]string{"6", "7"})
	var serr *domain.UnknownSymbolError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 1, serr.Position)
	assert.Equal(t, "7", serr.Symbol)
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)
}

func TestCompiled_Decode_Empty(t *testing.T) {
	c, err := domain.WeatherSensor().Compile()
	require.NoError(t, err)

	_, err = c.Decode(nil)
	assert.ErrorIs(t, err, hmm.ErrEmptyObservations)
}

func TestCompile_ProbabilityFailure(t *testing.T) {
	def := domain.DishonestCasino()
	def.Transition["FAIR"]["FAIR"] = 0.85

	c, err := def.Compile()
	assert.Nil(t, c)
	var verr *hmm.ModelValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, hmm.TableTransition, verr.Table)
	assert.Equal(t, 0, verr.Row)
	assert.Contains(t, err.Error(), `model "casino"`)
}

func TestCompile_MissingRowIsZero(t *testing.T) {
	def := domain.WeatherSensor()
	delete(def.Emission, "CLOUDY")

	_, err := def.Compile()
	var verr *hmm.ModelValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, hmm.TableEmission, verr.Table)
	assert.Equal(t, 1, verr.Row)
	assert.InDelta(t, 1.0, verr.Deviation, 1e-12)
}

func TestValidate_Structure(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *domain.Definition)
	}{
		{"missing name", func(d *domain.Definition) { d.Name = "" }},
		{"no states", func(d *domain.Definition) { d.States = nil }},
		{"no symbols", func(d *domain.Definition) { d.Symbols = nil }},
		{"duplicate state", func(d *domain.Definition) { d.States = append(d.States, "SUNNY") }},
		{"duplicate symbol", func(d *domain.Definition) { d.Symbols = []string{"HOT", "HOT"} }},
		{"unknown initial", func(d *domain.Definition) { d.Initial["FOGGY"] = 0 }},
		{"unknown transition source", func(d *domain.Definition) { d.Transition["FOGGY"] = map[string]float64{} }},
		{"unknown transition target", func(d *domain.Definition) { d.Transition["SUNNY"]["FOGGY"] = 0 }},
		{"unknown emission state", func(d *domain.Definition) { d.Emission["FOGGY"] = map[string]float64{} }},
		{"unknown emission symbol", func(d *domain.Definition) { d.Emission["SUNNY"]["WARM"] = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := domain.WeatherSensor()
			tt.mutate(def)
			err := def.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidDefinition), "got %v", err)
		})
	}
}

func TestClone_IsDeep(t *testing.T) {
	def := domain.WeatherSensor()
	cp := def.Clone()

	cp.States[0] = "CHANGED"
	cp.Initial["SUNNY"] = 0
	cp.Transition["SUNNY"]["SUNNY"] = 0
	cp.Emission["SUNNY"]["HOT"] = 0

	assert.Equal(t, "SUNNY", def.States[0])
	assert.Equal(t, 0.7, def.Initial["SUNNY"])
	assert.Equal(t, 0.7, def.Transition["SUNNY"]["SUNNY"])
	assert.Equal(t, 0.9, def.Emission["SUNNY"]["HOT"])
}

func TestCompiled_HoldsSnapshot(t *testing.T) {
	def := domain.WeatherSensor()
	c, err := def.Compile()
	require.NoError(t, err)

	def.Name = "renamed"
	res, err := c.Decode([]string{"HOT"})
	require.NoError(t, err)
	assert.Equal(t, domain.WeatherModel, res.Model)
}
