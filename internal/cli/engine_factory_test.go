package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/viterbi/internal/logging"
	"github.com/aretw0/viterbi/internal/testutils"
	"github.com/aretw0/viterbi/pkg/domain"
	"github.com/aretw0/viterbi/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coinYAML = `name: coin
states: [FAIR, BIASED]
symbols: [H, T]
initial: {FAIR: 1}
transition:
  FAIR: {FAIR: 0.9, BIASED: 0.1}
  BIASED: {FAIR: 0.1, BIASED: 0.9}
emission:
  FAIR: {H: 0.5, T: 0.5}
  BIASED: {H: 0.9, T: 0.1}
`

func TestOpenLoader(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNop()

	t.Run("Default to memory with builtins", func(t *testing.T) {
		loader, closeFn, err := OpenLoader(ctx, Sources{}, logger)
		require.NoError(t, err)
		defer closeFn()

		names, err := loader.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{domain.CasinoModel, domain.WeatherModel}, names)

		_, ok := loader.(ports.ModelStore)
		assert.True(t, ok, "memory store should be writable")
	})

	t.Run("Models directory is read-only and keeps builtins", func(t *testing.T) {
		dir := t.TempDir()
		testutils.WriteFiles(t, dir, map[string]string{"coin.yaml": coinYAML})

		loader, closeFn, err := OpenLoader(ctx, Sources{ModelsDir: dir}, logger)
		require.NoError(t, err)
		defer closeFn()

		names, err := loader.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{domain.CasinoModel, "coin", domain.WeatherModel}, names)

		_, ok := loader.(ports.ModelStore)
		assert.False(t, ok)
		_, ok = loader.(ports.Watchable)
		assert.True(t, ok)
	})

	t.Run("Redis", func(t *testing.T) {
		mr := miniredis.RunT(t)

		loader, closeFn, err := OpenLoader(ctx, Sources{
			RedisAddr:   mr.Addr(),
			RedisPrefix: "test:",
			RedisTTL:    time.Hour,
		}, logger)
		require.NoError(t, err)
		defer closeFn()

		store, ok := loader.(ports.ModelStore)
		require.True(t, ok)

		coin := domain.WeatherSensor()
		coin.Name = "copy"
		require.NoError(t, store.Save(ctx, coin))
		assert.True(t, mr.Exists("test:model:copy"))

		names, err := loader.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{domain.CasinoModel, "copy", domain.WeatherModel}, names)
	})

	t.Run("Redis unreachable", func(t *testing.T) {
		_, _, err := OpenLoader(ctx, Sources{RedisAddr: "127.0.0.1:1"}, logger)
		assert.ErrorContains(t, err, "unreachable")
	})
}

func TestCreateEngine(t *testing.T) {
	loader, _, err := OpenLoader(context.Background(), Sources{}, logging.NewNop())
	require.NoError(t, err)

	engine := CreateEngine(loader, logging.NewNop(), true)
	res, err := engine.Decode(context.Background(), domain.WeatherModel, []string{"HOT", "COLD"})
	require.NoError(t, err)
	assert.Equal(t, []string{"SUNNY", "CLOUDY"}, res.States)
	assert.True(t, engine.Writable())
}
