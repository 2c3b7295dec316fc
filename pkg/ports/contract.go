package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/viterbi/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunModelStoreContract runs a suite of tests to verify that a ModelStore implementation
// adheres to the defined interface contract.
func RunModelStoreContract(t *testing.T, store ModelStore) {
	ctx := context.Background()
	suffix := "-" + time.Now().Format("20060102150405")

	t.Run("Save and Get", func(t *testing.T) {
		def := domain.WeatherSensor()
		def.Name += suffix

		require.NoError(t, store.Save(ctx, def), "Save should not return error")

		loaded, err := store.Get(ctx, def.Name)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, def.Name, loaded.Name)
		assert.Equal(t, def.States, loaded.States)
		assert.Equal(t, def.Symbols, loaded.Symbols)
		assert.Equal(t, def.Transition, loaded.Transition)

		c, err := loaded.Compile()
		require.NoError(t, err, "a stored definition must still compile")
		res, err := c.Decode([]string{"HOT", "HOT", "COLD", "COLD", "COLD"})
		require.NoError(t, err)
		assert.Equal(t, []string{"SUNNY", "SUNNY", "BLIZZARD", "BLIZZARD", "BLIZZARD"}, res.States)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent"+suffix)
		assert.ErrorIs(t, err, domain.ErrModelNotFound)
	})

	t.Run("Save Is Isolated", func(t *testing.T) {
		def := domain.DishonestCasino()
		def.Name += "-isolated" + suffix
		require.NoError(t, store.Save(ctx, def))
		defer func() { _ = store.Delete(ctx, def.Name) }()

		def.Initial["FAIR"] = 0.9
		loaded, err := store.Get(ctx, def.Name)
		require.NoError(t, err)
		assert.Equal(t, 0.5, loaded.Initial["FAIR"], "store must not alias caller data")
	})

	t.Run("Save Rejects Invalid", func(t *testing.T) {
		def := domain.DishonestCasino()
		def.Name = ""
		assert.ErrorIs(t, store.Save(ctx, def), domain.ErrInvalidDefinition)
	})

	t.Run("Delete", func(t *testing.T) {
		def := domain.DishonestCasino()
		def.Name += "-delete" + suffix
		require.NoError(t, store.Save(ctx, def))

		require.NoError(t, store.Delete(ctx, def.Name), "Delete should not return error")

		_, err := store.Get(ctx, def.Name)
		assert.ErrorIs(t, err, domain.ErrModelNotFound, "Get after Delete should return ErrModelNotFound")

		assert.NoError(t, store.Delete(ctx, def.Name), "Delete of a missing model is not an error")
	})

	t.Run("List", func(t *testing.T) {
		a := domain.DishonestCasino()
		a.Name = "a-list" + suffix
		b := domain.WeatherSensor()
		b.Name = "b-list" + suffix
		require.NoError(t, store.Save(ctx, b))
		require.NoError(t, store.Save(ctx, a))
		defer func() {
			_ = store.Delete(ctx, a.Name)
			_ = store.Delete(ctx, b.Name)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, a.Name)
		assert.Contains(t, names, b.Name)
		assert.IsNonDecreasing(t, names, "List must be sorted")
	})
}
