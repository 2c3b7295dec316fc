package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/viterbi/pkg/adapters/memory"
	"github.com/aretw0/viterbi/pkg/domain"
	"github.com/aretw0/viterbi/pkg/ports"
	contract "github.com/aretw0/viterbi/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunModelStoreContract(t, store)
}

func TestMemoryStore_LoaderContract(t *testing.T) {
	store := memory.NewStore(domain.Builtins()...)
	expected := map[string]*domain.Definition{
		domain.CasinoModel:  domain.DishonestCasino(),
		domain.WeatherModel: domain.WeatherSensor(),
	}
	contract.ModelLoaderContractTest(t, store, expected)
}

func TestMemoryStore_SkipsInvalidSeed(t *testing.T) {
	bad := domain.DishonestCasino()
	bad.Name = ""
	store := memory.NewStore(bad, domain.WeatherSensor())

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{domain.WeatherModel}, names)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			def := domain.WeatherSensor()
			assert.NoError(t, store.Save(ctx, def))
			got, err := store.Get(ctx, def.Name)
			assert.NoError(t, err)
			assert.Equal(t, def.States, got.States)
		}()
	}
	wg.Wait()
}
