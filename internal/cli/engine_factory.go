package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/viterbi"
	"github.com/aretw0/viterbi/internal/config"
	"github.com/aretw0/viterbi/pkg/adapters/layered"
	loamadapter "github.com/aretw0/viterbi/pkg/adapters/loam"
	"github.com/aretw0/viterbi/pkg/adapters/memory"
	"github.com/aretw0/viterbi/pkg/adapters/redis"
	"github.com/aretw0/viterbi/pkg/domain"
	"github.com/aretw0/viterbi/pkg/ports"
)

// Sources selects where models are loaded from. The built-in models are
// always layered underneath.
type Sources struct {
	ModelsDir     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	RedisTTL      time.Duration
}

// SourcesFromConfig copies the model source settings out of cfg.
func SourcesFromConfig(cfg config.Config) Sources {
	return Sources{
		ModelsDir:     cfg.ModelsDir,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		RedisPrefix:   cfg.RedisPrefix,
		RedisTTL:      cfg.RedisTTL,
	}
}

// OpenLoader builds the model loader for src:
//
//   - Redis when RedisAddr is set (writable),
//   - a read-only Loam directory when ModelsDir is set,
//   - an in-process memory store otherwise (writable).
//
// The returned close function releases the backend.
func OpenLoader(ctx context.Context, src Sources, logger *slog.Logger) (ports.ModelLoader, func() error, error) {
	noop := func() error { return nil }

	switch {
	case src.RedisAddr != "":
		var opts []redis.Option
		if src.RedisPrefix != "" {
			opts = append(opts, redis.WithPrefix(src.RedisPrefix))
		}
		if src.RedisTTL > 0 {
			opts = append(opts, redis.WithTTL(src.RedisTTL))
		}
		store := redis.New(src.RedisAddr, src.RedisPassword, src.RedisDB, opts...)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("redis %s unreachable: %w", src.RedisAddr, err)
		}
		if src.ModelsDir != "" {
			logger.Warn("Both redis and a models directory are configured, using redis", "dir", src.ModelsDir)
		}
		logger.Info("Using redis model store", "addr", src.RedisAddr)
		return layered.New(store, builtins()), store.Close, nil

	case src.ModelsDir != "":
		loader, err := loamadapter.Open(src.ModelsDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using model directory", "dir", src.ModelsDir)
		return layered.New(loader, builtins()), noop, nil

	default:
		return memory.NewStore(domain.Builtins()...), noop, nil
	}
}

func builtins() ports.ModelLoader {
	return memory.NewStore(domain.Builtins()...)
}

// CreateEngine initializes an engine with standard CLI conventions.
func CreateEngine(loader ports.ModelLoader, logger *slog.Logger, debug bool, opts ...viterbi.Option) *viterbi.Engine {
	engineOpts := []viterbi.Option{viterbi.WithLogger(logger)}
	if debug {
		engineOpts = append(engineOpts, viterbi.WithLifecycleHooks(createDebugHooks(logger)))
	}
	return viterbi.New(loader, append(engineOpts, opts...)...)
}
