package domain

import (
	"context"
	"time"
)

// DecodeEvent describes one decode request as seen by the engine.
type DecodeEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Model     string        `json:"model"`
	Length    int           `json:"length"`
	Duration  time.Duration `json:"duration,omitempty"`
	// Result is set on success.
	Result *Result `json:"result,omitempty"`
	// Err is set on failure.
	Err error `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnDecodeStart func(context.Context, *DecodeEvent)
	OnDecodeEnd   func(context.Context, *DecodeEvent)
}
