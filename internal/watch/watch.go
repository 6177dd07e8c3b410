// Package watch turns the pull-only store API into push-style live
// subscriptions: a watcher polls a fetch function and hands the complete
// current snapshot to its subscriber whenever the content changes. Every
// delivery is authoritative; consumers replace derived state wholesale
// instead of merging old and new snapshots.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// FetchFunc loads the full current state of a watched collection.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Watcher polls a single collection for one subscriber.
type Watcher[T any] struct {
	fetch    FetchFunc[T]
	interval time.Duration
	nudge    chan struct{}
	logger   zerolog.Logger
}

func New[T any](fetch FetchFunc[T], interval time.Duration, logger zerolog.Logger) *Watcher[T] {
	return &Watcher[T]{
		fetch:    fetch,
		interval: interval,
		nudge:    make(chan struct{}, 1),
		logger:   logger.With().Str("component", "watch").Logger(),
	}
}

// Refresh asks the watcher to re-fetch ahead of the next tick, used after a
// confirmed write so the writer observes its own change promptly. Safe from
// any goroutine; coalesces when a refresh is already pending.
func (w *Watcher[T]) Refresh() {
	select {
	case w.nudge <- struct{}{}:
	default:
	}
}

// Run polls until ctx is cancelled. onSnapshot receives the full snapshot on
// the first successful fetch and after every observed change. onError
// receives fetch failures; the last delivered snapshot stays valid for the
// subscriber. Neither callback fires after cancellation.
func (w *Watcher[T]) Run(ctx context.Context, onSnapshot func(T), onError func(error)) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var last string
	delivered := false

	poll := func() {
		snapshot, err := w.fetch(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			w.logger.Error().Err(err).Msg("snapshot fetch failed")
			if onError != nil {
				onError(err)
			}
			return
		}

		sum, err := fingerprint(snapshot)
		if err != nil {
			w.logger.Error().Err(err).Msg("snapshot fingerprint failed")
			if onError != nil {
				onError(err)
			}
			return
		}
		if delivered && sum == last {
			return
		}
		last = sum
		delivered = true
		onSnapshot(snapshot)
	}

	poll()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.nudge:
			poll()
		case <-ticker.C:
			poll()
		}
	}
}

// fingerprint hashes the canonical JSON of a snapshot so unchanged polls are
// not re-delivered.
func fingerprint(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
