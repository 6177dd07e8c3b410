package watch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fetchStub serves a swappable value and counts fetches.
type fetchStub struct {
	mu    sync.Mutex
	value []string
	err   error
	calls int
}

func (f *fetchStub) fetch(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.value, nil
}

func (f *fetchStub) set(value []string, err error) {
	f.mu.Lock()
	f.value, f.err = value, err
	f.mu.Unlock()
}

func collect(t *testing.T, ch <-chan []string) []string {
	t.Helper()
	select {
	case snapshot := <-ch:
		return snapshot
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a snapshot")
		return nil
	}
}

func TestWatcherDeliversInitialSnapshot(t *testing.T) {
	stub := &fetchStub{value: []string{"a"}}
	w := New(stub.fetch, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots := make(chan []string, 8)
	go w.Run(ctx, func(s []string) { snapshots <- s }, nil)

	assert.Equal(t, []string{"a"}, collect(t, snapshots))
}

func TestWatcherSkipsUnchangedSnapshots(t *testing.T) {
	stub := &fetchStub{value: []string{"a"}}
	w := New(stub.fetch, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots := make(chan []string, 8)
	go w.Run(ctx, func(s []string) { snapshots <- s }, nil)

	collect(t, snapshots)

	// Several poll ticks pass without the content changing.
	time.Sleep(50 * time.Millisecond)
	select {
	case s := <-snapshots:
		t.Fatalf("unchanged content was re-delivered: %v", s)
	default:
	}
}

func TestWatcherDeliversOnChange(t *testing.T) {
	stub := &fetchStub{value: []string{"a"}}
	w := New(stub.fetch, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots := make(chan []string, 8)
	go w.Run(ctx, func(s []string) { snapshots <- s }, nil)
	collect(t, snapshots)

	// With an hour-long interval only a nudge can trigger the next poll.
	stub.set([]string{"a", "b"}, nil)
	w.Refresh()

	assert.Equal(t, []string{"a", "b"}, collect(t, snapshots))
}

func TestWatcherReportsFetchErrors(t *testing.T) {
	boom := errors.New("store offline")
	stub := &fetchStub{err: boom}
	w := New(stub.fetch, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots := make(chan []string, 8)
	failures := make(chan error, 8)
	go w.Run(ctx, func(s []string) { snapshots <- s },
		func(err error) { failures <- err })

	select {
	case err := <-failures:
		assert.ErrorIs(t, err, boom)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the fetch error")
	}

	// Recovery: the next successful poll delivers as usual.
	stub.set([]string{"a"}, nil)
	w.Refresh()
	require.Equal(t, []string{"a"}, collect(t, snapshots))
}

func TestWatcherStopsOnCancel(t *testing.T) {
	stub := &fetchStub{value: []string{"a"}}
	w := New(stub.fetch, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())

	snapshots := make(chan []string, 8)
	go w.Run(ctx, func(s []string) { snapshots <- s }, nil)
	collect(t, snapshots)

	cancel()
	time.Sleep(20 * time.Millisecond)

	stub.set([]string{"a", "b"}, nil)
	w.Refresh()
	time.Sleep(50 * time.Millisecond)

	select {
	case s := <-snapshots:
		t.Fatalf("snapshot delivered after cancellation: %v", s)
	default:
	}
}

func TestRefreshCoalesces(t *testing.T) {
	w := New((&fetchStub{}).fetch, time.Hour, zerolog.Nop())

	// Refresh never blocks, even when no Run loop is draining the channel.
	for i := 0; i < 10; i++ {
		w.Refresh()
	}
}
