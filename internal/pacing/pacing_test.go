// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pacing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitTurnFirstIsImmediate(t *testing.T) {
	p := New(time.Second)
	start := time.Now()
	require.NoError(t, p.WaitTurn(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestWaitTurnSpacesSequentialCalls(t *testing.T) {
	interval := 40 * time.Millisecond
	p := New(interval)

	var stamps []time.Time
	for i := 0; i < 4; i++ {
		require.NoError(t, p.WaitTurn(context.Background()))
		stamps = append(stamps, time.Now())
	}
	for i := 1; i < len(stamps); i++ {
		// rate.Limiter reserves at nanosecond precision; allow a little slack.
		assert.GreaterOrEqual(t, stamps[i].Sub(stamps[i-1]), interval-5*time.Millisecond)
	}
}

func TestWaitTurnSpacesConcurrentCalls(t *testing.T) {
	interval := 30 * time.Millisecond
	p := New(interval)

	var mu sync.Mutex
	var stamps []time.Time
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.WaitTurn(context.Background()))
			mu.Lock()
			stamps = append(stamps, time.Now())
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, stamps, 5)
	first, last := stamps[0], stamps[0]
	for _, s := range stamps {
		if s.Before(first) {
			first = s
		}
		if s.After(last) {
			last = s
		}
	}
	assert.GreaterOrEqual(t, last.Sub(first), 4*interval-10*time.Millisecond)
}

func TestWaitTurnCountsFromDone(t *testing.T) {
	interval := 40 * time.Millisecond
	p := New(interval)
	require.NoError(t, p.WaitTurn(context.Background()))

	// A request slower than the interval still leaves a full gap after it.
	time.Sleep(60 * time.Millisecond)
	p.Done()

	start := time.Now()
	require.NoError(t, p.WaitTurn(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), interval-5*time.Millisecond)
}

func TestWaitTurnCancelledWhileWaitingForDone(t *testing.T) {
	p := New(time.Hour)
	require.NoError(t, p.WaitTurn(context.Background()))
	p.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.WaitTurn(ctx), context.DeadlineExceeded)
}

func TestWaitTurnCancelled(t *testing.T) {
	p := New(time.Hour)
	require.NoError(t, p.WaitTurn(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, p.WaitTurn(ctx))
}

func TestZeroIntervalDisablesPacing(t *testing.T) {
	p := New(0)
	start := time.Now()
	for i := 0; i < 10; i++ {
		require.NoError(t, p.WaitTurn(context.Background()))
		p.Done()
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
	assert.Equal(t, time.Duration(0), p.Interval())
}
