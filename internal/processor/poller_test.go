package processor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderhub/normalizer/internal/domain"
	"github.com/tenderhub/normalizer/internal/processor"
	"github.com/tenderhub/normalizer/internal/testhelpers"
)

func TestPoller_RunsImmediatelyAndStops(t *testing.T) {
	store := testhelpers.NewMockTenderStore()
	store.SeedRows(domain.TableWB, wbRows(2))

	orch := newOrchestrator(store)
	poller := processor.NewPoller(orch, []string{domain.TableWB},
		processor.Options{SkipNormalized: true}, time.Hour,
		testhelpers.NewRecordingLogger())

	done := make(chan processor.RunStats, 1)
	go func() {
		run, err := poller.Run(context.Background())
		assert.NoError(t, err)
		done <- run
	}()

	// The first cycle runs before any tick; give it a moment, then stop.
	require.Eventually(t, func() bool { return store.Stored() == 2 },
		2*time.Second, 10*time.Millisecond)
	poller.Stop()

	select {
	case run := <-done:
		assert.Equal(t, 2, run.TotalNormalized)
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop")
	}
}

func TestPoller_PicksUpNewRowsOnTick(t *testing.T) {
	store := testhelpers.NewMockTenderStore()
	store.SeedRows(domain.TableWB, wbRows(1))

	orch := newOrchestrator(store)
	poller := processor.NewPoller(orch, []string{domain.TableWB},
		processor.Options{SkipNormalized: true}, 20*time.Millisecond,
		testhelpers.NewRecordingLogger())

	go func() { _, _ = poller.Run(context.Background()) }()
	defer poller.Stop()

	require.Eventually(t, func() bool { return store.Stored() == 1 },
		2*time.Second, 5*time.Millisecond)

	store.SeedRows(domain.TableWB, []domain.SourceRow{
		{"id": "late-1", "title": "Arriving after the first cycle"},
	})
	require.Eventually(t, func() bool { return store.Stored() == 2 },
		2*time.Second, 5*time.Millisecond)
}

func TestPoller_ContextCancellation(t *testing.T) {
	store := testhelpers.NewMockTenderStore()
	orch := newOrchestrator(store)
	poller := processor.NewPoller(orch, []string{domain.TableWB},
		processor.Options{}, time.Hour, testhelpers.NewRecordingLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := poller.Run(ctx)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not honor cancellation")
	}
}

func TestRateLimiter(t *testing.T) {
	t.Run("nil limiter never blocks", func(t *testing.T) {
		var limiter *processor.RateLimiter
		assert.NoError(t, limiter.Wait(context.Background()))
		assert.True(t, limiter.Allow())
	})

	t.Run("burst then throttle", func(t *testing.T) {
		limiter := processor.NewRateLimiter(1, 1, testhelpers.NewRecordingLogger())
		assert.True(t, limiter.Allow())
		assert.False(t, limiter.Allow())
	})

	t.Run("wait honors cancellation", func(t *testing.T) {
		limiter := processor.NewRateLimiter(1, 1, testhelpers.NewRecordingLogger())
		require.NoError(t, limiter.Wait(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.Error(t, limiter.Wait(ctx))
	})
}
