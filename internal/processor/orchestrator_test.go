package processor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderhub/normalizer/internal/domain"
	"github.com/tenderhub/normalizer/internal/processor"
	"github.com/tenderhub/normalizer/internal/telemetry"
	"github.com/tenderhub/normalizer/internal/testhelpers"
)

func newOrchestrator(store *testhelpers.MockTenderStore) *processor.Orchestrator {
	log := testhelpers.NewRecordingLogger()
	batch := processor.NewBatchProcessor(newTestRegistry(), 2, log)
	return processor.NewOrchestrator(store, batch, telemetry.NewMetrics(), log)
}

func TestOrchestrator_NormalizeTable_MixedOutcomes(t *testing.T) {
	store := testhelpers.NewMockTenderStore()
	store.SeedRows(domain.TableADB, []domain.SourceRow{
		{"id": "a-1", "notice_title": "Supply of water pumps"},
		{"id": "a-2"}, // no notice title, normalizes to an error stub
		{"id": "a-3", "notice_title": "Road rehabilitation"},
	})
	store.FailUpsertFor = map[string]bool{"a-3": true}

	orch := newOrchestrator(store)
	ts, err := orch.NormalizeTable(context.Background(), domain.TableADB, processor.Options{
		SkipNormalized: true,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, ts.Fetched)
	assert.Equal(t, 1, ts.Normalized)
	assert.Equal(t, 1, ts.Stubbed)
	assert.Equal(t, 1, ts.Failed)
	assert.False(t, ts.Skipped)

	// The good row and the stub both landed; the failed upsert did not.
	assert.Equal(t, 2, store.Stored())
	good, err := store.Get(domain.TableADB, "a-1")
	require.NoError(t, err)
	assert.False(t, good.IsErrorStub())
	stub, err := store.Get(domain.TableADB, "a-2")
	require.NoError(t, err)
	assert.True(t, stub.IsErrorStub())
}

func TestOrchestrator_NormalizeTable_MissingTitleBecomesStub(t *testing.T) {
	store := testhelpers.NewMockTenderStore()
	store.SeedRows(domain.TableWB, []domain.SourceRow{
		{"id": "w-1", "title": "Bridge construction"},
		{"id": "w-2", "description": "Notice text without a title"},
		{"id": "w-3", "title": "Consulting services"},
	})

	orch := newOrchestrator(store)
	ts, err := orch.NormalizeTable(context.Background(), domain.TableWB, processor.Options{
		SkipNormalized: true,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, ts.Fetched)
	assert.Equal(t, 2, ts.Normalized)
	assert.Equal(t, 1, ts.Stubbed)
	assert.Zero(t, ts.Failed)

	// All three rows persist; the title-less one degrades to an error stub.
	assert.Equal(t, 3, store.Stored())
	stub, err := store.Get(domain.TableWB, "w-2")
	require.NoError(t, err)
	assert.True(t, stub.IsErrorStub())
	assert.Equal(t, "Validation Error", stub.Title)
}

func TestOrchestrator_NormalizeAll(t *testing.T) {
	store := testhelpers.NewMockTenderStore()
	store.SeedRows(domain.TableWB, []domain.SourceRow{
		{"id": "w-1", "title": "Bridge construction"},
		{"id": "w-2", "title": "Consulting services"},
	})
	store.SeedRows(domain.TableADB, []domain.SourceRow{
		{"id": "a-1", "notice_title": "Supply of generators"},
	})

	orch := newOrchestrator(store)
	run := orch.NormalizeAll(context.Background(),
		[]string{domain.TableWB, domain.TableADB},
		processor.Options{SkipNormalized: true})

	assert.NotEmpty(t, run.RunID)
	assert.False(t, run.Cancelled)
	assert.Equal(t, 3, run.TotalFetched)
	assert.Equal(t, 3, run.TotalNormalized)
	assert.Zero(t, run.TotalStubbed)
	assert.Zero(t, run.TotalFailed)
	assert.Len(t, run.Tables, 2)
	assert.Equal(t, 2, run.Tables[domain.TableWB].Normalized)

	// English-only rows still pass through the translation pipeline.
	assert.Positive(t, run.Translation.ByMethod["already_english"])
}

func TestOrchestrator_LimitCapsFetch(t *testing.T) {
	store := testhelpers.NewMockTenderStore()
	store.SeedRows(domain.TableWB, wbRows(5))

	orch := newOrchestrator(store)
	ts, err := orch.NormalizeTable(context.Background(), domain.TableWB, processor.Options{
		SkipNormalized: true,
		Limit:          2,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, ts.Fetched)
	assert.Equal(t, 2, store.Stored())
}

func TestOrchestrator_SinglePassWithoutAntiJoin(t *testing.T) {
	store := testhelpers.NewMockTenderStore()
	store.SeedRows(domain.TableWB, wbRows(5))

	orch := newOrchestrator(store)
	ts, err := orch.NormalizeTable(context.Background(), domain.TableWB, processor.Options{
		SkipNormalized: false,
		BatchSize:      2,
	})

	// Without the anti-join a second fetch would return the same head rows,
	// so the table stops after one batch.
	require.NoError(t, err)
	assert.Equal(t, 2, ts.Fetched)
}

func TestOrchestrator_ProgressStopSkipsOnlyThatTable(t *testing.T) {
	store := testhelpers.NewMockTenderStore()
	store.SeedRows(domain.TableWB, wbRows(6))
	store.SeedRows(domain.TableADB, []domain.SourceRow{
		{"id": "a-1", "notice_title": "Supply of generators"},
	})

	orch := newOrchestrator(store)
	run := orch.NormalizeAll(context.Background(),
		[]string{domain.TableWB, domain.TableADB},
		processor.Options{
			SkipNormalized: true,
			BatchSize:      2,
			Progress: func(processed, total int, table string) bool {
				return table != domain.TableWB
			},
		})

	// The stop applies to wb alone; adb still runs and the run completes.
	assert.False(t, run.Cancelled)
	assert.True(t, run.Tables[domain.TableWB].Skipped)
	assert.Equal(t, 2, run.Tables[domain.TableWB].Normalized)
	assert.False(t, run.Tables[domain.TableADB].Skipped)
	assert.Equal(t, 1, run.Tables[domain.TableADB].Normalized)
	assert.Equal(t, 3, run.TotalNormalized)
}

func TestOrchestrator_TableFailureRecordedAndRunFinishes(t *testing.T) {
	store := testhelpers.NewMockTenderStore()
	store.CountErr = assert.AnError

	orch := newOrchestrator(store)
	run := orch.NormalizeAll(context.Background(), []string{domain.TableWB}, processor.Options{})

	assert.False(t, run.Cancelled)
	require.Len(t, run.Errors, 1)
	assert.Contains(t, run.Errors[0], domain.TableWB)
	assert.NotEmpty(t, run.Tables[domain.TableWB].Error)
}

func TestOrchestrator_CancelledContextBeforeStart(t *testing.T) {
	store := testhelpers.NewMockTenderStore()
	store.SeedRows(domain.TableWB, wbRows(2))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	orch := newOrchestrator(store)
	run := orch.NormalizeAll(ctx, []string{domain.TableWB}, processor.Options{SkipNormalized: true})

	assert.True(t, run.Cancelled)
	assert.Zero(t, run.TotalFetched)
	assert.Zero(t, store.Stored())
}
