package baseline

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/perfgate/perfgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore opens a fresh in-memory SQLite store.
func newTestStore(t *testing.T) *StoreImpl {
	t.Helper()
	store, err := NewBaselineStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*StoreImpl)
}

// testRecord builds a baseline record created at the given time.
func testRecord(benchmarkID string, mean float64, createdAt time.Time) schema.BaselineRecord {
	return schema.BaselineRecord{
		BenchmarkID: benchmarkID,
		Unit:        schema.DurationMS,
		Stats:       schema.SummaryStatistics{Mean: mean, StdDev: 2.5, N: 40},
		Interval:    schema.ConfidenceInterval{Lower: mean - 1, Upper: mean + 1, Level: 0.95},
		Resamples:   10_000,

		PlannedMinimumN: 30,
		Context: schema.ReproducibilityContext{
			Seed:           42,
			CommitHash:     "abc1234",
			HardwareTag:    "ci-runner",
			EnvFingerprint: "deadbeefdeadbeef",
			Timestamp:      createdAt,
		},
		CreatedAt: createdAt,
	}
}

// TestStoreRoundTrip checks that a saved record loads back intact.
func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)
	record := testRecord("api-p99", 100, created)
	require.NoError(t, store.Save(ctx, record))

	loaded, err := store.Load(ctx, "api-p99")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, record.BenchmarkID, loaded.BenchmarkID)
	assert.Equal(t, record.Unit, loaded.Unit)
	assert.Equal(t, record.Stats, loaded.Stats)
	assert.Equal(t, record.Interval, loaded.Interval)
	assert.Equal(t, record.Resamples, loaded.Resamples)
	assert.Equal(t, record.PlannedMinimumN, loaded.PlannedMinimumN)
	assert.Equal(t, record.Context, loaded.Context)
	assert.True(t, created.Equal(loaded.CreatedAt))
}

// TestStoreMissingBaseline checks the (nil, nil) contract for absent
// benchmarks.
func TestStoreMissingBaseline(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	loaded, err := store.Load(ctx, "never-promoted")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	loaded, err = store.LoadAt(ctx, "never-promoted", "2026-08")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

// TestStoreLatestPointer checks that promotion appends history and
// moves the pointer instead of mutating records.
func TestStoreLatestPointer(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := testRecord("api-p99", 100, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	second := testRecord("api-p99", 95, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	// Latest follows the newest promotion.
	loaded, err := store.Load(ctx, "api-p99")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 95.0, loaded.Stats.Mean)

	// History keeps both records, newest first.
	history, err := store.List(ctx, "api-p99")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 95.0, history[0].Stats.Mean)
	assert.Equal(t, 100.0, history[1].Stats.Mean)
}

// TestStoreLoadAt checks date-tag lookups against the record history.
func TestStoreLoadAt(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	july := testRecord("api-p99", 100, time.Date(2026, 7, 15, 9, 0, 0, 0, time.UTC))
	augustEarly := testRecord("api-p99", 97, time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC))
	augustLate := testRecord("api-p99", 95, time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC))
	for _, r := range []schema.BaselineRecord{july, augustEarly, augustLate} {
		require.NoError(t, store.Save(ctx, r))
	}

	t.Run("month tag resolves newest match", func(t *testing.T) {
		loaded, err := store.LoadAt(ctx, "api-p99", "2026-08")
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, 95.0, loaded.Stats.Mean)
	})

	t.Run("day tag resolves exact day", func(t *testing.T) {
		loaded, err := store.LoadAt(ctx, "api-p99", "2026-08-03")
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, 97.0, loaded.Stats.Mean)
	})

	t.Run("unmatched tag yields nil", func(t *testing.T) {
		loaded, err := store.LoadAt(ctx, "api-p99", "2025-01")
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})
}

// TestStoreNaNStdDev checks the NULL round trip for single-sample
// baselines.
func TestStoreNaNStdDev(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	record := testRecord("tiny", 50, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	record.Stats.StdDev = math.NaN()
	record.Stats.N = 1
	require.NoError(t, store.Save(ctx, record))

	loaded, err := store.Load(ctx, "tiny")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, math.IsNaN(loaded.Stats.StdDev))
	assert.False(t, loaded.Stats.HasStdDev())
}

// TestStoreClear checks per-benchmark and whole-store clears.
func TestStoreClear(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, testRecord("a", 1, now)))
	require.NoError(t, store.Save(ctx, testRecord("b", 2, now)))

	t.Run("single benchmark", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx, "a"))

		loaded, err := store.Load(ctx, "a")
		require.NoError(t, err)
		assert.Nil(t, loaded)

		loaded, err = store.Load(ctx, "b")
		require.NoError(t, err)
		assert.NotNil(t, loaded)
	})

	t.Run("everything", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx, ""))

		all, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

// TestStoreStatus checks the status counters and time range.
func TestStoreStatus(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	t.Run("empty store", func(t *testing.T) {
		status, err := store.Status(ctx)
		require.NoError(t, err)
		assert.Equal(t, "sqlite", status.Backend)
		assert.True(t, status.Connected)
		assert.Zero(t, status.RecordCount)
	})

	t.Run("populated store", func(t *testing.T) {
		oldest := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
		newest := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, store.Save(ctx, testRecord("a", 1, oldest)))
		require.NoError(t, store.Save(ctx, testRecord("a", 2, newest)))
		require.NoError(t, store.Save(ctx, testRecord("b", 3, newest)))

		status, err := store.Status(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), status.RecordCount)
		assert.Equal(t, int64(2), status.BenchmarkCount)
		assert.True(t, newest.Equal(status.NewestRecord))
		assert.True(t, oldest.Equal(status.OldestRecord))
	})
}

// TestNoneBackend checks that the no-op store accepts every operation.
func TestNoneBackend(t *testing.T) {
	ctx := context.Background()
	store, err := NewBaselineStore(schema.NoneBackend, "")
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, testRecord("a", 1, time.Now())))

	loaded, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	status, err := store.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Connected)

	require.NoError(t, store.Clear(ctx, ""))
	require.NoError(t, store.Close())
}

// TestNewBaselineStoreUnsupported rejects unknown backends.
func TestNewBaselineStoreUnsupported(t *testing.T) {
	_, err := NewBaselineStore(schema.DatabaseBackend("oracle"), "")
	assert.ErrorContains(t, err, "unsupported backend")
}
