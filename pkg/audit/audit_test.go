package audit

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskvault/taskvault/pkg/fsio"
)

func setupTestLogger(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func setupLog(t *testing.T) *Log {
	return New(filepath.Join(t.TempDir(), "audit.log"), fsio.NewOS())
}

func TestAppend(t *testing.T) {
	ctx := setupTestLogger(t)

	t.Run("appends_one_line_per_entry", func(t *testing.T) {
		log := setupLog(t)

		require.NoError(t, log.Append(ctx, Entry{
			Operation: OpCreate,
			RecordID:  "task-1",
			Actor:     "manager",
			Details:   json.RawMessage(`{"task":{"id":"task-1"}}`),
		}), "appending entry")
		require.NoError(t, log.Append(ctx, Entry{
			Operation: OpUpdate,
			RecordID:  "task-1",
			Actor:     "joao",
			Details:   json.RawMessage(`{"changes":{}}`),
		}), "appending second entry")

		content, err := os.ReadFile(log.Path())
		require.NoError(t, err, "reading log file")
		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		assert.Len(t, lines, 2, "two entries should be two lines")

		var first Entry
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &first), "first line should be valid JSON")
		assert.Equal(t, OpCreate, first.Operation, "operation should round-trip")
		assert.Equal(t, "manager", first.Actor, "actor should round-trip")
	})

	t.Run("defaults_actor_and_timestamp", func(t *testing.T) {
		log := setupLog(t)

		require.NoError(t, log.Append(ctx, Entry{Operation: OpDelete, RecordID: "task-2"}), "appending entry")

		entries, err := log.Query(ctx, Filter{})
		require.NoError(t, err, "querying log")
		require.Len(t, entries, 1, "one entry expected")
		assert.Equal(t, DefaultActor, entries[0].Actor, "actor should default to system")
		assert.False(t, entries[0].Timestamp.IsZero(), "timestamp should be set")
	})
}

func TestQuery(t *testing.T) {
	ctx := setupTestLogger(t)

	seed := func(t *testing.T) *Log {
		log := setupLog(t)
		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		for i, e := range []Entry{
			{Operation: OpCreate, RecordID: "task-1", Actor: "manager"},
			{Operation: OpUpdate, RecordID: "task-1", Actor: "joao"},
			{Operation: OpCreate, RecordID: "task-2", Actor: "manager"},
			{Operation: OpDelete, RecordID: "task-1", Actor: "admin"},
		} {
			e.Timestamp = base.Add(time.Duration(i) * time.Minute)
			require.NoError(t, log.Append(ctx, e), "seeding entry")
		}
		return log
	}

	t.Run("missing_file_is_empty", func(t *testing.T) {
		log := setupLog(t)
		entries, err := log.Query(ctx, Filter{})
		require.NoError(t, err, "querying missing log")
		assert.Empty(t, entries, "no entries expected")
	})

	t.Run("newest_first", func(t *testing.T) {
		log := seed(t)
		entries, err := log.Query(ctx, Filter{})
		require.NoError(t, err, "querying log")
		require.Len(t, entries, 4, "all entries returned")
		for i := 1; i < len(entries); i++ {
			assert.False(t, entries[i].Timestamp.After(entries[i-1].Timestamp),
				"entries should be sorted newest first")
		}
		assert.Equal(t, OpDelete, entries[0].Operation, "latest entry first")
	})

	t.Run("filter_by_record_id", func(t *testing.T) {
		log := seed(t)
		entries, err := log.Query(ctx, Filter{RecordID: "task-1"})
		require.NoError(t, err, "querying log")
		require.Len(t, entries, 3, "three entries reference task-1")
		for _, e := range entries {
			assert.Equal(t, "task-1", e.RecordID, "record id filter should hold")
		}
	})

	t.Run("filter_by_operation", func(t *testing.T) {
		log := seed(t)
		entries, err := log.Query(ctx, Filter{Operation: OpCreate})
		require.NoError(t, err, "querying log")
		assert.Len(t, entries, 2, "two CREATE entries")
	})

	t.Run("combined_filters_and_limit", func(t *testing.T) {
		log := seed(t)
		entries, err := log.Query(ctx, Filter{RecordID: "task-1", Limit: 2})
		require.NoError(t, err, "querying log")
		require.Len(t, entries, 2, "limit should truncate after sorting")
		assert.Equal(t, OpDelete, entries[0].Operation, "newest task-1 entry first")
		assert.Equal(t, OpUpdate, entries[1].Operation, "second newest next")
	})

	t.Run("equal_timestamps_keep_file_order", func(t *testing.T) {
		log := setupLog(t)
		ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, log.Append(ctx, Entry{Timestamp: ts, Operation: OpCreate, RecordID: "a"}), "appending")
		require.NoError(t, log.Append(ctx, Entry{Timestamp: ts, Operation: OpUpdate, RecordID: "a"}), "appending")

		entries, err := log.Query(ctx, Filter{})
		require.NoError(t, err, "querying log")
		require.Len(t, entries, 2, "both entries returned")
		assert.Equal(t, OpCreate, entries[0].Operation, "tie keeps append order")
		assert.Equal(t, OpUpdate, entries[1].Operation, "tie keeps append order")
	})

	t.Run("rereads_storage_every_call", func(t *testing.T) {
		log := seed(t)
		before, err := log.Query(ctx, Filter{})
		require.NoError(t, err, "first query")

		require.NoError(t, log.Append(ctx, Entry{Operation: OpCreate, RecordID: "task-3"}), "appending after query")

		after, err := log.Query(ctx, Filter{})
		require.NoError(t, err, "second query")
		assert.Len(t, after, len(before)+1, "query should see the latest on-disk state")
	})
}

func TestClear(t *testing.T) {
	ctx := setupTestLogger(t)
	log := setupLog(t)

	require.NoError(t, log.Append(ctx, Entry{Operation: OpCreate, RecordID: "task-1"}), "appending entry")
	require.NoError(t, log.Clear(ctx), "clearing log")

	info, err := os.Stat(log.Path())
	require.NoError(t, err, "log file should still exist")
	assert.Zero(t, info.Size(), "log file should be truncated to zero length")

	entries, err := log.Query(ctx, Filter{})
	require.NoError(t, err, "querying cleared log")
	assert.Empty(t, entries, "cleared log has no entries")
}
