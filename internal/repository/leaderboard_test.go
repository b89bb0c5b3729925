package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/testing/suite"
)

func testConcurrentIncrements(ctx context.Context, t *testing.T, leaderboard LeaderboardRepository) {
	t.Helper()

	const (
		workers    = 16
		increments = 25
	)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < increments; n++ {
				assert.NoError(t, leaderboard.Increment(ctx, "alice"))
			}
		}()
	}
	wg.Wait()

	snapshot, err := leaderboard.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, workers*increments, snapshot["alice"])
}

func TestMemoryLeaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("Increment creates and grows counters", func(t *testing.T) {
		// Given: an empty leaderboard
		leaderboard := NewMemoryLeaderboard()

		// When: alice wins twice and bob once
		require.NoError(t, leaderboard.Increment(ctx, "alice"))
		require.NoError(t, leaderboard.Increment(ctx, "alice"))
		require.NoError(t, leaderboard.Increment(ctx, "bob"))

		// Then: the snapshot holds both counters
		snapshot, err := leaderboard.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"alice": 2, "bob": 1}, snapshot)
	})

	t.Run("Snapshot is a copy", func(t *testing.T) {
		leaderboard := NewMemoryLeaderboard()
		require.NoError(t, leaderboard.Increment(ctx, "alice"))

		snapshot, err := leaderboard.Snapshot(ctx)
		require.NoError(t, err)
		snapshot["alice"] = 100

		again, err := leaderboard.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, again["alice"])
	})

	t.Run("Concurrent increments are not lost", func(t *testing.T) {
		testConcurrentIncrements(ctx, t, NewMemoryLeaderboard())
	})
}

func TestRedisLeaderboard(t *testing.T) {
	t.Run("Increment and Snapshot", func(t *testing.T) {
		ctx, st := suite.New(t)

		leaderboard := NewRedisLeaderboard(st.Storage, "leaderboard")

		// Given: an empty hash
		snapshot, err := leaderboard.Snapshot(ctx)
		require.NoError(t, err)
		assert.Empty(t, snapshot)

		// When: wins are recorded
		require.NoError(t, leaderboard.Increment(ctx, "alice"))
		require.NoError(t, leaderboard.Increment(ctx, "bob"))
		require.NoError(t, leaderboard.Increment(ctx, "alice"))

		// Then: the hash holds the counters
		snapshot, err = leaderboard.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"alice": 2, "bob": 1}, snapshot)
	})

	t.Run("Concurrent increments are not lost", func(t *testing.T) {
		ctx, st := suite.New(t)

		testConcurrentIncrements(ctx, t, NewRedisLeaderboard(st.Storage, "leaderboard"))
	})

	t.Run("Corrupted counter is reported", func(t *testing.T) {
		ctx, st := suite.New(t)

		require.NoError(t, st.Storage.HSet(ctx, "leaderboard", "mallory", "lots").Err())

		_, err := NewRedisLeaderboard(st.Storage, "leaderboard").Snapshot(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mallory")
	})
}
