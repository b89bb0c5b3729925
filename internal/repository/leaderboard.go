package repository

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
)

type LeaderboardRepository interface {
	Increment(ctx context.Context, name string) error
	Snapshot(ctx context.Context) (map[string]int, error)
}

type memoryLeaderboard struct {
	mu   sync.Mutex
	wins map[string]int
}

func NewMemoryLeaderboard() LeaderboardRepository {
	return &memoryLeaderboard{
		wins: make(map[string]int),
	}
}

func (that *memoryLeaderboard) Increment(_ context.Context, name string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.wins[name]++

	return nil
}

func (that *memoryLeaderboard) Snapshot(_ context.Context) (map[string]int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	snapshot := make(map[string]int, len(that.wins))
	for name, wins := range that.wins {
		snapshot[name] = wins
	}

	return snapshot, nil
}

// dbLeaderboard keeps win counters in a single redis hash, name -> wins.
type dbLeaderboard struct {
	client *redis.Client
	key    string
}

func NewRedisLeaderboard(client *redis.Client, key string) LeaderboardRepository {
	return &dbLeaderboard{
		client: client,
		key:    key,
	}
}

func (that *dbLeaderboard) Increment(ctx context.Context, name string) error {
	if err := that.client.HIncrBy(ctx, that.key, name, 1).Err(); err != nil {
		return fmt.Errorf("failed to increment wins of %q: %w", name, err)
	}

	return nil
}

func (that *dbLeaderboard) Snapshot(ctx context.Context) (map[string]int, error) {
	response, err := that.client.HGetAll(ctx, that.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	snapshot := make(map[string]int, len(response))
	for name, value := range response {
		wins, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("failed to parse wins of %q: %w", name, err)
		}
		snapshot[name] = wins
	}

	return snapshot, nil
}
