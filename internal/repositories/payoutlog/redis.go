package payoutlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hoopsquares/squares/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	entryKeyPrefix       = "squares:payout:"
	gamePayoutsKeyPrefix = "squares:game_payouts:"
	winnerKeyPrefix      = "squares:winner_payouts:"
	globalPayoutsKey     = "squares:payouts:all"
	tierGuardKeyPrefix   = "squares:payout_tier:"
)

// ErrDuplicatePayout is returned when a (game, tier) pair has already been
// paid out
var ErrDuplicatePayout = errors.New("payout already logged for this tier")

// Config holds configuration for the Redis payout log repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed payout log repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// AddEntry appends a payout entry. The per-(game, tier) guard key is claimed
// with SETNX first, so two concurrent attempts for the same tier produce
// exactly one entry and one ErrDuplicatePayout.
func (r *redisRepository) AddEntry(ctx context.Context, input *AddEntryInput) error {
	if input == nil || input.Entry == nil {
		return errors.New("input and entry cannot be nil")
	}

	entry := input.Entry

	if entry.ID == "" {
		return errors.New("payout entry ID cannot be empty")
	}

	if entry.GameID == "" || entry.Label == "" {
		return errors.New("payout entry game ID and label cannot be empty")
	}

	guardKey := fmt.Sprintf("%s%s:%s", tierGuardKeyPrefix, entry.GameID, entry.Label)
	claimed, err := r.client.SetNX(ctx, guardKey, entry.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to claim payout tier: %w", err)
	}
	if !claimed {
		return ErrDuplicatePayout
	}

	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal payout entry: %w", err)
	}

	score := float64(entry.Timestamp.UnixNano())

	pipe := r.client.Pipeline()

	pipe.Set(ctx, entryKeyPrefix+entry.ID, entryJSON, 0)

	pipe.ZAdd(ctx, gamePayoutsKeyPrefix+entry.GameID, redis.Z{
		Score:  score,
		Member: entry.ID,
	})

	pipe.ZAdd(ctx, winnerKeyPrefix+entry.WinnerUserID, redis.Z{
		Score:  score,
		Member: entry.ID,
	})

	pipe.ZAdd(ctx, globalPayoutsKey, redis.Z{
		Score:  score,
		Member: entry.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add payout entry: %w", err)
	}

	return nil
}

// GetEntriesForGame retrieves a game's entries, newest first
func (r *redisRepository) GetEntriesForGame(ctx context.Context, input *GetEntriesForGameInput) (*GetEntriesForGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	entries, err := r.entriesFromIndex(ctx, gamePayoutsKeyPrefix+input.GameID, 0)
	if err != nil {
		return nil, err
	}

	return &GetEntriesForGameOutput{Entries: entries}, nil
}

// GetEntriesForWinner retrieves a player's winning entries, newest first
func (r *redisRepository) GetEntriesForWinner(ctx context.Context, input *GetEntriesForWinnerInput) (*GetEntriesForWinnerOutput, error) {
	if input == nil || input.WinnerUserID == "" {
		return nil, errors.New("input and winner user ID cannot be empty")
	}

	entries, err := r.entriesFromIndex(ctx, winnerKeyPrefix+input.WinnerUserID, 0)
	if err != nil {
		return nil, err
	}

	return &GetEntriesForWinnerOutput{Entries: entries}, nil
}

// GetRecentEntries retrieves the newest entries across all games
func (r *redisRepository) GetRecentEntries(ctx context.Context, input *GetRecentEntriesInput) (*GetRecentEntriesOutput, error) {
	limit := 0
	if input != nil {
		limit = input.Limit
	}

	entries, err := r.entriesFromIndex(ctx, globalPayoutsKey, limit)
	if err != nil {
		return nil, err
	}

	return &GetRecentEntriesOutput{Entries: entries}, nil
}

// HasEntriesForGame reports whether any payout has been logged for a game
func (r *redisRepository) HasEntriesForGame(ctx context.Context, input *HasEntriesForGameInput) (bool, error) {
	if input == nil || input.GameID == "" {
		return false, errors.New("input and game ID cannot be empty")
	}

	count, err := r.client.ZCard(ctx, gamePayoutsKeyPrefix+input.GameID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to count payout entries: %w", err)
	}

	return count > 0, nil
}

// entriesFromIndex loads entries referenced by a sorted-set index in
// newest-first order. limit of 0 means all entries.
func (r *redisRepository) entriesFromIndex(ctx context.Context, indexKey string, limit int) ([]*models.PayoutLogEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	entryIDs, err := r.client.ZRevRange(ctx, indexKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get payout entry IDs: %w", err)
	}

	if len(entryIDs) == 0 {
		return []*models.PayoutLogEntry{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(entryIDs))
	for i, entryID := range entryIDs {
		cmds[i] = pipe.Get(ctx, entryKeyPrefix+entryID)
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get payout entries: %w", err)
	}

	entries := make([]*models.PayoutLogEntry, 0, len(entryIDs))
	for i, cmd := range cmds {
		entryJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get payout entry %s: %w", entryIDs[i], err)
		}

		var entry models.PayoutLogEntry
		if err := json.Unmarshal([]byte(entryJSON), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payout entry %s: %w", entryIDs[i], err)
		}

		entries = append(entries, &entry)
	}

	return entries, nil
}
