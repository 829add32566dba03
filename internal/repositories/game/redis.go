package game

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
	gameKeyPrefix = "squares:game:"
	openGamesKey  = "squares:open_games"

	// How often to retry an optimistic transaction that lost the race
	maxUpdateRetries = 5
)

// ErrGameNotFound is returned when a game is not found
var ErrGameNotFound = errors.New("game not found")

// ErrUpdateConflict is returned when an update keeps losing the optimistic
// transaction race; callers may re-fetch and retry
var ErrUpdateConflict = errors.New("game was modified concurrently, retries exhausted")

// Config holds configuration for the Redis game repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed game repository
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

// SaveGame persists a game to Redis
func (r *redisRepository) SaveGame(ctx context.Context, input *SaveGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}

	gameJSON, err := json.Marshal(input.Game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	pipe := r.client.Pipeline()

	gameKey := gameKeyPrefix + input.Game.ID
	pipe.Set(ctx, gameKey, gameJSON, 0)

	// Keep the open-games set in step with the status
	if input.Game.Status == models.GameStatusOpen {
		pipe.SAdd(ctx, openGamesKey, input.Game.ID)
	} else {
		pipe.SRem(ctx, openGamesKey, input.Game.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

// GetGame retrieves a game by ID from Redis
func (r *redisRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	gameKey := gameKeyPrefix + input.GameID
	gameJSON, err := r.client.Get(ctx, gameKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var game models.Game
	if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

// UpdateGame applies the input's mutation under WATCH so that the
// precondition checks inside the closure and the resulting write are one
// atomic unit. A concurrent write to the same game fails the EXEC and the
// whole read-check-write cycle is retried against fresh state.
func (r *redisRepository) UpdateGame(ctx context.Context, input *UpdateGameInput) (*models.Game, error) {
	if input == nil || input.GameID == "" || input.Update == nil {
		return nil, errors.New("input, game ID and update func cannot be empty")
	}

	gameKey := gameKeyPrefix + input.GameID
	var updated *models.Game

	txf := func(tx *redis.Tx) error {
		gameJSON, err := tx.Get(ctx, gameKey).Result()
		if err == redis.Nil {
			return ErrGameNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get game: %w", err)
		}

		var game models.Game
		if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
			return fmt.Errorf("failed to unmarshal game: %w", err)
		}

		if err := input.Update(&game); err != nil {
			return err
		}

		buf, err := json.Marshal(&game)
		if err != nil {
			return fmt.Errorf("failed to marshal game: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, gameKey, buf, 0)
			if game.Status == models.GameStatusOpen {
				pipe.SAdd(ctx, openGamesKey, game.ID)
			} else {
				pipe.SRem(ctx, openGamesKey, game.ID)
			}
			return nil
		})
		if err == nil {
			updated = &game
		}
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.client.Watch(ctx, txf, gameKey)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			// Lost the race, re-read and try again
			continue
		}
		return nil, err
	}

	return nil, ErrUpdateConflict
}

// DeleteGame removes a game from Redis. Payout log entries are stored
// separately and survive the deletion.
func (r *redisRepository) DeleteGame(ctx context.Context, input *DeleteGameInput) error {
	if input == nil || input.GameID == "" {
		return errors.New("input and game ID cannot be empty")
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, gameKeyPrefix+input.GameID)
	pipe.SRem(ctx, openGamesKey, input.GameID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// ListOpenGames retrieves all games still accepting claims
func (r *redisRepository) ListOpenGames(ctx context.Context, input *ListOpenGamesInput) (*ListOpenGamesOutput, error) {
	gameIDs, err := r.client.SMembers(ctx, openGamesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get open game IDs: %w", err)
	}

	if len(gameIDs) == 0 {
		return &ListOpenGamesOutput{
			Games: []*models.Game{},
		}, nil
	}

	pipe := r.client.Pipeline()
	gameCommands := make(map[string]*redis.StringCmd)

	for _, gameID := range gameIDs {
		gameCommands[gameID] = pipe.Get(ctx, gameKeyPrefix+gameID)
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get open games: %w", err)
	}

	games := make([]*models.Game, 0, len(gameIDs))
	for gameID, cmd := range gameCommands {
		gameJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Game was deleted between getting the IDs and fetching it
				continue
			}
			return nil, fmt.Errorf("failed to get game %s: %w", gameID, err)
		}

		var game models.Game
		if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game %s: %w", gameID, err)
		}

		games = append(games, &game)
	}

	return &ListOpenGamesOutput{
		Games: games,
	}, nil
}
