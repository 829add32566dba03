package propbet

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
	propKeyPrefix      = "squares:prop:"
	gamePropsKeyPrefix = "squares:game_props:"

	// How often to retry an optimistic transaction that lost the race
	maxUpdateRetries = 5
)

// ErrPropNotFound is returned when a prop-bet pool is not found
var ErrPropNotFound = errors.New("prop bet not found")

// ErrUpdateConflict is returned when an update keeps losing the optimistic
// transaction race; callers may re-fetch and retry
var ErrUpdateConflict = errors.New("prop bet was modified concurrently, retries exhausted")

// Config holds configuration for the Redis prop-bet repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed prop-bet repository
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

// SaveProp persists a prop-bet pool to Redis
func (r *redisRepository) SaveProp(ctx context.Context, input *SavePropInput) error {
	if input == nil || input.Prop == nil {
		return errors.New("input and prop cannot be nil")
	}

	prop := input.Prop

	if prop.ID == "" {
		return errors.New("prop ID cannot be empty")
	}

	propJSON, err := json.Marshal(prop)
	if err != nil {
		return fmt.Errorf("failed to marshal prop: %w", err)
	}

	pipe := r.client.Pipeline()

	pipe.Set(ctx, propKeyPrefix+prop.ID, propJSON, 0)

	if prop.GameID != "" {
		pipe.ZAdd(ctx, gamePropsKeyPrefix+prop.GameID, redis.Z{
			Score:  float64(prop.CreatedAt.UnixNano()),
			Member: prop.ID,
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save prop: %w", err)
	}

	return nil
}

// GetProp retrieves a pool by ID from Redis
func (r *redisRepository) GetProp(ctx context.Context, input *GetPropInput) (*models.PropBet, error) {
	if input == nil || input.PropID == "" {
		return nil, errors.New("input and prop ID cannot be empty")
	}

	propJSON, err := r.client.Get(ctx, propKeyPrefix+input.PropID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrPropNotFound
		}
		return nil, fmt.Errorf("failed to get prop: %w", err)
	}

	var prop models.PropBet
	if err := json.Unmarshal([]byte(propJSON), &prop); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prop: %w", err)
	}

	return &prop, nil
}

// UpdateProp applies the input's mutation under WATCH so that the
// precondition checks inside the closure and the resulting write are one
// atomic unit relative to the pool.
func (r *redisRepository) UpdateProp(ctx context.Context, input *UpdatePropInput) (*models.PropBet, error) {
	if input == nil || input.PropID == "" || input.Update == nil {
		return nil, errors.New("input, prop ID and update func cannot be empty")
	}

	propKey := propKeyPrefix + input.PropID
	var updated *models.PropBet

	txf := func(tx *redis.Tx) error {
		propJSON, err := tx.Get(ctx, propKey).Result()
		if err == redis.Nil {
			return ErrPropNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get prop: %w", err)
		}

		var prop models.PropBet
		if err := json.Unmarshal([]byte(propJSON), &prop); err != nil {
			return fmt.Errorf("failed to unmarshal prop: %w", err)
		}

		if err := input.Update(&prop); err != nil {
			return err
		}

		buf, err := json.Marshal(&prop)
		if err != nil {
			return fmt.Errorf("failed to marshal prop: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, propKey, buf, 0)
			return nil
		})
		if err == nil {
			updated = &prop
		}
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.client.Watch(ctx, txf, propKey)
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

// DeleteProp removes a pool from Redis
func (r *redisRepository) DeleteProp(ctx context.Context, input *DeletePropInput) error {
	if input == nil || input.PropID == "" {
		return errors.New("input and prop ID cannot be empty")
	}

	// Fetch first so the game index can be cleaned up
	prop, err := r.GetProp(ctx, &GetPropInput{PropID: input.PropID})
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, propKeyPrefix+input.PropID)
	if prop.GameID != "" {
		pipe.ZRem(ctx, gamePropsKeyPrefix+prop.GameID, input.PropID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete prop: %w", err)
	}

	return nil
}

// GetPropsForGame retrieves a game's pools, newest first
func (r *redisRepository) GetPropsForGame(ctx context.Context, input *GetPropsForGameInput) (*GetPropsForGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	propIDs, err := r.client.ZRevRange(ctx, gamePropsKeyPrefix+input.GameID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get prop IDs: %w", err)
	}

	if len(propIDs) == 0 {
		return &GetPropsForGameOutput{
			Props: []*models.PropBet{},
		}, nil
	}

	props := make([]*models.PropBet, 0, len(propIDs))
	for _, propID := range propIDs {
		prop, err := r.GetProp(ctx, &GetPropInput{PropID: propID})
		if err != nil {
			// Skip pools deleted between reading the index and the fetch
			if errors.Is(err, ErrPropNotFound) {
				continue
			}
			return nil, err
		}
		props = append(props, prop)
	}

	return &GetPropsForGameOutput{
		Props: props,
	}, nil
}
