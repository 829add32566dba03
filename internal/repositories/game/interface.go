package game

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/hoopsquares/squares/internal/repositories/game Repository

import (
	"context"

	"github.com/hoopsquares/squares/internal/models"
)

// Repository defines the interface for game data persistence
type Repository interface {
	// SaveGame persists a game
	SaveGame(ctx context.Context, input *SaveGameInput) error

	// GetGame retrieves a game by ID
	GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error)

	// UpdateGame applies a mutation to a game as one atomic
	// read-modify-write; concurrent writers never interleave
	UpdateGame(ctx context.Context, input *UpdateGameInput) (*models.Game, error)

	// DeleteGame removes a game and its claims
	DeleteGame(ctx context.Context, input *DeleteGameInput) error

	// ListOpenGames retrieves all games still accepting claims
	ListOpenGames(ctx context.Context, input *ListOpenGamesInput) (*ListOpenGamesOutput, error)
}
