package propbet

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/hoopsquares/squares/internal/repositories/propbet Repository

import (
	"context"

	"github.com/hoopsquares/squares/internal/models"
)

// Repository defines the interface for prop-bet data persistence
type Repository interface {
	// SaveProp persists a prop-bet pool
	SaveProp(ctx context.Context, input *SavePropInput) error

	// GetProp retrieves a pool by ID
	GetProp(ctx context.Context, input *GetPropInput) (*models.PropBet, error)

	// UpdateProp applies a mutation to a pool as one atomic
	// read-modify-write
	UpdateProp(ctx context.Context, input *UpdatePropInput) (*models.PropBet, error)

	// DeleteProp removes a pool
	DeleteProp(ctx context.Context, input *DeletePropInput) error

	// GetPropsForGame retrieves a game's pools, newest first
	GetPropsForGame(ctx context.Context, input *GetPropsForGameInput) (*GetPropsForGameOutput, error)
}
