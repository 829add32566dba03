package props

import "context"

// Service defines the interface for parimutuel prop-bet pools
type Service interface {
	// CreateProp opens a new pool for a game
	CreateProp(ctx context.Context, input *CreatePropInput) (*CreatePropOutput, error)

	// GetProp retrieves a pool by ID
	GetProp(ctx context.Context, input *GetPropInput) (*GetPropOutput, error)

	// ListProps retrieves a game's pools, newest first
	ListProps(ctx context.Context, input *ListPropsInput) (*ListPropsOutput, error)

	// PlaceBet stakes the entry fee on one option; at most one bet per user
	PlaceBet(ctx context.Context, input *PlaceBetInput) (*PlaceBetOutput, error)

	// LockProp closes betting without settling
	LockProp(ctx context.Context, input *LockPropInput) (*LockPropOutput, error)

	// SettleProp picks the winning option and splits the pot evenly among
	// correct bettors; terminal
	SettleProp(ctx context.Context, input *SettlePropInput) (*SettlePropOutput, error)

	// DeleteProp removes a pool
	DeleteProp(ctx context.Context, input *DeletePropInput) (*DeletePropOutput, error)
}
