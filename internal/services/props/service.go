package props

import (
	"context"
	"errors"
	"fmt"

	"github.com/hoopsquares/squares/internal/models"
	propRepo "github.com/hoopsquares/squares/internal/repositories/propbet"
)

// service implements the Service interface
type service struct {
	config   *Config
	propRepo propRepo.Repository
}

// NewService creates a new props service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.PropRepo == nil {
		return nil, errors.New("prop repository cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	if cfg.UUIDGenerator == nil {
		return nil, errors.New("UUID generator cannot be nil")
	}

	return &service{
		config:   cfg,
		propRepo: cfg.PropRepo,
	}, nil
}

// CreateProp opens a new pool for a game
func (s *service) CreateProp(ctx context.Context, input *CreatePropInput) (*CreatePropOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	if !input.Actor.IsAdmin {
		return nil, ErrNotAuthorized
	}

	if input.Question == "" {
		return nil, fmt.Errorf("%w: question cannot be empty", ErrInvalidProp)
	}

	if input.EntryFee <= 0 {
		return nil, fmt.Errorf("%w: entry fee must be positive", ErrInvalidProp)
	}

	if len(input.Options) < 2 {
		return nil, fmt.Errorf("%w: at least two options are required", ErrInvalidProp)
	}

	seen := make(map[string]bool, len(input.Options))
	for _, opt := range input.Options {
		if opt == "" {
			return nil, fmt.Errorf("%w: options cannot be empty", ErrInvalidProp)
		}
		if seen[opt] {
			return nil, fmt.Errorf("%w: duplicate option %q", ErrInvalidProp, opt)
		}
		seen[opt] = true
	}

	now := s.config.Clock.Now()

	prop := &models.PropBet{
		ID:        s.config.UUIDGenerator.NewUUID(),
		GameID:    input.GameID,
		Question:  input.Question,
		EntryFee:  input.EntryFee,
		Options:   input.Options,
		Bets:      []*models.Bet{},
		Status:    models.PropBetStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.propRepo.SaveProp(ctx, &propRepo.SavePropInput{
		Prop: prop,
	})
	if err != nil {
		return nil, err
	}

	return &CreatePropOutput{
		Prop: prop,
	}, nil
}

// GetProp retrieves a pool by ID
func (s *service) GetProp(ctx context.Context, input *GetPropInput) (*GetPropOutput, error) {
	if input == nil || input.PropID == "" {
		return nil, errors.New("input and prop ID cannot be empty")
	}

	prop, err := s.propRepo.GetProp(ctx, &propRepo.GetPropInput{
		PropID: input.PropID,
	})
	if err != nil {
		return nil, mapPropErr(err)
	}

	return &GetPropOutput{
		Prop: prop,
	}, nil
}

// ListProps retrieves a game's pools, newest first
func (s *service) ListProps(ctx context.Context, input *ListPropsInput) (*ListPropsOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	out, err := s.propRepo.GetPropsForGame(ctx, &propRepo.GetPropsForGameInput{
		GameID: input.GameID,
	})
	if err != nil {
		return nil, err
	}

	return &ListPropsOutput{
		Props: out.Props,
	}, nil
}

// PlaceBet stakes the entry fee on one option. The open, option and
// duplicate checks run inside the same transaction as the append, so a user
// cannot slip in two bets.
func (s *service) PlaceBet(ctx context.Context, input *PlaceBetInput) (*PlaceBetOutput, error) {
	if input == nil || input.PropID == "" || input.UserID == "" {
		return nil, errors.New("input, prop ID and user ID cannot be empty")
	}

	now := s.config.Clock.Now()

	updated, err := s.propRepo.UpdateProp(ctx, &propRepo.UpdatePropInput{
		PropID: input.PropID,
		Update: func(p *models.PropBet) error {
			if p.Status != models.PropBetStatusOpen {
				return ErrNotOpen
			}

			if !p.HasOption(input.Option) {
				return ErrInvalidOption
			}

			if p.FindBet(input.UserID) != nil {
				return ErrAlreadyBet
			}

			p.Bets = append(p.Bets, &models.Bet{
				UserID:         input.UserID,
				DisplayName:    input.DisplayName,
				SelectedOption: input.Option,
				PlacedAt:       now,
			})
			p.UpdatedAt = now
			return nil
		},
	})
	if err != nil {
		return nil, mapPropErr(err)
	}

	return &PlaceBetOutput{
		Prop: updated,
	}, nil
}

// LockProp closes betting without settling
func (s *service) LockProp(ctx context.Context, input *LockPropInput) (*LockPropOutput, error) {
	if input == nil || input.PropID == "" {
		return nil, errors.New("input and prop ID cannot be empty")
	}

	if !input.Actor.IsAdmin {
		return nil, ErrNotAuthorized
	}

	now := s.config.Clock.Now()

	updated, err := s.propRepo.UpdateProp(ctx, &propRepo.UpdatePropInput{
		PropID: input.PropID,
		Update: func(p *models.PropBet) error {
			if p.Status == models.PropBetStatusPayout {
				return ErrAlreadySettled
			}

			if p.Status != models.PropBetStatusOpen {
				return ErrNotOpen
			}

			p.Status = models.PropBetStatusLocked
			p.UpdatedAt = now
			return nil
		},
	})
	if err != nil {
		return nil, mapPropErr(err)
	}

	return &LockPropOutput{
		Prop: updated,
	}, nil
}

// SettleProp picks the winning option and moves the pool to PAYOUT. Each
// correct bettor takes floor(pot / winners); with no winners the payout is
// zero and the whole pot stays unallocated, stakes are not returned.
func (s *service) SettleProp(ctx context.Context, input *SettlePropInput) (*SettlePropOutput, error) {
	if input == nil || input.PropID == "" {
		return nil, errors.New("input and prop ID cannot be empty")
	}

	if !input.Actor.IsAdmin {
		return nil, ErrNotAuthorized
	}

	now := s.config.Clock.Now()

	updated, err := s.propRepo.UpdateProp(ctx, &propRepo.UpdatePropInput{
		PropID: input.PropID,
		Update: func(p *models.PropBet) error {
			if p.Status == models.PropBetStatusPayout {
				return ErrAlreadySettled
			}

			if !p.HasOption(input.WinningOption) {
				return ErrInvalidOption
			}

			p.WinningOption = input.WinningOption
			p.Status = models.PropBetStatusPayout
			p.UpdatedAt = now
			return nil
		},
	})
	if err != nil {
		return nil, mapPropErr(err)
	}

	totalPot := updated.TotalPot()
	winnerCount := updated.WinnerCount(input.WinningOption)

	var payoutPerWinner int64
	if winnerCount > 0 {
		payoutPerWinner = totalPot / int64(winnerCount)
	}

	return &SettlePropOutput{
		Prop:            updated,
		TotalPot:        totalPot,
		WinnerCount:     winnerCount,
		PayoutPerWinner: payoutPerWinner,
	}, nil
}

// DeleteProp removes a pool
func (s *service) DeleteProp(ctx context.Context, input *DeletePropInput) (*DeletePropOutput, error) {
	if input == nil || input.PropID == "" {
		return nil, errors.New("input and prop ID cannot be empty")
	}

	if !input.Actor.IsAdmin {
		return nil, ErrNotAuthorized
	}

	err := s.propRepo.DeleteProp(ctx, &propRepo.DeletePropInput{
		PropID: input.PropID,
	})
	if err != nil {
		return nil, mapPropErr(err)
	}

	return &DeletePropOutput{
		Success: true,
	}, nil
}

// mapPropErr translates repository not-found errors into the service error
func mapPropErr(err error) error {
	if errors.Is(err, propRepo.ErrPropNotFound) {
		return ErrPropNotFound
	}
	return err
}
