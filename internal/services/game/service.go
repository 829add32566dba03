package game

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/hoopsquares/squares/internal/digits"
	"github.com/hoopsquares/squares/internal/grid"
	"github.com/hoopsquares/squares/internal/models"
	gameRepo "github.com/hoopsquares/squares/internal/repositories/game"
	payoutRepo "github.com/hoopsquares/squares/internal/repositories/payoutlog"
)

const defaultCellCapacity = 10

// service implements the Service interface
type service struct {
	config        *Config
	gameRepo      gameRepo.Repository
	payoutLogRepo payoutRepo.Repository
}

// NewService creates a new game service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.GameRepo == nil {
		return nil, errors.New("game repository cannot be nil")
	}

	if cfg.PayoutLogRepo == nil {
		return nil, errors.New("payout log repository cannot be nil")
	}

	if cfg.Shuffler == nil {
		return nil, errors.New("shuffler cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	if cfg.UUIDGenerator == nil {
		return nil, errors.New("UUID generator cannot be nil")
	}

	if cfg.CellCapacity <= 0 {
		cfg.CellCapacity = defaultCellCapacity
	}

	return &service{
		config:        cfg,
		gameRepo:      cfg.GameRepo,
		payoutLogRepo: cfg.PayoutLogRepo,
	}, nil
}

// CreateGame creates a new squares pool
func (s *service) CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	if input == nil || input.HostUserID == "" {
		return nil, errors.New("input and host user ID cannot be empty")
	}

	if err := validateSettings(&input.Settings); err != nil {
		return nil, err
	}

	now := s.config.Clock.Now()

	game := &models.Game{
		ID:         s.config.UUIDGenerator.NewUUID(),
		HostUserID: input.HostUserID,
		HostName:   input.HostName,
		Status:     models.GameStatusOpen,
		Settings:   input.Settings,
		Squares:    make(map[string][]*models.SquareClaim),
		Players:    []*models.Player{},
		RowDigits:  digits.Identity(),
		ColDigits:  digits.Identity(),
		PaidTiers:  []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.gameRepo.SaveGame(ctx, &gameRepo.SaveGameInput{
		Game: game,
	})
	if err != nil {
		return nil, err
	}

	return &CreateGameOutput{
		Game: game,
	}, nil
}

// GetGame retrieves a game by ID
func (s *service) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{
		GameID: input.GameID,
	})
	if err != nil {
		return nil, mapGameErr(err)
	}

	return &GetGameOutput{
		Game: game,
	}, nil
}

// ListOpenGames retrieves the games still accepting claims
func (s *service) ListOpenGames(ctx context.Context, input *ListOpenGamesInput) (*ListOpenGamesOutput, error) {
	out, err := s.gameRepo.ListOpenGames(ctx, &gameRepo.ListOpenGamesInput{})
	if err != nil {
		return nil, err
	}

	return &ListOpenGamesOutput{
		Games: out.Games,
	}, nil
}

// DeleteGame removes a game. Already-written payout log entries survive so
// the winners ledger stays a complete audit trail.
func (s *service) DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{
		GameID: input.GameID,
	})
	if err != nil {
		return nil, mapGameErr(err)
	}

	if !canAdminister(game, input.Actor) {
		return nil, ErrNotAuthorized
	}

	err = s.gameRepo.DeleteGame(ctx, &gameRepo.DeleteGameInput{
		GameID: input.GameID,
	})
	if err != nil {
		return nil, err
	}

	return &DeleteGameOutput{
		Success: true,
	}, nil
}

// ClaimSquare reserves a cell for a player. The capacity, duplicate and cap
// checks run inside the same transaction as the append, so concurrent claims
// on a full cell cannot both succeed.
func (s *service) ClaimSquare(ctx context.Context, input *ClaimSquareInput) (*ClaimSquareOutput, error) {
	if input == nil || input.GameID == "" || input.UserID == "" {
		return nil, errors.New("input, game ID and user ID cannot be empty")
	}

	if !grid.InBounds(input.Row, input.Col) {
		return nil, ErrInvalidCell
	}

	now := s.config.Clock.Now()
	claim := &models.SquareClaim{
		ID:          s.config.UUIDGenerator.NewUUID(),
		Row:         input.Row,
		Col:         input.Col,
		UserID:      input.UserID,
		DisplayName: input.DisplayName,
		ClaimedAt:   now,
	}

	updated, err := s.gameRepo.UpdateGame(ctx, &gameRepo.UpdateGameInput{
		GameID: input.GameID,
		Update: func(g *models.Game) error {
			if g.Status == models.GameStatusArchived {
				return ErrGameLocked
			}

			if g.IsScrambled && !s.config.AllowClaimsAfterScramble {
				return ErrGameLocked
			}

			key := models.CellKey(input.Row, input.Col)
			cell := g.Squares[key]

			for _, c := range cell {
				if c.UserID == input.UserID {
					return ErrDuplicateClaim
				}
			}

			if cap := g.Settings.MaxSquaresPerPlayer; cap > 0 {
				if squaresOwnedBy(g, input.UserID)+1 > cap {
					return ErrCapExceeded
				}
			}

			if len(cell) >= s.config.CellCapacity {
				return ErrCellFull
			}

			if g.Squares == nil {
				g.Squares = make(map[string][]*models.SquareClaim)
			}
			g.Squares[key] = append(cell, claim)

			if p := g.FindPlayer(input.UserID); p != nil {
				p.Squares++
				p.DisplayName = input.DisplayName
			} else {
				g.Players = append(g.Players, &models.Player{
					UserID:      input.UserID,
					DisplayName: input.DisplayName,
					Squares:     1,
				})
			}

			g.UpdatedAt = now
			return nil
		},
	})
	if err != nil {
		return nil, mapGameErr(err)
	}

	return &ClaimSquareOutput{
		Claim: claim,
		Game:  updated,
	}, nil
}

// ReleaseSquare removes a claim. The owner may release their own claim; the
// host or an admin may release anyone's.
func (s *service) ReleaseSquare(ctx context.Context, input *ReleaseSquareInput) (*ReleaseSquareOutput, error) {
	if input == nil || input.GameID == "" || input.UserID == "" {
		return nil, errors.New("input, game ID and user ID cannot be empty")
	}

	if !grid.InBounds(input.Row, input.Col) {
		return nil, ErrInvalidCell
	}

	now := s.config.Clock.Now()

	updated, err := s.gameRepo.UpdateGame(ctx, &gameRepo.UpdateGameInput{
		GameID: input.GameID,
		Update: func(g *models.Game) error {
			if input.Actor.UserID != input.UserID && !canAdminister(g, input.Actor) {
				return ErrNotAuthorized
			}

			key := models.CellKey(input.Row, input.Col)
			cell := g.Squares[key]

			idx := -1
			for i, c := range cell {
				if c.UserID == input.UserID {
					idx = i
					break
				}
			}
			if idx < 0 {
				return ErrClaimNotFound
			}

			cell = append(cell[:idx], cell[idx+1:]...)
			if len(cell) == 0 {
				delete(g.Squares, key)
			} else {
				g.Squares[key] = cell
			}

			dropPlayerSquare(g, input.UserID)

			g.UpdatedAt = now
			return nil
		},
	})
	if err != nil {
		return nil, mapGameErr(err)
	}

	return &ReleaseSquareOutput{
		Game: updated,
	}, nil
}

// ScrambleDigits locks in random row and column digit permutations. Both
// permutations and the scrambled flag land in one write, so no reader ever
// sees a half-scrambled game.
func (s *service) ScrambleDigits(ctx context.Context, input *ScrambleDigitsInput) (*ScrambleDigitsOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	rowDigits := s.config.Shuffler.Permutation()
	colDigits := s.config.Shuffler.Permutation()

	if !grid.IsPermutation(rowDigits) || !grid.IsPermutation(colDigits) {
		return nil, ErrCorruptAssignment
	}

	now := s.config.Clock.Now()

	updated, err := s.gameRepo.UpdateGame(ctx, &gameRepo.UpdateGameInput{
		GameID: input.GameID,
		Update: func(g *models.Game) error {
			if !canAdminister(g, input.Actor) {
				return ErrNotAuthorized
			}

			if g.IsScrambled {
				return ErrAlreadyScrambled
			}

			g.RowDigits = rowDigits
			g.ColDigits = colDigits
			g.IsScrambled = true
			g.Status = models.GameStatusScrambled
			g.UpdatedAt = now
			return nil
		},
	})
	if err != nil {
		return nil, mapGameErr(err)
	}

	return &ScrambleDigitsOutput{
		Game: updated,
	}, nil
}

// ResetDigits restores the identity ordering and clears the scrambled flag.
// Refused once any payout has been logged: winners were computed against the
// locked assignment and must not retroactively change.
func (s *service) ResetDigits(ctx context.Context, input *ResetDigitsInput) (*ResetDigitsOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	logged, err := s.payoutLogRepo.HasEntriesForGame(ctx, &payoutRepo.HasEntriesForGameInput{
		GameID: input.GameID,
	})
	if err != nil {
		return nil, err
	}
	if logged {
		return nil, ErrPayoutsAlreadyLogged
	}

	now := s.config.Clock.Now()

	updated, err := s.gameRepo.UpdateGame(ctx, &gameRepo.UpdateGameInput{
		GameID: input.GameID,
		Update: func(g *models.Game) error {
			if !canAdminister(g, input.Actor) {
				return ErrNotAuthorized
			}

			if len(g.PaidTiers) > 0 {
				return ErrPayoutsAlreadyLogged
			}

			g.RowDigits = digits.Identity()
			g.ColDigits = digits.Identity()
			g.IsScrambled = false
			g.Status = models.GameStatusOpen
			g.UpdatedAt = now
			return nil
		},
	})
	if err != nil {
		return nil, mapGameErr(err)
	}

	return &ResetDigitsOutput{
		Game: updated,
	}, nil
}

// UpdateScores accepts a score tuple pushed in by the host or the live feed
func (s *service) UpdateScores(ctx context.Context, input *UpdateScoresInput) (*UpdateScoresOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	if input.Update.TeamAScore < 0 || input.Update.TeamBScore < 0 {
		return nil, ErrInvalidScore
	}

	now := s.config.Clock.Now()

	updated, err := s.gameRepo.UpdateGame(ctx, &gameRepo.UpdateGameInput{
		GameID: input.GameID,
		Update: func(g *models.Game) error {
			if !canAdminister(g, input.Actor) {
				return ErrNotAuthorized
			}

			g.Scores = models.Scores{
				TeamA:  input.Update.TeamAScore,
				TeamB:  input.Update.TeamBScore,
				Period: input.Update.Period,
			}
			g.UpdatedAt = now
			return nil
		},
	})
	if err != nil {
		return nil, mapGameErr(err)
	}

	return &UpdateScoresOutput{
		Game: updated,
	}, nil
}

// ResolveWinningCell maps the game's current scores to the winning cell.
// Read-only and deterministic for a given game state.
func (s *service) ResolveWinningCell(ctx context.Context, input *ResolveWinningCellInput) (*ResolveWinningCellOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{
		GameID: input.GameID,
	})
	if err != nil {
		return nil, mapGameErr(err)
	}

	if !game.IsScrambled {
		return &ResolveWinningCellOutput{
			Cell:   nil,
			Claims: []*models.SquareClaim{},
		}, nil
	}

	cell, err := grid.ResolveWinningCell(game.Scores.TeamA, game.Scores.TeamB, game.RowDigits, game.ColDigits)
	if err != nil {
		return nil, err
	}

	return &ResolveWinningCellOutput{
		Cell:   &cell,
		Claims: game.Squares[models.CellKey(cell.Row, cell.Col)],
	}, nil
}

// LogPayout resolves the winning cell for a tier, appends the ledger entry
// and marks the tier paid. The ledger's per-(game, tier) guard makes the
// append exactly-once even under concurrent attempts.
func (s *service) LogPayout(ctx context.Context, input *LogPayoutInput) (*LogPayoutOutput, error) {
	if input == nil || input.GameID == "" || input.TierLabel == "" {
		return nil, errors.New("input, game ID and tier label cannot be empty")
	}

	if input.TeamAScore < 0 || input.TeamBScore < 0 {
		return nil, ErrInvalidScore
	}

	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{
		GameID: input.GameID,
	})
	if err != nil {
		return nil, mapGameErr(err)
	}

	if !canAdminister(game, input.Actor) {
		return nil, ErrNotAuthorized
	}

	var tier *models.PayoutTier
	for i := range game.Settings.Payouts {
		if game.Settings.Payouts[i].Label == input.TierLabel {
			tier = &game.Settings.Payouts[i]
			break
		}
	}
	if tier == nil {
		return nil, ErrTierNotFound
	}

	if game.TierPaid(input.TierLabel) {
		return nil, ErrDuplicatePayout
	}

	if !game.IsScrambled {
		return nil, ErrNotYetScrambled
	}

	cell, err := grid.ResolveWinningCell(input.TeamAScore, input.TeamBScore, game.RowDigits, game.ColDigits)
	if err != nil {
		return nil, err
	}

	claims := game.Squares[models.CellKey(cell.Row, cell.Col)]
	if len(claims) == 0 {
		// Unclaimed winning square: no entry, money stays in the pot
		return nil, ErrNoWinningSquare
	}

	winner, err := pickWinner(claims, input.WinnerUserID)
	if err != nil {
		return nil, err
	}

	amount := grid.TierAmount(tier.Percent, game.Settings.PricePerSquare, game.TotalClaimedSquares())
	now := s.config.Clock.Now()

	entry := &models.PayoutLogEntry{
		ID:           s.config.UUIDGenerator.NewUUID(),
		GameID:       game.ID,
		GameName:     game.Settings.Name,
		Label:        input.TierLabel,
		WinnerUserID: winner.UserID,
		WinnerName:   winner.DisplayName,
		Amount:       amount,
		TeamAScore:   input.TeamAScore,
		TeamBScore:   input.TeamBScore,
		Period:       input.Period,
		Timestamp:    now,
	}

	err = s.payoutLogRepo.AddEntry(ctx, &payoutRepo.AddEntryInput{
		Entry: entry,
	})
	if err != nil {
		if errors.Is(err, payoutRepo.ErrDuplicatePayout) {
			return nil, ErrDuplicatePayout
		}
		return nil, err
	}

	updated, err := s.gameRepo.UpdateGame(ctx, &gameRepo.UpdateGameInput{
		GameID: input.GameID,
		Update: func(g *models.Game) error {
			if !g.TierPaid(input.TierLabel) {
				g.PaidTiers = append(g.PaidTiers, input.TierLabel)
			}
			g.Scores = models.Scores{
				TeamA:  input.TeamAScore,
				TeamB:  input.TeamBScore,
				Period: input.Period,
			}
			g.UpdatedAt = now
			return nil
		},
	})
	if err != nil {
		// The ledger entry is already durable at this point. Hand it back
		// with the error so a retrying caller can tell this payout from a
		// true duplicate.
		return &LogPayoutOutput{Entry: entry}, mapGameErr(err)
	}

	return &LogPayoutOutput{
		Entry: entry,
		Game:  updated,
	}, nil
}

// TogglePlayerPaid flips a roster entry's paid flag
func (s *service) TogglePlayerPaid(ctx context.Context, input *TogglePlayerPaidInput) (*TogglePlayerPaidOutput, error) {
	if input == nil || input.GameID == "" || input.PlayerUserID == "" {
		return nil, errors.New("input, game ID and player user ID cannot be empty")
	}

	now := s.config.Clock.Now()

	updated, err := s.gameRepo.UpdateGame(ctx, &gameRepo.UpdateGameInput{
		GameID: input.GameID,
		Update: func(g *models.Game) error {
			if !canAdminister(g, input.Actor) {
				return ErrNotAuthorized
			}

			p := g.FindPlayer(input.PlayerUserID)
			if p == nil {
				return ErrPlayerNotFound
			}

			p.Paid = !p.Paid
			if p.Paid {
				paidAt := now
				p.PaidAt = &paidAt
			} else {
				p.PaidAt = nil
			}

			g.UpdatedAt = now
			return nil
		},
	})
	if err != nil {
		return nil, mapGameErr(err)
	}

	return &TogglePlayerPaidOutput{
		Player: updated.FindPlayer(input.PlayerUserID),
		Game:   updated,
	}, nil
}

// RemovePlayer drops a player's roster entry and every claim they hold
func (s *service) RemovePlayer(ctx context.Context, input *RemovePlayerInput) (*RemovePlayerOutput, error) {
	if input == nil || input.GameID == "" || input.PlayerUserID == "" {
		return nil, errors.New("input, game ID and player user ID cannot be empty")
	}

	now := s.config.Clock.Now()

	updated, err := s.gameRepo.UpdateGame(ctx, &gameRepo.UpdateGameInput{
		GameID: input.GameID,
		Update: func(g *models.Game) error {
			if !canAdminister(g, input.Actor) {
				return ErrNotAuthorized
			}

			if g.FindPlayer(input.PlayerUserID) == nil {
				return ErrPlayerNotFound
			}

			for key, cell := range g.Squares {
				kept := cell[:0]
				for _, c := range cell {
					if c.UserID != input.PlayerUserID {
						kept = append(kept, c)
					}
				}
				if len(kept) == 0 {
					delete(g.Squares, key)
				} else {
					g.Squares[key] = kept
				}
			}

			players := make([]*models.Player, 0, len(g.Players))
			for _, p := range g.Players {
				if p.UserID != input.PlayerUserID {
					players = append(players, p)
				}
			}
			g.Players = players

			g.UpdatedAt = now
			return nil
		},
	})
	if err != nil {
		return nil, mapGameErr(err)
	}

	return &RemovePlayerOutput{
		Game: updated,
	}, nil
}

// GetLeaderboard returns the per-game roster, most squares first
func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{
		GameID: input.GameID,
	})
	if err != nil {
		return nil, mapGameErr(err)
	}

	entries := make([]LeaderboardEntry, 0, len(game.Players))
	for _, p := range game.Players {
		entries = append(entries, LeaderboardEntry{
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			Squares:     p.Squares,
			AmountOwed:  int64(p.Squares) * game.Settings.PricePerSquare,
			Paid:        p.Paid,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Squares != entries[j].Squares {
			return entries[i].Squares > entries[j].Squares
		}
		return entries[i].DisplayName < entries[j].DisplayName
	})

	return &GetLeaderboardOutput{
		GameID:  input.GameID,
		Entries: entries,
	}, nil
}

// GetHallOfWinners returns the newest payout entries across all games
func (s *service) GetHallOfWinners(ctx context.Context, input *GetHallOfWinnersInput) (*GetHallOfWinnersOutput, error) {
	limit := 0
	if input != nil {
		limit = input.Limit
	}

	out, err := s.payoutLogRepo.GetRecentEntries(ctx, &payoutRepo.GetRecentEntriesInput{
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	return &GetHallOfWinnersOutput{
		Entries: out.Entries,
	}, nil
}

// GetPlayerWinnings returns a player's payout entries and total
func (s *service) GetPlayerWinnings(ctx context.Context, input *GetPlayerWinningsInput) (*GetPlayerWinningsOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	out, err := s.payoutLogRepo.GetEntriesForWinner(ctx, &payoutRepo.GetEntriesForWinnerInput{
		WinnerUserID: input.UserID,
	})
	if err != nil {
		return nil, err
	}

	var total int64
	for _, e := range out.Entries {
		total += e.Amount
	}

	return &GetPlayerWinningsOutput{
		Entries: out.Entries,
		Total:   total,
	}, nil
}

// canAdminister reports whether the actor may perform host-level operations
func canAdminister(g *models.Game, actor Actor) bool {
	return actor.IsAdmin || (actor.UserID != "" && actor.UserID == g.HostUserID)
}

// squaresOwnedBy counts the user's claims across all cells
func squaresOwnedBy(g *models.Game, userID string) int {
	owned := 0
	for _, cell := range g.Squares {
		for _, c := range cell {
			if c.UserID == userID {
				owned++
			}
		}
	}
	return owned
}

// dropPlayerSquare decrements a roster entry, removing it at zero squares
func dropPlayerSquare(g *models.Game, userID string) {
	for i, p := range g.Players {
		if p.UserID != userID {
			continue
		}
		p.Squares--
		if p.Squares <= 0 {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
		}
		return
	}
}

// pickWinner chooses the winning claim on a cell. An explicit winner must
// hold a claim on the cell; otherwise the earliest claim wins.
func pickWinner(claims []*models.SquareClaim, winnerUserID string) (*models.SquareClaim, error) {
	if winnerUserID != "" {
		for _, c := range claims {
			if c.UserID == winnerUserID {
				return c, nil
			}
		}
		return nil, ErrClaimNotFound
	}

	winner := claims[0]
	for _, c := range claims[1:] {
		if c.ClaimedAt.Before(winner.ClaimedAt) {
			winner = c
		}
	}
	return winner, nil
}

// validateSettings rejects games that could never pay out correctly
func validateSettings(settings *models.GameSettings) error {
	if settings.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidSettings)
	}

	if settings.TeamA == "" || settings.TeamB == "" {
		return fmt.Errorf("%w: both team names are required", ErrInvalidSettings)
	}

	if settings.PricePerSquare < 0 {
		return fmt.Errorf("%w: price per square cannot be negative", ErrInvalidSettings)
	}

	if settings.MaxSquaresPerPlayer < 0 {
		return fmt.Errorf("%w: max squares per player cannot be negative", ErrInvalidSettings)
	}

	totalPercent := 0
	seen := make(map[string]bool, len(settings.Payouts))
	for _, tier := range settings.Payouts {
		if tier.Label == "" {
			return fmt.Errorf("%w: tier labels cannot be empty", ErrInvalidSettings)
		}
		if seen[tier.Label] {
			return fmt.Errorf("%w: duplicate tier label %q", ErrInvalidSettings, tier.Label)
		}
		seen[tier.Label] = true

		if tier.Percent <= 0 {
			return fmt.Errorf("%w: tier %q percent must be positive", ErrInvalidSettings, tier.Label)
		}
		totalPercent += tier.Percent
	}

	if totalPercent > 100 {
		return fmt.Errorf("%w: tier percents sum to %d, max is 100", ErrInvalidSettings, totalPercent)
	}

	return nil
}

// mapGameErr translates repository not-found errors into the service error
func mapGameErr(err error) error {
	if errors.Is(err, gameRepo.ErrGameNotFound) {
		return ErrGameNotFound
	}
	return err
}
