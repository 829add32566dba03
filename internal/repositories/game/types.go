package game

import "github.com/hoopsquares/squares/internal/models"

type SaveGameInput struct {
	Game *models.Game
}

type GetGameInput struct {
	GameID string
}

// UpdateGameInput carries the mutation applied inside the transaction. The
// Update func runs against the freshly read game; returning an error aborts
// the write and surfaces that error to the caller unchanged.
type UpdateGameInput struct {
	GameID string
	Update func(game *models.Game) error
}

type DeleteGameInput struct {
	GameID string
}

type ListOpenGamesInput struct {
}

type ListOpenGamesOutput struct {
	Games []*models.Game
}
