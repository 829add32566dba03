package propbet

import "github.com/hoopsquares/squares/internal/models"

type SavePropInput struct {
	Prop *models.PropBet
}

type GetPropInput struct {
	PropID string
}

// UpdatePropInput carries the mutation applied inside the transaction. The
// Update func runs against the freshly read pool; returning an error aborts
// the write and surfaces that error to the caller unchanged.
type UpdatePropInput struct {
	PropID string
	Update func(prop *models.PropBet) error
}

type DeletePropInput struct {
	PropID string
}

type GetPropsForGameInput struct {
	GameID string
}

type GetPropsForGameOutput struct {
	Props []*models.PropBet
}
