package props

import "errors"

// Define errors
var (
	ErrPropNotFound   = errors.New("prop bet not found")
	ErrInvalidProp    = errors.New("invalid prop bet")
	ErrNotOpen        = errors.New("prop bet is not open")
	ErrInvalidOption  = errors.New("option is not part of this prop bet")
	ErrAlreadyBet     = errors.New("user already has a bet on this prop")
	ErrAlreadySettled = errors.New("prop bet has already been settled")
	ErrNotAuthorized  = errors.New("only an admin may do that")
)
