package wagerdomain

import "errors"

var (
	ErrInvalidBet     = errors.New("invalid bet")
	ErrUnknownBet     = errors.New("unknown bet")
	ErrDuplicateBet   = errors.New("bet already exists")
	ErrNotParticipant = errors.New("player is not a participant")
	ErrInvalidHole    = errors.New("invalid hole")
	ErrUnknownKind    = errors.New("unknown bet kind")
)
