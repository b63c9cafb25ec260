package wagerservice

import "errors"

var (
	ErrUnknownPlayer = errors.New("unknown player")
	// ErrRoundNotReady is returned by AutoPostRound when the round is
	// incomplete or already posted.
	ErrRoundNotReady = errors.New("round not ready to post")
)
