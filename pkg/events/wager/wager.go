// Package wagerevents defines the topics and payloads of the wager event surface.
package wagerevents

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Requests consumed by the wager module.
const (
	PlayerRegisterRequestedV1 = "wager.player.register.requested.v1"
	BetPlaceRequestedV1       = "wager.bet.place.requested.v1"
	BetRemoveRequestedV1      = "wager.bet.remove.requested.v1"
	ScoreUpdateRequestedV1    = "wager.score.update.requested.v1"
	ScoresImportRequestedV1   = "wager.scores.import.requested.v1"
	TeeBoxSelectRequestedV1   = "wager.teebox.select.requested.v1"
	RoundPostRequestedV1      = "wager.round.post.requested.v1"
	RoundUnpostRequestedV1    = "wager.round.unpost.requested.v1"
	PuttingOutcomeRequestedV1 = "wager.putting.outcome.requested.v1"
	BalancesRequestedV1       = "wager.balances.requested.v1"
)

// Events published by the wager module.
const (
	BetPlacedV1       = "wager.bet.placed.v1"
	BetRemovedV1      = "wager.bet.removed.v1"
	ScoresImportedV1  = "wager.scores.imported.v1"
	BalancesUpdatedV1 = "wager.balances.updated.v1"
	RoundPostedV1     = "wager.round.posted.v1"
	RequestFailedV1   = "wager.request.failed.v1"
)

type PlayerRegisterRequestedPayloadV1 struct {
	PlayerID  uuid.UUID `json:"player_id" validate:"required"`
	FirstName string    `json:"first_name" validate:"required_without=Nickname"`
	LastName  string    `json:"last_name"`
	Nickname  string    `json:"nickname"`
}

// BetPlaceRequestedPayloadV1 carries one wager in its stored JSON form. A
// missing id is assigned on placement.
type BetPlaceRequestedPayloadV1 struct {
	Kind string          `json:"kind" validate:"required,oneof=individual four_ball alabama do_da skins putting circus"`
	Bet  json.RawMessage `json:"bet" validate:"required"`
}

type BetRemoveRequestedPayloadV1 struct {
	BetID uuid.UUID `json:"bet_id" validate:"required"`
}

type ScoreUpdateRequestedPayloadV1 struct {
	PlayerID uuid.UUID `json:"player_id" validate:"required"`
	Hole     int       `json:"hole" validate:"min=1,max=18"`
	Score    string    `json:"score" validate:"max=8"`
}

// ScoresImportRequestedPayloadV1 carries a scorecard file. The extension of
// FileName selects the parser; Data is base64 in JSON.
type ScoresImportRequestedPayloadV1 struct {
	FileName string `json:"file_name" validate:"required"`
	Data     []byte `json:"data" validate:"required"`
}

type TeeBoxSelectRequestedPayloadV1 struct {
	TeeBox string `json:"tee_box" validate:"required"`
}

type RoundPostRequestedPayloadV1 struct {
	Reason string `json:"reason,omitempty"`
}

type RoundUnpostRequestedPayloadV1 struct {
	Reason string `json:"reason,omitempty"`
}

type PuttingOutcomeRequestedPayloadV1 struct {
	BetID   uuid.UUID   `json:"bet_id" validate:"required"`
	Winners []uuid.UUID `json:"winners"`
}

type BalancesRequestedPayloadV1 struct{}

type BetPlacedPayloadV1 struct {
	BetID        uuid.UUID   `json:"bet_id"`
	Kind         string      `json:"kind"`
	Name         string      `json:"name,omitempty"`
	Participants []uuid.UUID `json:"participants"`
}

type BetRemovedPayloadV1 struct {
	BetID uuid.UUID `json:"bet_id"`
	Kind  string    `json:"kind"`
}

type ScoresImportedPayloadV1 struct {
	Players   int      `json:"players"`
	Unmatched []string `json:"unmatched,omitempty"`
	Complete  bool     `json:"complete"`
}

type BalanceV1 struct {
	PlayerID  uuid.UUID       `json:"player_id"`
	Name      string          `json:"name"`
	Main      decimal.Decimal `json:"main"`
	Side      decimal.Decimal `json:"side"`
	Projected decimal.Decimal `json:"projected"`
}

type BalancesUpdatedPayloadV1 struct {
	Balances []BalanceV1 `json:"balances"`
	Posted   bool        `json:"posted"`
}

type RoundPostedPayloadV1 struct {
	Posted         bool   `json:"posted"`
	Bets           int    `json:"bets"`
	ProcessingHash string `json:"processing_hash,omitempty"`
}

// RequestFailedPayloadV1 reports a request rejected by the wager rules.
type RequestFailedPayloadV1 struct {
	Topic  string `json:"topic"`
	Reason string `json:"reason"`
}
