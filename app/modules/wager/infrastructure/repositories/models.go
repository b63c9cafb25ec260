package wagerdb

import (
	"encoding/json"
	"time"

	wagerdomain "github.com/Black-And-White-Club/wager-bot/app/modules/wager/domain"
	"github.com/uptrace/bun"
)

// The store holds exactly two documents.
const (
	KeyScores = "scores"
	KeyBets   = "bets"
)

// Entry is one row of the wager key-value store.
type Entry struct {
	bun.BaseModel `bun:"table:wager_store,alias:ws"`

	Key       string          `bun:"key,pk"`
	Value     json.RawMessage `bun:"value,type:jsonb,notnull"`
	UpdatedAt time.Time       `bun:"updated_at,notnull,default:current_timestamp"`
}

// ScoresDocument is everything stored under KeyScores.
type ScoresDocument struct {
	TeeBox string                 `json:"tee_box"`
	Scores wagerdomain.ScoreTable `json:"scores"`
	Roster []wagerdomain.Player   `json:"roster,omitempty"`
}

// EmptyScores is the document used when nothing usable is stored.
func EmptyScores() ScoresDocument {
	return ScoresDocument{Scores: wagerdomain.ScoreTable{}}
}
