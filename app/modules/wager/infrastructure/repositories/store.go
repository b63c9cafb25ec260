package wagerdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	wagerdomain "github.com/Black-And-White-Club/wager-bot/app/modules/wager/domain"
	"github.com/Black-And-White-Club/wager-bot/pkg/attr"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned by get when a key has never been written.
var ErrNotFound = errors.New("wager store key not found")

// Impl implements Repository on a single Postgres JSONB table.
type Impl struct {
	db     bun.IDB
	logger *slog.Logger
}

func NewRepository(db bun.IDB, logger *slog.Logger) Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Impl{db: db, logger: logger}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) get(ctx context.Context, db bun.IDB, key string) (json.RawMessage, error) {
	entry := new(Entry)
	err := r.resolveDB(db).NewSelect().
		Model(entry).
		Where("key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return entry.Value, nil
}

func (r *Impl) put(ctx context.Context, db bun.IDB, key string, value []byte) error {
	entry := &Entry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := r.resolveDB(db).NewInsert().
		Model(entry).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (r *Impl) LoadScores(ctx context.Context, db bun.IDB) (ScoresDocument, error) {
	raw, err := r.get(ctx, db, KeyScores)
	if errors.Is(err, ErrNotFound) {
		return EmptyScores(), nil
	}
	if err != nil {
		return ScoresDocument{}, err
	}
	return DecodeScores(ctx, r.logger, raw), nil
}

func (r *Impl) SaveScores(ctx context.Context, db bun.IDB, doc ScoresDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode scores: %w", err)
	}
	return r.put(ctx, db, KeyScores, data)
}

func (r *Impl) LoadBets(ctx context.Context, db bun.IDB) ([]wagerdomain.Bet, error) {
	raw, err := r.get(ctx, db, KeyBets)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return DecodeBets(ctx, r.logger, raw), nil
}

func (r *Impl) SaveBets(ctx context.Context, db bun.IDB, bets []wagerdomain.Bet) error {
	data, err := wagerdomain.MarshalBets(bets)
	if err != nil {
		return fmt.Errorf("failed to encode bets: %w", err)
	}
	return r.put(ctx, db, KeyBets, data)
}

// DecodeScores never fails: unreadable data yields an empty document.
func DecodeScores(ctx context.Context, logger *slog.Logger, raw []byte) ScoresDocument {
	var doc ScoresDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		logger.WarnContext(ctx, "Stored scores are unreadable, starting empty",
			attr.String("key", KeyScores),
			attr.Error(err),
		)
		return EmptyScores()
	}
	if doc.Scores == nil {
		doc.Scores = wagerdomain.ScoreTable{}
	}
	return doc
}

// DecodeBets never fails: unreadable data yields no bets.
func DecodeBets(ctx context.Context, logger *slog.Logger, raw []byte) []wagerdomain.Bet {
	bets, err := wagerdomain.UnmarshalBets(raw)
	if err != nil {
		logger.WarnContext(ctx, "Stored bets are unreadable, starting empty",
			attr.String("key", KeyBets),
			attr.Error(err),
		)
		return nil
	}
	return bets
}
