package wagerdomain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	coursedomain "github.com/Black-And-White-Club/wager-bot/app/modules/course/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BetID = uuid.UUID

// Kind tags each wager variant.
type Kind string

const (
	KindIndividual Kind = "individual"
	KindFourBall   Kind = "four_ball"
	KindAlabama    Kind = "alabama"
	KindDoDa       Kind = "do_da"
	KindSkins      Kind = "skins"
	KindPutting    Kind = "putting"
	KindCircus     Kind = "circus"
)

// IsSideBet reports whether the kind settles outside the main scorecard total.
func (k Kind) IsSideBet() bool {
	return k == KindPutting || k == KindCircus
}

// Bet is the closed set of wager variants.
type Bet interface {
	ID() BetID
	Kind() Kind
	Label() string
	Participants() []PlayerID
	Validate() error
	// Settle returns every participant's signed amount. Posted bets ignore
	// the arguments and read their frozen snapshot.
	Settle(scores ScoreTable, tee coursedomain.TeeBox) Settlement

	isBet()
}

// Postable bets can freeze the round they are scored against.
type Postable interface {
	Bet
	Post(Snapshot)
	Unpost()
	Posted() bool
}

// BetBase carries the identity shared by every variant.
type BetBase struct {
	BetID BetID  `json:"id"`
	Name  string `json:"name,omitempty"`
}

func (b BetBase) ID() BetID { return b.BetID }

func (b BetBase) Label() string { return b.Name }

func (b BetBase) isBet() {}

// Snapshot is the frozen copy of a round captured when it is posted.
type Snapshot struct {
	Scores ScoreTable          `json:"scores"`
	TeeBox coursedomain.TeeBox `json:"tee_box"`
}

func NewSnapshot(scores ScoreTable, tee coursedomain.TeeBox) Snapshot {
	return Snapshot{Scores: scores.Clone(), TeeBox: tee}
}

// ProcessingHash is a deterministic digest of the snapshot contents.
func (s Snapshot) ProcessingHash() string {
	players := make([]PlayerID, 0, len(s.Scores))
	for p := range s.Scores {
		players = append(players, p)
	}
	slices.SortFunc(players, comparePlayers)

	var sb strings.Builder
	fmt.Fprintf(&sb, "tee:%s;", s.TeeBox.Name)
	for _, h := range s.TeeBox.Holes {
		fmt.Fprintf(&sb, "%d/%d;", h.Number, h.Par)
	}
	for _, p := range players {
		card := s.Scores[p]
		fmt.Fprintf(&sb, "%s:%s;", p, strings.Join(card[:], ","))
	}
	hash := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(hash[:])
}

// Posting is embedded by variants that settle from scores.
type Posting struct {
	Snapshot *Snapshot `json:"snapshot,omitempty"`
}

func (p *Posting) Post(s Snapshot) {
	frozen := NewSnapshot(s.Scores, s.TeeBox)
	p.Snapshot = &frozen
}

func (p *Posting) Unpost() { p.Snapshot = nil }

func (p *Posting) Posted() bool { return p.Snapshot != nil }

// inputs picks the frozen snapshot over live data when one exists.
func (p *Posting) inputs(scores ScoreTable, tee coursedomain.TeeBox) (ScoreTable, coursedomain.TeeBox) {
	if p.Snapshot != nil {
		return p.Snapshot.Scores, p.Snapshot.TeeBox
	}
	return scores, tee
}

// Settlement is a per-player signed amount. Positive means the player collects.
type Settlement map[PlayerID]decimal.Decimal

func (s Settlement) Add(p PlayerID, amount decimal.Decimal) {
	s[p] = s[p].Add(amount)
}

func (s Settlement) Amount(p PlayerID) decimal.Decimal {
	return s[p]
}

// Sum is zero for a settlement that conserves stakes.
func (s Settlement) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, amt := range s {
		total = total.Add(amt)
	}
	return total
}

func comparePlayers(a, b PlayerID) int {
	return strings.Compare(a.String(), b.String())
}

// validatePlayers rejects nil ids and duplicates within one list.
func validatePlayers(players []PlayerID, min int) error {
	if len(players) < min {
		return fmt.Errorf("%w: need at least %d players, got %d", ErrInvalidBet, min, len(players))
	}
	seen := make(map[PlayerID]bool, len(players))
	for _, p := range players {
		if p == uuid.Nil {
			return fmt.Errorf("%w: empty player id", ErrInvalidBet)
		}
		if seen[p] {
			return fmt.Errorf("%w: player %s listed twice", ErrInvalidBet, p)
		}
		seen[p] = true
	}
	return nil
}

func validateStake(name string, stake decimal.Decimal) error {
	if stake.IsNegative() {
		return fmt.Errorf("%w: %s stake is negative", ErrInvalidBet, name)
	}
	return nil
}

// nine describes one nine-hole segment: holes [start, press) are played for
// the stake and press is the index of the optional press hole.
type nine struct {
	start, press int
}

var (
	frontNine = nine{start: 0, press: 8}
	backNine  = nine{start: 9, press: 17}
)

// segment is the full nine including the press hole.
type segment struct {
	start, end int
}

var (
	frontSegment = segment{start: 0, end: 9}
	backSegment  = segment{start: 9, end: 18}
)
