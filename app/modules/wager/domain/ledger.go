package wagerdomain

import (
	"fmt"
	"maps"
	"slices"

	coursedomain "github.com/Black-And-White-Club/wager-bot/app/modules/course/domain"
	"github.com/shopspring/decimal"
)

// displayPlaces is the only point where amounts are rounded.
const displayPlaces = 2

// Ledger owns a round's live scores, the active tee box, every wager and the
// roster. Balances are always derived, never stored.
type Ledger struct {
	Scores ScoreTable
	TeeBox coursedomain.TeeBox
	Bets   []Bet
	Roster map[PlayerID]Player
}

func NewLedger(tee coursedomain.TeeBox) *Ledger {
	return &Ledger{
		Scores: ScoreTable{},
		TeeBox: tee,
		Roster: map[PlayerID]Player{},
	}
}

// Clone returns a deep copy of the ledger. Bets are copied through the codec
// so variant state such as snapshots and putting totals is not shared.
func (l *Ledger) Clone() (*Ledger, error) {
	data, err := MarshalBets(l.Bets)
	if err != nil {
		return nil, err
	}
	bets, err := UnmarshalBets(data)
	if err != nil {
		return nil, err
	}
	roster := maps.Clone(l.Roster)
	if roster == nil {
		roster = map[PlayerID]Player{}
	}
	return &Ledger{
		Scores: l.Scores.Clone(),
		TeeBox: l.TeeBox,
		Bets:   bets,
		Roster: roster,
	}, nil
}

// Balance is one player's position across every wager.
type Balance struct {
	Player    Player          `json:"player"`
	Main      decimal.Decimal `json:"main"`
	Side      decimal.Decimal `json:"side"`
	Projected decimal.Decimal `json:"projected"`
}

func (l *Ledger) AddPlayer(p Player) {
	if l.Roster == nil {
		l.Roster = map[PlayerID]Player{}
	}
	l.Roster[p.ID] = p
}

func (l *Ledger) AddBet(b Bet) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if _, ok := l.Bet(b.ID()); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateBet, b.ID())
	}
	l.Bets = append(l.Bets, b)
	return nil
}

func (l *Ledger) RemoveBet(id BetID) error {
	idx := slices.IndexFunc(l.Bets, func(b Bet) bool { return b.ID() == id })
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownBet, id)
	}
	l.Bets = slices.Delete(l.Bets, idx, idx+1)
	return nil
}

func (l *Ledger) Bet(id BetID) (Bet, bool) {
	idx := slices.IndexFunc(l.Bets, func(b Bet) bool { return b.ID() == id })
	if idx < 0 {
		return nil, false
	}
	return l.Bets[idx], true
}

func (l *Ledger) SetScore(p PlayerID, hole int, token string) error {
	if l.Scores == nil {
		l.Scores = ScoreTable{}
	}
	return l.Scores.SetScore(p, hole, token)
}

// ImportScores overwrites the cards of every player present in incoming.
func (l *Ledger) ImportScores(incoming ScoreTable) {
	if l.Scores == nil {
		l.Scores = ScoreTable{}
	}
	l.Scores.Merge(incoming)
}

// PostRound freezes the live scores and tee box into every postable bet and
// returns how many bets were posted.
func (l *Ledger) PostRound() int {
	snap := NewSnapshot(l.Scores, l.TeeBox)
	posted := 0
	for _, b := range l.Bets {
		if p, ok := b.(Postable); ok {
			p.Post(snap)
			posted++
		}
	}
	return posted
}

func (l *Ledger) UnpostRound() int {
	cleared := 0
	for _, b := range l.Bets {
		if p, ok := b.(Postable); ok && p.Posted() {
			p.Unpost()
			cleared++
		}
	}
	return cleared
}

// RecordPuttingOutcome applies one putting result. A non-empty key that the
// bet has already recorded is ignored.
func (l *Ledger) RecordPuttingOutcome(id BetID, key string, winners []PlayerID) error {
	b, ok := l.Bet(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBet, id)
	}
	putting, ok := b.(*PuttingLedgerBet)
	if !ok {
		return fmt.Errorf("%w: bet %s is a %s bet", ErrInvalidBet, id, b.Kind())
	}
	return putting.RecordOutcome(key, winners)
}

// TotalWinnings sums every posted main-sheet wager for p.
func (l *Ledger) TotalWinnings(p PlayerID) decimal.Decimal {
	return l.sum(p, func(b Bet) bool {
		if b.Kind().IsSideBet() {
			return false
		}
		postable, ok := b.(Postable)
		return ok && postable.Posted()
	})
}

// ProjectedWinnings is TotalWinnings with unposted wagers scored against live data.
func (l *Ledger) ProjectedWinnings(p PlayerID) decimal.Decimal {
	return l.sum(p, func(b Bet) bool { return !b.Kind().IsSideBet() })
}

func (l *Ledger) SideBetWinnings(p PlayerID) decimal.Decimal {
	return l.sum(p, func(b Bet) bool { return b.Kind().IsSideBet() })
}

func (l *Ledger) sum(p PlayerID, include func(Bet) bool) decimal.Decimal {
	total := decimal.Zero
	for _, b := range l.Bets {
		if !include(b) || !slices.Contains(b.Participants(), p) {
			continue
		}
		total = total.Add(b.Settle(l.Scores, l.TeeBox).Amount(p))
	}
	return total.Round(displayPlaces)
}

// Players lists everyone on the roster or in a wager, ordered by id.
func (l *Ledger) Players() []PlayerID {
	seen := map[PlayerID]bool{}
	for id := range l.Roster {
		seen[id] = true
	}
	for _, b := range l.Bets {
		for _, p := range b.Participants() {
			seen[p] = true
		}
	}
	players := make([]PlayerID, 0, len(seen))
	for p := range seen {
		players = append(players, p)
	}
	slices.SortFunc(players, comparePlayers)
	return players
}

func (l *Ledger) Balances() []Balance {
	players := l.Players()
	balances := make([]Balance, 0, len(players))
	for _, id := range players {
		player, ok := l.Roster[id]
		if !ok {
			player = Player{ID: id}
		}
		balances = append(balances, Balance{
			Player:    player,
			Main:      l.TotalWinnings(id),
			Side:      l.SideBetWinnings(id),
			Projected: l.ProjectedWinnings(id),
		})
	}
	return balances
}

// RoundComplete reports whether every player in a score-based wager has
// finished all 18 holes.
func (l *Ledger) RoundComplete() bool {
	scored := false
	for _, b := range l.Bets {
		if _, ok := b.(Postable); !ok {
			continue
		}
		for _, p := range b.Participants() {
			scored = true
			if !l.Scores.Card(p).Complete() {
				return false
			}
		}
	}
	return scored
}

// Posted reports whether any wager currently holds a frozen snapshot.
func (l *Ledger) Posted() bool {
	for _, b := range l.Bets {
		if p, ok := b.(Postable); ok && p.Posted() {
			return true
		}
	}
	return false
}
