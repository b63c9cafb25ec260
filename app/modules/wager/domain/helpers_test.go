package wagerdomain

import (
	"strconv"
	"testing"

	coursedomain "github.com/Black-And-White-Club/wager-bot/app/modules/course/domain"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	alice = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	bob   = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	carol = uuid.MustParse("00000000-0000-0000-0000-00000000000c")
	dave  = uuid.MustParse("00000000-0000-0000-0000-00000000000d")
	erin  = uuid.MustParse("00000000-0000-0000-0000-00000000000e")
	frank = uuid.MustParse("00000000-0000-0000-0000-00000000000f")
)

// blueTee pars: 4 4 3 5 4 4 3 4 5 | 4 3 4 5 4 4 3 4 5
var blueTee = coursedomain.HomeCourse.TeeBoxes[0]

// parCard is a card with par on every hole.
func parCard() Card {
	var c Card
	for i := range c {
		c[i] = strconv.Itoa(blueTee.Par(i))
	}
	return c
}

// with returns c with a token written to the one-based hole.
func with(c Card, hole int, token string) Card {
	c[hole-1] = token
	return c
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Fatalf("%s=%s want=%s", label, got, want)
	}
}

// nearlyZero tolerates the last-digit residue of repeated decimal division.
func nearlyZero(d decimal.Decimal) bool {
	return d.Abs().LessThan(dec("0.000000001"))
}

// randomCard draws tokens a real card could hold, including unplayed holes,
// pickups and the occasional garbage entry.
func randomCard(f *gofakeit.Faker) Card {
	tokens := []string{"", "X", "?", "2", "3", "4", "5", "6", "7"}
	var c Card
	for i := range c {
		c[i] = f.RandomString(tokens)
	}
	return c
}

func randomTable(f *gofakeit.Faker, players ...PlayerID) ScoreTable {
	table := ScoreTable{}
	for _, p := range players {
		table[p] = randomCard(f)
	}
	return table
}
