// Package coursedomain holds the static per-hole reference data a round is scored against.
package coursedomain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// HoleCount is the number of holes in a round.
const HoleCount = 18

var (
	ErrUnknownTeeBox = errors.New("unknown tee box")
	ErrInvalidHole   = errors.New("invalid hole")
)

// HoleInfo describes one hole as played from a tee box.
type HoleInfo struct {
	Number   int `json:"number" yaml:"number"`
	Par      int `json:"par" yaml:"par"`
	Yardage  int `json:"yardage" yaml:"yardage"`
	Handicap int `json:"handicap" yaml:"handicap"`
}

// TeeBox is an ordered set of 18 holes plus its course rating and slope.
type TeeBox struct {
	Name   string              `json:"name" yaml:"name"`
	Rating float64             `json:"rating" yaml:"rating"`
	Slope  int                 `json:"slope" yaml:"slope"`
	Holes  [HoleCount]HoleInfo `json:"holes" yaml:"holes"`
}

// Par returns the par of the hole at zero-based index i.
func (t TeeBox) Par(i int) int {
	return t.Holes[i].Par
}

func (t TeeBox) TotalPar() int {
	total := 0
	for _, h := range t.Holes {
		total += h.Par
	}
	return total
}

// Validate checks hole numbering and that every hole has a playable par
// and a unique handicap rank.
func (t TeeBox) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: tee box name is empty", ErrInvalidHole)
	}
	seen := make(map[int]bool, HoleCount)
	for i, h := range t.Holes {
		if h.Number != i+1 {
			return fmt.Errorf("%w: position %d holds hole %d", ErrInvalidHole, i+1, h.Number)
		}
		if h.Par < 3 || h.Par > 6 {
			return fmt.Errorf("%w: hole %d par %d", ErrInvalidHole, h.Number, h.Par)
		}
		if h.Handicap < 1 || h.Handicap > HoleCount || seen[h.Handicap] {
			return fmt.Errorf("%w: hole %d handicap %d", ErrInvalidHole, h.Number, h.Handicap)
		}
		seen[h.Handicap] = true
	}
	return nil
}

// Course is a named collection of tee boxes.
type Course struct {
	Name     string
	TeeBoxes []TeeBox
}

// TeeBox looks a tee box up by case-insensitive name.
func (c Course) TeeBox(name string) (TeeBox, error) {
	idx := slices.IndexFunc(c.TeeBoxes, func(t TeeBox) bool {
		return strings.EqualFold(t.Name, name)
	})
	if idx < 0 {
		return TeeBox{}, fmt.Errorf("%w: %q", ErrUnknownTeeBox, name)
	}
	return c.TeeBoxes[idx], nil
}

func (c Course) TeeBoxNames() []string {
	names := make([]string, 0, len(c.TeeBoxes))
	for _, t := range c.TeeBoxes {
		names = append(names, t.Name)
	}
	return names
}
