// Package stats accumulates per-seat results over many hands and episodes.
package stats

import (
	"sort"

	"github.com/vctt94/pokerenv/pkg/poker"
)

// Seat is the running record of one seat name.
type Seat struct {
	Name        string
	EpisodeWins int
	HandsWon    int
	// Reward is the net chip result summed over every hand: winnings minus
	// the amount put in.
	Reward       int64
	Eliminations int
}

// Tally is a poker.HandObserver that counts results. A Tally belongs to a
// single game; use Merge to combine several.
type Tally struct {
	poker.NopObserver

	Episodes    int
	Truncated   int
	Hands       int
	Showdowns   int
	Uncontested int
	Remainder   int64

	seats map[string]*Seat
}

var _ poker.HandObserver = (*Tally)(nil)

// NewTally returns an empty Tally.
func NewTally() *Tally {
	return &Tally{seats: make(map[string]*Seat)}
}

func (t *Tally) seat(name string) *Seat {
	s, ok := t.seats[name]
	if !ok {
		s = &Seat{Name: name}
		t.seats[name] = s
	}
	return s
}

func (t *Tally) OnResolve(res *poker.ShowdownResult) {
	t.Hands++
	if res.Uncontested {
		t.Uncontested++
	} else {
		t.Showdowns++
	}
	t.Remainder += res.Remainder
	for name, put := range res.Contributions {
		won := res.Winnings[name]
		s := t.seat(name)
		s.Reward += won - put
		if won > put {
			s.HandsWon++
		}
	}
}

func (t *Tally) OnEliminated(names []string) {
	for _, name := range names {
		t.seat(name).Eliminations++
	}
}

func (t *Tally) OnEpisodeEnd(ep poker.EpisodeResult) {
	t.Episodes++
	if ep.Truncated {
		t.Truncated++
	}
	if ep.Winner != "" {
		t.seat(ep.Winner).EpisodeWins++
	}
}

// Seats returns the per-seat records sorted by episode wins, then reward.
func (t *Tally) Seats() []Seat {
	out := make([]Seat, 0, len(t.seats))
	for _, s := range t.seats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EpisodeWins != out[j].EpisodeWins {
			return out[i].EpisodeWins > out[j].EpisodeWins
		}
		if out[i].Reward != out[j].Reward {
			return out[i].Reward > out[j].Reward
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Merge sums several tallies into a new one. Nil entries are skipped.
func Merge(tallies ...*Tally) *Tally {
	total := NewTally()
	for _, t := range tallies {
		if t == nil {
			continue
		}
		total.Episodes += t.Episodes
		total.Truncated += t.Truncated
		total.Hands += t.Hands
		total.Showdowns += t.Showdowns
		total.Uncontested += t.Uncontested
		total.Remainder += t.Remainder
		for name, s := range t.seats {
			dst := total.seat(name)
			dst.EpisodeWins += s.EpisodeWins
			dst.HandsWon += s.HandsWon
			dst.Reward += s.Reward
			dst.Eliminations += s.Eliminations
		}
	}
	return total
}
