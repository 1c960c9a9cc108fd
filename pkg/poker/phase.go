package poker

import "fmt"

// Phase is a street of the hand.
type Phase int

const (
	Preflop Phase = iota
	Flop
	Turn
	River
	Showdown
)

func (p Phase) String() string {
	switch p {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// ParsePhase parses the names produced by Phase.String.
func ParsePhase(s string) (Phase, error) {
	for p := Preflop; p <= Showdown; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", s)
}

// communityDeal is the number of board cards dealt when entering a phase.
var communityDeal = map[Phase]int{
	Flop:     3,
	Turn:     1,
	River:    1,
	Showdown: 0,
}

// AdvancePhase moves the table to the next street, deals its board cards and
// hands the turn to the seat after the dealer. Showdown is terminal.
func (t *Table) AdvancePhase() error {
	if t.phase == Showdown {
		return fmt.Errorf("%w: cannot advance past %s", ErrPhase, t.phase)
	}
	next := t.phase + 1

	if n := communityDeal[next]; n > 0 {
		cards, err := t.deck.Draw(n)
		if err != nil {
			return fmt.Errorf("deal %s: %w", next, err)
		}
		t.community = append(t.community, cards...)
	}

	t.phase = next
	if next != Showdown {
		t.turn = t.nextSeat(t.dealer)
	}
	return nil
}
