package poker

import (
	"fmt"
	"slices"
)

// DecisionFunc asks the policy of seat for an action. The betting round
// validates the answer before applying it.
type DecisionFunc func(seat int, obs Observation, legal []LegalAction) (Action, error)

// LegalActions returns the offer for the player in seat. It is empty when
// the player cannot act: folded, all-in, or nothing left to do because every
// other player is folded or all-in and the bet is already matched.
func (t *Table) LegalActions(seat int) []LegalAction {
	p := t.seats[seat]
	if p.Folded || p.AllIn {
		return nil
	}

	maxBet := t.maxBet()
	call := min(maxBet, p.Stack)

	if t.othersLocked(seat) {
		if p.Bet != maxBet {
			return []LegalAction{{Kind: Call, Min: call, Max: call}}
		}
		return nil
	}

	legal := []LegalAction{{Kind: Fold}}
	if p.Bet == maxBet {
		legal = append(legal, LegalAction{Kind: Check})
	} else {
		legal = append(legal, LegalAction{Kind: Call, Min: call, Max: call})
	}

	if p.Stack > maxBet {
		lo := maxBet + t.minRaise
		// Short stacks can only shove what they have.
		if p.Stack < 2*maxBet || p.Stack < lo {
			lo = p.Stack
		}
		legal = append(legal, LegalAction{Kind: Raise, Min: lo, Max: p.Stack})
	}
	return legal
}

// othersLocked reports whether every seat other than seat is folded or
// all-in, so no further raising is possible.
func (t *Table) othersLocked(seat int) bool {
	for i, p := range t.seats {
		if i != seat && p.canAct() {
			return false
		}
	}
	return true
}

// roundSettled reports whether the street can end without asking anyone:
// nobody can act, or the only player who can act owes nothing.
func (t *Table) roundSettled() bool {
	maxBet := t.maxBet()
	active := 0
	owes := false
	for _, p := range t.seats {
		if !p.canAct() {
			continue
		}
		active++
		if p.Bet < maxBet {
			owes = true
		}
	}
	return active == 0 || (active == 1 && !owes)
}

// BettingRound runs one street of betting from the seat on turn. The round
// ends when play comes back around to the last aggressor marker, which
// starts on the seat before the first actor and moves to the seat before
// every raiser, or as soon as folds leave one contender.
func (t *Table) BettingRound(decide DecisionFunc) error {
	lastAggressor := t.prevSeat(t.turn)

	for {
		p := t.seats[t.turn]
		if p.Folded {
			if t.turn == lastAggressor {
				return nil
			}
			t.turn = t.nextSeat(t.turn)
			continue
		}

		if t.roundSettled() {
			return nil
		}

		if legal := t.LegalActions(t.turn); len(legal) > 0 {
			// The policy gets its own copy; the answer is checked against ours.
			action, err := decide(t.turn, t.Observation(t.turn), slices.Clone(legal))
			if err != nil {
				return fmt.Errorf("policy for %s: %w", p.Name, err)
			}
			if err := validateAction(action, legal); err != nil {
				return fmt.Errorf("policy for %s: %w", p.Name, err)
			}
			if t.applyAction(t.turn, action) {
				lastAggressor = t.prevSeat(t.turn)
			}
		}

		if t.onlyContender() || t.turn == lastAggressor {
			return nil
		}
		t.turn = t.nextSeat(t.turn)
	}
}

// ApplyAction validates a against the current offer for seat and applies it.
// It is the single-step entry point for drivers that run their own loop.
func (t *Table) ApplyAction(seat int, a Action) error {
	if err := validateAction(a, t.LegalActions(seat)); err != nil {
		return fmt.Errorf("%s: %w", t.seats[seat].Name, err)
	}
	t.applyAction(seat, a)
	return nil
}

// applyAction mutates the table for an already validated action and reports
// whether it reopened the betting.
func (t *Table) applyAction(seat int, a Action) bool {
	p := t.seats[seat]
	switch a.Kind {
	case Fold:
		p.Folded = true
	case Check:
	case Call:
		p.setBet(a.Amount)
	case Raise:
		if inc := a.Amount - t.maxBet(); inc > t.minRaise {
			t.minRaise = inc
		}
		p.setBet(a.Amount)
		return true
	}
	return false
}
