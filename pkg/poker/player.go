package poker

import (
	"fmt"
	"strings"
)

// Player is one seat's record. Records are only created, removed and
// re-appended by Table, so every per-seat attribute moves together.
type Player struct {
	// Identity, stable across hands and episodes
	Name   string
	Policy Policy

	// Chips at the start of the current hand. Settlement is the only place
	// that changes it.
	Stack int64

	// Absolute amount wagered so far this hand, across all streets.
	Bet int64

	Folded bool
	AllIn  bool
	Hand   []Card
}

// newPlayer creates a seat record with the given starting stack.
func newPlayer(name string, policy Policy, stack int64) *Player {
	return &Player{
		Name:   name,
		Policy: policy,
		Stack:  stack,
		Hand:   make([]Card, 0, 2),
	}
}

// resetForNewHand clears the per-hand state while keeping identity and stack.
func (p *Player) resetForNewHand() {
	p.Bet = 0
	p.Folded = false
	p.AllIn = false
	p.Hand = make([]Card, 0, 2)
}

// setBet moves the player's bet to amount and marks them all-in when it
// exhausts the stack.
func (p *Player) setBet(amount int64) {
	p.Bet = amount
	if p.Stack-p.Bet == 0 {
		p.AllIn = true
	}
}

// canAct reports whether the player can still make decisions this hand.
func (p *Player) canAct() bool {
	return !p.Folded && !p.AllIn
}

// GetHandString returns a string representation of the player's hand
func (p *Player) GetHandString() string {
	if len(p.Hand) == 0 {
		return "No cards"
	}
	parts := make([]string, len(p.Hand))
	for i, card := range p.Hand {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}

// seatName returns the default display name for seat i: player_A, player_B...
func seatName(i int) string {
	if i < 26 {
		return fmt.Sprintf("player_%c", 'A'+i)
	}
	return fmt.Sprintf("player_%d", i)
}
