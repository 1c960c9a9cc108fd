package poker

import (
	"fmt"
)

// TableConfig holds the fixed parameters of a table.
type TableConfig struct {
	SmallBlind   int64
	BigBlind     int64
	InitialStack int64
}

// Validate checks the blind and stack parameters.
func (c TableConfig) Validate() error {
	if c.SmallBlind <= 0 || c.BigBlind <= 0 || c.SmallBlind > c.BigBlind {
		return fmt.Errorf("invalid blinds: sb=%d bb=%d", c.SmallBlind, c.BigBlind)
	}
	if c.InitialStack <= 0 {
		return fmt.Errorf("initial stack must be > 0, got %d", c.InitialStack)
	}
	return nil
}

// Table is the whole mutable state of a tournament. It is created once and
// mutated in place by every hand (StartHand) and every episode (Revive).
// Seat order is the order of seats; it only changes through elimination and
// revival.
type Table struct {
	config TableConfig

	seats      []*Player
	eliminated []*Player

	dealer    int
	phase     Phase
	turn      int
	community []Card
	deck      *Deck
	minRaise  int64
}

// MaxPlayers is the largest table a single deck can serve: two hole cards
// each plus five board cards.
const MaxPlayers = (DeckSize - 5) / 2

// NewTable seats one player per policy, in order, at the initial stack.
func NewTable(cfg TableConfig, policies []Policy) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(policies) < 2 || len(policies) > MaxPlayers {
		return nil, fmt.Errorf("poker: must have 2 to %d players, got %d", MaxPlayers, len(policies))
	}

	t := &Table{config: cfg}
	for i, policy := range policies {
		if policy == nil {
			return nil, fmt.Errorf("poker: nil policy for seat %d", i)
		}
		name := seatName(i)
		if na, ok := policy.(NameAssigner); ok {
			na.AssignName(name)
		}
		t.seats = append(t.seats, newPlayer(name, policy, cfg.InitialStack))
	}
	return t, nil
}

// StartHand resets the per-hand state, moves the dealer one seat, deals two
// hole cards to everyone from deck and posts the blinds.
func (t *Table) StartHand(deck *Deck) error {
	n := len(t.seats)
	if n < 2 {
		return fmt.Errorf("poker: cannot start a hand with %d players", n)
	}

	for _, p := range t.seats {
		p.resetForNewHand()
	}
	t.deck = deck
	t.community = nil
	t.phase = Preflop
	t.minRaise = t.config.BigBlind
	t.dealer = (t.dealer + 1) % n

	for _, p := range t.seats {
		cards, err := t.deck.Draw(2)
		if err != nil {
			return fmt.Errorf("deal hole cards to %s: %w", p.Name, err)
		}
		p.Hand = cards
	}

	sb := t.seats[(t.dealer+1)%n]
	bb := t.seats[(t.dealer+2)%n]
	sb.setBet(min(t.config.SmallBlind, sb.Stack))
	bb.setBet(min(t.config.BigBlind, bb.Stack))

	t.turn = (t.dealer + 3) % n
	return nil
}

// nextSeat returns the seat after i, wrapping.
func (t *Table) nextSeat(i int) int {
	return (i + 1) % len(t.seats)
}

// prevSeat returns the seat before i, wrapping.
func (t *Table) prevSeat(i int) int {
	n := len(t.seats)
	return (i + n - 1) % n
}

// maxBet returns the largest bet at the table.
func (t *Table) maxBet() int64 {
	var hi int64
	for _, p := range t.seats {
		if p.Bet > hi {
			hi = p.Bet
		}
	}
	return hi
}

// foldedCount returns the number of folded seats.
func (t *Table) foldedCount() int {
	n := 0
	for _, p := range t.seats {
		if p.Folded {
			n++
		}
	}
	return n
}

// onlyContender reports whether folds have left exactly one player.
func (t *Table) onlyContender() bool {
	return t.foldedCount() == len(t.seats)-1
}

// pot returns the chips wagered so far this hand.
func (t *Table) pot() int64 {
	var total int64
	for _, p := range t.seats {
		total += p.Bet
	}
	return total
}

// totalStacks returns the sum of all stacks at the table.
func (t *Table) totalStacks() int64 {
	var total int64
	for _, p := range t.seats {
		total += p.Stack
	}
	return total
}

// eliminate removes seat i and keeps its record for revival.
func (t *Table) eliminate(i int) {
	p := t.seats[i]
	t.seats = append(t.seats[:i], t.seats[i+1:]...)
	t.eliminated = append(t.eliminated, p)
}

// Revive re-seats every eliminated player after the survivors, resets all
// stacks to the initial stack and puts the dealer back on the starting seat.
func (t *Table) Revive() {
	t.seats = append(t.seats, t.eliminated...)
	t.eliminated = nil
	for _, p := range t.seats {
		p.Stack = t.config.InitialStack
		p.resetForNewHand()
	}
	t.dealer = 0
	t.phase = Preflop
	t.community = nil
}

// Observation builds the snapshot offered to the player in seat.
func (t *Table) Observation(seat int) Observation {
	n := len(t.seats)
	obs := Observation{
		Seat:           seat,
		Name:           t.seats[seat].Name,
		HoleCards:      append([]Card(nil), t.seats[seat].Hand...),
		CommunityCards: append([]Card(nil), t.community...),
		Names:          make([]string, n),
		Stacks:         make([]int64, n),
		Bets:           make([]int64, n),
		Folded:         make([]bool, n),
		AllIn:          make([]bool, n),
		Phase:          t.phase,
		CurrentTurn:    t.turn,
		Dealer:         t.dealer,
		Pot:            t.pot(),
		MinRaise:       t.minRaise,
	}
	for i, p := range t.seats {
		obs.Names[i] = p.Name
		obs.Stacks[i] = p.Stack
		obs.Bets[i] = p.Bet
		obs.Folded[i] = p.Folded
		obs.AllIn[i] = p.AllIn
	}
	return obs
}

// SeatStates returns a snapshot of every seat in seat order.
func (t *Table) SeatStates() []SeatState {
	states := make([]SeatState, len(t.seats))
	for i, p := range t.seats {
		states[i] = SeatState{
			Name:   p.Name,
			Stack:  p.Stack,
			Bet:    p.Bet,
			Folded: p.Folded,
			AllIn:  p.AllIn,
		}
	}
	return states
}

// NumPlayers returns the number of seated players.
func (t *Table) NumPlayers() int { return len(t.seats) }

// Player returns the record in seat i.
func (t *Table) Player(i int) *Player { return t.seats[i] }

// Players returns the seated players in seat order.
func (t *Table) Players() []*Player { return append([]*Player(nil), t.seats...) }

// Eliminated returns the eliminated players in elimination order.
func (t *Table) Eliminated() []*Player { return append([]*Player(nil), t.eliminated...) }

// Dealer returns the dealer seat.
func (t *Table) Dealer() int { return t.dealer }

// Phase returns the current street.
func (t *Table) Phase() Phase { return t.phase }

// Turn returns the seat on turn.
func (t *Table) Turn() int { return t.turn }

// MinRaise returns the current minimum-raise floor.
func (t *Table) MinRaise() int64 { return t.minRaise }

// CommunityCards returns a copy of the board.
func (t *Table) CommunityCards() []Card { return append([]Card(nil), t.community...) }

// Names returns the seated players' names in seat order.
func (t *Table) Names() []string {
	names := make([]string, len(t.seats))
	for i, p := range t.seats {
		names[i] = p.Name
	}
	return names
}

// Stacks returns the seated players' stacks in seat order.
func (t *Table) Stacks() []int64 {
	stacks := make([]int64, len(t.seats))
	for i, p := range t.seats {
		stacks[i] = p.Stack
	}
	return stacks
}
