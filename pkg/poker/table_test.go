package poker

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

type namedPolicy struct {
	Policy
	name string
}

func (n *namedPolicy) AssignName(name string) { n.name = name }

func TestNewTableValidation(t *testing.T) {
	two := []Policy{passivePolicy(), passivePolicy()}

	tests := []struct {
		name     string
		cfg      TableConfig
		policies []Policy
	}{
		{"one player", testTableConfig, two[:1]},
		{"nil policy", testTableConfig, []Policy{passivePolicy(), nil}},
		{"zero small blind", TableConfig{SmallBlind: 0, BigBlind: 10, InitialStack: 100}, two},
		{"small above big", TableConfig{SmallBlind: 20, BigBlind: 10, InitialStack: 100}, two},
		{"empty stacks", TableConfig{SmallBlind: 5, BigBlind: 10}, two},
		{"too many players", testTableConfig, make([]Policy, MaxPlayers+1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTable(tc.cfg, tc.policies)
			require.Error(t, err)
		})
	}
}

func TestNewTableAssignsNames(t *testing.T) {
	a := &namedPolicy{Policy: passivePolicy()}
	b := &namedPolicy{Policy: passivePolicy()}
	tbl, err := NewTable(testTableConfig, []Policy{a, b, passivePolicy()})
	require.NoError(t, err)

	require.Equal(t, "player_A", a.name)
	require.Equal(t, "player_B", b.name)
	require.Equal(t, []string{"player_A", "player_B", "player_C"}, tbl.Names())
	require.Equal(t, []int64{100, 100, 100}, tbl.Stacks())
}

func TestStartHandPostsBlinds(t *testing.T) {
	tbl := newTestTable(t, 100, 100, 100, 100)
	require.NoError(t, tbl.StartHand(NewShuffledDeck(rand.New(rand.NewSource(3)))))

	require.Equal(t, 1, tbl.Dealer())
	require.Equal(t, 0, tbl.Turn())
	require.Equal(t, Preflop, tbl.Phase())
	require.EqualValues(t, 10, tbl.MinRaise())
	require.EqualValues(t, 5, tbl.Player(2).Bet)
	require.EqualValues(t, 10, tbl.Player(3).Bet)
	require.Zero(t, tbl.Player(0).Bet)
	for _, p := range tbl.Players() {
		require.Len(t, p.Hand, 2)
		require.Equal(t, int64(100), p.Stack, "stacks only move at settlement")
	}
}

func TestStartHandShortBlindGoesAllIn(t *testing.T) {
	tbl := newTestTable(t, 100, 100, 7)
	require.NoError(t, tbl.StartHand(NewShuffledDeck(rand.New(rand.NewSource(3)))))

	// Dealer 1: player_C posts the small blind, player_A the big blind.
	require.EqualValues(t, 5, tbl.Player(2).Bet)
	require.False(t, tbl.Player(2).AllIn)

	tbl = newTestTable(t, 7, 100, 100)
	require.NoError(t, tbl.StartHand(NewShuffledDeck(rand.New(rand.NewSource(3)))))
	require.EqualValues(t, 7, tbl.Player(0).Bet)
	require.True(t, tbl.Player(0).AllIn)
}

func TestStartHandDeckExhausted(t *testing.T) {
	tbl := newTestTable(t, 100, 100)
	err := tbl.StartHand(stackedDeck("Ah", "As", "Kh"))
	require.ErrorIs(t, err, ErrDeckExhausted)
}

func TestDealerRotation(t *testing.T) {
	tbl := newTestTable(t, 100, 100, 100)
	rng := rand.New(rand.NewSource(5))

	var dealers []int
	for i := 0; i < 5; i++ {
		require.NoError(t, tbl.StartHand(NewShuffledDeck(rng)))
		dealers = append(dealers, tbl.Dealer())
	}
	require.Equal(t, []int{1, 2, 0, 1, 2}, dealers)

	// Removing a seat keeps the advance at one seat modulo the new count.
	tbl.eliminate(0)
	require.NoError(t, tbl.StartHand(NewShuffledDeck(rng)))
	require.Equal(t, 1, tbl.Dealer())
}

func TestAdvancePhase(t *testing.T) {
	tbl := newTestTable(t, 100, 100, 100)
	require.NoError(t, tbl.StartHand(NewShuffledDeck(rand.New(rand.NewSource(9)))))

	steps := []struct {
		phase Phase
		board int
	}{
		{Flop, 3},
		{Turn, 4},
		{River, 5},
		{Showdown, 5},
	}
	for _, step := range steps {
		tbl.turn = 0
		require.NoError(t, tbl.AdvancePhase())
		require.Equal(t, step.phase, tbl.Phase())
		require.Len(t, tbl.CommunityCards(), step.board)
		if step.phase != Showdown {
			require.Equal(t, 2, tbl.Turn(), "dealer+1 opens every street")
		}
	}
	require.Equal(t, DeckSize-6-5, tbl.deck.Size())

	err := tbl.AdvancePhase()
	require.ErrorIs(t, err, ErrPhase)
}

func TestAdvancePhaseDeckExhausted(t *testing.T) {
	tbl := newTestTable(t, 100, 100)
	require.NoError(t, tbl.StartHand(stackedDeck("Ah", "As", "Kh", "Ks", "2c", "3c")))
	require.ErrorIs(t, tbl.AdvancePhase(), ErrDeckExhausted)
}

func TestRevive(t *testing.T) {
	tbl := newTestTable(t, 100, 100, 100, 100)
	require.NoError(t, tbl.StartHand(NewShuffledDeck(rand.New(rand.NewSource(2)))))
	tbl.seats[1].Stack = 0
	tbl.eliminate(1)
	tbl.seats[0].Stack = 0
	tbl.eliminate(0)
	tbl.seats[0].Stack = 250
	require.Equal(t, []string{"player_C", "player_D"}, tbl.Names())

	tbl.Revive()
	require.Equal(t, []string{"player_C", "player_D", "player_B", "player_A"}, tbl.Names())
	require.Equal(t, []int64{100, 100, 100, 100}, tbl.Stacks())
	require.Empty(t, tbl.Eliminated())
	require.Zero(t, tbl.Dealer())
	require.Equal(t, Preflop, tbl.Phase())
	require.Empty(t, tbl.CommunityCards())
	for _, p := range tbl.Players() {
		require.Zero(t, p.Bet)
		require.False(t, p.Folded)
		require.False(t, p.AllIn)
	}
}

func TestPlayerStatus(t *testing.T) {
	p := newPlayer("player_A", passivePolicy(), 50)
	status := func() string {
		return SeatState{Folded: p.Folded, AllIn: p.AllIn}.Status()
	}
	require.Equal(t, "No cards", p.GetHandString())
	require.Equal(t, "active", status())

	p.Hand = MustParseCards("Ah", "Td")
	require.Equal(t, "A♥ 10♦", p.GetHandString())

	p.setBet(50)
	require.True(t, p.AllIn)
	require.Equal(t, "all-in", status())

	p.Folded = true
	require.Equal(t, "folded", status())

	p.resetForNewHand()
	require.Zero(t, p.Bet)
	require.False(t, p.Folded)
	require.False(t, p.AllIn)
	require.Empty(t, p.Hand)
	require.EqualValues(t, 50, p.Stack)
}

func TestSeatName(t *testing.T) {
	require.Equal(t, "player_A", seatName(0))
	require.Equal(t, "player_Z", seatName(25))
	require.Equal(t, "player_26", seatName(26))
}
