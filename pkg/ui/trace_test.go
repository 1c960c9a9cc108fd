package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vctt94/pokerenv/pkg/poker"
)

func TestTraceObserver(t *testing.T) {
	var buf bytes.Buffer
	o := NewTraceObserver(&buf, "[w0] ")

	o.OnHandStart(poker.HandStart{
		Episode:    1,
		Hand:       3,
		Dealer:     1,
		Names:      []string{"player_A", "player_B"},
		Stacks:     []int64{90, 110},
		SmallBlind: 5,
		BigBlind:   10,
	})
	o.OnAction(poker.ActionEvent{Name: "player_B", Action: poker.Action{Kind: poker.Raise, Amount: 30}})
	o.OnPhase(poker.PhaseEvent{
		Phase: poker.Flop,
		Board: poker.MustParseCards("Ah", "Td", "2c"),
		Pot:   60,
		Seats: []poker.SeatState{
			{Name: "player_A", Stack: 90, Bet: 30},
			{Name: "player_B", Stack: 110, Bet: 30, AllIn: true},
			{Name: "player_C", Stack: 50, Folded: true},
		},
	})
	o.OnResolve(&poker.ShowdownResult{
		TotalPot: 61,
		Ranking:  []string{"player_A", "player_B"},
		HoleCards: map[string][]poker.Card{
			"player_A": poker.MustParseCards("As", "Kd"),
			"player_B": poker.MustParseCards("Ad", "Qc"),
		},
		Hands: map[string]poker.HandValue{
			"player_A": {Description: "Pair"},
			"player_B": {Description: "Pair"},
		},
		Uncalled: &poker.UncalledBet{Name: "player_B", Amount: 20},
		Pots: []poker.PotResult{
			{Amount: 41, Winners: []string{"player_A", "player_B"}, Share: 20, Remainder: 1},
			{Amount: 20, Winners: []string{"player_A"}, Share: 20},
		},
	})
	o.OnEliminated([]string{"player_C"})
	o.OnEpisodeEnd(poker.EpisodeResult{Episode: 1, Hands: 3, Winner: "player_A"})

	out := buf.String()
	for _, want := range []string{
		"Episode 1, hand 3, dealer player_B, blinds 5/10",
		"stacks: player_A 90, player_B 110",
		"player_B: raise 30",
		"-- flop --",
		"A♥ 10♦ 2♣",
		"pot 60",
		"player_A   stack    90  bet    30  active",
		"player_B   stack   110  bet    30  all-in",
		"player_C   stack    50  bet     0  folded",
		"player_A shows A♠ K♦: Pair",
		"uncalled 20 returned to player_B",
		"main pot 41: player_A, player_B split 20 each, 1 left over",
		"side pot 1 20: player_A",
		"eliminated: player_C",
		"Episode 1 won by player_A after 3 hands",
	} {
		require.Contains(t, out, want)
	}
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		require.True(t, strings.HasPrefix(line, "[w0] "), line)
	}
}

func TestTraceUncontestedAndTruncated(t *testing.T) {
	var buf bytes.Buffer
	o := NewTraceObserver(&buf, "")

	o.OnResolve(&poker.ShowdownResult{
		TotalPot:    15,
		Uncontested: true,
		Pots:        []poker.PotResult{{Amount: 15, Winners: []string{"player_B"}, Share: 15}},
	})
	o.OnEpisodeEnd(poker.EpisodeResult{Episode: 2, Hands: 50, Truncated: true})

	require.Contains(t, buf.String(), "player_B wins 15 uncontested")
	require.Contains(t, buf.String(), "Episode 2 stopped after 50 hands")
}
