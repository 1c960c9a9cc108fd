package poker

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// passivePolicy checks when it can and calls otherwise.
func passivePolicy() Policy {
	return PolicyFunc(func(obs Observation, legal []LegalAction) (Action, error) {
		if _, ok := Offered(legal, Check); ok {
			return Action{Kind: Check}, nil
		}
		if l, ok := Offered(legal, Call); ok {
			return Action{Kind: Call, Amount: l.Min}, nil
		}
		return Action{Kind: Fold}, nil
	})
}

// folderPolicy folds whenever folding is offered.
func folderPolicy() Policy {
	return PolicyFunc(func(obs Observation, legal []LegalAction) (Action, error) {
		if _, ok := Offered(legal, Fold); ok {
			return Action{Kind: Fold}, nil
		}
		if l, ok := Offered(legal, Call); ok {
			return Action{Kind: Call, Amount: l.Min}, nil
		}
		return Action{Kind: Check}, nil
	})
}

// randomPolicy picks uniformly among the offered actions.
func randomPolicy(seed int64) Policy {
	rng := rand.New(rand.NewSource(seed))
	return PolicyFunc(func(obs Observation, legal []LegalAction) (Action, error) {
		l := legal[rng.Intn(len(legal))]
		a := Action{Kind: l.Kind, Amount: l.Min}
		if l.Max > l.Min {
			a.Amount += rng.Int63n(l.Max - l.Min + 1)
		}
		return a, nil
	})
}

// scriptPolicy replays actions in order and then falls back to passive play.
type scriptPolicy struct {
	actions []Action
	seen    []Observation
}

func (s *scriptPolicy) Decide(obs Observation, legal []LegalAction) (Action, error) {
	s.seen = append(s.seen, obs)
	if len(s.actions) == 0 {
		return passivePolicy().Decide(obs, legal)
	}
	a := s.actions[0]
	s.actions = s.actions[1:]
	return a, nil
}

// failingEvaluator fails the test if a hand is ever evaluated.
type failingEvaluator struct{ t *testing.T }

func (f failingEvaluator) Evaluate(hole, board []Card) (HandValue, error) {
	f.t.Errorf("unexpected evaluation of %v", hole)
	return HandValue{}, fmt.Errorf("no evaluation expected")
}

// recordingObserver keeps the events it is given.
type recordingObserver struct {
	NopObserver
	starts     []HandStart
	actions    []ActionEvent
	phases     []PhaseEvent
	results    []*ShowdownResult
	eliminated [][]string
	episodes   []EpisodeResult
}

func (r *recordingObserver) OnHandStart(e HandStart) { r.starts = append(r.starts, e) }
func (r *recordingObserver) OnAction(e ActionEvent) { r.actions = append(r.actions, e) }
func (r *recordingObserver) OnPhase(e PhaseEvent) { r.phases = append(r.phases, e) }
func (r *recordingObserver) OnResolve(res *ShowdownResult) { r.results = append(r.results, res) }
func (r *recordingObserver) OnEliminated(names []string) { r.eliminated = append(r.eliminated, names) }
func (r *recordingObserver) OnEpisodeEnd(ep EpisodeResult) { r.episodes = append(r.episodes, ep) }

var testTableConfig = TableConfig{SmallBlind: 5, BigBlind: 10, InitialStack: 100}

// newTestTable seats passive players with the given stacks.
func newTestTable(t *testing.T, stacks ...int64) *Table {
	t.Helper()
	policies := make([]Policy, len(stacks))
	for i := range policies {
		policies[i] = passivePolicy()
	}
	tbl, err := NewTable(testTableConfig, policies)
	require.NoError(t, err)
	for i, s := range stacks {
		tbl.seats[i].Stack = s
	}
	return tbl
}

// stackedDeck deals cards in the given order: two hole cards per seat
// starting at seat 0, then flop, turn and river.
func stackedDeck(cards ...string) *Deck {
	return NewDeckFromCards(MustParseCards(cards...))
}

// dealBoard advances the table to showdown.
func dealBoard(t *testing.T, tbl *Table) {
	t.Helper()
	for tbl.Phase() != Showdown {
		require.NoError(t, tbl.AdvancePhase())
	}
}

// setBets overrides the wagers of a started hand.
func setBets(tbl *Table, bets ...int64) {
	for i, b := range bets {
		p := tbl.seats[i]
		p.Bet = b
		p.AllIn = p.Stack == b
	}
}
