package poker

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

var evaluatorCases = []struct {
	name  string
	hole  []Card
	board []Card
	rank  HandRank
}{
	{"royal flush", MustParseCards("Ah", "Kh"), MustParseCards("Qh", "Jh", "Th", "3c", "4d"), StraightFlush},
	{"four of a kind", MustParseCards("9s", "9h"), MustParseCards("9d", "9c", "2h", "5s", "Kd"), FourOfAKind},
	{"full house", MustParseCards("Ks", "Kh"), MustParseCards("Kd", "2c", "2h", "5s", "7d"), FullHouse},
	{"flush", MustParseCards("2h", "9h"), MustParseCards("Jh", "4h", "6h", "Kc", "Qd"), Flush},
	{"straight", MustParseCards("5c", "6d"), MustParseCards("7h", "8s", "9c", "2d", "Kh"), Straight},
	{"wheel", MustParseCards("Ac", "2d"), MustParseCards("3h", "4s", "5c", "9d", "Kh"), Straight},
	{"three of a kind", MustParseCards("Qs", "Qh"), MustParseCards("Qd", "2c", "7h", "9s", "4d"), ThreeOfAKind},
	{"two pair", MustParseCards("Js", "Jh"), MustParseCards("4d", "4c", "8h", "9s", "Ad"), TwoPair},
	{"pair", MustParseCards("Ts", "Th"), MustParseCards("2d", "5c", "8h", "Js", "Ad"), Pair},
	{"high card", MustParseCards("2s", "7h"), MustParseCards("9d", "Jc", "Kh", "4s", "3d"), HighCard},
}

func TestChehsunliuEvaluator(t *testing.T) {
	var prev *HandValue
	for _, tc := range evaluatorCases {
		t.Run(tc.name, func(t *testing.T) {
			hv, err := ChehsunliuEvaluator{}.Evaluate(tc.hole, tc.board)
			require.NoError(t, err)
			require.Equal(t, tc.rank, hv.Rank)
			require.NotEmpty(t, hv.Description)
			if prev != nil && prev.Rank != hv.Rank {
				require.Equal(t, 1, CompareHands(*prev, hv), "%s should beat %s", prev.Rank, hv.Rank)
			}
			prev = &hv
		})
	}
}

func TestChehsunliuEvaluatorStrengthBounds(t *testing.T) {
	best, err := ChehsunliuEvaluator{}.Evaluate(MustParseCards("Ah", "Kh"), MustParseCards("Qh", "Jh", "Th"))
	require.NoError(t, err)
	require.EqualValues(t, 7462, best.Strength)

	worst, err := ChehsunliuEvaluator{}.Evaluate(MustParseCards("7h", "5d"), MustParseCards("4c", "3s", "2h"))
	require.NoError(t, err)
	require.EqualValues(t, 1, worst.Strength)

	_, err = ChehsunliuEvaluator{}.Evaluate(MustParseCards("7h", "5d"), MustParseCards("4c", "3s"))
	require.Error(t, err)
}

func TestEval7EvaluatorAgreesOnOrder(t *testing.T) {
	values := make([]HandValue, len(evaluatorCases))
	for i, tc := range evaluatorCases {
		hv, err := Eval7Evaluator{}.Evaluate(tc.hole, tc.board)
		require.NoError(t, err, tc.name)
		require.Equal(t, tc.rank, hv.Rank, tc.name)
		require.NotEmpty(t, hv.Description)
		values[i] = hv
	}

	for i := 1; i < len(values); i++ {
		if values[i-1].Rank == values[i].Rank {
			continue
		}
		require.Equal(t, 1, CompareHands(values[i-1], values[i]),
			"%s should beat %s", evaluatorCases[i-1].name, evaluatorCases[i].name)
	}
}

func TestRankFromDescription(t *testing.T) {
	for desc, want := range map[string]HandRank{
		"A straight flush": StraightFlush,
		"5 straight flush": StraightFlush,
		"TTTT-2":           FourOfAKind,
		"KKK-22":           FullHouse,
		"AQ875 flush":      Flush,
		"5 straight":       Straight,
		"QQQ-3-2":          ThreeOfAKind,
		"99-77-A":          TwoPair,
		"22-A-K-Q":         Pair,
		"7-5-4-3-2":        HighCard,
	} {
		got, err := rankFromDescription(desc)
		require.NoError(t, err, desc)
		require.Equal(t, want, got, desc)
	}

	for _, desc := range []string{"", "AAA", "garbage"} {
		_, err := rankFromDescription(desc)
		require.Error(t, err, desc)
	}
}

func TestEvaluatorsAgreeOnRank(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		cards, err := NewShuffledDeck(rng).Draw(7)
		require.NoError(t, err)
		a, err := ChehsunliuEvaluator{}.Evaluate(cards[:2], cards[2:])
		require.NoError(t, err)
		b, err := Eval7Evaluator{}.Evaluate(cards[:2], cards[2:])
		require.NoError(t, err)
		require.Equal(t, a.Rank, b.Rank, "%v: %s", cards, b.Description)
	}
}

func TestEval7EvaluatorTies(t *testing.T) {
	board := MustParseCards("2c", "3d", "8h", "9s", "Jc")
	a, err := Eval7Evaluator{}.Evaluate(MustParseCards("Ah", "Kd"), board)
	require.NoError(t, err)
	b, err := Eval7Evaluator{}.Evaluate(MustParseCards("As", "Kc"), board)
	require.NoError(t, err)
	require.Zero(t, CompareHands(a, b))
}

func TestEval7EvaluatorNeedsSevenCards(t *testing.T) {
	_, err := Eval7Evaluator{}.Evaluate(MustParseCards("Ah", "Kd"), MustParseCards("2c", "3d", "8h", "9s"))
	require.Error(t, err)
}

func TestCompareHands(t *testing.T) {
	require.Equal(t, 1, CompareHands(HandValue{Strength: 10}, HandValue{Strength: 9}))
	require.Equal(t, -1, CompareHands(HandValue{Strength: 9}, HandValue{Strength: 10}))
	require.Zero(t, CompareHands(HandValue{Strength: 9}, HandValue{Strength: 9}))
}
