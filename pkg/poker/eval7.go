package poker

import (
	"fmt"
	"strings"

	ph "github.com/paulhankin/poker"
)

// Eval7Evaluator evaluates exactly seven cards with github.com/paulhankin/poker.
// Its scores already grow with hand strength, so they are used as is.
type Eval7Evaluator struct{}

// Evaluate implements HandEvaluator.
func (Eval7Evaluator) Evaluate(hole, board []Card) (HandValue, error) {
	if len(hole)+len(board) != 7 {
		return HandValue{}, fmt.Errorf("eval7: need exactly 7 cards, got %d", len(hole)+len(board))
	}

	var hand [7]ph.Card
	for i, c := range append(append([]Card{}, board...), hole...) {
		pc, err := toPaulhankin(c)
		if err != nil {
			return HandValue{}, fmt.Errorf("eval7: card %d: %w", i, err)
		}
		hand[i] = pc
	}

	desc, err := ph.Describe(hand[:])
	if err != nil {
		return HandValue{}, fmt.Errorf("eval7: describe: %w", err)
	}

	rank, err := rankFromDescription(desc)
	if err != nil {
		return HandValue{}, fmt.Errorf("eval7: %w", err)
	}

	return HandValue{
		Strength:    int32(ph.Eval7(&hand)),
		Rank:        rank,
		Description: desc,
	}, nil
}

// rankFromDescription reads the hand category out of the library's long
// description of the best five cards, such as "KKK-22", "AA-Q-J-7",
// "AQ875 flush" or "5 straight".
func rankFromDescription(desc string) (HandRank, error) {
	switch {
	case strings.HasSuffix(desc, " straight flush"):
		return StraightFlush, nil
	case strings.HasSuffix(desc, " straight"):
		return Straight, nil
	case strings.HasSuffix(desc, " flush"):
		return Flush, nil
	}

	groups := strings.Split(desc, "-")
	if len(groups) < 2 || len(groups) > 5 {
		return HighCard, fmt.Errorf("unrecognized hand %q", desc)
	}
	switch len(groups[0]) {
	case 4:
		return FourOfAKind, nil
	case 3:
		if len(groups[1]) == 2 {
			return FullHouse, nil
		}
		return ThreeOfAKind, nil
	case 2:
		if len(groups[1]) == 2 {
			return TwoPair, nil
		}
		return Pair, nil
	case 1:
		return HighCard, nil
	}
	return HighCard, fmt.Errorf("unrecognized hand %q", desc)
}

// toPaulhankin maps a Card onto the library's suit (0 clubs, 1 diamonds,
// 2 hearts, 3 spades) and rank (ace 1 through king 13) numbering.
func toPaulhankin(c Card) (ph.Card, error) {
	var zero ph.Card
	var suit uint8
	switch c.suit {
	case Clubs:
		suit = 0
	case Diamonds:
		suit = 1
	case Hearts:
		suit = 2
	case Spades:
		suit = 3
	default:
		return zero, fmt.Errorf("invalid suit %q", c.suit)
	}
	rank := valueToInt(c.value)
	if rank == 0 {
		return zero, fmt.Errorf("invalid value %q", c.value)
	}
	if rank == 14 {
		rank = 1
	}
	return ph.MakeCard(ph.Suit(suit), ph.Rank(rank))
}

// valueToInt converts a card Value to its integer representation
func valueToInt(value Value) int {
	switch value {
	case Ace:
		return 14
	case King:
		return 13
	case Queen:
		return 12
	case Jack:
		return 11
	case Ten:
		return 10
	case Nine:
		return 9
	case Eight:
		return 8
	case Seven:
		return 7
	case Six:
		return 6
	case Five:
		return 5
	case Four:
		return 4
	case Three:
		return 3
	case Two:
		return 2
	default:
		return 0
	}
}
