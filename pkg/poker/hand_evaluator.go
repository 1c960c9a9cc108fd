package poker

import (
	"fmt"

	"github.com/chehsunliu/poker"
)

// HandRank represents the category of a poker hand
type HandRank int

const (
	HighCard HandRank = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (r HandRank) String() string {
	switch r {
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "High Card"
	}
}

// HandValue is the evaluation of a player's best hand. Strength is totally
// ordered and a larger Strength always beats a smaller one, whatever the
// convention of the underlying evaluator.
type HandValue struct {
	Strength    int32
	Rank        HandRank
	Description string
}

// HandEvaluator ranks a player's hole cards together with the board. It is
// treated as a pure function.
type HandEvaluator interface {
	Evaluate(hole, board []Card) (HandValue, error)
}

// CompareHands compares two hand values and returns:
// -1 if handA is worse, 0 on a tie, 1 if handA is better.
func CompareHands(handA, handB HandValue) int {
	switch {
	case handA.Strength > handB.Strength:
		return 1
	case handA.Strength < handB.Strength:
		return -1
	}
	return 0
}

// chehsunliuWorstRank is the rank value of the weakest 5-card hand (7-5-4-3-2
// offsuit). The library ranks 1 (royal flush) to 7462.
const chehsunliuWorstRank = 7462

// ChehsunliuEvaluator evaluates hands with github.com/chehsunliu/poker, where
// lower rank values are better. The rank is inverted into Strength.
type ChehsunliuEvaluator struct{}

// Evaluate implements HandEvaluator.
func (ChehsunliuEvaluator) Evaluate(hole, board []Card) (HandValue, error) {
	all := make([]Card, 0, len(hole)+len(board))
	all = append(all, hole...)
	all = append(all, board...)
	if len(all) < 5 || len(all) > 7 {
		return HandValue{}, fmt.Errorf("evaluate: need 5 to 7 cards, got %d", len(all))
	}

	cards := make([]poker.Card, len(all))
	for i, card := range all {
		cards[i] = convertCardToChehsunliu(card)
	}

	rank := poker.Evaluate(cards)
	rankClass := poker.RankClass(rank)
	return HandValue{
		Strength:    chehsunliuWorstRank + 1 - rank,
		Rank:        convertRankClassToHandRank(rankClass),
		Description: poker.RankString(rank),
	}, nil
}

// convertCardToChehsunliu converts our Card type to the chehsunliu/poker Card type
func convertCardToChehsunliu(card Card) poker.Card {
	return poker.NewCard(card.Short())
}

// convertRankClassToHandRank converts chehsunliu rank class to our HandRank
func convertRankClassToHandRank(rankClass int32) HandRank {
	switch rankClass {
	case 1:
		return StraightFlush
	case 2:
		return FourOfAKind
	case 3:
		return FullHouse
	case 4:
		return Flush
	case 5:
		return Straight
	case 6:
		return ThreeOfAKind
	case 7:
		return TwoPair
	case 8:
		return Pair
	default:
		return HighCard
	}
}
