package poker

import (
	"fmt"
	"sort"
)

// Pot is one layer of the chips wagered this hand. Eligible lists the
// non-folded players who contributed to the whole layer.
type Pot struct {
	Amount   int64
	Eligible []string

	seats []int
}

// UncalledBet is the top of a bet that nobody else matched or contributed
// to. It goes back to the bettor instead of forming a pot.
type UncalledBet struct {
	Name   string
	Amount int64
}

// PotResult is the outcome of one pot.
type PotResult struct {
	Amount   int64
	Eligible []string
	Winners  []string
	Share    int64
	// Remainder is the part of Amount that did not divide evenly between
	// Winners. It is tracked but not paid to anyone.
	Remainder int64
}

// ShowdownResult describes how a hand was settled.
type ShowdownResult struct {
	TotalPot      int64
	Uncontested   bool
	Pots          []PotResult
	Uncalled      *UncalledBet
	Hands         map[string]HandValue
	HoleCards     map[string][]Card // contenders only, set at showdown
	Ranking       []string          // strongest first
	Contributions map[string]int64
	Winnings      map[string]int64
	Remainder     int64
	Eliminated    []string
}

// BuildPots layers the players' contributions into pots from the smallest
// all-in level upwards. Each iteration takes the smallest remaining
// contribution of a non-folded player and peels that much, clamped, off every
// player's remaining contribution. A top layer paid by a single player is
// returned as an uncalled bet. Chips left over only by folded players are
// dead money and join the last pot.
func BuildPots(players []*Player) ([]Pot, *UncalledBet) {
	remaining := make([]int64, len(players))
	for i, p := range players {
		remaining[i] = p.Bet
	}

	var (
		pots     []Pot
		uncalled *UncalledBet
	)
	for {
		var layer int64
		for i, p := range players {
			if p.Folded || remaining[i] == 0 {
				continue
			}
			if layer == 0 || remaining[i] < layer {
				layer = remaining[i]
			}
		}
		if layer == 0 {
			break
		}

		var pot Pot
		contributors := 0
		for i, p := range players {
			if remaining[i] == 0 {
				continue
			}
			c := min(layer, remaining[i])
			remaining[i] -= c
			pot.Amount += c
			contributors++
			if !p.Folded {
				pot.Eligible = append(pot.Eligible, p.Name)
				pot.seats = append(pot.seats, i)
			}
		}

		if contributors == 1 {
			uncalled = &UncalledBet{Name: pot.Eligible[0], Amount: pot.Amount}
			continue
		}
		pots = append(pots, pot)
	}

	var dead int64
	for _, r := range remaining {
		dead += r
	}
	if dead > 0 {
		if len(pots) == 0 {
			pots = append(pots, Pot{})
		}
		pots[len(pots)-1].Amount += dead
	}
	return pots, uncalled
}

// Resolve settles the hand: it builds the pots, ranks the contenders, pays
// every pot to its best eligible hands, charges every player their bet and
// eliminates anyone left with nothing. When folds have left one contender it
// takes everything without any evaluation.
//
// A ErrChipConservation error means the table is corrupt and must not be used
// any further.
func (t *Table) Resolve(eval HandEvaluator) (*ShowdownResult, error) {
	before := t.totalStacks()
	res := &ShowdownResult{
		TotalPot:      t.pot(),
		Contributions: make(map[string]int64, len(t.seats)),
		Winnings:      make(map[string]int64, len(t.seats)),
	}
	for _, p := range t.seats {
		res.Contributions[p.Name] = p.Bet
	}

	if t.onlyContender() {
		if err := t.awardUncontested(res); err != nil {
			return nil, err
		}
	} else if err := t.awardShowdown(eval, res); err != nil {
		return nil, err
	}

	for i := 0; i < len(t.seats); i++ {
		p := t.seats[i]
		p.Stack += res.Winnings[p.Name] - p.Bet
		p.Bet = 0
		if p.Stack == 0 {
			t.eliminate(i)
			res.Eliminated = append(res.Eliminated, p.Name)
			i--
		}
	}

	after := t.totalStacks()
	if after+res.Remainder != before {
		return res, fmt.Errorf("%w: stacks before %d, after %d, remainder %d",
			ErrChipConservation, before, after, res.Remainder)
	}
	return res, nil
}

func (t *Table) awardUncontested(res *ShowdownResult) error {
	for _, p := range t.seats {
		if p.Folded {
			continue
		}
		res.Uncontested = true
		res.Pots = []PotResult{{
			Amount:   res.TotalPot,
			Eligible: []string{p.Name},
			Winners:  []string{p.Name},
			Share:    res.TotalPot,
		}}
		res.Winnings[p.Name] = res.TotalPot
		return nil
	}
	return fmt.Errorf("poker: no contender left to award the pot")
}

func (t *Table) awardShowdown(eval HandEvaluator, res *ShowdownResult) error {
	res.Hands = make(map[string]HandValue)
	res.HoleCards = make(map[string][]Card)
	var contenders []int
	for i, p := range t.seats {
		if p.Folded {
			continue
		}
		hv, err := eval.Evaluate(p.Hand, t.community)
		if err != nil {
			return fmt.Errorf("evaluate %s: %w", p.Name, err)
		}
		res.Hands[p.Name] = hv
		res.HoleCards[p.Name] = append([]Card(nil), p.Hand...)
		contenders = append(contenders, i)
	}

	sort.SliceStable(contenders, func(a, b int) bool {
		return CompareHands(res.Hands[t.seats[contenders[a]].Name], res.Hands[t.seats[contenders[b]].Name]) > 0
	})
	for _, i := range contenders {
		res.Ranking = append(res.Ranking, t.seats[i].Name)
	}

	pots, uncalled := BuildPots(t.seats)
	if uncalled != nil {
		res.Uncalled = uncalled
		res.Winnings[uncalled.Name] += uncalled.Amount
	}

	for _, pot := range pots {
		pr := PotResult{Amount: pot.Amount, Eligible: pot.Eligible}
		if len(pot.seats) == 0 {
			// Nobody can win it; it is forfeited like a split remainder.
			pr.Remainder = pot.Amount
			res.Remainder += pot.Amount
			res.Pots = append(res.Pots, pr)
			continue
		}

		var best *HandValue
		for _, i := range pot.seats {
			name := t.seats[i].Name
			hv := res.Hands[name]
			switch {
			case best == nil || CompareHands(hv, *best) > 0:
				best = &hv
				pr.Winners = []string{name}
			case CompareHands(hv, *best) == 0:
				pr.Winners = append(pr.Winners, name)
			}
		}

		pr.Share = pot.Amount / int64(len(pr.Winners))
		pr.Remainder = pot.Amount % int64(len(pr.Winners))
		for _, w := range pr.Winners {
			res.Winnings[w] += pr.Share
		}
		res.Remainder += pr.Remainder
		res.Pots = append(res.Pots, pr)
	}
	return nil
}
