package policyrpc

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/vctt94/pokerenv/pkg/poker"
)

// EncodeRequest packs an observation and its offer into a Struct. Cards use
// the two-character notation and phases and action kinds their lower case
// names.
func EncodeRequest(obs poker.Observation, legal []poker.LegalAction) (*structpb.Struct, error) {
	offer := make([]any, len(legal))
	for i, l := range legal {
		offer[i] = map[string]any{
			"kind": l.Kind.String(),
			"min":  l.Min,
			"max":  l.Max,
		}
	}

	m := map[string]any{
		"seat":            obs.Seat,
		"name":            obs.Name,
		"hole_cards":      cardList(obs.HoleCards),
		"community_cards": cardList(obs.CommunityCards),
		"names":           anyList(obs.Names),
		"stacks":          anyList(obs.Stacks),
		"bets":            anyList(obs.Bets),
		"folded":          anyList(obs.Folded),
		"all_in":          anyList(obs.AllIn),
		"phase":           obs.Phase.String(),
		"current_turn":    obs.CurrentTurn,
		"dealer":          obs.Dealer,
		"pot":             obs.Pot,
		"min_raise":       obs.MinRaise,
		"legal":           offer,
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("encode observation: %w", err)
	}
	return s, nil
}

// DecodeRequest is the inverse of EncodeRequest.
func DecodeRequest(s *structpb.Struct) (poker.Observation, []poker.LegalAction, error) {
	var (
		obs poker.Observation
		err error
	)
	f := s.GetFields()

	obs.Seat = int(number(f, "seat"))
	obs.Name = f["name"].GetStringValue()
	if obs.HoleCards, err = cards(f, "hole_cards"); err != nil {
		return obs, nil, err
	}
	if obs.CommunityCards, err = cards(f, "community_cards"); err != nil {
		return obs, nil, err
	}
	if obs.Phase, err = poker.ParsePhase(f["phase"].GetStringValue()); err != nil {
		return obs, nil, err
	}
	obs.CurrentTurn = int(number(f, "current_turn"))
	obs.Dealer = int(number(f, "dealer"))
	obs.Pot = number(f, "pot")
	obs.MinRaise = number(f, "min_raise")

	for _, v := range list(f, "names") {
		obs.Names = append(obs.Names, v.GetStringValue())
	}
	for _, v := range list(f, "stacks") {
		obs.Stacks = append(obs.Stacks, int64(v.GetNumberValue()))
	}
	for _, v := range list(f, "bets") {
		obs.Bets = append(obs.Bets, int64(v.GetNumberValue()))
	}
	for _, v := range list(f, "folded") {
		obs.Folded = append(obs.Folded, v.GetBoolValue())
	}
	for _, v := range list(f, "all_in") {
		obs.AllIn = append(obs.AllIn, v.GetBoolValue())
	}

	var legal []poker.LegalAction
	for _, v := range list(f, "legal") {
		lf := v.GetStructValue().GetFields()
		kind, err := poker.ParseActionKind(lf["kind"].GetStringValue())
		if err != nil {
			return obs, nil, fmt.Errorf("decode legal action: %w", err)
		}
		legal = append(legal, poker.LegalAction{
			Kind: kind,
			Min:  number(lf, "min"),
			Max:  number(lf, "max"),
		})
	}
	return obs, legal, nil
}

// EncodeAction packs a decision.
func EncodeAction(a poker.Action) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"kind":   a.Kind.String(),
		"amount": a.Amount,
	})
}

// DecodeAction is the inverse of EncodeAction.
func DecodeAction(s *structpb.Struct) (poker.Action, error) {
	f := s.GetFields()
	kind, err := poker.ParseActionKind(f["kind"].GetStringValue())
	if err != nil {
		return poker.Action{}, fmt.Errorf("decode action: %w", err)
	}
	return poker.Action{Kind: kind, Amount: number(f, "amount")}, nil
}

func cardList(cs []poker.Card) []any {
	out := make([]any, len(cs))
	for i, c := range cs {
		out[i] = c.Short()
	}
	return out
}

func anyList[T any](xs []T) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

func number(f map[string]*structpb.Value, key string) int64 {
	return int64(f[key].GetNumberValue())
}

func list(f map[string]*structpb.Value, key string) []*structpb.Value {
	return f[key].GetListValue().GetValues()
}

func cards(f map[string]*structpb.Value, key string) ([]poker.Card, error) {
	var out []poker.Card
	for _, v := range list(f, key) {
		c, err := poker.ParseCard(v.GetStringValue())
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		out = append(out, c)
	}
	return out, nil
}
