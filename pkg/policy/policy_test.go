package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/decred/slog"
	"github.com/stretchr/testify/require"

	"github.com/vctt94/pokerenv/pkg/poker"
)

var facingBet = []poker.LegalAction{
	{Kind: poker.Fold},
	{Kind: poker.Call, Min: 20, Max: 20},
	{Kind: poker.Raise, Min: 40, Max: 100},
}

var checkedTo = []poker.LegalAction{
	{Kind: poker.Fold},
	{Kind: poker.Check},
	{Kind: poker.Raise, Min: 20, Max: 100},
}

func TestRandomStaysInsideOffer(t *testing.T) {
	r := NewRandom(3)
	kinds := make(map[poker.ActionKind]int)
	for i := 0; i < 500; i++ {
		a, err := r.Decide(poker.Observation{}, facingBet)
		require.NoError(t, err)
		l, ok := poker.Offered(facingBet, a.Kind)
		require.True(t, ok)
		require.True(t, l.Allows(a), "%v outside %v", a, l)
		kinds[a.Kind]++
	}
	require.Len(t, kinds, 3, "every offered kind shows up")

	_, err := r.Decide(poker.Observation{Name: "player_A"}, nil)
	require.Error(t, err)
}

func TestRandomAssignName(t *testing.T) {
	r := NewRandom(1)
	_, err := poker.NewGame(poker.GameConfig{
		Policies:     []poker.Policy{Passive{}, r},
		SmallBlind:   1,
		BigBlind:     2,
		InitialStack: 10,
		Log:          slog.Disabled,
	})
	require.NoError(t, err)
	require.Equal(t, "player_B", r.Name())
}

func TestDeterministicPolicies(t *testing.T) {
	onlyCall := []poker.LegalAction{{Kind: poker.Call, Min: 35, Max: 35}}

	tests := []struct {
		name   string
		policy poker.Policy
		legal  []poker.LegalAction
		want   poker.Action
	}{
		{"passive checks", Passive{}, checkedTo, poker.Action{Kind: poker.Check}},
		{"passive calls", Passive{}, facingBet, poker.Action{Kind: poker.Call, Amount: 20}},
		{"passive forced call", Passive{}, onlyCall, poker.Action{Kind: poker.Call, Amount: 35}},
		{"folder folds", Folder{}, checkedTo, poker.Action{Kind: poker.Fold}},
		{"folder forced call", Folder{}, onlyCall, poker.Action{Kind: poker.Call, Amount: 35}},
		{"aggressor min raise", Aggressor{}, facingBet, poker.Action{Kind: poker.Raise, Amount: 40}},
		{"aggressor forced call", Aggressor{}, onlyCall, poker.Action{Kind: poker.Call, Amount: 35}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.policy.Decide(poker.Observation{}, tc.legal)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestScripted(t *testing.T) {
	s := NewScripted(poker.Action{Kind: poker.Check}, poker.Action{Kind: poker.Raise, Amount: 40})
	require.Equal(t, 2, s.Remaining())

	a, err := s.Decide(poker.Observation{Name: "player_A"}, checkedTo)
	require.NoError(t, err)
	require.Equal(t, poker.Check, a.Kind)

	a, err = s.Decide(poker.Observation{Name: "player_A"}, checkedTo)
	require.NoError(t, err)
	require.Equal(t, poker.Action{Kind: poker.Raise, Amount: 40}, a)

	_, err = s.Decide(poker.Observation{Name: "player_A"}, checkedTo)
	require.ErrorIs(t, err, ErrScriptExhausted)
	require.Len(t, s.Seen(), 3)
}

func TestFromSpec(t *testing.T) {
	human := Passive{}
	dialErr := errors.New("refused")
	opts := Options{
		Human: func() poker.Policy { return human },
		Dial: func(addr string) (poker.Policy, error) {
			if addr == "bad:1" {
				return nil, dialErr
			}
			return Aggressor{}, nil
		},
	}

	for _, spec := range []string{"random", "call", "fold", "raise", "human", "remote:localhost:9000", " Random "} {
		p, err := FromSpec(spec, 1, opts)
		require.NoError(t, err, spec)
		require.NotNil(t, p, spec)
		require.True(t, Valid(spec), spec)
	}

	p, err := FromSpec("fold", 0, opts)
	require.NoError(t, err)
	require.IsType(t, Folder{}, p)

	_, err = FromSpec("remote:bad:1", 0, opts)
	require.ErrorIs(t, err, dialErr)

	for _, spec := range []string{"", "bluff", "remote", "remote:"} {
		_, err := FromSpec(spec, 0, opts)
		require.Error(t, err, spec)
		require.False(t, Valid(spec), spec)
	}

	_, err = FromSpec("human", 0, Options{})
	require.Error(t, err)
	_, err = FromSpec("remote:localhost:1", 0, Options{})
	require.Error(t, err)
}

func TestBuiltinsPlayFullGames(t *testing.T) {
	policies := []poker.Policy{NewRandom(1), Passive{}, Aggressor{}, Folder{}, NewRandom(2)}
	g, err := poker.NewGame(poker.GameConfig{
		Policies:           policies,
		SmallBlind:         10,
		BigBlind:           20,
		InitialStack:       100,
		Seed:               8,
		Log:                slog.Disabled,
		MaxHandsPerEpisode: 500,
	})
	require.NoError(t, err)

	results, err := g.Play(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, results, 5)
	for _, ep := range results {
		require.NotZero(t, ep.Hands)
	}
}
