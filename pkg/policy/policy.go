// Package policy provides decision policies that need no outside input:
// baselines for training runs, opponents for tests and fillers for empty
// seats.
package policy

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/vctt94/pokerenv/pkg/poker"
)

// ErrScriptExhausted is returned by Scripted once its queue is empty.
var ErrScriptExhausted = errors.New("script exhausted")

// Random picks uniformly among the offered actions and, for a raise,
// uniformly inside the allowed range.
type Random struct {
	name string
	rng  *rand.Rand
}

// NewRandom returns a Random policy with its own source. Zero picks a time
// based seed.
func NewRandom(seed int64) *Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// AssignName implements poker.NameAssigner.
func (r *Random) AssignName(name string) { r.name = name }

// Name returns the seat name given by the table.
func (r *Random) Name() string { return r.name }

// Decide implements poker.Policy.
func (r *Random) Decide(obs poker.Observation, legal []poker.LegalAction) (poker.Action, error) {
	if len(legal) == 0 {
		return poker.Action{}, fmt.Errorf("%s: no legal actions offered", obs.Name)
	}
	pick := legal[r.rng.Intn(len(legal))]
	action := poker.Action{Kind: pick.Kind, Amount: pick.Min}
	if pick.Kind == poker.Raise && pick.Max > pick.Min {
		action.Amount += r.rng.Int63n(pick.Max - pick.Min + 1)
	}
	return action, nil
}

// Passive checks when it can, calls when it must and only folds when
// nothing else is offered.
type Passive struct{}

// Decide implements poker.Policy.
func (Passive) Decide(_ poker.Observation, legal []poker.LegalAction) (poker.Action, error) {
	if _, ok := poker.Offered(legal, poker.Check); ok {
		return poker.Action{Kind: poker.Check}, nil
	}
	if l, ok := poker.Offered(legal, poker.Call); ok {
		return poker.Action{Kind: poker.Call, Amount: l.Min}, nil
	}
	return poker.Action{Kind: poker.Fold}, nil
}

// Folder gives up every hand it can. Without a fold on offer it checks or
// calls.
type Folder struct{}

// Decide implements poker.Policy.
func (Folder) Decide(obs poker.Observation, legal []poker.LegalAction) (poker.Action, error) {
	if _, ok := poker.Offered(legal, poker.Fold); ok {
		return poker.Action{Kind: poker.Fold}, nil
	}
	return Passive{}.Decide(obs, legal)
}

// Aggressor makes the minimum raise whenever one is offered.
type Aggressor struct{}

// Decide implements poker.Policy.
func (Aggressor) Decide(obs poker.Observation, legal []poker.LegalAction) (poker.Action, error) {
	if l, ok := poker.Offered(legal, poker.Raise); ok {
		return poker.Action{Kind: poker.Raise, Amount: l.Min}, nil
	}
	return Passive{}.Decide(obs, legal)
}

// Scripted replays a fixed list of actions. It does not check them; the
// table rejects anything outside the offer.
type Scripted struct {
	actions []poker.Action
	seen    []poker.Observation
}

// NewScripted returns a policy that plays actions in order.
func NewScripted(actions ...poker.Action) *Scripted {
	return &Scripted{actions: actions}
}

// Decide implements poker.Policy.
func (s *Scripted) Decide(obs poker.Observation, _ []poker.LegalAction) (poker.Action, error) {
	s.seen = append(s.seen, obs)
	if len(s.actions) == 0 {
		return poker.Action{}, fmt.Errorf("%s: %w", obs.Name, ErrScriptExhausted)
	}
	a := s.actions[0]
	s.actions = s.actions[1:]
	return a, nil
}

// Remaining returns the number of actions not played yet.
func (s *Scripted) Remaining() int { return len(s.actions) }

// Seen returns the observations the policy was asked to act on.
func (s *Scripted) Seen() []poker.Observation { return s.seen }

// Options supplies the policies that live outside this package.
type Options struct {
	// Human builds an interactive policy for the "human" spec.
	Human func() poker.Policy

	// Dial connects to a remote policy for the "remote:<addr>" spec.
	Dial func(addr string) (poker.Policy, error)
}

// FromSpec builds a policy from a seat spec: random, call, fold, raise,
// human or remote:<addr>.
func FromSpec(spec string, seed int64, opts Options) (poker.Policy, error) {
	kind, arg, _ := strings.Cut(strings.TrimSpace(spec), ":")
	switch strings.ToLower(kind) {
	case "random":
		return NewRandom(seed), nil
	case "call", "passive":
		return Passive{}, nil
	case "fold":
		return Folder{}, nil
	case "raise", "aggressive":
		return Aggressor{}, nil
	case "human":
		if opts.Human == nil {
			return nil, fmt.Errorf("policy %q: no interactive terminal available", spec)
		}
		return opts.Human(), nil
	case "remote":
		if arg == "" {
			return nil, fmt.Errorf("policy %q: missing address", spec)
		}
		if opts.Dial == nil {
			return nil, fmt.Errorf("policy %q: remote policies are not supported here", spec)
		}
		p, err := opts.Dial(arg)
		if err != nil {
			return nil, fmt.Errorf("policy %q: %w", spec, err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown policy %q", spec)
}

// Valid reports whether spec names a known policy, without building it.
func Valid(spec string) bool {
	kind, arg, _ := strings.Cut(strings.TrimSpace(spec), ":")
	switch strings.ToLower(kind) {
	case "random", "call", "passive", "fold", "raise", "aggressive", "human":
		return true
	case "remote":
		return arg != ""
	}
	return false
}
