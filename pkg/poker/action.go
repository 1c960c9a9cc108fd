package poker

import (
	"fmt"
	"strings"
)

// ActionKind is the type of a betting action.
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Raise
)

func (k ActionKind) String() string {
	switch k {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	}
	return fmt.Sprintf("action(%d)", int(k))
}

// ParseActionKind parses the lower-case names produced by ActionKind.String.
func ParseActionKind(s string) (ActionKind, error) {
	switch strings.ToLower(s) {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "raise":
		return Raise, nil
	}
	return 0, fmt.Errorf("unknown action kind %q", s)
}

// Action is a concrete decision. For Call and Raise, Amount is the absolute
// bet level the player moves to for this hand, not the increment.
type Action struct {
	Kind   ActionKind
	Amount int64
}

func (a Action) String() string {
	switch a.Kind {
	case Call, Raise:
		return fmt.Sprintf("%s %d", a.Kind, a.Amount)
	}
	return a.Kind.String()
}

// LegalAction is one entry of the offer made to a policy. Call carries
// Min == Max; Raise carries an inclusive range.
type LegalAction struct {
	Kind ActionKind
	Min  int64
	Max  int64
}

func (l LegalAction) String() string {
	switch l.Kind {
	case Call:
		return fmt.Sprintf("call %d", l.Min)
	case Raise:
		if l.Min == l.Max {
			return fmt.Sprintf("raise %d", l.Min)
		}
		return fmt.Sprintf("raise %d-%d", l.Min, l.Max)
	}
	return l.Kind.String()
}

// Allows reports whether a is consistent with this offer.
func (l LegalAction) Allows(a Action) bool {
	if a.Kind != l.Kind {
		return false
	}
	switch l.Kind {
	case Call, Raise:
		return a.Amount >= l.Min && a.Amount <= l.Max
	}
	return true
}

// Offered returns the offer of the given kind, if any.
func Offered(legal []LegalAction, kind ActionKind) (LegalAction, bool) {
	for _, l := range legal {
		if l.Kind == kind {
			return l, true
		}
	}
	return LegalAction{}, false
}

// validateAction checks a policy's answer against the offer it was given.
func validateAction(a Action, legal []LegalAction) error {
	for _, l := range legal {
		if l.Allows(a) {
			return nil
		}
	}
	offered := make([]string, len(legal))
	for i, l := range legal {
		offered[i] = l.String()
	}
	return fmt.Errorf("%w: %s not in [%s]", ErrInvalidAction, a, strings.Join(offered, ", "))
}
