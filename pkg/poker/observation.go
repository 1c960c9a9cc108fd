package poker

// Observation is the table as seen by the player on turn. Opponents' hole
// cards are never included.
type Observation struct {
	Seat           int
	Name           string
	HoleCards      []Card
	CommunityCards []Card

	Names  []string
	Stacks []int64
	Bets   []int64
	Folded []bool
	AllIn  []bool

	Phase       Phase
	CurrentTurn int
	Dealer      int
	Pot         int64
	MinRaise    int64
}

// Policy chooses an action for the player on turn. The returned action must
// be allowed by one of the offered legal actions.
type Policy interface {
	Decide(obs Observation, legal []LegalAction) (Action, error)
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(obs Observation, legal []LegalAction) (Action, error)

// Decide implements Policy.
func (f PolicyFunc) Decide(obs Observation, legal []LegalAction) (Action, error) {
	return f(obs, legal)
}

// NameAssigner is implemented by policies that want to learn the seat name
// they were given when the game was created.
type NameAssigner interface {
	AssignName(name string)
}
