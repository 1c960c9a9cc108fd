package poker

// HandStart is reported once the cards are dealt and the blinds posted.
type HandStart struct {
	Episode    int
	Hand       int
	Dealer     int
	Names      []string
	Stacks     []int64
	Bets       []int64
	SmallBlind int64
	BigBlind   int64
}

// ActionEvent is one decision taken by a policy.
type ActionEvent struct {
	Seat   int
	Name   string
	Phase  Phase
	Action Action
	Legal  []LegalAction
	Pot    int64
}

// SeatState is one seat as it stands when a street begins.
type SeatState struct {
	Name   string
	Stack  int64
	Bet    int64
	Folded bool
	AllIn  bool
}

// Status returns "folded", "all-in" or "active".
func (s SeatState) Status() string {
	switch {
	case s.Folded:
		return "folded"
	case s.AllIn:
		return "all-in"
	}
	return "active"
}

// PhaseEvent is reported after the table moved to a new street.
type PhaseEvent struct {
	Phase Phase
	Board []Card
	Pot   int64
	Seats []SeatState
}

// HandObserver receives the progress of a game. Observers never influence
// play; they exist for tracing and statistics.
type HandObserver interface {
	OnHandStart(HandStart)
	OnAction(ActionEvent)
	OnPhase(PhaseEvent)
	OnResolve(*ShowdownResult)
	OnEliminated(names []string)
	OnEpisodeEnd(EpisodeResult)
}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) OnHandStart(HandStart) {}
func (NopObserver) OnAction(ActionEvent) {}
func (NopObserver) OnPhase(PhaseEvent) {}
func (NopObserver) OnResolve(*ShowdownResult) {}
func (NopObserver) OnEliminated([]string) {}
func (NopObserver) OnEpisodeEnd(EpisodeResult) {}

// MultiObserver fans every event out to each observer in order.
type MultiObserver []HandObserver

func (m MultiObserver) OnHandStart(e HandStart) {
	for _, o := range m {
		o.OnHandStart(e)
	}
}

func (m MultiObserver) OnAction(e ActionEvent) {
	for _, o := range m {
		o.OnAction(e)
	}
}

func (m MultiObserver) OnPhase(e PhaseEvent) {
	for _, o := range m {
		o.OnPhase(e)
	}
}

func (m MultiObserver) OnResolve(res *ShowdownResult) {
	for _, o := range m {
		o.OnResolve(res)
	}
}

func (m MultiObserver) OnEliminated(names []string) {
	for _, o := range m {
		o.OnEliminated(names)
	}
}

func (m MultiObserver) OnEpisodeEnd(ep EpisodeResult) {
	for _, o := range m {
		o.OnEpisodeEnd(ep)
	}
}
