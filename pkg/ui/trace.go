package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/vctt94/pokerenv/pkg/poker"
	"github.com/vctt94/pokerenv/pkg/utils"
)

// TraceObserver prints a readable log of every hand: the actions taken, the
// board at each street and how the pots were paid.
type TraceObserver struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
}

var _ poker.HandObserver = (*TraceObserver)(nil)

// NewTraceObserver creates a TraceObserver writing to w. A non-empty prefix
// is printed before each line, which keeps concurrent games apart.
func NewTraceObserver(w io.Writer, prefix string) *TraceObserver {
	return &TraceObserver{w: w, prefix: prefix}
}

func (o *TraceObserver) printf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprint(o.w, o.prefix)
	fmt.Fprintf(o.w, format+"\n", args...)
}

func (o *TraceObserver) OnHandStart(e poker.HandStart) {
	o.printf("%s", TitleStyle.Render(fmt.Sprintf("Episode %d, hand %d, dealer %s, blinds %d/%d",
		e.Episode, e.Hand, e.Names[e.Dealer], e.SmallBlind, e.BigBlind)))
	seats := make([]string, len(e.Names))
	for i, name := range e.Names {
		seats[i] = fmt.Sprintf("%s %d", name, e.Stacks[i])
	}
	o.printf("  stacks: %s", strings.Join(seats, ", "))
}

func (o *TraceObserver) OnAction(e poker.ActionEvent) {
	o.printf("  %s: %s", e.Name, e.Action)
}

func (o *TraceObserver) OnPhase(e poker.PhaseEvent) {
	o.printf("%s", PhaseStyle.Render(fmt.Sprintf("-- %s --", e.Phase))+
		fmt.Sprintf(" board %s ", formatCards(e.Board))+
		PotStyle.Render(fmt.Sprintf("pot %d", e.Pot)))
	for _, seat := range e.Seats {
		line := fmt.Sprintf("    %-10s stack %5d  bet %5d  %s", seat.Name, seat.Stack, seat.Bet, seat.Status())
		if seat.Folded {
			line = FoldedPlayerStyle.Render(line)
		}
		o.printf("%s", line)
	}
}

func (o *TraceObserver) OnResolve(res *poker.ShowdownResult) {
	if res.Uncontested {
		o.printf("  %s", WinnerStyle.Render(fmt.Sprintf("%s wins %d uncontested", res.Pots[0].Winners[0], res.TotalPot)))
		return
	}
	for _, name := range res.Ranking {
		o.printf("  %s shows %s: %s", name, utils.FormatCards(res.HoleCards[name]), res.Hands[name].Description)
	}
	if res.Uncalled != nil {
		o.printf("  uncalled %d returned to %s", res.Uncalled.Amount, res.Uncalled.Name)
	}
	for i, pot := range res.Pots {
		label := "main pot"
		if i > 0 {
			label = fmt.Sprintf("side pot %d", i)
		}
		line := fmt.Sprintf("%s %d: %s", label, pot.Amount, strings.Join(pot.Winners, ", "))
		if len(pot.Winners) > 1 {
			line += fmt.Sprintf(" split %d each", pot.Share)
		}
		if pot.Remainder > 0 {
			line += fmt.Sprintf(", %d left over", pot.Remainder)
		}
		o.printf("  %s", WinnerStyle.Render(line))
	}
}

func (o *TraceObserver) OnEliminated(names []string) {
	o.printf("  %s", ErrorStyle.Render("eliminated: "+strings.Join(names, ", ")))
}

func (o *TraceObserver) OnEpisodeEnd(ep poker.EpisodeResult) {
	if ep.Truncated {
		o.printf("%s", TitleStyle.Render(fmt.Sprintf("Episode %d stopped after %d hands", ep.Episode, ep.Hands)))
		return
	}
	o.printf("%s", TitleStyle.Render(fmt.Sprintf("Episode %d won by %s after %d hands", ep.Episode, ep.Winner, ep.Hands)))
}
