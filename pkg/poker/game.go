package poker

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/decred/slog"

	"github.com/vctt94/pokerenv/pkg/statemachine"
)

// GameConfig holds configuration for a new game.
type GameConfig struct {
	// Policies seats one player per entry, in order.
	Policies     []Policy
	SmallBlind   int64
	BigBlind     int64
	InitialStack int64

	// Seed drives the deck shuffles. Zero picks a time based seed.
	Seed int64

	// Evaluator defaults to ChehsunliuEvaluator.
	Evaluator HandEvaluator
	Log       slog.Logger
	Observer  HandObserver

	// MaxHandsPerEpisode stops an episode early when positive.
	MaxHandsPerEpisode int

	// ProgressEvery logs a progress line every that many episodes of Play.
	// Zero disables it.
	ProgressEvery int

	// NewDeck builds the deck for every hand. Defaults to NewShuffledDeck.
	NewDeck func(rng *rand.Rand) *Deck
}

// Standing is a player's stack at the end of an episode.
type Standing struct {
	Name  string
	Stack int64
}

// EpisodeResult summarizes one episode.
type EpisodeResult struct {
	Episode int
	Hands   int

	// Winner is empty when the episode was cut by MaxHandsPerEpisode with
	// more than one player left.
	Winner          string
	Standings       []Standing
	EliminatedOrder []string
	Truncated       bool
}

// Game runs hands and episodes on a single table. It is driven by one
// goroutine; policies are called synchronously.
type Game struct {
	cfg     GameConfig
	table   *Table
	rng     *rand.Rand
	eval    HandEvaluator
	log     slog.Logger
	obs     HandObserver
	newDeck func(*rand.Rand) *Deck

	episode    int
	handInEp   int
	handsTotal int

	// per hand
	handErr error
	result  *ShowdownResult
}

// NewGame validates cfg and seats the players.
func NewGame(cfg GameConfig) (*Game, error) {
	table, err := NewTable(TableConfig{
		SmallBlind:   cfg.SmallBlind,
		BigBlind:     cfg.BigBlind,
		InitialStack: cfg.InitialStack,
	}, cfg.Policies)
	if err != nil {
		return nil, err
	}
	if cfg.MaxHandsPerEpisode < 0 {
		return nil, fmt.Errorf("poker: negative max hands per episode %d", cfg.MaxHandsPerEpisode)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		cfg:     cfg,
		table:   table,
		rng:     rand.New(rand.NewSource(seed)),
		eval:    cfg.Evaluator,
		log:     cfg.Log,
		obs:     cfg.Observer,
		newDeck: cfg.NewDeck,
	}
	if g.eval == nil {
		g.eval = ChehsunliuEvaluator{}
	}
	if g.log == nil {
		g.log = slog.Disabled
	}
	if g.obs == nil {
		g.obs = NopObserver{}
	}
	if g.newDeck == nil {
		g.newDeck = NewShuffledDeck
	}
	g.log.Debugf("New game: %d players, blinds %d/%d, stack %d, seed %d",
		table.NumPlayers(), cfg.SmallBlind, cfg.BigBlind, cfg.InitialStack, seed)
	return g, nil
}

// Table exposes the table for inspection.
func (g *Game) Table() *Table { return g.table }

// Episode returns the number of the current episode, starting at 1.
func (g *Game) Episode() int { return g.episode }

// HandsPlayed returns the number of hands played over all episodes.
func (g *Game) HandsPlayed() int { return g.handsTotal }

// PlayHand plays one hand from the deal to the settlement.
func (g *Game) PlayHand() (*ShowdownResult, error) {
	if g.table.NumPlayers() < 2 {
		return nil, fmt.Errorf("poker: cannot play a hand with %d players", g.table.NumPlayers())
	}
	g.handErr = nil
	g.result = nil
	g.handInEp++
	g.handsTotal++

	statemachine.New(g, stateDeal).Run()
	if g.handErr != nil {
		return g.result, g.handErr
	}
	return g.result, nil
}

func stateDeal(g *Game) statemachine.StateFn[Game] {
	if err := g.table.StartHand(g.newDeck(g.rng)); err != nil {
		g.handErr = err
		return nil
	}

	t := g.table
	start := HandStart{
		Episode:    g.episode,
		Hand:       g.handInEp,
		Dealer:     t.Dealer(),
		Names:      t.Names(),
		Stacks:     t.Stacks(),
		Bets:       make([]int64, t.NumPlayers()),
		SmallBlind: t.config.SmallBlind,
		BigBlind:   t.config.BigBlind,
	}
	for i, p := range t.seats {
		start.Bets[i] = p.Bet
	}
	g.log.Debugf("Hand %d.%d: dealer %s, players %v, stacks %v",
		g.episode, g.handInEp, t.Player(t.Dealer()).Name, start.Names, start.Stacks)
	if g.log.Level() <= slog.LevelTrace {
		for _, p := range t.seats {
			g.log.Tracef("%s dealt %s", p.Name, p.GetHandString())
		}
	}
	g.obs.OnHandStart(start)
	return stateBetting
}

func stateBetting(g *Game) statemachine.StateFn[Game] {
	if err := g.table.BettingRound(g.decide); err != nil {
		g.handErr = fmt.Errorf("%s betting: %w", g.table.Phase(), err)
		return nil
	}
	if g.table.onlyContender() {
		return stateResolve
	}
	return stateAdvance
}

func stateAdvance(g *Game) statemachine.StateFn[Game] {
	if err := g.table.AdvancePhase(); err != nil {
		g.handErr = err
		return nil
	}
	g.obs.OnPhase(PhaseEvent{
		Phase: g.table.Phase(),
		Board: g.table.CommunityCards(),
		Pot:   g.table.pot(),
		Seats: g.table.SeatStates(),
	})
	if g.table.Phase() == Showdown {
		return stateResolve
	}
	return stateBetting
}

func stateResolve(g *Game) statemachine.StateFn[Game] {
	res, err := g.table.Resolve(g.eval)
	g.result = res
	if err != nil {
		g.handErr = err
		return nil
	}

	for name, won := range res.Winnings {
		if won > 0 {
			g.log.Debugf("%s wins %d", name, won)
		}
	}
	if res.Remainder > 0 {
		g.log.Debugf("Split remainder of %d chips forfeited", res.Remainder)
	}
	g.obs.OnResolve(res)
	return nil
}

// decide asks the policy of seat for its action.
func (g *Game) decide(seat int, obs Observation, legal []LegalAction) (Action, error) {
	p := g.table.Player(seat)
	if g.log.Level() <= slog.LevelTrace {
		g.log.Tracef("%s to act, legal %v, observation:\n%s", p.Name, legal, spew.Sdump(obs))
	}

	action, err := p.Policy.Decide(obs, slices.Clone(legal))
	if err != nil {
		return Action{}, err
	}
	g.log.Debugf("%s %s: %s", p.Name, obs.Phase, action)
	g.obs.OnAction(ActionEvent{
		Seat:   seat,
		Name:   p.Name,
		Phase:  obs.Phase,
		Action: action,
		Legal:  legal,
		Pot:    obs.Pot,
	})
	return action, nil
}

// PlayEpisode plays hands until one player holds every chip, or until
// MaxHandsPerEpisode hands were played. The context is checked between
// hands only.
func (g *Game) PlayEpisode(ctx context.Context) (EpisodeResult, error) {
	g.episode++
	g.handInEp = 0
	ep := EpisodeResult{Episode: g.episode}

	for g.table.NumPlayers() > 1 {
		if err := ctx.Err(); err != nil {
			return ep, err
		}
		if limit := g.cfg.MaxHandsPerEpisode; limit > 0 && ep.Hands >= limit {
			ep.Truncated = true
			break
		}

		res, err := g.PlayHand()
		if err != nil {
			return ep, fmt.Errorf("episode %d hand %d: %w", g.episode, g.handInEp, err)
		}
		ep.Hands++
		if len(res.Eliminated) > 0 {
			g.log.Infof("Episode %d hand %d: eliminated %v", g.episode, g.handInEp, res.Eliminated)
			ep.EliminatedOrder = append(ep.EliminatedOrder, res.Eliminated...)
			g.obs.OnEliminated(res.Eliminated)
		}
	}

	for _, p := range g.table.seats {
		ep.Standings = append(ep.Standings, Standing{Name: p.Name, Stack: p.Stack})
	}
	if len(ep.Standings) == 1 {
		ep.Winner = ep.Standings[0].Name
	}
	g.log.Infof("Episode %d finished after %d hands, winner %q", g.episode, ep.Hands, ep.Winner)
	g.obs.OnEpisodeEnd(ep)
	return ep, nil
}

// Revive brings every eliminated player back for a new episode.
func (g *Game) Revive() {
	g.table.Revive()
	g.log.Debugf("Revived table: %v", g.table.Names())
}

// Play runs episodes episodes, reviving the table between them. It stops
// on the first error.
func (g *Game) Play(ctx context.Context, episodes int) ([]EpisodeResult, error) {
	results := make([]EpisodeResult, 0, episodes)
	for i := 0; i < episodes; i++ {
		if i > 0 {
			g.Revive()
		}
		ep, err := g.PlayEpisode(ctx)
		if err != nil {
			return results, err
		}
		results = append(results, ep)
		if n := g.cfg.ProgressEvery; n > 0 && (i+1)%n == 0 {
			g.log.Infof("Episode %d on %d", i+1, episodes)
		}
	}
	return results, nil
}
