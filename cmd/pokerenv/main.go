package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/decred/slog"
	"github.com/pterm/pterm"
	"golang.org/x/sync/errgroup"

	"github.com/vctt94/pokerenv/pkg/config"
	"github.com/vctt94/pokerenv/pkg/logging"
	"github.com/vctt94/pokerenv/pkg/poker"
	"github.com/vctt94/pokerenv/pkg/policy"
	"github.com/vctt94/pokerenv/pkg/policyrpc"
	"github.com/vctt94/pokerenv/pkg/stats"
	"github.com/vctt94/pokerenv/pkg/ui"
	"github.com/vctt94/pokerenv/pkg/utils"
)

func main() {
	// Register and parse flags
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logFile := cfg.LogFile
	if logFile == "" && cfg.DataDir != "" {
		if err := utils.EnsureDataDirExists(cfg.DataDir); err != nil {
			return err
		}
		logFile = utils.DefaultLogFile(cfg.DataDir, "pokerenv")
	}
	logBackend, err := logging.NewLogBackend(logging.LogConfig{
		LogFile:    logFile,
		DebugLevel: cfg.DebugLevel,
	})
	if err != nil {
		return fmt.Errorf("logging error: %w", err)
	}
	defer logBackend.Close()

	log := logBackend.Logger("MAIN")
	log.Infof("Running %d episodes on %d worker(s) with seats %v", cfg.Episodes, cfg.Workers, cfg.Seats)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	tallies := make([]*stats.Tally, cfg.Workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		w := w
		g.Go(func() error {
			tally, err := runWorker(gctx, cfg, w, logBackend)
			tallies[w] = tally
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			return nil
		})
	}
	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		log.Warnf("Interrupted, printing partial results")
		err = nil
	}

	printSummary(stats.Merge(tallies...), time.Since(start))
	return err
}

// runWorker plays every episode on its own game.
func runWorker(ctx context.Context, cfg *config.Config, w int, logBackend *logging.LogBackend) (*stats.Tally, error) {
	seed := cfg.WorkerSeed(w)
	if seed == 0 {
		seed = time.Now().UnixNano() + int64(w)
	}

	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	rpcLog := logBackend.Logger("RPC")
	opts := policy.Options{
		Human: func() poker.Policy { return ui.NewHumanPolicy() },
		Dial: func(addr string) (poker.Policy, error) {
			c, err := policyrpc.Dial(addr, cfg.RemoteTimeout, rpcLog)
			if err != nil {
				return nil, err
			}
			closers = append(closers, c)
			return c, nil
		},
	}

	policies := make([]poker.Policy, len(cfg.Seats))
	for i, spec := range cfg.Seats {
		p, err := policy.FromSpec(spec, seed+int64(i)+1, opts)
		if err != nil {
			return nil, err
		}
		policies[i] = p
	}

	eval, err := cfg.HandEvaluator()
	if err != nil {
		return nil, err
	}

	tally := stats.NewTally()
	observers := poker.MultiObserver{tally}
	if cfg.Verbose {
		prefix := ""
		if cfg.Workers > 1 {
			prefix = fmt.Sprintf("[worker %d] ", w)
		}
		observers = append(observers, ui.NewTraceObserver(os.Stdout, prefix))
	}

	game, err := poker.NewGame(poker.GameConfig{
		Policies:           policies,
		SmallBlind:         cfg.SmallBlind,
		BigBlind:           cfg.BigBlind,
		InitialStack:       cfg.InitialStack,
		Seed:               seed,
		Evaluator:          eval,
		Log:                gameLogger(logBackend, w),
		Observer:           observers,
		MaxHandsPerEpisode: cfg.MaxHands,
		ProgressEvery:      cfg.ProgressEvery,
	})
	if err != nil {
		return tally, err
	}

	_, err = game.Play(ctx, cfg.Episodes)
	return tally, err
}

func gameLogger(logBackend *logging.LogBackend, w int) slog.Logger {
	if w == 0 {
		return logBackend.Logger("GAME")
	}
	return logBackend.Logger(fmt.Sprintf("GAM%d", w))
}

func printSummary(total *stats.Tally, elapsed time.Duration) {
	pterm.Println()
	pterm.Info.Printfln("%d episodes, %d hands (%d showdowns, %d uncontested) in %s",
		total.Episodes, total.Hands, total.Showdowns, total.Uncontested, elapsed.Round(time.Millisecond))
	if total.Truncated > 0 {
		pterm.Warning.Printfln("%d episodes stopped at the hand limit", total.Truncated)
	}
	if total.Remainder > 0 {
		pterm.Warning.Printfln("%d chips lost to indivisible splits", total.Remainder)
	}

	data := pterm.TableData{{"Seat", "Episode wins", "Hands won", "Net chips", "Eliminated"}}
	for _, s := range total.Seats() {
		data = append(data, []string{
			s.Name,
			fmt.Sprint(s.EpisodeWins),
			fmt.Sprint(s.HandsWon),
			fmt.Sprint(s.Reward),
			fmt.Sprint(s.Eliminations),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}
}
