// Package config loads the simulator configuration. Values are layered:
// defaults, then a YAML file, then POKERENV_* variables from the process
// environment or a .env file, then command line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/decred/slog"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vctt94/pokerenv/pkg/poker"
	"github.com/vctt94/pokerenv/pkg/policy"
)

const envPrefix = "POKERENV_"

// Config is the full simulator configuration.
type Config struct {
	Seats         []string      `yaml:"seats"`
	SmallBlind    int64         `yaml:"small_blind"`
	BigBlind      int64         `yaml:"big_blind"`
	InitialStack  int64         `yaml:"initial_stack"`
	Episodes      int           `yaml:"episodes"`
	MaxHands      int           `yaml:"max_hands"`
	Seed          int64         `yaml:"seed"`
	Workers       int           `yaml:"workers"`
	Evaluator     string        `yaml:"evaluator"`
	RemoteTimeout time.Duration `yaml:"remote_timeout"`
	ProgressEvery int           `yaml:"progress_every"`

	Verbose    bool   `yaml:"verbose"`
	DebugLevel string `yaml:"debug_level"`
	DataDir    string `yaml:"data_dir"`
	LogFile    string `yaml:"log_file"`
}

// Default returns the configuration used when nothing else is given.
func Default() *Config {
	return &Config{
		Seats:         []string{"random", "random", "random", "random", "random", "random", "random", "random"},
		SmallBlind:    10,
		BigBlind:      20,
		InitialStack:  100,
		Episodes:      100,
		Workers:       1,
		Evaluator:     "chehsunliu",
		RemoteTimeout: 30 * time.Second,
		ProgressEvery: 1000,
		DebugLevel:    "info",
	}
}

// Flags holds the command line flags registered by RegisterFlags.
type Flags struct {
	fs *flag.FlagSet

	ConfigFile    *string
	EnvFile       *string
	Seats         *string
	SmallBlind    *int64
	BigBlind      *int64
	InitialStack  *int64
	Episodes      *int
	MaxHands      *int
	Seed          *int64
	Workers       *int
	Evaluator     *string
	RemoteTimeout *time.Duration
	ProgressEvery *int
	Verbose       *bool
	DebugLevel    *string
	DataDir       *string
	LogFile       *string
}

// RegisterFlags registers the simulator flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	d := Default()
	return &Flags{
		fs:            fs,
		ConfigFile:    fs.String("config", "", "Path to a YAML config file"),
		EnvFile:       fs.String("envfile", ".env", "Path to a .env file with POKERENV_* variables"),
		Seats:         fs.String("seats", strings.Join(d.Seats, ","), "Comma separated seat policies: random, call, fold, raise, human, remote:<addr>"),
		SmallBlind:    fs.Int64("sb", d.SmallBlind, "Small blind"),
		BigBlind:      fs.Int64("bb", d.BigBlind, "Big blind"),
		InitialStack:  fs.Int64("stack", d.InitialStack, "Initial stack of every player"),
		Episodes:      fs.Int("episodes", d.Episodes, "Number of episodes to play per worker"),
		MaxHands:      fs.Int("maxhands", d.MaxHands, "Stop an episode after this many hands (0 = no limit)"),
		Seed:          fs.Int64("seed", d.Seed, "Deterministic RNG seed (0 = random)"),
		Workers:       fs.Int("workers", d.Workers, "Number of independent games run in parallel"),
		Evaluator:     fs.String("evaluator", d.Evaluator, "Hand evaluator: chehsunliu or eval7"),
		RemoteTimeout: fs.Duration("remotetimeout", d.RemoteTimeout, "Timeout of a single remote policy decision"),
		ProgressEvery: fs.Int("progress", d.ProgressEvery, "Log progress every this many episodes (0 = never)"),
		Verbose:       fs.Bool("v", d.Verbose, "Print a trace of every hand"),
		DebugLevel:    fs.String("debuglevel", d.DebugLevel, "Logging level: trace, debug, info, warn, error"),
		DataDir:       fs.String("datadir", d.DataDir, "Directory for logs"),
		LogFile:       fs.String("logfile", d.LogFile, "Log file path (default <datadir>/logs/pokerenv.log when datadir is set)"),
	}
}

// Load builds the configuration from every layer. Only flags that were set
// explicitly override the lower layers.
func Load(flags *Flags) (*Config, error) {
	cfg := Default()

	if path := *flags.ConfigFile; path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	env, err := readEnv(*flags.EnvFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}

	flags.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seats":
			cfg.Seats = splitSeats(*flags.Seats)
		case "sb":
			cfg.SmallBlind = *flags.SmallBlind
		case "bb":
			cfg.BigBlind = *flags.BigBlind
		case "stack":
			cfg.InitialStack = *flags.InitialStack
		case "episodes":
			cfg.Episodes = *flags.Episodes
		case "maxhands":
			cfg.MaxHands = *flags.MaxHands
		case "seed":
			cfg.Seed = *flags.Seed
		case "workers":
			cfg.Workers = *flags.Workers
		case "evaluator":
			cfg.Evaluator = *flags.Evaluator
		case "remotetimeout":
			cfg.RemoteTimeout = *flags.RemoteTimeout
		case "progress":
			cfg.ProgressEvery = *flags.ProgressEvery
		case "v":
			cfg.Verbose = *flags.Verbose
		case "debuglevel":
			cfg.DebugLevel = *flags.DebugLevel
		case "datadir":
			cfg.DataDir = *flags.DataDir
		case "logfile":
			cfg.LogFile = *flags.LogFile
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// readEnv merges the .env file at path, if it exists, with the process
// environment. The process environment wins.
func readEnv(path string) (map[string]string, error) {
	env := make(map[string]string)
	if path != "" {
		fileEnv, err := godotenv.Read(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
		default:
			env = fileEnv
		}
	}
	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(k, envPrefix) {
			env[k] = v
		}
	}
	return env, nil
}

func (c *Config) applyEnv(env map[string]string) error {
	for key, val := range env {
		name, ok := strings.CutPrefix(key, envPrefix)
		if !ok {
			continue
		}
		var err error
		switch name {
		case "SEATS":
			c.Seats = splitSeats(val)
		case "SMALL_BLIND":
			c.SmallBlind, err = strconv.ParseInt(val, 10, 64)
		case "BIG_BLIND":
			c.BigBlind, err = strconv.ParseInt(val, 10, 64)
		case "INITIAL_STACK":
			c.InitialStack, err = strconv.ParseInt(val, 10, 64)
		case "EPISODES":
			c.Episodes, err = strconv.Atoi(val)
		case "MAX_HANDS":
			c.MaxHands, err = strconv.Atoi(val)
		case "SEED":
			c.Seed, err = strconv.ParseInt(val, 10, 64)
		case "WORKERS":
			c.Workers, err = strconv.Atoi(val)
		case "EVALUATOR":
			c.Evaluator = val
		case "REMOTE_TIMEOUT":
			c.RemoteTimeout, err = time.ParseDuration(val)
		case "PROGRESS_EVERY":
			c.ProgressEvery, err = strconv.Atoi(val)
		case "VERBOSE":
			c.Verbose, err = strconv.ParseBool(val)
		case "DEBUG_LEVEL":
			c.DebugLevel = val
		case "DATA_DIR":
			c.DataDir = val
		case "LOG_FILE":
			c.LogFile = val
		}
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}
	return nil
}

func splitSeats(s string) []string {
	var seats []string
	for _, seat := range strings.Split(s, ",") {
		if seat = strings.TrimSpace(seat); seat != "" {
			seats = append(seats, seat)
		}
	}
	return seats
}

// Validate checks the configuration for values the simulator cannot run
// with.
func (c *Config) Validate() error {
	if len(c.Seats) < 2 || len(c.Seats) > poker.MaxPlayers {
		return fmt.Errorf("need 2 to %d seats, got %d", poker.MaxPlayers, len(c.Seats))
	}
	humans := 0
	for _, seat := range c.Seats {
		if !policy.Valid(seat) {
			return fmt.Errorf("invalid seat policy %q", seat)
		}
		if strings.EqualFold(strings.TrimSpace(seat), "human") {
			humans++
		}
	}
	if humans > 0 && c.Workers > 1 {
		return fmt.Errorf("human seats need a single worker, got %d", c.Workers)
	}
	if err := (poker.TableConfig{
		SmallBlind:   c.SmallBlind,
		BigBlind:     c.BigBlind,
		InitialStack: c.InitialStack,
	}).Validate(); err != nil {
		return err
	}
	if c.Episodes <= 0 {
		return fmt.Errorf("episodes must be > 0, got %d", c.Episodes)
	}
	if c.MaxHands < 0 {
		return fmt.Errorf("max hands must be >= 0, got %d", c.MaxHands)
	}
	if c.ProgressEvery < 0 {
		return fmt.Errorf("progress interval must be >= 0, got %d", c.ProgressEvery)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0, got %d", c.Workers)
	}
	if c.RemoteTimeout <= 0 {
		return fmt.Errorf("remote timeout must be > 0, got %v", c.RemoteTimeout)
	}
	if _, err := c.HandEvaluator(); err != nil {
		return err
	}
	if _, ok := slog.LevelFromString(c.DebugLevel); !ok {
		return fmt.Errorf("invalid debug level %q", c.DebugLevel)
	}
	return nil
}

// HandEvaluator returns the evaluator named by the configuration.
func (c *Config) HandEvaluator() (poker.HandEvaluator, error) {
	switch strings.ToLower(c.Evaluator) {
	case "", "chehsunliu":
		return poker.ChehsunliuEvaluator{}, nil
	case "eval7", "paulhankin":
		return poker.Eval7Evaluator{}, nil
	}
	return nil, fmt.Errorf("unknown evaluator %q", c.Evaluator)
}

// WorkerSeed returns the seed of worker i. A zero base seed stays zero so
// every worker picks its own time based seed.
func (c *Config) WorkerSeed(i int) int64 {
	if c.Seed == 0 {
		return 0
	}
	return c.Seed + int64(i)*1_000_003
}
