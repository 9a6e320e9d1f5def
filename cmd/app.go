// Package cmd implements the yi command line, a terminal front-end to the
// Young Investor game.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/younginvestor"
	"github.com/etnz/younginvestor/config"
	"github.com/etnz/younginvestor/logger"
	"github.com/etnz/younginvestor/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&newCmd{}, "game")
	c.Register(&statusCmd{}, "game")
	c.Register(&resetCmd{}, "game")
	c.Register(&slotsCmd{}, "game")
	c.Register(&queryCmd{}, "game")

	c.Register(&roundCmd{}, "trading")
	c.Register(&tradeCmd{side: younginvestor.Buy}, "trading")
	c.Register(&tradeCmd{side: younginvestor.Sell}, "trading")
	c.Register(&nextRoundCmd{}, "trading")

	c.Register(&completeCmd{}, "story")
	c.Register(&milestonesCmd{}, "story")
	c.Register(&flowCmd{}, "story")
	c.Register(&lessonCmd{}, "story")
	c.Register(&quizCmd{}, "story")
	c.Register(&shopCmd{}, "story")
	c.Register(&guruCmd{}, "story")

	c.Register(&serveCmd{}, "server")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	storeSpec = flag.String("store", "", "Save store, e.g. file:<dir>, gzip:<dir>, sqlite:<path>. Defaults to $YI_STORE.")
	slotName  = flag.String("slot", "", "Save slot to play. Defaults to $YI_SLOT.")
	Verbose   = flag.Bool("v", false, "verbose logging")
)

var (
	stdout io.Writer = os.Stdout
	stdin  io.Reader = os.Stdin
)

// loadConfig reads the configuration, global flags take precedence.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if *storeSpec != "" {
		cfg.Store = *storeSpec
	}
	if *slotName != "" {
		cfg.Slot = *slotName
	}
	if *Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	l := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(l)
	return l
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	return store.Open(ctx, cfg.Store, store.WithS3(store.S3Config{
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
	}))
}

// session is a game loaded from its save slot. Every change to the game is
// written back to the slot.
type session struct {
	cfg   *config.Config
	log   zerolog.Logger
	store store.Store
	game  *younginvestor.Game
	isNew bool // the slot did not exist
}

// openSession loads the configured slot, a new game when the slot is empty.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg)

	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not open store %q: %w", cfg.Store, err)
	}
	catalog, err := younginvestor.DefaultCatalog()
	if err != nil {
		st.Close()
		return nil, err
	}

	s := &session{cfg: cfg, log: log, store: st, game: younginvestor.NewGame(catalog)}
	snap, err := st.Load(ctx, cfg.Slot)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debug().Str("slot", cfg.Slot).Msg("empty slot, starting a new game")
		s.isNew = true
	case err != nil:
		st.Close()
		return nil, fmt.Errorf("could not load slot %q: %w", cfg.Slot, err)
	default:
		s.game.Restore(snap)
	}
	s.game.Subscribe(store.Autosave(ctx, st, cfg.Slot, log))
	return s, nil
}

func (s *session) Close() error { return s.store.Close() }

// withSession opens the session, runs fn and reports errors the way every
// command does.
func withSession(ctx context.Context, fn func(s *session) error) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if err := fn(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// render formats markdown for the terminal.
var render = func(md string) string {
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return out
}

func printMarkdown(md string) {
	fmt.Fprint(stdout, render(md))
}
