package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/misterclayt0n/gymtrack/internal/config"
	"github.com/misterclayt0n/gymtrack/internal/session"
	"github.com/misterclayt0n/gymtrack/internal/storage"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:          "gymtrack",
	Short:        "Workout tracker with a live session runner",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/gymtrack/config.toml)")
}

// app bundles what every command needs: config, logger, storage and the display timezone.
type app struct {
	cfg *config.Config
	log *slog.Logger
	st  *storage.Storage
	loc *time.Location
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.LoadConfig()
	}
	cfg, err := config.Load(config.ExpandPath(configPath))
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("Failed to load config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	log := newLogger()
	st, err := storage.Open(cfg.DSN())
	if err != nil {
		return nil, err
	}
	log.Debug("storage opened", "remote", storage.IsRemote(cfg.DB.ConnectionString), "checkpoint", cfg.Session.Checkpoint)
	return &app{cfg: cfg, log: log, st: st, loc: loc}, nil
}

func (a *app) Close() {
	if err := a.st.Close(); err != nil {
		a.log.Warn("failed to close storage", "error", err)
	}
}

// checkpoints is where the active session lives between commands.
func (a *app) checkpoints() session.Store {
	if a.cfg.Session.Checkpoint == config.CheckpointDB {
		return a.st
	}
	return storage.CheckpointDir{Dir: a.cfg.Session.CheckpointDir}
}

func (a *app) engineOptions() session.Options {
	return session.Options{
		Store:           a.checkpoints(),
		History:         a.st,
		Logger:          a.log,
		RestPeriod:      a.cfg.RestPeriod(),
		TransitionDelay: a.cfg.TransitionDelay(),
	}
}

// resume loads the active session. The caller closes the engine.
func (a *app) resume() (*session.Engine, error) {
	return a.resumeWith(a.engineOptions())
}

func (a *app) resumeWith(opts session.Options) (*session.Engine, error) {
	e, err := session.Resume(opts)
	if errors.Is(err, session.ErrNoActiveSession) {
		return nil, fmt.Errorf("No active session")
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to load session: %w", err)
	}
	return e, nil
}

// withSession runs fn against the active session and tears everything down afterwards.
func withSession(fn func(a *app, e *session.Engine) error) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	e, err := a.resume()
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(a, e)
}

// parseIndex turns a 1-based command line index into a 0-based one below n.
func parseIndex(arg, what string, n int) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("Invalid %s index %q (1-%d)", what, arg, n)
	}
	return i - 1, nil
}

// confirm asks a yes/no question on stdin. Anything but y/yes is a no.
func confirm(in io.Reader, prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
