package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.td.teradata.com/sandbox/snake-ctl/internal/config"
	"github.td.teradata.com/sandbox/snake-ctl/internal/driver"
	"github.td.teradata.com/sandbox/snake-ctl/internal/log"
	"github.td.teradata.com/sandbox/snake-ctl/internal/services/display"
	"github.td.teradata.com/sandbox/snake-ctl/internal/services/game"
	"github.td.teradata.com/sandbox/snake-ctl/internal/services/keyboard"
)

var (
	cfgFile  string
	size     int
	frameMs  int
	warp     bool
	seed     int64
	logFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:           "snake",
	Short:         "snake is a terminal snake game",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.CLIConfig
		applyFlags(cmd.Flags(), cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		closeLog, err := setupLogging(cfg.Log)
		if err != nil {
			return err
		}
		defer closeLog()

		score, err := play(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Final score: %d\n", score)
		return nil
	},
}

// Execute bootstraps the viper
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "configuration file for snake")
	rootCmd.Flags().IntVarP(&size, "size", "s", 0, "side length of the square board")
	rootCmd.Flags().IntVarP(&frameMs, "frame", "f", 0, "frame duration in milliseconds")
	rootCmd.Flags().BoolVarP(&warp, "warp", "w", true, "wrap around the board edges")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "food placement seed, 0 for random")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write log output to this file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := config.NewConfig(cfgFile); err != nil {
		log.Fatalf("Failed to load configuration: %s", err)
	}
}

// applyFlags overrides file and environment settings with flags that were
// given on the command line.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("size") {
		cfg.Game.Size = size
	}
	if flags.Changed("frame") {
		cfg.Game.FrameMs = frameMs
	}
	if flags.Changed("warp") {
		cfg.Game.Warping = warp
	}
	if flags.Changed("seed") {
		cfg.Game.Seed = seed
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
}

// setupLogging routes the logger away from the screen the game draws on.
// Without a log file the output is discarded. The returned func puts the
// logger back on stderr.
func setupLogging(cfg *config.Log) (func(), error) {
	lc := log.NewLogConfigurator()
	lc.Level = cfg.Level
	lc.Writer = io.Discard
	var f *os.File

	if cfg.File != "" {
		var err error
		if f, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600); err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		lc.Writer = f
	}

	log.Setup(lc)
	return func() {
		log.SetOutput(os.Stderr)
		if f != nil {
			_ = f.Close()
		}
	}, nil
}

// play runs one game inside an interactive session and returns the score.
// The session is released on every return path, including panics.
func play(ctx context.Context, cfg *config.Config) (score int, err error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()
	// A second signal gets the default handling once the first is seen.
	context.AfterFunc(ctx, stop)

	fd := int(os.Stdin.Fd())
	profile := termenv.EnvColorProfile()

	session, err := display.Acquire(fd, os.Stdout)
	if err != nil {
		return 0, err
	}
	defer func() {
		if rerr := session.Release(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	kb, err := keyboard.Open(keyboard.DefaultDevice)
	if err != nil {
		return 0, err
	}
	defer kb.Close()

	g := game.New(game.Options{
		Size:    cfg.Game.Size,
		Warping: cfg.Game.Warping,
		Random:  game.NewRandom(cfg.Game.Seed),
	})
	terminal := display.NewTerminal(os.Stdout, display.TTYSize(fd), profile)
	d := driver.New(g, terminal, kb, driver.WithFrame(cfg.Game.Frame(), cfg.Game.Poll()))

	log.Info("Session started", "size", cfg.Game.Size, "warping", cfg.Game.Warping, "frame", cfg.Game.Frame())
	err = d.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Warn("Stopped by signal", "score", g.Score())
		err = nil
	}
	return g.Score(), err
}
