package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"
	"golang.org/x/term"

	"github.com/valerio/go-gfs/gfs"
	"github.com/valerio/go-gfs/gfs/audio"
	"github.com/valerio/go-gfs/gfs/backend"
	"github.com/valerio/go-gfs/gfs/backend/headless"
	"github.com/valerio/go-gfs/gfs/backend/sdl2"
	"github.com/valerio/go-gfs/gfs/backend/terminal"
	"github.com/valerio/go-gfs/gfs/bmr"
	"github.com/valerio/go-gfs/gfs/display"
	"github.com/valerio/go-gfs/gfs/timing"
	"github.com/valerio/go-gfs/gfs/video"
)

const (
	backendTerminal = "terminal"
	backendSDL2     = "sdl2"
	backendHeadless = "headless"

	limiterAdaptive = "adaptive"
	limiterTicker   = "ticker"
)

func main() {
	app := cli.NewApp()
	app.Name = "gfs"
	app.Description = "A software bitmap renderer demo"
	app.Usage = "gfs [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "backend",
			Usage:  "Backend to use: terminal, sdl2 or headless (default: terminal on a TTY, headless otherwise)",
			EnvVar: "GFS_BACKEND",
		},
		cli.IntFlag{
			Name:   "width",
			Usage:  "Initial backbuffer and window width",
			Value:  display.DefaultWindowWidth,
			EnvVar: "GFS_WIDTH",
		},
		cli.IntFlag{
			Name:   "height",
			Usage:  "Initial backbuffer and window height",
			Value:  display.DefaultWindowHeight,
			EnvVar: "GFS_HEIGHT",
		},
		cli.IntFlag{
			Name:   "frames",
			Usage:  "Number of frames to run in headless mode (required for headless)",
			EnvVar: "GFS_FRAMES",
		},
		cli.IntFlag{
			Name:   "snapshot-interval",
			Usage:  "Save frame snapshots every N frames in headless mode (0 = disabled)",
			EnvVar: "GFS_SNAPSHOT_INTERVAL",
		},
		cli.StringFlag{
			Name:   "snapshot-dir",
			Usage:  "Directory to save frame snapshots (default: temp directory in headless mode, working directory otherwise)",
			EnvVar: "GFS_SNAPSHOT_DIR",
		},
		cli.IntFlag{
			Name:   "command-capacity",
			Usage:  "Command buffer size in bytes",
			Value:  bmr.DefaultCommandCapacity,
			EnvVar: "GFS_COMMAND_CAPACITY",
		},
		cli.BoolFlag{
			Name:   "top-down",
			Usage:  "Store the backbuffer top row first",
			EnvVar: "GFS_TOP_DOWN",
		},
		cli.BoolFlag{
			Name:   "audio",
			Usage:  "Play the test tone (requires a build with -tags audio)",
			EnvVar: "GFS_AUDIO",
		},
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "Log level: debug, info, warn or error",
			Value:  "info",
			EnvVar: "GFS_LOG_LEVEL",
		},
		cli.IntFlag{
			Name:   "fps",
			Usage:  "Target frames per second (ignored in headless mode)",
			Value:  timing.DefaultFPS,
			EnvVar: "GFS_FPS",
		},
		cli.StringFlag{
			Name:   "limiter",
			Usage:  "Frame limiter: adaptive or ticker",
			Value:  limiterAdaptive,
			EnvVar: "GFS_LIMITER",
		},
	}
	app.Action = runDemo

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running demo", "error", err)
		os.Exit(1)
	}
}

func runDemo(c *cli.Context) error {
	level := new(slog.LevelVar)
	if err := level.UnmarshalText([]byte(c.String("log-level"))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.String("log-level"), err)
	}

	name := c.String("backend")
	if name == "" {
		name = backendHeadless
		if term.IsTerminal(int(os.Stdout.Fd())) {
			name = backendTerminal
		}
	}

	var limiter timing.Limiter
	var b backend.Backend
	snapshotDir := c.String("snapshot-dir")

	switch name {
	case backendHeadless:
		frames := c.Int("frames")
		if frames <= 0 {
			return errors.New("headless mode requires --frames option with a positive value")
		}

		snapshotConfig, err := headless.NewSnapshotConfig(c.Int("snapshot-interval"), snapshotDir)
		if err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		if snapshotConfig.Enabled {
			snapshotDir = snapshotConfig.Directory
		}

		// Set up debug logging for headless mode
		if !c.IsSet("log-level") {
			level.Set(slog.LevelDebug)
		}
		installStderrLogger(level)

		b = headless.New(frames, snapshotConfig)
		limiter = timing.NewNoOpLimiter()

	case backendTerminal, backendSDL2:
		if name == backendSDL2 {
			installStderrLogger(level)
			b = sdl2.New()
		} else {
			b = terminal.New()
		}

		switch c.String("limiter") {
		case limiterAdaptive:
			limiter = timing.NewAdaptiveLimiter(c.Int("fps"))
		case limiterTicker:
			ticker := timing.NewTickerLimiter(c.Int("fps"))
			defer ticker.Stop()
			limiter = ticker
		default:
			return fmt.Errorf("unknown limiter %q", c.String("limiter"))
		}

	default:
		return fmt.Errorf("unknown backend %q", name)
	}

	rowOrder := video.BottomUp
	if c.Bool("top-down") {
		rowOrder = video.TopDown
	}

	opts := gfs.Options{
		Backend: b,
		Limiter: limiter,
		Renderer: bmr.Config{
			CommandCapacity: c.Int("command-capacity"),
			RowOrder:        rowOrder,
		},
		Title:       display.DefaultTitle,
		Width:       c.Int("width"),
		Height:      c.Int("height"),
		SnapshotDir: snapshotDir,
		LogLevel:    level,
	}

	if c.Bool("audio") {
		opts.Audio = openAudio()
	}

	host, err := gfs.NewHost(opts)
	if err != nil {
		if opts.Audio != nil {
			opts.Audio.Close()
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Running demo", "backend", name, "width", opts.Width, "height", opts.Height)
	runErr := host.Run(ctx)
	return errors.Join(runErr, host.Close())
}

// openAudio starts the tone player. It returns nil when no audio output is
// available.
func openAudio() *audio.Player {
	player, err := audio.NewPlayer(audio.NewDefaultTone())
	if errors.Is(err, audio.ErrUnavailable) {
		slog.Info("Audio requested but this build has no audio output, rebuild with -tags audio")
		return nil
	}
	if err != nil {
		slog.Warn("Audio disabled", "error", err)
		return nil
	}
	return player
}

func installStderrLogger(level *slog.LevelVar) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
