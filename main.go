package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/espenotterstad/tail-chaser/internal/logging"
	"github.com/espenotterstad/tail-chaser/internal/model"
	"github.com/espenotterstad/tail-chaser/internal/tailer"
)

type config struct {
	pollInterval time.Duration
	rotateAfter  time.Duration
	watch        bool
	tui          bool
	maxLines     int
	logLevel     string
	logFormat    string
	logFile      string
}

func newRootCmd() *cobra.Command {
	var cfg config

	cmd := &cobra.Command{
		Use:   "tail-chaser [flags] <file>",
		Short: "Follow a growing file, surviving truncation and rotation",
		Long: "tail-chaser prints everything appended to <file> after it starts.\n" +
			"When the file is truncated or replaced by log rotation it keeps\n" +
			"following the file now found at the same path.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, args[0], cfg, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.DurationVar(&cfg.pollInterval, "poll-interval", tailer.DefaultPollInterval, "delay between two polls of the file")
	flags.DurationVar(&cfg.rotateAfter, "rotate-after", tailer.DefaultRotateAfter, "quiet period before the path is re-opened to detect rotation")
	flags.BoolVar(&cfg.watch, "watch", true, "use filesystem notifications to poll sooner after a change")
	flags.BoolVar(&cfg.tui, "tui", false, "show the followed text in an interactive viewer")
	flags.IntVar(&cfg.maxLines, "max-lines", model.DefaultMaxLines, "lines kept in the interactive viewer")
	flags.StringVar(&cfg.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&cfg.logFormat, "log-format", "text", "log format (text or json)")
	flags.StringVar(&cfg.logFile, "log-file", "", "write logs to this file instead of stderr")

	return cmd
}

func (c config) validate() error {
	if c.pollInterval <= 0 {
		return fmt.Errorf("--poll-interval must be positive, got %s", c.pollInterval)
	}
	if c.rotateAfter <= 0 {
		return fmt.Errorf("--rotate-after must be positive, got %s", c.rotateAfter)
	}
	return nil
}

func run(ctx context.Context, path string, cfg config, stdout io.Writer) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	logCfg := logging.Config{Level: cfg.logLevel, Format: cfg.logFormat, File: cfg.logFile}
	if cfg.tui {
		if !isTerminal(stdout) {
			return errors.New("--tui needs a terminal on stdout")
		}
		// Anything written to stderr would tear the viewer apart.
		logCfg.Fallback = io.Discard
	}
	logger, closeLog, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	defer closeLog()
	log := logrus.NewEntry(logger)

	opts := []tailer.Option{
		tailer.WithPollInterval(cfg.pollInterval),
		tailer.WithRotateAfter(cfg.rotateAfter),
		tailer.WithLogger(log),
	}
	if cfg.watch {
		w, err := tailer.NewWatcher(path, log)
		if err != nil {
			log.WithError(err).Warn("filesystem notifications unavailable, polling only")
		} else {
			defer w.Close()
			opts = append(opts, tailer.WithNotify(w.C()))
		}
	}

	if cfg.tui {
		return runViewer(ctx, path, cfg, opts, log)
	}

	tf, err := tailer.New(path, append(opts, tailer.WithOutput(stdout))...)
	if err != nil {
		return err
	}
	defer tf.Close()

	return followLoop(ctx, tf, nil)
}

// followLoop drives tf until ctx is done or Follow fails.  afterCycle, when
// set, is called after every successful cycle.
func followLoop(ctx context.Context, tf *tailer.TailedFile, afterCycle func()) error {
	for {
		if err := tf.Follow(); err != nil {
			return err
		}
		if afterCycle != nil {
			afterCycle()
		}
		if err := tf.Wait(ctx); err != nil {
			return nil
		}
	}
}

// runViewer follows path in a goroutine and shows the output in Bubble Tea.
// The goroutine is the only user of the TailedFile; the program only sees
// copies sent as messages.
func runViewer(ctx context.Context, path string, cfg config, opts []tailer.Option, log *logrus.Entry) error {
	m := model.New(path, cfg.maxLines)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	tf, err := tailer.New(path, append(opts, tailer.WithOutput(programWriter{p}))...)
	if err != nil {
		return err
	}
	defer tf.Close()

	followCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Send(model.StateMsg(tf.Snapshot()))
		err := followLoop(followCtx, tf, func() {
			p.Send(model.StateMsg(tf.Snapshot()))
		})
		if err != nil {
			log.WithError(err).Error("follow")
			p.Send(model.TailerErrMsg{Err: err})
		}
	}()

	final, runErr := p.Run()
	cancel()
	<-done

	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if runErr != nil {
		return runErr
	}
	if fm, ok := final.(model.Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}

// programWriter forwards followed text to the viewer.
type programWriter struct{ p *tea.Program }

func (w programWriter) Write(b []byte) (int, error) {
	w.p.Send(model.ChunkMsg(b))
	return len(b), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tail-chaser: %v\n", err)
		os.Exit(1)
	}
}
