package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/guorg/liveview/internal/config"
	"github.com/guorg/liveview/internal/logtail"
	"github.com/guorg/liveview/internal/state"
	"github.com/guorg/liveview/internal/ui"
)

// Options configure the liveview demo.
type Options struct {
	ConfigPath string
	Tick       time.Duration // zero uses the configured tick
	Follow     string        // file to tail; empty uses the configured value
}

// Run boots the demo TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	saved := cfg
	if opts.Tick > 0 {
		cfg.Tick = opts.Tick
	}
	if opts.Follow != "" {
		cfg.Follow = opts.Follow
	}

	log, closeLog, err := openLog(cfg)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog.Close()

	store := &state.Store{}
	pipeline, err := NewPipeline(store, PipelineOptions{
		Capacity: cfg.Capacity,
		Buffer:   cfg.Buffer,
		Modulus:  cfg.Modulus,
		Logger:   log,
		Seed:     uint64(time.Now().UnixNano()),
	})
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			log.Warn("pipeline close failed", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	step := generatorStep(pipeline)
	if cfg.Follow != "" {
		store.SetFollow(cfg.Follow)
		step = followStep(pipeline, logtail.NewTail(cfg.Follow, cfg.Capacity))
	}
	done := StartFeeder(ctx, clockwork.NewRealClock(), cfg.Tick, step, store, log)
	log.Info("liveview started", "tick", cfg.Tick, "buffer", cfg.Buffer, "follow", cfg.Follow)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Actions:   pipeline,
		ThemeName: cfg.Theme,
		Tick:      cfg.Tick,
		SaveTheme: func(name string) error {
			saved.Theme = name
			return config.Save(opts.ConfigPath, saved)
		},
	})
	cancel()
	<-done
	return err
}

func generatorStep(p *Pipeline) Step {
	return func(context.Context) error {
		p.Generate()
		return nil
	}
}

func followStep(p *Pipeline, tail *logtail.Tail) Step {
	return func(context.Context) error {
		lines, changed, err := tail.Poll()
		if err != nil {
			return fmt.Errorf("tail %s: %w", tail.Path(), err)
		}
		if !changed {
			return nil
		}
		return p.Follow(lines)
	}
}

// openLog writes text logs to the configured file so the TUI stays clean.
func openLog(cfg config.Config) (*slog.Logger, io.Closer, error) {
	if cfg.LogFile == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	return slog.New(handler), f, nil
}
