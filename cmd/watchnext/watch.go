package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"

	"github.com/marco/watchNext/internal/discovery"
	"github.com/marco/watchNext/internal/preferences"
	"github.com/marco/watchNext/internal/render"
	"github.com/marco/watchNext/internal/watcher"
)

// watchRunner re-submits a preferences file every time it settles after a change
type watchRunner struct {
	fs       afero.Fs
	path     string
	debounce time.Duration
	orch     *discovery.Orchestrator
	out      io.Writer

	// Overlap prevention for reloads triggered while one is still running
	inProgress atomic.Bool
}

// run submits the file once, then watches it until ctx is done. A file that
// fails to load on startup is an error; later bad edits are only reported.
func (w *watchRunner) run(ctx context.Context) error {
	prefs, err := preferences.Load(w.fs, w.path)
	if err != nil {
		return err
	}
	w.submit(ctx, prefs)

	fw, err := watcher.New(w.path, w.debounce, func(string) {
		w.reload(ctx)
	})
	if err != nil {
		return err
	}
	if err := fw.Start(); err != nil {
		_ = fw.Stop()
		return err
	}

	slog.Info("watching preferences file", "path", fw.Path(), "debounce", w.debounce)

	<-ctx.Done()

	slog.Info("preferences watch stopped")
	return fw.Stop()
}

// reload performs one reload with overlap prevention
func (w *watchRunner) reload(ctx context.Context) {
	if !w.inProgress.CompareAndSwap(false, true) {
		slog.Warn("reload skipped: previous reload still running", "path", w.path)
		return
	}
	defer w.inProgress.Store(false)

	if ctx.Err() != nil {
		return
	}

	prefs, err := preferences.Load(w.fs, w.path)
	if err != nil {
		slog.Warn("preferences reload failed", "path", w.path, "error", err)
		fmt.Fprintf(w.out, "Error: %v\n", err)
		return
	}

	slog.Info("preferences changed", "path", w.path, "preferences", prefs.String())
	w.submit(ctx, prefs)
}

func (w *watchRunner) submit(ctx context.Context, prefs preferences.Preferences) {
	startTime := time.Now()
	err := w.orch.SubmitPreferences(ctx, prefs)

	s := w.orch.State()
	slog.Debug("recommendations refreshed",
		"count", len(s.Items),
		"duration", time.Since(startTime).Round(time.Millisecond),
		"error", err,
	)
	fmt.Fprint(w.out, render.State(s))
}
