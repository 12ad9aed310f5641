package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/marco/watchNext/internal/catalog"
	"github.com/marco/watchNext/internal/config"
	"github.com/marco/watchNext/internal/discovery"
	"github.com/marco/watchNext/internal/media"
	"github.com/marco/watchNext/internal/preferences"
	"github.com/marco/watchNext/internal/render"
)

// app dispatches one command line against an orchestrator
type app struct {
	cfg   *config.Config
	fs    afero.Fs
	orch  *discovery.Orchestrator
	prefs preferences.Preferences
	in    io.Reader
	out   io.Writer
}

func (a *app) run(ctx context.Context, args []string) error {
	command := "repl"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	switch command {
	case "repl":
		return a.runREPL(ctx)
	case "trending":
		return a.runTrending(ctx)
	case "search":
		return a.runSearch(ctx, strings.Join(args, " "))
	case "recommend":
		return a.runRecommend(ctx)
	case "details":
		return a.runDetails(ctx, args)
	case "watch":
		if len(args) != 1 {
			return fmt.Errorf("usage: watch <preferences.yaml>")
		}
		return a.runWatch(ctx, args[0])
	default:
		return fmt.Errorf("unknown command %q (run with -h for usage)", command)
	}
}

func (a *app) runREPL(ctx context.Context) error {
	if err := a.orch.Initialize(ctx); err != nil {
		slog.Warn("initial load failed", "error", err)
	}
	r := newREPL(a.orch, a.fs, &a.prefs, a.out)
	r.printState()
	return r.loop(ctx, a.in)
}

func (a *app) runTrending(ctx context.Context) error {
	err := a.orch.Initialize(ctx)
	a.print()
	return err
}

func (a *app) runSearch(ctx context.Context, query string) error {
	a.loadGenres(ctx)
	err := a.orch.Search(ctx, query)
	if errors.Is(err, discovery.ErrBlankQuery) {
		return fmt.Errorf("usage: search <query>")
	}
	a.print()
	return err
}

func (a *app) runRecommend(ctx context.Context) error {
	a.loadGenres(ctx)
	slog.Debug("submitting preferences", "preferences", a.prefs.String())
	err := a.orch.SubmitPreferences(ctx, a.prefs)
	a.print()
	return err
}

func (a *app) runDetails(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: details <movie|tv> <id>")
	}
	mediaType, err := catalog.ParseMediaType(args[0])
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(args[1])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid id %q", args[1])
	}

	a.loadGenres(ctx)
	if err := a.orch.SelectItem(ctx, media.Item{Type: mediaType, ID: id}); err != nil {
		return err
	}
	a.print()
	return nil
}

func (a *app) runWatch(ctx context.Context, path string) error {
	a.loadGenres(ctx)
	w := &watchRunner{
		fs:       a.fs,
		path:     path,
		debounce: a.cfg.Watch.Debounce(),
		orch:     a.orch,
		out:      a.out,
	}
	return w.run(ctx)
}

// loadGenres is best effort for one-shot commands; unknown ids still render
// with a placeholder name.
func (a *app) loadGenres(ctx context.Context) {
	if err := a.orch.LoadGenres(ctx); err != nil {
		slog.Warn("genre lists unavailable", "error", err)
	}
}

func (a *app) print() {
	fmt.Fprint(a.out, render.State(a.orch.State()))
}
