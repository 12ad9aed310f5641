package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/marco/watchNext/internal/catalog"
	"github.com/marco/watchNext/internal/discovery"
	"github.com/marco/watchNext/internal/media"
	"github.com/marco/watchNext/internal/preferences"
	"github.com/marco/watchNext/internal/render"
)

const replHelp = `Commands:
  search <query>        search movies
  type <movie|tv>       media type for recommendations
  genre <id>            toggle a genre
  genres                list genres (* = selected)
  years <from> <to>     release year range
  rating <n>            minimum rating, 0-10 in steps of 0.5
  adult <on|off>        include adult titles
  prefs                 show current preferences
  submit                get recommendations
  select <n>            open item n of the list
  similar <n>           open similar title n from the details view
  close                 go back to the list
  export [file]         write the open title as Markdown
  show                  redraw the screen
  help                  this text
  quit                  leave
`

var errUsage = errors.New("usage")

// repl reads one command per line. Preferences are edited locally and only
// reach the orchestrator on submit.
type repl struct {
	orch  *discovery.Orchestrator
	fs    afero.Fs
	prefs *preferences.Preferences
	out   io.Writer
}

func newREPL(orch *discovery.Orchestrator, fs afero.Fs, prefs *preferences.Preferences, out io.Writer) *repl {
	return &repl{orch: orch, fs: fs, prefs: prefs, out: out}
}

// loop runs until quit, end of input or ctx cancellation. Lines are read on
// a separate goroutine so a signal interrupts a blocked read.
func (r *repl) loop(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(r.out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := r.execute(ctx, line)
			if err != nil {
				fmt.Fprintf(r.out, "Error: %s\n", discovery.Describe(err))
			}
			if quit {
				return nil
			}
		}
	}
}

// execute runs a single command line. Catalog failures are shown through the
// view state; only input mistakes come back as errors.
func (r *repl) execute(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprint(r.out, replHelp)
	case "show":
		r.printState()
	case "search":
		if err := r.orch.Search(ctx, strings.Join(args, " ")); errors.Is(err, discovery.ErrBlankQuery) {
			return false, err
		}
		r.printState()
	case "type":
		return false, r.setType(args)
	case "genre":
		return false, r.toggleGenre(args)
	case "genres":
		r.printGenres()
	case "years":
		return false, r.setYears(args)
	case "rating":
		return false, r.setRating(args)
	case "adult":
		return false, r.setAdult(args)
	case "prefs":
		fmt.Fprintln(r.out, r.prefs.String())
	case "submit":
		_ = r.orch.SubmitPreferences(ctx, *r.prefs)
		r.printState()
	case "select":
		return false, r.selectFrom(ctx, args, r.orch.State().Items, discovery.View.IsList)
	case "similar":
		return false, r.selectSimilar(ctx, args)
	case "close":
		r.orch.CloseDetails()
		r.printState()
	case "export":
		return false, r.export(args)
	default:
		return false, fmt.Errorf("unknown command %q, type help for a list", cmd)
	}
	return false, nil
}

func (r *repl) printState() {
	fmt.Fprint(r.out, render.State(r.orch.State()))
}

func (r *repl) setType(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: type <movie|tv>", errUsage)
	}
	mt, err := catalog.ParseMediaType(strings.ToLower(args[0]))
	if err != nil {
		return err
	}
	if err := r.prefs.SetMediaType(mt); err != nil {
		return err
	}
	fmt.Fprintln(r.out, r.prefs.String())
	return nil
}

func (r *repl) toggleGenre(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: genre <id>", errUsage)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid genre id %q", args[0])
	}

	name := r.orch.Genres().Resolve([]int{id})[0]
	if r.prefs.ToggleGenre(id) {
		fmt.Fprintf(r.out, "Added %s\n", name)
	} else {
		fmt.Fprintf(r.out, "Removed %s\n", name)
	}
	return nil
}

func (r *repl) printGenres() {
	genres := r.orch.Genres()
	if len(genres) == 0 {
		fmt.Fprintln(r.out, "Genres are not loaded.")
		return
	}
	for _, id := range slices.Sorted(maps.Keys(genres)) {
		mark := " "
		if r.prefs.HasGenre(id) {
			mark = "*"
		}
		fmt.Fprintf(r.out, "%s %6d  %s\n", mark, id, genres[id])
	}
}

func (r *repl) setYears(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: years <from> <to>", errUsage)
	}
	from, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid year %q", args[0])
	}
	to, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid year %q", args[1])
	}

	// Apply to a copy so a rejected upper bound does not leave the lower one changed
	next := r.prefs.Clone()
	if err := next.SetYearFrom(from); err != nil {
		return err
	}
	if err := next.SetYearTo(to); err != nil {
		return err
	}
	*r.prefs = next
	fmt.Fprintln(r.out, r.prefs.String())
	return nil
}

func (r *repl) setRating(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: rating <n>", errUsage)
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid rating %q", args[0])
	}
	if err := r.prefs.SetMinRating(v); err != nil {
		return err
	}
	fmt.Fprintln(r.out, r.prefs.String())
	return nil
}

func (r *repl) setAdult(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: adult <on|off>", errUsage)
	}
	switch strings.ToLower(args[0]) {
	case "on", "yes", "true":
		r.prefs.SetIncludeAdult(true)
	case "off", "no", "false":
		r.prefs.SetIncludeAdult(false)
	default:
		return fmt.Errorf("%w: adult <on|off>", errUsage)
	}
	fmt.Fprintln(r.out, r.prefs.String())
	return nil
}

// selectFrom opens the n-th (1-based) entry of items when the current view
// passes allowed.
func (r *repl) selectFrom(ctx context.Context, args []string, items []media.Item, allowed func(discovery.View) bool) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: select <n>", errUsage)
	}
	if !allowed(r.orch.State().CurrentView) {
		return fmt.Errorf("nothing to select here")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(items) {
		return fmt.Errorf("pick a number between 1 and %d", len(items))
	}

	_ = r.orch.SelectItem(ctx, items[n-1])
	r.printState()
	return nil
}

func (r *repl) selectSimilar(ctx context.Context, args []string) error {
	selected := r.orch.State().Selected
	if selected == nil {
		return fmt.Errorf("open a title first")
	}
	return r.selectFrom(ctx, args, selected.Similar, func(v discovery.View) bool {
		return v == discovery.ViewDetails
	})
}

func (r *repl) export(args []string) error {
	selected := r.orch.State().Selected
	if selected == nil {
		return fmt.Errorf("open a title first")
	}

	path := render.ExportFileName(selected)
	if len(args) > 0 {
		path = args[0]
	}
	if err := render.WriteDetailMarkdown(r.fs, path, selected); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Exported %s to %s\n", selected.Title, path)
	return nil
}
