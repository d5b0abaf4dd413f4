// Package cli is the terminal front end: deck and card management commands
// plus an interactive quiz that talks to the API through client stores.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/vytor/flashquiz/internal/client"
	"github.com/vytor/flashquiz/internal/logger"
	"github.com/vytor/flashquiz/internal/quiz"
)

// ErrUsage is returned for malformed command lines. The usage text has
// already been written to Out.
var ErrUsage = errors.New("usage error")

// App holds the stores and terminal streams the commands run against.
type App struct {
	Decks  client.DeckStore
	Cards  client.CardStore
	UserID int64

	In      io.Reader
	Out     io.Writer
	SaveDir string

	// QuizOptions are passed to quiz.Start, e.g. a seeded source in tests.
	QuizOptions []quiz.Option

	readOnce sync.Once
	lines    <-chan string
}

type command struct {
	name    string
	usage   string
	summary string
	run     func(a *App, ctx context.Context, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"decks", "decks [-all]", "list decks", (*App).cmdDecks},
		{"cards", "cards <deck>", "list a deck's flashcards", (*App).cmdCards},
		{"card", "card <card-id>", "show one flashcard", (*App).cmdCard},
		{"new", "new [-description text] <name>", "create a deck", (*App).cmdNew},
		{"rename", "rename <deck> <name>", "rename a deck", (*App).cmdRename},
		{"delete", "delete <deck>...", "delete one or more decks and their cards", (*App).cmdDelete},
		{"add", "add <deck> <front> <back>", "add a flashcard", (*App).cmdAdd},
		{"edit", "edit <card-id> <front> <back>", "change a flashcard", (*App).cmdEdit},
		{"remove", "remove <card-id>", "delete a flashcard", (*App).cmdRemove},
		{"import", "import <name> <file.csv>", "create a deck from front,back CSV rows", (*App).cmdImport},
		{"export", "export [-o file] <deck>", "write a deck's cards as JSON", (*App).cmdExport},
		{"play", "play [-mode front|back|random] [-cards id,id] <deck>", "study a deck", (*App).cmdPlay},
	}
}

// Run dispatches args[0] to its command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.usage()
		if len(args) == 0 {
			return ErrUsage
		}
		return nil
	}

	for _, c := range commands {
		if c.name == args[0] {
			logger.FromContext(ctx).WithPrefix("cli").Debug("running command %s", c.name)
			return c.run(a, ctx, args[1:])
		}
	}
	fmt.Fprintf(a.Out, "unknown command %q\n\n", args[0])
	a.usage()
	return ErrUsage
}

func (a *App) usage() {
	fmt.Fprintln(a.Out, "Usage: flashquiz <command> [arguments]")
	fmt.Fprintln(a.Out)
	fmt.Fprintln(a.Out, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(a.Out, "  %-55s %s\n", c.usage, c.summary)
	}
}

func (a *App) commandUsage(name string) error {
	for _, c := range commands {
		if c.name == name {
			fmt.Fprintf(a.Out, "usage: flashquiz %s\n", c.usage)
		}
	}
	return ErrUsage
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.Out)
	return fs
}

// parseArgs parses flags that may appear before, between or after
// positional arguments and returns the positionals.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// prompt writes msg and reads one line. ok is false at end of input or once
// ctx is done; callers check ctx.Err() to tell the two apart.
func (a *App) prompt(ctx context.Context, msg string) (line string, ok bool) {
	fmt.Fprint(a.Out, msg)
	a.readOnce.Do(a.startReader)
	select {
	case line, ok = <-a.lines:
	case <-ctx.Done():
	}
	if !ok {
		fmt.Fprintln(a.Out)
	}
	return line, ok
}

// startReader scans In on its own goroutine so a blocked read never holds up
// cancellation. The goroutine lives until In reaches end of input.
func (a *App) startReader() {
	lines := make(chan string)
	a.lines = lines
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(a.In)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()
}

// resolveDeckID accepts a numeric id or a deck name.
func (a *App) resolveDeckID(ctx context.Context, arg string) (int64, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil && id > 0 {
		return id, nil
	}

	decks, err := a.Decks.ListDecks(ctx, a.UserID)
	if err != nil {
		return 0, err
	}
	var found []int64
	for _, d := range decks {
		if strings.EqualFold(d.Name, arg) {
			found = append(found, d.ID)
		}
	}
	switch len(found) {
	case 0:
		return 0, fmt.Errorf("no deck named %q", arg)
	case 1:
		return found[0], nil
	default:
		return 0, fmt.Errorf("%d decks are named %q, use an id instead", len(found), arg)
	}
}

func parseCardID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid card id %q", arg)
	}
	return id, nil
}
