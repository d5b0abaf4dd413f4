package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vytor/flashquiz/internal/logger"
	"github.com/vytor/flashquiz/internal/models"
	"github.com/vytor/flashquiz/internal/quiz"
	"github.com/vytor/flashquiz/internal/results"
	"golang.org/x/sync/errgroup"
)

func (a *App) cmdPlay(ctx context.Context, args []string) error {
	fs := a.flagSet("play")
	modeFlag := fs.String("mode", "front", "which face to show first: front, back or random")
	cardsFlag := fs.String("cards", "", "comma-separated card ids to study (default: all)")
	pos, err := parseArgs(fs, args)
	if err != nil || len(pos) != 1 {
		return a.commandUsage("play")
	}

	mode, err := quiz.ParseMode(*modeFlag)
	if err != nil {
		return err
	}
	ids, err := parseIDList(*cardsFlag)
	if err != nil {
		return err
	}

	deckID, err := a.resolveDeckID(ctx, pos[0])
	if err != nil {
		return err
	}
	return a.play(ctx, deckID, mode, ids)
}

// play runs sessions until the player quits from the results screen.
func (a *App) play(ctx context.Context, deckID int64, mode quiz.Mode, ids []int64) error {
	log := logger.FromContext(ctx).WithPrefix("play")

	for {
		deck, cards, err := a.loadDeck(ctx, deckID)
		if err != nil {
			return err
		}

		state, err := quiz.Start(quiz.Select(cards, ids), mode, a.QuizOptions...)
		if errors.Is(err, quiz.ErrEmptyDeck) {
			fmt.Fprintf(a.Out, "Deck %q has no flashcards to study.\n", deck.Name)
			return nil
		}
		if err != nil {
			return err
		}

		log.Debug("session started: deck_id=%d, cards=%d, mode=%s", deck.ID, state.Total, mode)
		fmt.Fprintf(a.Out, "Studying %q: %d cards, %s side first\n", deck.Name, state.Total, mode)

		summary := a.runSession(ctx, state)
		report := results.New(summary, deck.ID, deck.Name, mode)
		if err := report.Render(a.Out); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			log.Debug("session interrupted: deck_id=%d", deck.ID)
			return err
		}

		next, err := a.afterResults(ctx, report)
		if err != nil {
			return err
		}
		switch next {
		case 0:
			return nil
		case deck.ID:
			// retry keeps the card selection
		default:
			deckID = next
			ids = nil
		}
	}
}

// loadDeck fetches the deck and its cards concurrently.
func (a *App) loadDeck(ctx context.Context, deckID int64) (*models.Deck, []models.Flashcard, error) {
	var (
		deck  *models.Deck
		cards []models.Flashcard
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		deck, err = a.Decks.GetDeck(gctx, deckID)
		return err
	})
	g.Go(func() error {
		var err error
		cards, err = a.Cards.ListCardsForDeck(gctx, deckID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return deck, cards, nil
}

// runSession drives one session from the terminal. End of input or a done
// ctx ends the session early.
func (a *App) runSession(ctx context.Context, state quiz.State) quiz.Summary {
	for !state.Complete {
		if !state.Revealed {
			fmt.Fprintf(a.Out, "\n[%d/%d] %s: %s\n", state.Index, state.Total, state.VisibleFace(), state.VisibleText())
			line, ok := a.prompt(ctx, "Press Enter to reveal, q to end: ")
			if !ok || isQuit(line) {
				return a.endEarly(state)
			}
			state = state.Reveal()
			fmt.Fprintf(a.Out, "%s: %s\n", state.VisibleFace(), state.VisibleText())
			continue
		}

		line, ok := a.prompt(ctx, "Correct? [y/n] (Enter flips, q ends): ")
		if !ok {
			return a.endEarly(state)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			state = a.answer(state, true)
		case "n", "no":
			state = a.answer(state, false)
		case "":
			state = state.Reveal()
			fmt.Fprintf(a.Out, "%s: %s\n", state.VisibleFace(), state.VisibleText())
		default:
			if isQuit(line) {
				return a.endEarly(state)
			}
			fmt.Fprintln(a.Out, "Please answer y or n.")
		}
	}
	return state.Summary()
}

func (a *App) answer(state quiz.State, correct bool) quiz.State {
	next, err := state.Answer(correct)
	if err != nil {
		fmt.Fprintln(a.Out, err)
		return state
	}
	return next
}

func (a *App) endEarly(state quiz.State) quiz.Summary {
	if left := len(state.Remaining); left > 0 {
		fmt.Fprintf(a.Out, "Ending early: %d unanswered cards count as incorrect.\n", left)
	}
	return state.EndEarly()
}

// afterResults offers the results actions and returns the deck to play next,
// or 0 to stop.
func (a *App) afterResults(ctx context.Context, report results.Report) (int64, error) {
	offered := report.Actions()
	for {
		line, ok := a.prompt(ctx, "> ")
		if !ok {
			return 0, ctx.Err()
		}
		action, valid := results.ParseAction(line, offered)
		if !valid {
			fmt.Fprintln(a.Out, "Choose one of the options above.")
			continue
		}

		switch action {
		case results.Retry:
			return report.DeckID, nil
		case results.ChooseAnotherDeck:
			return a.chooseDeck(ctx)
		case results.Download:
			path, err := report.SaveIncorrect(a.SaveDir)
			if err != nil {
				return 0, err
			}
			fmt.Fprintf(a.Out, "Saved %d incorrect answers to %s\n", len(report.Summary.IncorrectCards), path)
		default:
			return 0, nil
		}
	}
}

func (a *App) chooseDeck(ctx context.Context) (int64, error) {
	if err := a.cmdDecks(ctx, nil); err != nil {
		return 0, err
	}
	for {
		line, ok := a.prompt(ctx, "Deck (name or id, empty to quit): ")
		line = strings.TrimSpace(line)
		if !ok || line == "" {
			return 0, ctx.Err()
		}
		id, err := a.resolveDeckID(ctx, line)
		if err != nil {
			fmt.Fprintln(a.Out, err)
			continue
		}
		return id, nil
	}
}

func isQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "q", "quit", "exit":
		return true
	}
	return false
}

func parseIDList(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid card id %q in -cards", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
