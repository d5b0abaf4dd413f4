package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"
)

func (a *App) cmdDecks(ctx context.Context, args []string) error {
	fs := a.flagSet("decks")
	all := fs.Bool("all", false, "list every user's decks")
	if _, err := parseArgs(fs, args); err != nil {
		return ErrUsage
	}

	userID := a.UserID
	if *all {
		userID = 0
	}
	decks, err := a.Decks.ListDecks(ctx, userID)
	if err != nil {
		return err
	}
	if len(decks) == 0 {
		fmt.Fprintln(a.Out, "No decks yet. Create one with: flashquiz new <name>")
		return nil
	}

	tw := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCARDS\tCREATED")
	for _, d := range decks {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", d.ID, d.Name, d.CardCount, d.CreatedAt.Format(time.DateOnly))
	}
	return tw.Flush()
}

func (a *App) cmdCards(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.commandUsage("cards")
	}
	id, err := a.resolveDeckID(ctx, args[0])
	if err != nil {
		return err
	}
	cards, err := a.Cards.ListCardsForDeck(ctx, id)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		fmt.Fprintln(a.Out, "This deck has no flashcards yet.")
		return nil
	}

	tw := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFRONT\tBACK")
	for _, c := range cards {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Front, c.Back)
	}
	return tw.Flush()
}

func (a *App) cmdCard(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.commandUsage("card")
	}
	id, err := parseCardID(args[0])
	if err != nil {
		return err
	}
	card, err := a.Cards.GetCard(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Card %d (deck %d)\n  front: %s\n  back:  %s\n", card.ID, card.DeckID, card.Front, card.Back)
	return nil
}

func (a *App) cmdNew(ctx context.Context, args []string) error {
	fs := a.flagSet("new")
	description := fs.String("description", "", "optional deck description")
	pos, err := parseArgs(fs, args)
	if err != nil || len(pos) != 1 {
		return a.commandUsage("new")
	}

	var desc *string
	if *description != "" {
		desc = description
	}
	id, err := a.Decks.CreateDeck(ctx, pos[0], desc)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Created deck %q (id %d)\n", pos[0], id)
	return nil
}

func (a *App) cmdRename(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return a.commandUsage("rename")
	}
	id, err := a.resolveDeckID(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.Decks.RenameDeck(ctx, id, args[1]); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Renamed deck %d to %q\n", id, args[1])
	return nil
}

func (a *App) cmdDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.commandUsage("delete")
	}
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := a.resolveDeckID(ctx, arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	if len(ids) == 1 {
		if err := a.Decks.DeleteDeck(ctx, ids[0]); err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "Deleted deck %d\n", ids[0])
		return nil
	}

	n, err := a.Decks.DeleteDecks(ctx, ids)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Deleted %d of %d decks\n", n, len(ids))
	return nil
}

func (a *App) cmdAdd(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return a.commandUsage("add")
	}
	deckID, err := a.resolveDeckID(ctx, args[0])
	if err != nil {
		return err
	}
	id, err := a.Cards.CreateCard(ctx, deckID, args[1], args[2])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Added card %d to deck %d\n", id, deckID)
	return nil
}

func (a *App) cmdEdit(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return a.commandUsage("edit")
	}
	id, err := parseCardID(args[0])
	if err != nil {
		return err
	}
	if err := a.Cards.UpdateCard(ctx, id, args[1], args[2]); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Updated card %d\n", id)
	return nil
}

func (a *App) cmdRemove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.commandUsage("remove")
	}
	id, err := parseCardID(args[0])
	if err != nil {
		return err
	}
	if err := a.Cards.DeleteCard(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Removed card %d\n", id)
	return nil
}

func (a *App) cmdImport(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return a.commandUsage("import")
	}
	f, err := os.Open(args[1])
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := a.Decks.ImportDeck(ctx, args[0], f)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Deck %q successfully created with %d cards (id %d)\n", args[0], res.CardCount, res.DeckID)
	return nil
}

func (a *App) cmdExport(ctx context.Context, args []string) error {
	fs := a.flagSet("export")
	out := fs.String("o", "", "write to this file instead of standard output")
	pos, err := parseArgs(fs, args)
	if err != nil || len(pos) != 1 {
		return a.commandUsage("export")
	}

	id, err := a.resolveDeckID(ctx, pos[0])
	if err != nil {
		return err
	}
	faces, err := a.Decks.ExportDeck(ctx, id)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(faces, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')

	if *out == "" {
		_, err = a.Out.Write(b)
		return err
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Exported %d cards to %s\n", len(faces), *out)
	return nil
}
