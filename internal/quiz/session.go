// Package quiz runs one pass over a set of flashcards: shuffle, show a face,
// reveal the other, record a correct/incorrect judgment, and tally the result.
//
// A State is a value. Every transition returns a new State and leaves the one
// it was called on usable and unchanged, so a presenter can keep history or
// discard it freely. Sessions are not persisted.
package quiz

import (
	"errors"
	"slices"

	"github.com/vytor/flashquiz/internal/models"
)

var (
	ErrEmptyDeck       = errors.New("quiz: cannot start a session without cards")
	ErrPrematureAnswer = errors.New("quiz: card must be revealed before it is judged")
	ErrSessionComplete = errors.New("quiz: session is already complete")
	ErrInvalidMode     = errors.New("quiz: invalid test mode")
)

// Face names one side of a card.
type Face int

const (
	Front Face = iota
	Back
)

func (f Face) String() string {
	if f == Back {
		return "back"
	}
	return "front"
}

// State is a snapshot of a session.
//
// Remaining holds the current card at index 0 followed by the cards not yet
// shown. CorrectCount + IncorrectCount + len(Remaining) always equals Total.
type State struct {
	Remaining      []models.Flashcard
	Index          int
	Total          int
	CorrectCount   int
	IncorrectCount int
	IncorrectCards []models.Flashcard
	Mode           Mode
	Complete       bool

	// BackShown reports which face is up. It starts per Mode and is toggled
	// by Reveal.
	BackShown bool
	// Revealed is set once the second face of the current card has been shown.
	Revealed bool

	firstFace Face
	src       source
}

// Option configures Start.
type Option func(*State)

// WithRand draws shuffles and RANDOM-mode coin flips from src, typically a
// seeded *rand.Rand in tests.
func WithRand(src interface{ IntN(int) int }) Option {
	return func(s *State) {
		if src != nil {
			s.src = src
		}
	}
}

// Start shuffles cards and presents the first one.
func Start(cards []models.Flashcard, mode Mode, opts ...Option) (State, error) {
	if len(cards) == 0 {
		return State{}, ErrEmptyDeck
	}
	if !mode.valid() {
		return State{}, ErrInvalidMode
	}

	s := State{Mode: mode, Total: len(cards), src: globalSource{}}
	for _, opt := range opts {
		opt(&s)
	}
	s.Remaining = shuffle(cards, s.src)
	s.Index = 1
	s.present()
	return s, nil
}

// present resets the per-card face state for Remaining[0].
func (s *State) present() {
	switch s.Mode {
	case BackFirst:
		s.BackShown = true
	case Random:
		s.BackShown = coin(s.src)
	default:
		s.BackShown = false
	}
	s.firstFace = Front
	if s.BackShown {
		s.firstFace = Back
	}
	s.Revealed = false
}

// Current returns the card being shown, if any.
func (s State) Current() (models.Flashcard, bool) {
	if s.Complete || len(s.Remaining) == 0 {
		return models.Flashcard{}, false
	}
	return s.Remaining[0], true
}

// FirstFace is the face the current card was presented with.
func (s State) FirstFace() Face {
	return s.firstFace
}

// VisibleFace is the face currently up.
func (s State) VisibleFace() Face {
	if s.BackShown {
		return Back
	}
	return Front
}

// VisibleText is the text on the face currently up, or "" without a card.
func (s State) VisibleText() string {
	card, ok := s.Current()
	if !ok {
		return ""
	}
	if s.BackShown {
		return card.Back
	}
	return card.Front
}

// Reveal flips the current card. It is a no-op when no card is shown.
func (s State) Reveal() State {
	if _, ok := s.Current(); !ok {
		return s
	}
	s.BackShown = !s.BackShown
	s.Revealed = true
	return s
}

// Answer records a judgment for the current card and advances. Judging the
// last card completes the session.
func (s State) Answer(correct bool) (State, error) {
	card, ok := s.Current()
	if !ok {
		return s, ErrSessionComplete
	}
	if !s.Revealed {
		return s, ErrPrematureAnswer
	}

	if correct {
		s.CorrectCount++
	} else {
		s.IncorrectCount++
		s.IncorrectCards = appendCards(s.IncorrectCards, card)
	}

	if len(s.Remaining) > 1 {
		s.Remaining = s.Remaining[1:]
		s.Index++
		s.present()
		return s, nil
	}

	s.Remaining = nil
	s.Complete = true
	s.BackShown = false
	s.Revealed = false
	return s, nil
}

// EndEarly finishes the session now. Every card not yet judged, the one on
// screen included, counts as incorrect. On a complete session it returns the
// existing tally.
func (s State) EndEarly() Summary {
	if s.Complete {
		return s.Summary()
	}
	s.IncorrectCount += len(s.Remaining)
	s.IncorrectCards = appendCards(s.IncorrectCards, s.Remaining...)
	s.Remaining = nil
	s.Complete = true
	return s.Summary()
}

// Summary returns the tally so far. It is final once Complete is set.
func (s State) Summary() Summary {
	return Summary{
		CorrectCount:   s.CorrectCount,
		IncorrectCount: s.IncorrectCount,
		IncorrectCards: slices.Clone(s.IncorrectCards),
	}
}

// appendCards never writes into the backing array of dst, so earlier States
// sharing it stay intact.
func appendCards(dst []models.Flashcard, cards ...models.Flashcard) []models.Flashcard {
	return append(slices.Clip(dst), cards...)
}

// Select keeps the cards whose ids appear in ids, in their original order.
// An empty ids selects every card.
func Select(cards []models.Flashcard, ids []int64) []models.Flashcard {
	if len(ids) == 0 {
		return slices.Clone(cards)
	}
	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []models.Flashcard
	for _, c := range cards {
		if _, ok := want[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out
}
