package quiz_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashquiz/internal/models"
	"github.com/vytor/flashquiz/internal/quiz"
)

// identity never swaps during the shuffle and always lands heads on a coin.
type identity struct{}

func (identity) IntN(n int) int { return n - 1 }

func makeCards(n int) []models.Flashcard {
	cards := make([]models.Flashcard, n)
	for i := range cards {
		cards[i] = models.Flashcard{
			ID:     int64(i + 1),
			DeckID: 1,
			Front:  string(rune('A' + 2*i)),
			Back:   string(rune('B' + 2*i)),
		}
	}
	return cards
}

func ids(cards []models.Flashcard) []int64 {
	out := make([]int64, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func mustAnswer(t *testing.T, s quiz.State, correct bool) quiz.State {
	t.Helper()
	next, err := s.Reveal().Answer(correct)
	require.NoError(t, err)
	return next
}

func TestStart_EmptyDeck(t *testing.T) {
	_, err := quiz.Start(nil, quiz.FrontFirst)
	assert.ErrorIs(t, err, quiz.ErrEmptyDeck)

	_, err = quiz.Start([]models.Flashcard{}, quiz.Random)
	assert.ErrorIs(t, err, quiz.ErrEmptyDeck)
}

func TestStart_InvalidMode(t *testing.T) {
	_, err := quiz.Start(makeCards(2), quiz.Mode(9))
	assert.ErrorIs(t, err, quiz.ErrInvalidMode)
}

func TestStart_InitialState(t *testing.T) {
	cards := makeCards(4)
	s, err := quiz.Start(cards, quiz.FrontFirst)
	require.NoError(t, err)

	assert.Equal(t, 1, s.Index)
	assert.Equal(t, 4, s.Total)
	assert.Zero(t, s.CorrectCount)
	assert.Zero(t, s.IncorrectCount)
	assert.Empty(t, s.IncorrectCards)
	assert.False(t, s.BackShown)
	assert.False(t, s.Revealed)
	assert.False(t, s.Complete)

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, s.Remaining[0], current)
	assert.Equal(t, quiz.Front, s.FirstFace())
	assert.Equal(t, current.Front, s.VisibleText())
}

func TestStart_IsPermutationAndLeavesInputAlone(t *testing.T) {
	cards := makeCards(10)
	before := ids(cards)
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 50; i++ {
		s, err := quiz.Start(cards, quiz.FrontFirst, quiz.WithRand(rng))
		require.NoError(t, err)
		assert.ElementsMatch(t, before, ids(s.Remaining))
	}
	assert.Equal(t, before, ids(cards))
}

func TestStart_ShuffleIsUniform(t *testing.T) {
	const (
		n      = 4
		trials = 40000
	)
	cards := makeCards(n)
	rng := rand.New(rand.NewPCG(42, 7))

	var counts [n][n]int // counts[position][card index]
	for i := 0; i < trials; i++ {
		s, err := quiz.Start(cards, quiz.FrontFirst, quiz.WithRand(rng))
		require.NoError(t, err)
		for pos, c := range s.Remaining {
			counts[pos][c.ID-1]++
		}
	}

	expected := float64(trials) / n
	for pos := 0; pos < n; pos++ {
		for card := 0; card < n; card++ {
			assert.InDelta(t, expected, float64(counts[pos][card]), expected*0.05,
				"position %d card %d", pos, card)
		}
	}
}

func TestModes_InitialFace(t *testing.T) {
	cards := makeCards(3)

	s, err := quiz.Start(cards, quiz.BackFirst)
	require.NoError(t, err)
	assert.True(t, s.BackShown)
	assert.Equal(t, quiz.Back, s.FirstFace())
	current, _ := s.Current()
	assert.Equal(t, current.Back, s.VisibleText())

	rng := rand.New(rand.NewPCG(3, 4))
	var fronts, backs int
	for i := 0; i < 200; i++ {
		s, err := quiz.Start(cards, quiz.Random, quiz.WithRand(rng))
		require.NoError(t, err)
		if s.BackShown {
			backs++
		} else {
			fronts++
		}
	}
	assert.Positive(t, fronts)
	assert.Positive(t, backs)
}

func TestRandomMode_RerollsPerCard(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	s, err := quiz.Start(makeCards(200), quiz.Random, quiz.WithRand(rng))
	require.NoError(t, err)

	var backs int
	for !s.Complete {
		if s.FirstFace() == quiz.Back {
			backs++
		}
		s = mustAnswer(t, s, true)
	}
	assert.Greater(t, backs, 50)
	assert.Less(t, backs, 150)
}

func TestReveal_Toggles(t *testing.T) {
	s, err := quiz.Start(makeCards(2), quiz.FrontFirst)
	require.NoError(t, err)

	r := s.Reveal()
	assert.True(t, r.BackShown)
	assert.True(t, r.Revealed)
	assert.Equal(t, quiz.Back, r.VisibleFace())

	rr := r.Reveal()
	assert.False(t, rr.BackShown)
	assert.True(t, rr.Revealed, "flipping back does not unsee the answer")

	// The original state is untouched.
	assert.False(t, s.BackShown)
	assert.False(t, s.Revealed)
}

func TestReveal_NoCardIsNoop(t *testing.T) {
	s, err := quiz.Start(makeCards(1), quiz.FrontFirst)
	require.NoError(t, err)
	done := mustAnswer(t, s, true)
	require.True(t, done.Complete)

	assert.Equal(t, done, done.Reveal())
	assert.Equal(t, "", done.VisibleText())
}

func TestAnswer_BeforeReveal(t *testing.T) {
	for _, mode := range []quiz.Mode{quiz.FrontFirst, quiz.BackFirst, quiz.Random} {
		t.Run(mode.String(), func(t *testing.T) {
			s, err := quiz.Start(makeCards(3), mode)
			require.NoError(t, err)

			next, err := s.Answer(true)
			assert.ErrorIs(t, err, quiz.ErrPrematureAnswer)
			assert.Zero(t, next.CorrectCount)
			assert.Zero(t, next.IncorrectCount)
			assert.Equal(t, 1, next.Index)
		})
	}
}

func TestAnswer_CountsAdvanceByOne(t *testing.T) {
	s, err := quiz.Start(makeCards(6), quiz.Random)
	require.NoError(t, err)

	answered := 0
	for i := 0; !s.Complete; i++ {
		before := s.CorrectCount + s.IncorrectCount
		assert.Equal(t, s.Index-1, before)
		assert.Equal(t, s.Total, before+len(s.Remaining))

		s = mustAnswer(t, s, i%2 == 0)
		answered++
		assert.Equal(t, before+1, s.CorrectCount+s.IncorrectCount)
	}

	assert.Equal(t, 6, answered)
	assert.Empty(t, s.Remaining)
	assert.Equal(t, 3, s.CorrectCount)
	assert.Equal(t, 3, s.IncorrectCount)
	assert.Len(t, s.IncorrectCards, 3)
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestAnswer_AfterComplete(t *testing.T) {
	s, err := quiz.Start(makeCards(1), quiz.FrontFirst)
	require.NoError(t, err)
	s = mustAnswer(t, s, false)

	_, err = s.Reveal().Answer(true)
	assert.ErrorIs(t, err, quiz.ErrSessionComplete)
}

func TestAnswer_TwoCardScenario(t *testing.T) {
	cards := []models.Flashcard{
		{ID: 1, Front: "A", Back: "B"},
		{ID: 2, Front: "C", Back: "D"},
	}
	s, err := quiz.Start(cards, quiz.FrontFirst, quiz.WithRand(identity{}))
	require.NoError(t, err)
	assert.Equal(t, "A", s.VisibleText())

	s = s.Reveal()
	assert.Equal(t, "B", s.VisibleText())

	s, err = s.Answer(true)
	require.NoError(t, err)
	assert.Equal(t, 1, s.CorrectCount)
	assert.Equal(t, 2, s.Index)
	assert.False(t, s.BackShown)
	assert.False(t, s.Revealed)
	assert.Equal(t, "C", s.VisibleText())
}

func TestAnswer_DoesNotDisturbEarlierStates(t *testing.T) {
	s, err := quiz.Start(makeCards(4), quiz.FrontFirst)
	require.NoError(t, err)

	one := mustAnswer(t, s, false)
	twoA := mustAnswer(t, one, false)
	twoB := mustAnswer(t, one, true)

	assert.Len(t, one.IncorrectCards, 1)
	assert.Len(t, twoA.IncorrectCards, 2)
	assert.Len(t, twoB.IncorrectCards, 1)
	assert.Equal(t, 4, len(s.Remaining))
}

func TestEndEarly_CountsUnseenAsIncorrect(t *testing.T) {
	s, err := quiz.Start(makeCards(5), quiz.FrontFirst)
	require.NoError(t, err)

	s = mustAnswer(t, s, true)
	s = mustAnswer(t, s, false)

	sum := s.EndEarly()
	assert.Equal(t, 1, sum.CorrectCount)
	assert.Equal(t, 4, sum.IncorrectCount)
	assert.Len(t, sum.IncorrectCards, 4)
	assert.Equal(t, 5, sum.Total())

	// The judged-incorrect card comes first, then the unseen ones in order.
	assert.Equal(t, append(ids(s.IncorrectCards), ids(s.Remaining)...), ids(sum.IncorrectCards))
}

func TestEndEarly_RightAfterStart(t *testing.T) {
	s, err := quiz.Start(makeCards(3), quiz.BackFirst)
	require.NoError(t, err)

	sum := s.Reveal().EndEarly()
	assert.Equal(t, 0, sum.CorrectCount)
	assert.Equal(t, 3, sum.IncorrectCount)
}

func TestEndEarly_OnCompleteSession(t *testing.T) {
	s, err := quiz.Start(makeCards(2), quiz.FrontFirst)
	require.NoError(t, err)
	s = mustAnswer(t, s, true)
	s = mustAnswer(t, s, false)
	require.True(t, s.Complete)

	natural := s.Summary()
	assert.Equal(t, natural, s.EndEarly())
	assert.Equal(t, natural, s.EndEarly())
}

func TestSummary_SameShapeEitherWay(t *testing.T) {
	s, err := quiz.Start(makeCards(2), quiz.FrontFirst, quiz.WithRand(identity{}))
	require.NoError(t, err)

	early := mustAnswer(t, s, false).EndEarly()

	done := mustAnswer(t, mustAnswer(t, s, false), false)
	natural := done.Summary()

	assert.Equal(t, natural, early)
}

func TestSelect(t *testing.T) {
	cards := makeCards(5)

	assert.Equal(t, ids(cards), ids(quiz.Select(cards, nil)))
	assert.Equal(t, []int64{2, 4}, ids(quiz.Select(cards, []int64{4, 2, 99})))
	assert.Empty(t, quiz.Select(cards, []int64{99}))
}
