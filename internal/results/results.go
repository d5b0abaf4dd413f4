// Package results turns a finished quiz into something a person reads: a score
// report, an encouragement line, and a JSON file of the cards they missed.
package results

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/vytor/flashquiz/internal/models"
	"github.com/vytor/flashquiz/internal/quiz"
)

// Action is a choice offered once results are shown.
type Action int

const (
	Retry Action = iota
	ChooseAnotherDeck
	Download
	Quit
)

func (a Action) String() string {
	switch a {
	case Retry:
		return "retry"
	case ChooseAnotherDeck:
		return "another deck"
	case Download:
		return "save incorrect answers"
	default:
		return "quit"
	}
}

// Key is the single letter that selects the action at a prompt.
func (a Action) Key() string {
	switch a {
	case Retry:
		return "r"
	case ChooseAnotherDeck:
		return "d"
	case Download:
		return "s"
	default:
		return "q"
	}
}

// ParseAction maps prompt input to an action among those offered.
func ParseAction(input string, offered []Action) (Action, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	for _, a := range offered {
		if input == a.Key() || input == a.String() {
			return a, true
		}
	}
	return Quit, false
}

// Report is the results screen for one session.
type Report struct {
	DeckID   int64
	DeckName string
	Mode     quiz.Mode
	Summary  quiz.Summary
}

func New(summary quiz.Summary, deckID int64, deckName string, mode quiz.Mode) Report {
	return Report{DeckID: deckID, DeckName: deckName, Mode: mode, Summary: summary}
}

// Encouragement picks a message by accuracy band.
func (r Report) Encouragement() string {
	p := r.Summary.Percentage()
	switch {
	case p == 100:
		return "Perfect score! Amazing job!"
	case p >= 75:
		return "Great work! Keep it up!"
	case p >= 50:
		return "Good effort! Practice makes perfect!"
	default:
		return "Don't give up! Try again and you'll get there!"
	}
}

// Actions lists the choices for this report. Download is only offered when
// something was missed.
func (r Report) Actions() []Action {
	actions := []Action{Retry, ChooseAnotherDeck}
	if len(r.Summary.IncorrectCards) > 0 {
		actions = append(actions, Download)
	}
	return append(actions, Quit)
}

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"key": func(a Action) string { return a.Key() },
	"inc": func(i int) int { return i + 1 },
}).Parse(`
Study Results: {{.Title}}
{{.Encouragement}}

  Correct:   {{.Summary.CorrectCount}}
  Incorrect: {{.Summary.IncorrectCount}}
  Accuracy:  {{.Summary.Percentage}}%
{{- if .Summary.IncorrectCards}}

Incorrect Answers
{{- range $i, $c := .Summary.IncorrectCards}}
  {{inc $i}}. Q: {{$c.Front}}
     A: {{$c.Back}}
{{- end}}
{{- end}}

{{range $i, $a := .Actions}}{{if $i}}  {{end}}[{{key $a}}] {{$a}}{{end}}
`))

// Title is the deck's name, or its id when the name is unknown.
func (r Report) Title() string {
	if r.DeckName != "" {
		return r.DeckName
	}
	return fmt.Sprintf("deck %d", r.DeckID)
}

// Render writes the text report to w.
func (r Report) Render(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}

// IncorrectJSON is the missed cards as an indented [{front, back}] array.
func (r Report) IncorrectJSON() ([]byte, error) {
	return json.MarshalIndent(models.Faces(r.Summary.IncorrectCards), "", "  ")
}

// FileName is the download name for IncorrectJSON.
func (r Report) FileName() string {
	base := r.DeckName
	if base == "" {
		base = fmt.Sprintf("deck_%d", r.DeckID)
	}
	base = strings.Map(func(c rune) rune {
		if c == '/' || c == '\\' || c == os.PathSeparator {
			return '_'
		}
		return c
	}, base)
	return base + "_incorrect_answers.json"
}

// SaveIncorrect writes IncorrectJSON to dir/FileName and returns the path.
func (r Report) SaveIncorrect(dir string) (string, error) {
	b, err := r.IncorrectJSON()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, r.FileName())
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
