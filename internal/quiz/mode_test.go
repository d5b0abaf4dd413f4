package quiz_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashquiz/internal/quiz"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    quiz.Mode
		wantErr bool
	}{
		{in: "", want: quiz.FrontFirst},
		{in: "front", want: quiz.FrontFirst},
		{in: "FRONT_FIRST", want: quiz.FrontFirst},
		{in: "back", want: quiz.BackFirst},
		{in: "back-first", want: quiz.BackFirst},
		{in: " Random ", want: quiz.Random},
		{in: "sideways", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := quiz.ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMode_JSON(t *testing.T) {
	type payload struct {
		Mode quiz.Mode `json:"mode"`
	}

	b, err := json.Marshal(payload{Mode: quiz.BackFirst})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"back"}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"mode":"random"}`), &p))
	assert.Equal(t, quiz.Random, p.Mode)

	assert.Error(t, json.Unmarshal([]byte(`{"mode":"upside"}`), &p))
}

func TestSummary_Percentage(t *testing.T) {
	assert.Equal(t, 0, quiz.Summary{}.Percentage())
	assert.Equal(t, 100, quiz.Summary{CorrectCount: 3}.Percentage())
	assert.Equal(t, 67, quiz.Summary{CorrectCount: 2, IncorrectCount: 1}.Percentage())
	assert.Equal(t, 20, quiz.Summary{CorrectCount: 1, IncorrectCount: 4}.Percentage())
}
