package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLM returns a canned answer and records the prompt it received.
type fakeLLM struct {
	answer string
	err    error
	prompt string
	tier   llm.ModelTier
}

func (f *fakeLLM) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompt = prompt
	f.tier = tier
	return f.answer, f.err
}

func (f *fakeLLM) Close() error { return nil }

func TestScorer_Score(t *testing.T) {
	client := &fakeLLM{answer: `{"score": 82, "feedback": ["Quantify impact"], "keywords": ["Go"]}`}
	s := NewScorer(client)

	result, err := s.Score(context.Background(), "Name: Jane", "Go backend role")
	require.NoError(t, err)

	assert.Equal(t, 82.0, result.Score)
	assert.Equal(t, []string{"Quantify impact"}, result.Feedback)
	assert.Equal(t, []string{"Go"}, result.Keywords)

	assert.Contains(t, client.prompt, "RESUME TEXT:\nName: Jane")
	assert.Contains(t, client.prompt, "JOB DESCRIPTION:\nGo backend role")
	assert.NotContains(t, client.prompt, "{{.")
	assert.Equal(t, llm.TierStandard, client.tier)
}

func TestScorer_ModelError(t *testing.T) {
	boom := errors.New("quota exceeded")
	_, err := NewScorer(&fakeLLM{err: boom}).Score(context.Background(), "r", "jd")
	assert.ErrorIs(t, err, boom)
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		name      string
		answer    string
		wantScore float64
		wantOK    bool
	}{
		{name: "plain json", answer: `{"score": 91, "feedback": [], "keywords": []}`, wantScore: 91, wantOK: true},
		{name: "wrapped in prose", answer: "Here is my analysis:\n{\"score\": 64}\nThanks", wantScore: 64, wantOK: true},
		{name: "not json", answer: "I cannot score this resume.", wantScore: FallbackScore},
		{name: "broken json in braces", answer: "{score: 70,}", wantScore: FallbackScore},
		{name: "missing score", answer: `{"feedback": ["x"]}`, wantScore: FallbackScore},
		{name: "score out of range", answer: `{"score": 400}`, wantScore: FallbackScore},
		{name: "empty", answer: "", wantScore: FallbackScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := ParseAnswer(tt.answer)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.NotNil(t, result.Feedback)
			assert.NotNil(t, result.Keywords)
			if !tt.wantOK {
				assert.Equal(t, Fallback(), result)
			}
		})
	}
}
