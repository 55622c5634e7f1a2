package priority

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mailsense/mailsense/internal/gmail"
)

type fakeGenerator struct {
	response string
	err      error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

func TestModelScorerValidResponse(t *testing.T) {
	scorer := NewModelScorer(&fakeGenerator{
		response: "```json\n{\"score\": 8, \"reasoning\": \"deadline today\"}\n```",
	}, nil)

	got := scorer.Score(context.Background(), gmail.MessageSummary{Subject: "hi"}, time.Now())
	assert.Equal(t, 8.0, got.Score)
	assert.Equal(t, "deadline today", got.Reasoning)
}

func TestModelScorerClampsScore(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
	}{
		{"above range", `{"score": 15, "reasoning": "very urgent"}`, 10},
		{"below range", `{"score": -3, "reasoning": "spam"}`, 0},
		{"in range", `{"score": 5.5, "reasoning": "moderate"}`, 5.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := NewModelScorer(&fakeGenerator{response: tt.raw}, nil)
			got := scorer.Score(context.Background(), gmail.MessageSummary{}, time.Now())
			assert.Equal(t, tt.expected, got.Score)
		})
	}
}

func TestModelScorerFallbackPaths(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	// One keyword (+2) and fresh (+3): heuristic score 5
	msg := gmail.MessageSummary{
		Subject:  "urgent request",
		Received: now.Add(-time.Hour).Format(time.RFC3339),
	}

	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"gateway error", &fakeGenerator{err: errors.New("connection refused")}},
		{"prose response", &fakeGenerator{response: "I'd call this a seven."}},
		{"missing score", &fakeGenerator{response: `{"reasoning": "no score given"}`}},
		{"missing reasoning", &fakeGenerator{response: `{"score": 7}`}},
		{"mistyped score", &fakeGenerator{response: `{"score": "seven", "reasoning": "x"}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := NewModelScorer(tt.gen, nil)
			got := scorer.Score(context.Background(), msg, now)
			assert.Equal(t, 5.0, got.Score)
			assert.Contains(t, got.Reasoning, "heuristic score only")
		})
	}
}
