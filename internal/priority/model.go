package priority

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mailsense/mailsense/internal/genai"
	"github.com/mailsense/mailsense/internal/gmail"
	"github.com/mailsense/mailsense/internal/logging"
)

const scoringPromptTemplate = `You are an intelligent email prioritization assistant.
Rate the following email from 1 to 10 based on urgency and importance.
Consider tone, sender, and time sensitivity.

Return ONLY a valid JSON object in the following format:
{"score": number, "reasoning": "string"}

Email details:
From: %s
Subject: %s
Snippet: %s
Received: %s
`

// ModelScore is the model's urgency judgment for one message
type ModelScore struct {
	Score     float64
	Reasoning string
}

// ModelScorer rates messages through the text-generation gateway. Failures
// never propagate: the scorer falls back to the heuristic score with a
// diagnostic reasoning string.
type ModelScorer struct {
	generator genai.Generator
	logger    *slog.Logger
}

// NewModelScorer creates a ModelScorer
func NewModelScorer(generator genai.Generator, logger *slog.Logger) *ModelScorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModelScorer{
		generator: generator,
		logger:    logging.WithService(logger, "genai"),
	}
}

// Score rates one message. now anchors the heuristic fallback's recency bonus.
func (s *ModelScorer) Score(ctx context.Context, msg gmail.MessageSummary, now time.Time) ModelScore {
	prompt := fmt.Sprintf(scoringPromptTemplate, msg.From, msg.Subject, msg.Snippet, msg.Received)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("model scoring failed, using heuristic fallback",
			logging.Operation("score"), logging.Err(err))
		return s.fallback(msg, now, "model evaluation failed, using heuristic score only")
	}

	// Pointer fields distinguish missing keys from zero values
	var parsed struct {
		Score     *float64 `json:"score"`
		Reasoning *string  `json:"reasoning"`
	}
	if err := genai.DecodeJSON(raw, &parsed); err != nil {
		s.logger.Warn("model response unparseable, using heuristic fallback",
			logging.Operation("score"), logging.Err(err))
		return s.fallback(msg, now, "failed to parse model response, using heuristic score only")
	}
	if parsed.Score == nil || parsed.Reasoning == nil {
		s.logger.Warn("model response missing required fields, using heuristic fallback",
			logging.Operation("score"))
		return s.fallback(msg, now, "model response missing fields, using heuristic score only")
	}

	return ModelScore{
		Score:     clampScore(*parsed.Score),
		Reasoning: *parsed.Reasoning,
	}
}

func (s *ModelScorer) fallback(msg gmail.MessageSummary, now time.Time, reasoning string) ModelScore {
	return ModelScore{
		Score:     float64(HeuristicScore(msg, now)),
		Reasoning: reasoning,
	}
}

// clampScore bounds a model score to [0,10] regardless of what the model claims
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
