package genai

import (
	"context"
	"time"
)

// GenerationRecorder receives timing and outcome of model calls. It is
// satisfied by the instrumentation metrics recorder.
type GenerationRecorder interface {
	RecordModelGeneration(ctx context.Context, model, status string, duration time.Duration)
}

// MeteredGenerator wraps a Generator and records a metric per call
type MeteredGenerator struct {
	inner    Generator
	model    string
	recorder GenerationRecorder
}

// NewMeteredGenerator wraps gen so every call is recorded under the given
// model name. A nil recorder returns gen unchanged.
func NewMeteredGenerator(gen Generator, model string, recorder GenerationRecorder) Generator {
	if recorder == nil {
		return gen
	}
	return &MeteredGenerator{
		inner:    gen,
		model:    model,
		recorder: recorder,
	}
}

// Generate delegates to the wrapped generator and records the call
func (m *MeteredGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := m.inner.Generate(ctx, prompt)

	status := "success"
	if err != nil {
		status = "error"
	}
	m.recorder.RecordModelGeneration(ctx, m.model, status, time.Since(start))

	return text, err
}
