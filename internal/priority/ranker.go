package priority

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/mailsense/mailsense/internal/gmail"
	"github.com/mailsense/mailsense/internal/logging"
)

// Defaults for the two read paths
const (
	DefaultRankLimit = 10
	DefaultListLimit = 25
	DefaultQuery     = "is:unread"
)

// Inbox lists unread mail for ranking
type Inbox interface {
	ListUnread(query string, maxResults int64) ([]gmail.MessageSummary, error)
}

// ScoredMessage is a message with its urgency scores attached. Instances live
// for the duration of one ranking request.
type ScoredMessage struct {
	gmail.MessageSummary
	HeuristicScore int     `json:"heuristicScore"`
	ModelScore     float64 `json:"modelScore"`
	Reasoning      string  `json:"reasoning,omitempty"`
	FinalScore     float64 `json:"finalScore"`
}

// Blend weights: the model's judgment dominates, the heuristic anchors it
const (
	modelWeight     = 0.6
	heuristicWeight = 0.4
)

// Ranker produces the blended urgency ranking of unread mail
type Ranker struct {
	inbox  Inbox
	scorer *ModelScorer
	logger *slog.Logger
	now    func() time.Time
}

// NewRanker creates a Ranker
func NewRanker(inbox Inbox, scorer *ModelScorer, logger *slog.Logger) *Ranker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ranker{
		inbox:  inbox,
		scorer: scorer,
		logger: logging.WithService(logger, "priority"),
		now:    time.Now,
	}
}

// ListUnread returns plain unread message summaries without scoring
func (r *Ranker) ListUnread(ctx context.Context, maxResults int64, query string) ([]gmail.MessageSummary, error) {
	if maxResults <= 0 {
		maxResults = DefaultListLimit
	}
	if query == "" {
		query = DefaultQuery
	}
	return r.inbox.ListUnread(query, maxResults)
}

// RankUnread fetches up to maxResults unread messages, scores each one with
// the heuristic and the model independently, and returns them sorted by
// blended score, highest first. Ties keep fetch order; the sort is stable.
func (r *Ranker) RankUnread(ctx context.Context, maxResults int64) ([]ScoredMessage, error) {
	if maxResults <= 0 {
		maxResults = DefaultRankLimit
	}

	msgs, err := r.inbox.ListUnread(DefaultQuery, maxResults)
	if err != nil {
		return nil, err
	}

	now := r.now()
	scored := make([]ScoredMessage, 0, len(msgs))
	for _, msg := range msgs {
		// Synthetic received time when the gateway supplied none
		if msg.Received == "" {
			msg.Received = now.UTC().Format(time.RFC3339)
		}

		heuristic := HeuristicScore(msg, now)
		model := r.scorer.Score(ctx, msg, now)

		scored = append(scored, ScoredMessage{
			MessageSummary: msg,
			HeuristicScore: heuristic,
			ModelScore:     model.Score,
			Reasoning:      model.Reasoning,
			FinalScore:     modelWeight*model.Score + heuristicWeight*float64(heuristic),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})

	r.logger.Debug("ranked unread messages",
		logging.Operation("rank_unread"),
		slog.Int("count", len(scored)))

	return scored, nil
}
