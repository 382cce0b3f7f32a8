package ai

import (
	"context"

	"github.com/spigell/ats-checker/internal/analysis"
)

// ReviewRequest carries the texts and the finished analysis to a reviewer.
type ReviewRequest struct {
	Resume         string
	JobDescription string
	Result         analysis.Result
}

// Review is a free-form second opinion on top of the rule-based analysis.
type Review struct {
	Summary     string   `json:"summary"`
	Suggestions []string `json:"suggestions"`
	Score       float64  `json:"score"`
	Raw         string   `json:"-"`
}

type Reviewer interface {
	Review(ctx context.Context, req ReviewRequest) (*Review, error)
}
