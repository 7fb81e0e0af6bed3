// Package evaluate scores candidate answers: multiple-choice locally,
// open-ended through a model-backed evaluator with a fallback policy so a
// broken evaluator never breaks the interview flow.
package evaluate

// Evaluation is the outcome of scoring one answer. Score is always within
// [0, 10].
type Evaluation struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`

	// IsCorrect is set for multiple-choice answers only.
	IsCorrect *bool `json:"is_correct,omitempty"`

	// Open-ended qualitative fields.
	Strengths       []string `json:"strengths,omitempty"`
	Gaps            []string `json:"gaps,omitempty"`
	SuggestedAnswer string   `json:"suggested_answer,omitempty"`
}

const (
	// MaxScore and MinScore bound every evaluation.
	MaxScore = 10.0
	MinScore = 0.0
)

// clampScore forces s into the valid score range.
func clampScore(s float64) float64 {
	if s < MinScore {
		return MinScore
	}
	if s > MaxScore {
		return MaxScore
	}
	return s
}

func boolPtr(b bool) *bool { return &b }
