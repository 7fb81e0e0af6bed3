package evaluate

import (
	"context"
	"log"
	"time"

	"github.com/prepdesk/interviewd/internal/question"
)

// Dispatcher routes an answer to the right scoring path by question type.
// It never fails: evaluator trouble on the open-ended path is absorbed into
// the fallback evaluation, an availability-over-accuracy tradeoff.
type Dispatcher struct {
	evaluator AnswerEvaluator
	timeout   time.Duration
}

// NewDispatcher creates a Dispatcher. evaluator may be nil, in which case
// every open-ended answer receives the fallback evaluation.
func NewDispatcher(evaluator AnswerEvaluator, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{evaluator: evaluator, timeout: timeout}
}

// Evaluate scores one answer. Multiple-choice questions are graded locally
// and deterministically; open-ended ones go to the evaluator under a bounded
// timeout.
func (d *Dispatcher) Evaluate(ctx context.Context, q question.Question, answer string) Evaluation {
	if q.Type == question.TypeMultipleChoice {
		return GradeChoice(q, answer)
	}

	if d.evaluator == nil {
		return Fallback()
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	ev, err := d.evaluator.Evaluate(ctx, q.Text, answer, q.EvaluationCriteria)
	if err != nil {
		log.Printf("evaluator failure absorbed (question %s): %v", q.ID, err)
		return Fallback()
	}
	ev.Score = clampScore(ev.Score)
	return ev
}
