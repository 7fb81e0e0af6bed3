package evaluate

import (
	"fmt"
	"strings"

	"github.com/prepdesk/interviewd/internal/question"
)

// GradeChoice scores a multiple-choice answer locally. The submitted answer
// matches when it equals the correct choice's label, ignoring case and
// surrounding whitespace; option text is not accepted in place of the label.
// Correct answers score MaxScore, anything else MinScore, and IsCorrect
// mirrors the match exactly.
func GradeChoice(q question.Question, answer string) Evaluation {
	correct, ok := q.CorrectOption()
	if !ok {
		// Bank validation rules this out; guard anyway.
		correct = question.Option{Label: q.CorrectChoice}
	}

	if strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.CorrectChoice)) {
		return Evaluation{
			Score:     MaxScore,
			Feedback:  "Correct!",
			IsCorrect: boolPtr(true),
		}
	}

	return Evaluation{
		Score:     MinScore,
		Feedback:  fmt.Sprintf("Not quite. The correct answer is %s: %s.", correct.Label, correct.Text),
		IsCorrect: boolPtr(false),
	}
}
