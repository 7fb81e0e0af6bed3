package question

import (
	"errors"
	"fmt"
	"strings"
)

// Type discriminates how a question is answered and scored.
type Type string

const (
	TypeMultipleChoice Type = "multiple_choice"
	TypeOpenEnded      Type = "open_ended"
)

// Option is one labeled choice of a multiple-choice question.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Text  string `json:"text" yaml:"text"`
}

// Question is an immutable catalog entry. Options and CorrectChoice are set
// iff Type is multiple_choice; EvaluationCriteria iff Type is open_ended.
type Question struct {
	ID         string `json:"id" yaml:"id"`
	Text       string `json:"text" yaml:"text"`
	Type       Type   `json:"type" yaml:"type"`
	Difficulty string `json:"difficulty,omitempty" yaml:"difficulty"`
	Category   string `json:"category,omitempty" yaml:"category"`

	Options       []Option `json:"options,omitempty" yaml:"options"`
	CorrectChoice string   `json:"correct_choice,omitempty" yaml:"correct_choice"`

	EvaluationCriteria []string `json:"evaluation_criteria,omitempty" yaml:"evaluation_criteria"`
}

var errBadQuestion = errors.New("invalid question")

// Validate checks the per-type field invariants.
func (q Question) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return fmt.Errorf("%w: missing id", errBadQuestion)
	}
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: %s: missing text", errBadQuestion, q.ID)
	}
	switch q.Type {
	case TypeMultipleChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: %s: multiple_choice needs at least 2 options", errBadQuestion, q.ID)
		}
		if len(q.EvaluationCriteria) > 0 {
			return fmt.Errorf("%w: %s: evaluation_criteria only valid for open_ended", errBadQuestion, q.ID)
		}
		if q.CorrectChoice == "" {
			return fmt.Errorf("%w: %s: missing correct_choice", errBadQuestion, q.ID)
		}
		seen := make(map[string]bool, len(q.Options))
		found := false
		for _, o := range q.Options {
			label := strings.ToLower(strings.TrimSpace(o.Label))
			if label == "" {
				return fmt.Errorf("%w: %s: option with empty label", errBadQuestion, q.ID)
			}
			if seen[label] {
				return fmt.Errorf("%w: %s: duplicate option label %q", errBadQuestion, q.ID, o.Label)
			}
			seen[label] = true
			if strings.EqualFold(strings.TrimSpace(q.CorrectChoice), o.Label) {
				found = true
			}
		}
		if !found {
			return fmt.Errorf("%w: %s: correct_choice %q not among options", errBadQuestion, q.ID, q.CorrectChoice)
		}
	case TypeOpenEnded:
		if len(q.Options) > 0 || q.CorrectChoice != "" {
			return fmt.Errorf("%w: %s: options/correct_choice only valid for multiple_choice", errBadQuestion, q.ID)
		}
		if len(q.EvaluationCriteria) == 0 {
			return fmt.Errorf("%w: %s: open_ended needs evaluation_criteria", errBadQuestion, q.ID)
		}
	default:
		return fmt.Errorf("%w: %s: unknown type %q", errBadQuestion, q.ID, q.Type)
	}
	return nil
}

// CorrectOption returns the option matching CorrectChoice. Only meaningful
// for multiple-choice questions.
func (q Question) CorrectOption() (Option, bool) {
	for _, o := range q.Options {
		if strings.EqualFold(strings.TrimSpace(q.CorrectChoice), o.Label) {
			return o, true
		}
	}
	return Option{}, false
}
