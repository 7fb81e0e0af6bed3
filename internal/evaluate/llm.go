package evaluate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/prepdesk/interviewd/internal/llm"
)

// AnswerEvaluator is the external collaborator that scores free-text answers
// to open-ended questions.
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, questionText, answer string, criteria []string) (Evaluation, error)
}

// LLMEvaluator scores answers with a model provider.
type LLMEvaluator struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
}

// LLMOption configures an LLMEvaluator.
type LLMOption func(*LLMEvaluator)

// WithMaxTokens caps the evaluator response length.
func WithMaxTokens(n int) LLMOption { return func(e *LLMEvaluator) { e.maxTokens = n } }

// WithTemperature sets the sampling temperature. Low values keep scoring
// consistent across candidates.
func WithTemperature(t float64) LLMOption { return func(e *LLMEvaluator) { e.temperature = t } }

// NewLLMEvaluator creates an evaluator backed by the given provider.
func NewLLMEvaluator(p llm.Provider, opts ...LLMOption) *LLMEvaluator {
	e := &LLMEvaluator{
		provider:    p,
		maxTokens:   2048,
		temperature: 0.3,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

const evaluatorSystem = "You are an expert interviewer. Evaluate the candidate's answer fairly and provide specific, actionable feedback."

// evaluationSchema is the structured-output contract with the model.
var evaluationSchema = &llm.Schema{
	Name:        "answer-evaluation",
	Description: "Structured evaluation of one interview answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score":            map[string]any{"type": "number", "description": "Score from 0 to 10"},
			"feedback":         map[string]any{"type": "string", "description": "2-3 sentences of specific feedback, without mentioning the score"},
			"correct_answer":   map[string]any{"type": "string", "description": "A comprehensive correct answer to the question"},
			"strengths":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"missing_concepts": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"suggestions":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []any{"score", "feedback"},
	},
}

// evaluatorPayload mirrors evaluationSchema on the wire.
type evaluatorPayload struct {
	Score           *float64 `json:"score"`
	Feedback        string   `json:"feedback"`
	CorrectAnswer   string   `json:"correct_answer"`
	Strengths       []string `json:"strengths"`
	MissingConcepts []string `json:"missing_concepts"`
	Suggestions     []string `json:"suggestions"`
}

// Evaluate asks the model to score one answer against the question's
// criteria. Errors are expected here (timeouts, outages, junk output); the
// Dispatcher converts them into the fallback evaluation.
func (e *LLMEvaluator) Evaluate(ctx context.Context, questionText, answer string, criteria []string) (Evaluation, error) {
	raw, err := e.provider.Complete(ctx, llm.Request{
		System:      evaluatorSystem,
		Prompt:      buildEvaluationPrompt(questionText, answer, criteria),
		Schema:      evaluationSchema,
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
	})
	if err != nil {
		// Providers validate the raw text strictly and reject responses the
		// model wrapped in markdown fences or prose. Those still carry a
		// usable payload, so run the rejected text through extraction before
		// giving up.
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) && len(invalid.Content) > 0 {
			if ev, perr := ParsePayload(string(invalid.Content)); perr == nil {
				return ev, nil
			}
		}
		return Evaluation{}, fmt.Errorf("evaluator call: %w", err)
	}
	return ParsePayload(string(raw))
}

// ParsePayload turns raw evaluator output into an Evaluation. It tolerates
// fenced or prose-wrapped JSON but not a missing or non-numeric score.
func ParsePayload(raw string) (Evaluation, error) {
	obj, err := ExtractObject(raw)
	if err != nil {
		return Evaluation{}, err
	}

	var p evaluatorPayload
	if err := json.Unmarshal(obj, &p); err != nil {
		return Evaluation{}, fmt.Errorf("decode evaluation payload: %w", err)
	}
	if p.Score == nil {
		return Evaluation{}, fmt.Errorf("evaluation payload missing score")
	}
	if p.Feedback == "" {
		return Evaluation{}, fmt.Errorf("evaluation payload missing feedback")
	}

	gaps := p.MissingConcepts
	gaps = append(gaps, p.Suggestions...)

	return Evaluation{
		Score:           clampScore(*p.Score),
		Feedback:        p.Feedback,
		Strengths:       p.Strengths,
		Gaps:            dedupe(gaps),
		SuggestedAnswer: p.CorrectAnswer,
	}, nil
}

func buildEvaluationPrompt(questionText, answer string, criteria []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\n", questionText)
	fmt.Fprintf(&b, "Candidate's answer: %s\n\n", answer)
	if len(criteria) > 0 {
		fmt.Fprintf(&b, "Evaluation criteria: %s\n\n", strings.Join(criteria, ", "))
	}
	b.WriteString("Score the answer from 0 to 10 and respond with JSON containing: ")
	b.WriteString(`"score", "feedback" (2-3 sentences, do not mention the score), `)
	b.WriteString(`"correct_answer", "strengths", "missing_concepts" and "suggestions". `)
	b.WriteString("Return only the JSON.")
	return b.String()
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
