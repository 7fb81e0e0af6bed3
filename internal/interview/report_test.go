package interview

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/prepdesk/interviewd/internal/evaluate"
	"github.com/prepdesk/interviewd/internal/question"
)

func answered(qType question.Type, category string, score float64) AnsweredQuestion {
	return AnsweredQuestion{
		Question: question.Question{
			ID:       category + "-q",
			Text:     "q",
			Type:     qType,
			Category: category,
		},
		Answer:     "a",
		Evaluation: evaluate.Evaluation{Score: score, Feedback: "f"},
		AnsweredAt: time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC),
	}
}

func completedSession(answers []AnsweredQuestion, minutes int) *Session {
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ended := started.Add(time.Duration(minutes) * time.Minute)
	return &Session{
		ID:            "s1",
		CandidateName: "Ada",
		CurrentIndex:  len(answers),
		Answered:      answers,
		StartedAt:     started,
		EndedAt:       &ended,
	}
}

func TestBuildReport_OverallIsMeanOfTypeMeans(t *testing.T) {
	// All multiple-choice correct (10), every open-ended scored 6:
	// overall = (10 + 6) / 2 = 8.0 -> Advanced, regardless of partition sizes.
	answers := []AnsweredQuestion{
		answered(question.TypeMultipleChoice, "basic_functions", 10),
		answered(question.TypeMultipleChoice, "lookup_functions", 10),
		answered(question.TypeMultipleChoice, "data_cleaning", 10),
		answered(question.TypeOpenEnded, "data_visualization", 6),
	}
	r := BuildReport(completedSession(answers, 12))

	if r.MCQScore != 10 {
		t.Errorf("mcq score: want 10, got %v", r.MCQScore)
	}
	if r.GeneralScore != 6 {
		t.Errorf("general score: want 6, got %v", r.GeneralScore)
	}
	if r.OverallScore != 8.0 {
		t.Errorf("overall score: want 8.0, got %v", r.OverallScore)
	}
	if r.PerformanceLevel != LevelAdvanced {
		t.Errorf("performance level: want %s, got %s", LevelAdvanced, r.PerformanceLevel)
	}
	if r.DurationMinutes != 12 {
		t.Errorf("duration: want 12, got %d", r.DurationMinutes)
	}
}

func TestBuildReport_SingleRepresentedType(t *testing.T) {
	// Only multiple-choice answered: the open-ended partition is absent and
	// excluded from the overall mean rather than dragging it to 2.5.
	answers := []AnsweredQuestion{
		answered(question.TypeMultipleChoice, "basic_functions", 4),
		answered(question.TypeMultipleChoice, "lookup_functions", 6),
	}
	r := BuildReport(completedSession(answers, 5))

	if r.GeneralScore != 0 {
		t.Errorf("general score for empty partition: want 0, got %v", r.GeneralScore)
	}
	if r.OverallScore != 5.0 {
		t.Errorf("overall score: want 5.0, got %v", r.OverallScore)
	}
	if r.PerformanceLevel != LevelIntermediate {
		t.Errorf("performance level: want %s, got %s", LevelIntermediate, r.PerformanceLevel)
	}
}

func TestPerformanceLevel_TierBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{10, LevelExpert},
		{8.5, LevelExpert},
		{8.49, LevelAdvanced},
		{7.0, LevelAdvanced},
		{6.99, LevelIntermediate},
		{5.0, LevelIntermediate},
		{4.99, LevelBeginner},
		{0, LevelBeginner},
	}
	for _, tc := range cases {
		if got := performanceLevel(tc.score); got != tc.want {
			t.Errorf("score %v: want %s, got %s", tc.score, tc.want, got)
		}
	}
}

func TestBuildReport_StrengthsAndImprovements(t *testing.T) {
	answers := []AnsweredQuestion{
		answered(question.TypeOpenEnded, "lookup_functions", 9), // strength
		answered(question.TypeOpenEnded, "data_cleaning", 3),    // improvement
		answered(question.TypeOpenEnded, "lookup_functions", 2), // mixed: both lists
		answered(question.TypeOpenEnded, "charts", 8),
		answered(question.TypeOpenEnded, "macros", 7),
		answered(question.TypeOpenEnded, "modeling", 10), // beyond the cap
	}
	r := BuildReport(completedSession(answers, 30))

	wantStrengths := []string{"Lookup Functions", "Charts", "Macros"}
	if len(r.Summary.Strengths) != 3 {
		t.Fatalf("strengths capped at 3, got %v", r.Summary.Strengths)
	}
	for i, s := range wantStrengths {
		if r.Summary.Strengths[i] != s {
			t.Errorf("strength %d: want %q, got %q", i, s, r.Summary.Strengths[i])
		}
	}

	// lookup_functions has mixed results and must appear in both lists.
	wantImprovements := []string{"Data Cleaning", "Lookup Functions"}
	if len(r.Summary.AreasForImprovement) != len(wantImprovements) {
		t.Fatalf("improvements: want %v, got %v", wantImprovements, r.Summary.AreasForImprovement)
	}
	for i, s := range wantImprovements {
		if r.Summary.AreasForImprovement[i] != s {
			t.Errorf("improvement %d: want %q, got %q", i, s, r.Summary.AreasForImprovement[i])
		}
	}
}

func TestBuildReport_Recommendations(t *testing.T) {
	// Weak everywhere: overall band rec + both type recs + repeat-failure
	// category rec, deduplicated and capped at 5.
	answers := []AnsweredQuestion{
		answered(question.TypeMultipleChoice, "data_cleaning", 0),
		answered(question.TypeMultipleChoice, "data_cleaning", 0),
		answered(question.TypeOpenEnded, "data_cleaning", 3),
		answered(question.TypeOpenEnded, "lookup_functions", 4),
	}
	r := BuildReport(completedSession(answers, 20))

	if len(r.Recommendations) == 0 || len(r.Recommendations) > 5 {
		t.Fatalf("recommendations out of bounds: %v", r.Recommendations)
	}
	seen := map[string]bool{}
	for _, rec := range r.Recommendations {
		if seen[rec] {
			t.Errorf("duplicate recommendation: %q", rec)
		}
		seen[rec] = true
	}
	foundCategory := false
	for _, rec := range r.Recommendations {
		if rec == "Focus on improving: Data Cleaning." {
			foundCategory = true
		}
	}
	if !foundCategory {
		t.Errorf("expected a category recommendation for Data Cleaning, got %v", r.Recommendations)
	}
}

func TestBuildReport_Idempotent(t *testing.T) {
	answers := []AnsweredQuestion{
		answered(question.TypeMultipleChoice, "basic_functions", 10),
		answered(question.TypeOpenEnded, "problem_solving", 7),
	}
	s := completedSession(answers, 8)

	first, err := json.Marshal(BuildReport(s))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(BuildReport(s))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("recomputing the report changed its serialized form")
	}
}
