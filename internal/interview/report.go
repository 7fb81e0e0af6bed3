package interview

import (
	"math"
	"strings"
	"time"

	"github.com/prepdesk/interviewd/internal/question"
)

// Report is the aggregate outcome of a completed session. It is a pure
// function of the session's answered sequence and timestamps: recomputing it
// from the same session yields an identical value.
type Report struct {
	CandidateName    string             `json:"candidate_name"`
	InterviewDate    string             `json:"interview_date"`
	DurationMinutes  int                `json:"duration_minutes"`
	OverallScore     float64            `json:"overall_score"`
	MCQScore         float64            `json:"mcq_score"`
	GeneralScore     float64            `json:"general_score"`
	PerformanceLevel string             `json:"performance_level"`
	Summary          ReportSummary      `json:"summary"`
	Recommendations  []string           `json:"recommendations"`
	DetailedFeedback []AnsweredQuestion `json:"detailed_feedback"`
}

// ReportSummary lists category-level strengths and weak spots. A category
// with mixed results may appear in both.
type ReportSummary struct {
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
}

// Performance tiers, from the fixed thresholds on the overall score.
const (
	LevelExpert       = "Expert"
	LevelAdvanced     = "Advanced"
	LevelIntermediate = "Intermediate"
	LevelBeginner     = "Beginner"
)

const (
	strengthsCap       = 3
	improvementCap     = 3
	recommendationsCap = 5

	strengthThreshold = 7.0
	weaknessThreshold = 5.0
	typeAdviceCutoff  = 6.0
)

// BuildReport computes the final report for a completed session. The overall
// score is the unweighted mean of the per-type means over the types actually
// present (count > 0), so a 4-MCQ/1-open session is not skewed toward the
// multiple-choice result.
func BuildReport(s *Session) Report {
	mcqScore, mcqCount := typeScore(s.Answered, question.TypeMultipleChoice)
	openScore, openCount := typeScore(s.Answered, question.TypeOpenEnded)

	var overall float64
	switch {
	case mcqCount > 0 && openCount > 0:
		overall = (mcqScore + openScore) / 2
	case mcqCount > 0:
		overall = mcqScore
	case openCount > 0:
		overall = openScore
	}

	ended := s.StartedAt
	if s.EndedAt != nil {
		ended = *s.EndedAt
	}

	return Report{
		CandidateName:    s.CandidateName,
		InterviewDate:    s.StartedAt.UTC().Format(time.RFC3339),
		DurationMinutes:  int(ended.Sub(s.StartedAt) / time.Minute),
		OverallScore:     round1(overall),
		MCQScore:         round1(mcqScore),
		GeneralScore:     round1(openScore),
		PerformanceLevel: performanceLevel(overall),
		Summary: ReportSummary{
			Strengths:           categoriesAbove(s.Answered, strengthThreshold, strengthsCap),
			AreasForImprovement: categoriesBelow(s.Answered, weaknessThreshold, improvementCap),
		},
		Recommendations:  recommendations(s.Answered, overall, mcqScore, mcqCount, openScore, openCount),
		DetailedFeedback: append([]AnsweredQuestion{}, s.Answered...),
	}
}

// typeScore is the mean score over answers of one type, 0 when none exist.
func typeScore(answered []AnsweredQuestion, t question.Type) (float64, int) {
	sum, n := 0.0, 0
	for _, a := range answered {
		if a.Question.Type == t {
			sum += a.Evaluation.Score
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}

// performanceLevel maps the overall score to a tier. Ties resolve to the
// higher tier.
func performanceLevel(overall float64) string {
	switch {
	case overall >= 8.5:
		return LevelExpert
	case overall >= 7.0:
		return LevelAdvanced
	case overall >= 5.0:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}

// categoriesAbove collects categories with at least one answer scoring at or
// above the threshold, in first-encountered order, capped.
func categoriesAbove(answered []AnsweredQuestion, threshold float64, limit int) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, a := range answered {
		if a.Evaluation.Score < threshold {
			continue
		}
		c := a.Question.Category
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, humanizeCategory(c))
		if len(out) == limit {
			break
		}
	}
	return out
}

// categoriesBelow is the mirror of categoriesAbove for scores strictly under
// the threshold. Independent of categoriesAbove: mixed categories show up in
// both lists.
func categoriesBelow(answered []AnsweredQuestion, threshold float64, limit int) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, a := range answered {
		if a.Evaluation.Score >= threshold {
			continue
		}
		c := a.Question.Category
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, humanizeCategory(c))
		if len(out) == limit {
			break
		}
	}
	return out
}

func recommendations(answered []AnsweredQuestion, overall, mcqScore float64, mcqCount int, openScore float64, openCount int) []string {
	recs := []string{overallRecommendation(overall)}

	if mcqCount > 0 && mcqScore < typeAdviceCutoff {
		recs = append(recs, "Review core concepts with flashcards or quizzes; the multiple-choice answers show gaps in fundamentals.")
	}
	if openCount > 0 && openScore < typeAdviceCutoff {
		recs = append(recs, "Practice explaining your approach out loud; the open-ended answers would benefit from more structure and concrete examples.")
	}

	// One targeted recommendation per category that failed repeatedly.
	lowCounts := make(map[string]int)
	order := []string{}
	for _, a := range answered {
		c := a.Question.Category
		if c == "" || a.Evaluation.Score >= weaknessThreshold {
			continue
		}
		if lowCounts[c] == 0 {
			order = append(order, c)
		}
		lowCounts[c]++
	}
	for _, c := range order {
		if lowCounts[c] >= 2 {
			recs = append(recs, "Focus on improving: "+humanizeCategory(c)+".")
		}
	}

	// Dedup, keep first occurrence, cap.
	seen := make(map[string]bool, len(recs))
	out := []string{}
	for _, r := range recs {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
		if len(out) == recommendationsCap {
			break
		}
	}
	return out
}

// overallRecommendation picks one headline recommendation using the same
// bands as the performance level.
func overallRecommendation(overall float64) string {
	switch {
	case overall >= 8.5:
		return "Excellent performance. Keep your skills sharp by tackling advanced real-world scenarios."
	case overall >= 7.0:
		return "Strong performance. Deepen your expertise in the weaker areas to reach expert level."
	case overall >= 5.0:
		return "Solid foundation. Targeted practice on the areas below will raise your score quickly."
	default:
		return "Consider a structured course to strengthen foundational skills before your next interview."
	}
}

// humanizeCategory turns a snake_case category id into a display label.
func humanizeCategory(c string) string {
	words := strings.Split(c, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
