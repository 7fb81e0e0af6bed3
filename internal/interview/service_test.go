package interview

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prepdesk/interviewd/internal/evaluate"
	"github.com/prepdesk/interviewd/internal/question"
)

// stubEvaluator scores every open-ended answer with a fixed value. hook, when
// set, runs before the result is returned, so tests can interleave competing
// registry writes with an in-flight evaluation.
type stubEvaluator struct {
	score float64
	hook  func()
	calls int
}

func (s *stubEvaluator) Evaluate(_ context.Context, _, _ string, _ []string) (evaluate.Evaluation, error) {
	s.calls++
	if s.hook != nil {
		s.hook()
	}
	return evaluate.Evaluation{Score: s.score, Feedback: "stub feedback"}, nil
}

func testQuestions() []question.Question {
	opts := []question.Option{
		{Label: "a", Text: "SUM"},
		{Label: "b", Text: "CONCAT"},
	}
	return []question.Question{
		{ID: "m1", Text: "Which function adds a range?", Type: question.TypeMultipleChoice, Category: "basic_functions", Options: opts, CorrectChoice: "a"},
		{ID: "m2", Text: "Which function also adds?", Type: question.TypeMultipleChoice, Category: "basic_functions", Options: opts, CorrectChoice: "a"},
		{ID: "o1", Text: "Explain VLOOKUP.", Type: question.TypeOpenEnded, Category: "lookup_functions", EvaluationCriteria: []string{"exact match"}},
		{ID: "o2", Text: "Explain pivot tables.", Type: question.TypeOpenEnded, Category: "data_visualization", EvaluationCriteria: []string{"grouping"}},
	}
}

func newTestService(t *testing.T, ev evaluate.AnswerEvaluator, mcqCount, openCount int) (*Service, *MemoryRegistry) {
	t.Helper()
	bank, err := question.NewBank(testQuestions())
	if err != nil {
		t.Fatal(err)
	}
	reg := NewMemoryRegistry()
	svc := NewService(bank, reg, evaluate.NewDispatcher(ev, time.Second), mcqCount, openCount)
	svc.newID = func() string { return "fixed-session-id" }
	return svc, reg
}

func TestService_FullInterviewFlow(t *testing.T) {
	ctx := context.Background()
	stub := &stubEvaluator{score: 6}
	svc, reg := newTestService(t, stub, 2, 2)

	start, err := svc.Start(ctx, "Grace")
	if err != nil {
		t.Fatal(err)
	}
	if start.SessionID != "fixed-session-id" {
		t.Errorf("session id: got %q", start.SessionID)
	}
	if !strings.Contains(start.Greeting, "Grace") || !strings.Contains(start.Greeting, "4 questions") {
		t.Errorf("greeting: got %q", start.Greeting)
	}
	if start.TotalQuestions != 4 || start.Question.Number != 1 {
		t.Errorf("start shape: total=%d number=%d", start.TotalQuestions, start.Question.Number)
	}
	if start.Question.Type != question.TypeMultipleChoice {
		t.Errorf("first question should be multiple choice, got %s", start.Question.Type)
	}

	// Both MCQs accept "a"; answer the first right and the second wrong.
	res, err := svc.SubmitAnswer(ctx, start.SessionID, "a")
	if err != nil {
		t.Fatal(err)
	}
	if res.Evaluation.Score != 10 || res.Completed {
		t.Errorf("first answer: score=%v completed=%v", res.Evaluation.Score, res.Completed)
	}
	if res.Next == nil || res.Next.Number != 2 {
		t.Fatalf("expected next question 2, got %+v", res.Next)
	}

	res, err = svc.SubmitAnswer(ctx, start.SessionID, "b")
	if err != nil {
		t.Fatal(err)
	}
	if res.Evaluation.Score != 0 {
		t.Errorf("wrong answer score: want 0, got %v", res.Evaluation.Score)
	}

	// Invariant after each accepted submission.
	snap, err := reg.Get(ctx, start.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if snap.CurrentIndex != len(snap.Answered) {
		t.Fatalf("index/answered drift: %d vs %d", snap.CurrentIndex, len(snap.Answered))
	}

	res, err = svc.SubmitAnswer(ctx, start.SessionID, "it looks up values")
	if err != nil {
		t.Fatal(err)
	}
	if res.Evaluation.Score != 6 || res.Completed {
		t.Errorf("third answer: score=%v completed=%v", res.Evaluation.Score, res.Completed)
	}

	res, err = svc.SubmitAnswer(ctx, start.SessionID, "they aggregate data")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Completed || res.Report == nil || res.Next != nil {
		t.Fatalf("final submission: completed=%v report=%v next=%v", res.Completed, res.Report, res.Next)
	}
	if stub.calls != 2 {
		t.Errorf("evaluator calls: want 2, got %d", stub.calls)
	}

	// MCQ mean 5, open mean 6 -> overall 5.5, Intermediate.
	if res.Report.OverallScore != 5.5 {
		t.Errorf("overall score: want 5.5, got %v", res.Report.OverallScore)
	}
	if res.Report.PerformanceLevel != LevelIntermediate {
		t.Errorf("performance level: want %s, got %s", LevelIntermediate, res.Report.PerformanceLevel)
	}

	pv, err := svc.Progress(ctx, start.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if !pv.Completed || pv.AnsweredCount != 4 || pv.Current != nil {
		t.Errorf("progress after completion: %+v", pv)
	}
}

func TestService_StartInsufficientQuestions(t *testing.T) {
	svc, _ := newTestService(t, nil, 3, 2)
	if _, err := svc.Start(context.Background(), "Grace"); !errors.Is(err, ErrInsufficientQuestions) {
		t.Fatalf("want ErrInsufficientQuestions, got %v", err)
	}
}

func TestService_StartWithoutQuestionsConfigured(t *testing.T) {
	svc, _ := newTestService(t, nil, 0, 0)
	if _, err := svc.Start(context.Background(), "Grace"); !errors.Is(err, ErrInsufficientQuestions) {
		t.Fatalf("want ErrInsufficientQuestions, got %v", err)
	}
}

func TestService_UnknownSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil, 1, 1)

	if _, err := svc.SubmitAnswer(ctx, "nope", "a"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("submit: want ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.Progress(ctx, "nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("progress: want ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.Report(ctx, "nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("report: want ErrSessionNotFound, got %v", err)
	}
}

func TestService_SubmitAfterCompleted(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil, 1, 0)

	start, err := svc.Start(ctx, "Grace")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SubmitAnswer(ctx, start.SessionID, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SubmitAnswer(ctx, start.SessionID, "a"); !errors.Is(err, ErrSessionAlreadyCompleted) {
		t.Fatalf("want ErrSessionAlreadyCompleted, got %v", err)
	}
}

func TestService_ReportLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, reg := newTestService(t, nil, 1, 0)

	start, err := svc.Start(ctx, "Grace")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Report(ctx, start.SessionID); !errors.Is(err, ErrSessionNotCompleted) {
		t.Fatalf("report on active session: want ErrSessionNotCompleted, got %v", err)
	}

	if _, err := svc.SubmitAnswer(ctx, start.SessionID, "a"); err != nil {
		t.Fatal(err)
	}
	r, err := svc.Report(ctx, start.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if r.MCQScore != 10 {
		t.Errorf("mcq score: want 10, got %v", r.MCQScore)
	}

	// Drop the cached report, as a registry that only persists raw session
	// state would; the service must recompute it.
	if err := reg.Update(ctx, start.SessionID, func(s *Session) error {
		s.Report = nil
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	r2, err := svc.Report(ctx, start.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if r2.OverallScore != r.OverallScore || r2.PerformanceLevel != r.PerformanceLevel {
		t.Errorf("recomputed report diverged: %+v vs %+v", r2, r)
	}
}

func TestService_SupersededSubmission(t *testing.T) {
	ctx := context.Background()
	stub := &stubEvaluator{score: 6}
	svc, reg := newTestService(t, stub, 0, 2)

	start, err := svc.Start(ctx, "Grace")
	if err != nil {
		t.Fatal(err)
	}

	// While the first submission is out with the evaluator, a competing
	// submission for the same index lands and advances the session.
	stub.hook = func() {
		stub.hook = nil
		if err := reg.Update(ctx, start.SessionID, func(s *Session) error {
			s.Answered = append(s.Answered, AnsweredQuestion{
				Question:   s.Selected[0],
				Answer:     "raced ahead",
				Evaluation: evaluate.Fallback(),
				AnsweredAt: time.Now(),
			})
			s.CurrentIndex++
			return nil
		}); err != nil {
			t.Error(err)
		}
	}

	if _, err := svc.SubmitAnswer(ctx, start.SessionID, "slow answer"); !errors.Is(err, ErrSubmissionSuperseded) {
		t.Fatalf("want ErrSubmissionSuperseded, got %v", err)
	}

	// The losing submission must not have been recorded.
	snap, err := reg.Get(ctx, start.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Answered) != 1 || snap.Answered[0].Answer != "raced ahead" {
		t.Fatalf("unexpected answered state: %+v", snap.Answered)
	}
	if snap.CurrentIndex != 1 {
		t.Errorf("current index: want 1, got %d", snap.CurrentIndex)
	}
}
