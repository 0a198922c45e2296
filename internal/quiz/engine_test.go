package quiz_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/quizline/quizline/internal/question"
	"github.com/quizline/quizline/internal/quiz"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock { return &fakeClock{t: time.Unix(1_700_000_000, 0)} }

func newEngine(c *fakeClock) *quiz.Engine {
	return quiz.NewEngine(c.Now, rand.New(rand.NewSource(42)))
}

func twoQuestionBank() question.Bank {
	return question.Bank{
		question.Easy: {
			{
				ID:       "q1",
				Question: "Pick B",
				Options: []question.RawOption{
					{Text: "A"}, {Text: "B", IsCorrect: true}, {Text: "C"},
				},
			},
			{
				ID:            "q2",
				Question:      "Pick X",
				OptionA:       "X",
				OptionB:       "Y",
				CorrectAnswer: "X",
			},
		},
	}
}

// runThrough submits per-question answers chosen by pick and advances after
// each, returning once the last question has been passed.
func runThrough(t *testing.T, e *quiz.Engine, pick func(q question.Normalized) string) {
	t.Helper()
	for {
		q, err := e.Current()
		if err != nil {
			t.Fatalf("current: %v", err)
		}
		if _, _, err := e.Submit(pick(q)); err != nil {
			t.Fatalf("submit: %v", err)
		}
		done, err := e.Advance()
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if done {
			return
		}
	}
}

func TestStartEmptyTier(t *testing.T) {
	e := newEngine(newClock())
	_, err := e.Start(question.Bank{}, question.Hard)
	if !errors.Is(err, quiz.ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
	if e.Session() != nil {
		t.Fatalf("engine must stay without a session")
	}
}

func TestStartShufflesAndMaterializes(t *testing.T) {
	e := newEngine(newClock())
	s, err := e.Start(twoQuestionBank(), question.Easy)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(s.Questions) != 2 || s.Index != 0 || len(s.Answers) != 0 {
		t.Fatalf("bad fresh session: %+v", s)
	}
	for _, q := range s.Questions {
		if q.CorrectAnswer == "" {
			t.Fatalf("expected scoreable questions, got %+v", q)
		}
		if len(q.Options) < 2 {
			t.Fatalf("expected normalized options, got %+v", q.Options)
		}
	}
}

func TestEndToEndAllCorrect(t *testing.T) {
	clock := newClock()
	e := newEngine(clock)
	if _, err := e.Start(twoQuestionBank(), question.Easy); err != nil {
		t.Fatalf("start: %v", err)
	}
	clock.Advance(90 * time.Second)

	runThrough(t, e, func(q question.Normalized) string { return q.CorrectAnswer })

	sum, err := e.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	want := quiz.ResultSummary{
		TotalQuestions: 2, CorrectCount: 2, IncorrectCount: 0,
		Percentage: 100, ElapsedMillis: 90_000,
	}
	if sum != want {
		t.Fatalf("summary mismatch:\n got %+v\nwant %+v", sum, want)
	}
	if e.Session() != nil {
		t.Fatalf("session must be discarded after finish")
	}
}

func TestEndToEndHalfCorrect(t *testing.T) {
	e := newEngine(newClock())
	if _, err := e.Start(twoQuestionBank(), question.Easy); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Correct on the first question, timed-out empty answer on the second.
	first := true
	runThrough(t, e, func(q question.Normalized) string {
		if first {
			first = false
			return q.CorrectAnswer
		}
		return ""
	})

	sum, err := e.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if sum.CorrectCount != 1 || sum.IncorrectCount != 1 || sum.Percentage != 50 {
		t.Fatalf("expected 1/1/50, got %+v", sum)
	}
}

func TestSubmitReportsCorrectness(t *testing.T) {
	e := newEngine(newClock())
	if _, err := e.Start(twoQuestionBank(), question.Easy); err != nil {
		t.Fatalf("start: %v", err)
	}
	q, _ := e.Current()
	correct, answer, err := e.Submit(q.CorrectAnswer)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !correct || answer != q.CorrectAnswer {
		t.Fatalf("expected correct submit, got correct=%v answer=%q", correct, answer)
	}
}

func TestSubmitTwiceIsProtocolError(t *testing.T) {
	e := newEngine(newClock())
	if _, err := e.Start(twoQuestionBank(), question.Easy); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, _, err := e.Submit("x"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, _, err := e.Submit("y"); !errors.Is(err, quiz.ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got %v", err)
	}
}

func TestAdvanceBeforeSubmitIsProtocolError(t *testing.T) {
	e := newEngine(newClock())
	if _, err := e.Start(twoQuestionBank(), question.Easy); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := e.Advance(); !errors.Is(err, quiz.ErrNotAnswered) {
		t.Fatalf("expected ErrNotAnswered, got %v", err)
	}
}

func TestFinishEarlyIsProtocolError(t *testing.T) {
	e := newEngine(newClock())
	if _, err := e.Start(twoQuestionBank(), question.Easy); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, _, err := e.Submit("x"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := e.Finish(); !errors.Is(err, quiz.ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
}

func TestUnscoreableQuestionAlwaysIncorrect(t *testing.T) {
	bank := question.Bank{
		question.Easy: {
			{
				ID:            "broken",
				Question:      "no right answer",
				CorrectAnswer: "Z",
				Options:       []question.RawOption{{Text: "A"}, {Text: "B"}},
			},
		},
	}
	e := newEngine(newClock())
	if _, err := e.Start(bank, question.Easy); err != nil {
		t.Fatalf("start: %v", err)
	}
	correct, _, err := e.Submit("A")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if correct {
		t.Fatalf("unscoreable question must never grade correct")
	}
	if _, err := e.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	sum, err := e.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if sum.CorrectCount != 0 || sum.Percentage != 0 {
		t.Fatalf("expected 0 correct, got %+v", sum)
	}
}

func TestResetClearsResultAndIsIdempotent(t *testing.T) {
	e := newEngine(newClock())
	if _, err := e.Start(twoQuestionBank(), question.Easy); err != nil {
		t.Fatalf("start: %v", err)
	}
	runThrough(t, e, func(q question.Normalized) string { return q.CorrectAnswer })
	if _, err := e.Finish(); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if _, ok := e.Result(); !ok {
		t.Fatalf("expected stored result after finish")
	}

	e.Reset()
	if _, ok := e.Result(); ok {
		t.Fatalf("reset must clear the stored result")
	}
	e.Reset() // second reset is a no-op

	s, err := e.Start(twoQuestionBank(), question.Easy)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if s.Index != 0 || len(s.Answers) != 0 {
		t.Fatalf("restart must begin fresh, got %+v", s)
	}
}

func TestStartDiscardsPreviousResult(t *testing.T) {
	e := newEngine(newClock())
	if _, err := e.Start(twoQuestionBank(), question.Easy); err != nil {
		t.Fatalf("start: %v", err)
	}
	runThrough(t, e, func(q question.Normalized) string { return q.CorrectAnswer })
	if _, err := e.Finish(); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if _, err := e.Start(twoQuestionBank(), question.Easy); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if _, ok := e.Result(); ok {
		t.Fatalf("starting a session must discard the previous result")
	}
}

func TestManagerKeepsUsersApart(t *testing.T) {
	mgr := quiz.NewManager(nil, rand.New(rand.NewSource(1)))
	bank := twoQuestionBank()

	if err := mgr.Do("alice", func(e *quiz.Engine) error {
		_, err := e.Start(bank, question.Easy)
		return err
	}); err != nil {
		t.Fatalf("alice start: %v", err)
	}
	if err := mgr.Do("bob", func(e *quiz.Engine) error {
		if e.Session() != nil {
			t.Fatalf("bob must not see alice's session")
		}
		return nil
	}); err != nil {
		t.Fatalf("bob: %v", err)
	}
}
