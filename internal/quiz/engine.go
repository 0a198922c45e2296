package quiz

import (
	"errors"
	"math/rand"
	"time"

	"github.com/quizline/quizline/internal/question"
)

// Recoverable outcomes: user-triggerable states the caller redirects on.
var (
	// ErrNoQuestions is the "not started" outcome when a tier is empty.
	ErrNoQuestions = errors.New("no questions for this difficulty")
	// ErrNoSession is returned when an operation needs an active session.
	ErrNoSession = errors.New("no active session")
)

// Protocol violations: bugs in the calling layer, not user states.
var (
	ErrAlreadyAnswered = errors.New("current question already answered")
	ErrNotAnswered     = errors.New("current question not answered yet")
	ErrIncomplete      = errors.New("cannot finish: unanswered questions remain")
)

// Session is one quiz attempt. The question list is materialized (normalized
// and shuffled) once at start; bank updates arriving mid-quiz never touch it.
type Session struct {
	Difficulty question.Difficulty   `json:"difficulty"`
	Questions  []question.Normalized `json:"questions"`
	Index      int                   `json:"currentIndex"`
	Answers    []string              `json:"answers"`
	StartedAt  time.Time             `json:"startedAt"`
}

// ResultSummary is produced exactly once per finished session.
type ResultSummary struct {
	TotalQuestions int   `json:"totalQuestions"`
	CorrectCount   int   `json:"correctAnswers"`
	IncorrectCount int   `json:"incorrectAnswers"`
	Percentage     int   `json:"percentage"`
	ElapsedMillis  int64 `json:"timeSpentMs"`
}

// Engine owns at most one session and the summary of the last finished one.
// It is single-threaded on purpose: callers serialize access (see Manager).
// The clock and randomness source are injected for tests.
type Engine struct {
	now     func() time.Time
	rng     *rand.Rand
	session *Session
	result  *ResultSummary
}

func NewEngine(now func() time.Time, rng *rand.Rand) *Engine {
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{now: now, rng: rng}
}

// Start materializes a session from the bank snapshot: every raw question of
// the tier is normalized, the question order is shuffled, and each question's
// options are shuffled independently so retakes never share positions.
// An empty tier returns ErrNoQuestions and leaves the engine without a
// session. Any previous session or result is discarded.
func (e *Engine) Start(bank question.Bank, difficulty question.Difficulty) (*Session, error) {
	raws := bank[difficulty]
	if len(raws) == 0 {
		return nil, ErrNoQuestions
	}

	qs := make([]question.Normalized, len(raws))
	for i, r := range raws {
		qs[i] = question.Normalize(r)
	}
	e.rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
	for i := range qs {
		qs[i] = question.ShuffleOptions(e.rng, qs[i])
	}

	e.session = &Session{
		Difficulty: difficulty,
		Questions:  qs,
		Index:      0,
		Answers:    make([]string, 0, len(qs)),
		StartedAt:  e.now(),
	}
	e.result = nil
	return e.session, nil
}

// Session returns the active session, or nil.
func (e *Engine) Session() *Session { return e.session }

// Current returns the question at the session cursor.
func (e *Engine) Current() (question.Normalized, error) {
	s := e.session
	if s == nil || s.Index >= len(s.Questions) {
		return question.Normalized{}, ErrNoSession
	}
	return s.Questions[s.Index], nil
}

// Submit locks in the answer for the current question without advancing, so
// the UI can reveal correctness first. An empty answer is accepted (timer
// expiry submits "") and simply scores as incorrect. Submitting twice for
// the same question is a protocol violation.
func (e *Engine) Submit(answer string) (correct bool, correctAnswer string, err error) {
	s := e.session
	if s == nil || s.Index >= len(s.Questions) {
		return false, "", ErrNoSession
	}
	if len(s.Answers) > s.Index {
		return false, "", ErrAlreadyAnswered
	}
	q := s.Questions[s.Index]
	s.Answers = append(s.Answers, answer)
	return q.CorrectAnswer != "" && answer == q.CorrectAnswer, q.CorrectAnswer, nil
}

// Advance moves the cursor to the next question. It is only legal once the
// current question has an answer. done reports that the cursor moved past
// the last question; the caller must Finish then.
func (e *Engine) Advance() (done bool, err error) {
	s := e.session
	if s == nil {
		return false, ErrNoSession
	}
	if len(s.Answers) <= s.Index {
		return false, ErrNotAnswered
	}
	s.Index++
	return s.Index >= len(s.Questions), nil
}

// Finish scores the session and discards it. Every question must have a
// submitted answer; finishing a partial session is a caller bug surfaced as
// ErrIncomplete. Scoring is exact string equality against the correct text
// (normalization already trimmed at construction). A question with no
// correct option counts as incorrect under any answer.
func (e *Engine) Finish() (ResultSummary, error) {
	s := e.session
	if s == nil {
		return ResultSummary{}, ErrNoSession
	}
	if len(s.Answers) < len(s.Questions) {
		return ResultSummary{}, ErrIncomplete
	}

	correct := 0
	for i, q := range s.Questions {
		if q.CorrectAnswer != "" && s.Answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	total := len(s.Questions)
	sum := ResultSummary{
		TotalQuestions: total,
		CorrectCount:   correct,
		IncorrectCount: total - correct,
		Percentage:     int(float64(correct)/float64(total)*100 + 0.5),
		ElapsedMillis:  e.now().Sub(s.StartedAt).Milliseconds(),
	}
	e.session = nil
	e.result = &sum
	return sum, nil
}

// Result returns the summary of the last finished session, if any.
func (e *Engine) Result() (ResultSummary, bool) {
	if e.result == nil {
		return ResultSummary{}, false
	}
	return *e.result, true
}

// Reset discards any active session and stored result. Idempotent.
func (e *Engine) Reset() {
	e.session = nil
	e.result = nil
}
