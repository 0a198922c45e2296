package http

import (
	"encoding/json"
	"errors"
	"net/http"

	authmw "github.com/quizline/quizline/internal/auth/middleware"
	"github.com/quizline/quizline/internal/question"
	"github.com/quizline/quizline/internal/quiz"
)

// Views served to quiz takers. Options never carry correctness flags; the
// answer response reveals the correct text after the answer is locked in.

type optionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type questionView struct {
	ID       string       `json:"id"`
	Question string       `json:"question"`
	Index    int          `json:"index"`
	Total    int          `json:"total"`
	Options  []optionView `json:"options"`
}

type sessionView struct {
	Difficulty   question.Difficulty `json:"difficulty"`
	Total        int                 `json:"totalQuestions"`
	Index        int                 `json:"currentIndex"`
	CorrectSoFar int                 `json:"correctSoFar"`
	TimeLimitSec int                 `json:"timeLimitSec"`
	Question     *questionView       `json:"question,omitempty"`
}

func viewQuestion(s *quiz.Session) *questionView {
	if s == nil || s.Index >= len(s.Questions) {
		return nil
	}
	q := s.Questions[s.Index]
	opts := make([]optionView, len(q.Options))
	for i, o := range q.Options {
		opts[i] = optionView{ID: o.ID, Text: o.Text}
	}
	return &questionView{
		ID: q.ID, Question: q.Question,
		Index: s.Index, Total: len(s.Questions),
		Options: opts,
	}
}

func viewSession(s *quiz.Session, timeLimitSec int) sessionView {
	v := sessionView{
		Difficulty:   s.Difficulty,
		Total:        len(s.Questions),
		Index:        s.Index,
		TimeLimitSec: timeLimitSec,
		Question:     viewQuestion(s),
	}
	for i, a := range s.Answers {
		if q := s.Questions[i]; q.CorrectAnswer != "" && a == q.CorrectAnswer {
			v.CorrectSoFar++
		}
	}
	return v
}

func quizError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrNoQuestions):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, quiz.ErrNoSession):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, quiz.ErrAlreadyAnswered),
		errors.Is(err, quiz.ErrNotAnswered),
		errors.Is(err, quiz.ErrIncomplete):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), 500)
	}
}

// StartQuizHandler snapshots the bank and starts a session for the caller.
// An empty tier is a redirect condition for the UI, not a server fault.
func StartQuizHandler(qs *question.SQLStore, mgr *quiz.Manager, timeLimitSec int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Difficulty string `json:"difficulty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		bank, err := qs.Bank(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		sub := authmw.SubjectFromContext(r.Context())
		var view sessionView
		err = mgr.Do(sub, func(e *quiz.Engine) error {
			s, err := e.Start(bank, question.ParseDifficulty(req.Difficulty))
			if err != nil {
				return err
			}
			view = viewSession(s, timeLimitSec)
			return nil
		})
		if err != nil {
			quizError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(view)
	}
}

func CurrentQuestionHandler(mgr *quiz.Manager, timeLimitSec int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := authmw.SubjectFromContext(r.Context())
		var view sessionView
		err := mgr.Do(sub, func(e *quiz.Engine) error {
			s := e.Session()
			if s == nil {
				return quiz.ErrNoSession
			}
			view = viewSession(s, timeLimitSec)
			return nil
		})
		if err != nil {
			quizError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(view)
	}
}

// SubmitAnswerHandler locks in an answer without advancing. An empty answer
// is legal: the client submits "" when the countdown expires.
func SubmitAnswerHandler(mgr *quiz.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Answer string `json:"answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		sub := authmw.SubjectFromContext(r.Context())
		var out struct {
			Correct       bool   `json:"correct"`
			CorrectAnswer string `json:"correctAnswer"`
		}
		err := mgr.Do(sub, func(e *quiz.Engine) error {
			correct, answer, err := e.Submit(req.Answer)
			if err != nil {
				return err
			}
			out.Correct, out.CorrectAnswer = correct, answer
			return nil
		})
		if err != nil {
			quizError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}

func AdvanceHandler(mgr *quiz.Manager, timeLimitSec int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := authmw.SubjectFromContext(r.Context())
		var out struct {
			Done    bool         `json:"done"`
			Session *sessionView `json:"session,omitempty"`
		}
		err := mgr.Do(sub, func(e *quiz.Engine) error {
			done, err := e.Advance()
			if err != nil {
				return err
			}
			out.Done = done
			if !done {
				v := viewSession(e.Session(), timeLimitSec)
				out.Session = &v
			}
			return nil
		})
		if err != nil {
			quizError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}

// FinishQuizHandler scores the session, archives the summary and returns it.
func FinishQuizHandler(mgr *quiz.Manager, rs *quiz.ResultStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := authmw.SubjectFromContext(r.Context())
		var (
			sum  quiz.ResultSummary
			diff question.Difficulty
		)
		err := mgr.Do(sub, func(e *quiz.Engine) error {
			s := e.Session()
			if s == nil {
				return quiz.ErrNoSession
			}
			diff = s.Difficulty
			var err error
			sum, err = e.Finish()
			return err
		})
		if err != nil {
			quizError(w, err)
			return
		}
		if _, err := rs.Save(r.Context(), sub, diff, sum); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(sum)
	}
}

// ResultHandler returns the last finished summary until reset or next start.
func ResultHandler(mgr *quiz.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := authmw.SubjectFromContext(r.Context())
		var sum quiz.ResultSummary
		err := mgr.Do(sub, func(e *quiz.Engine) error {
			s, ok := e.Result()
			if !ok {
				return quiz.ErrNoSession
			}
			sum = s
			return nil
		})
		if err != nil {
			quizError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(sum)
	}
}

// ResetHandler abandons any session and clears the stored result.
func ResetHandler(mgr *quiz.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := authmw.SubjectFromContext(r.Context())
		_ = mgr.Do(sub, func(e *quiz.Engine) error {
			e.Reset()
			return nil
		})
		w.WriteHeader(http.StatusNoContent)
	}
}
