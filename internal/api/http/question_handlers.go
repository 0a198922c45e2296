package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizline/quizline/internal/audit"
	authmw "github.com/quizline/quizline/internal/auth/middleware"
	"github.com/quizline/quizline/internal/question"
)

// Admin question-bank CRUD. Drafts are validated before they reach the
// store; a rejected draft never produces a partial write.

func ListQuestionsHandler(store *question.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := store.List(r.Context(), r.URL.Query().Get("difficulty"))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if rows == nil {
			rows = []question.Raw{}
		}
		_ = json.NewEncoder(w).Encode(rows)
	}
}

func CreateQuestionHandler(store *question.SQLStore, log *audit.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw question.Raw
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if err := question.ValidateDraft(raw); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		saved, err := store.Put(r.Context(), raw)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = log.Record(r.Context(), authmw.SubjectFromContext(r.Context()),
			"question.created", saved.ID, saved)
		_ = json.NewEncoder(w).Encode(saved)
	}
}

func UpdateQuestionHandler(store *question.SQLStore, log *audit.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "questionID")
		var raw question.Raw
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if err := question.ValidateDraft(raw); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		saved, err := store.Update(r.Context(), id, raw)
		if err != nil {
			if errors.Is(err, question.ErrNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		_ = log.Record(r.Context(), authmw.SubjectFromContext(r.Context()),
			"question.updated", saved.ID, saved)
		_ = json.NewEncoder(w).Encode(saved)
	}
}

func DeleteQuestionHandler(store *question.SQLStore, log *audit.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "questionID")
		if err := store.Delete(r.Context(), id); err != nil {
			if errors.Is(err, question.ErrNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		_ = log.Record(r.Context(), authmw.SubjectFromContext(r.Context()),
			"question.deleted", id, nil)
		w.WriteHeader(http.StatusNoContent)
	}
}
