package http

import (
	"encoding/json"
	"net/http"

	authmw "github.com/quizline/quizline/internal/auth/middleware"
	"github.com/quizline/quizline/internal/quiz"
)

// MyResultsHandler lists the caller's past quiz results, newest first.
func MyResultsHandler(rs *quiz.ResultStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := authmw.SubjectFromContext(r.Context())
		rows, err := rs.ListByUser(r.Context(), sub)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(rows)
	}
}
