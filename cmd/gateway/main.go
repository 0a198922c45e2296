package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/quizline/quizline/internal/api/http"
	"github.com/quizline/quizline/internal/audit"
	"github.com/quizline/quizline/internal/auth"
	authmw "github.com/quizline/quizline/internal/auth/middleware"
	"github.com/quizline/quizline/internal/config"
	"github.com/quizline/quizline/internal/db"
	"github.com/quizline/quizline/internal/question"
	"github.com/quizline/quizline/internal/quiz"
	"github.com/quizline/quizline/internal/rbac"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	if err := auth.SeedAdmin(ctx, dbh, cfg); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	questions := question.NewSQLStore(dbh)
	results := quiz.NewResultStore(dbh)
	auditLog := audit.NewRepo(dbh)
	sessions := quiz.NewManager(time.Now, nil)

	authSvc := authmw.NewAuthService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/signup", auth.SignupHandler(authSvc, dbh))
	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))

		// Admin: question bank management
		pr.With(rbac.Require("question:list")).
			Get("/questions", api.ListQuestionsHandler(questions))
		pr.With(rbac.Require("question:create")).
			Post("/questions", api.CreateQuestionHandler(questions, auditLog))
		pr.With(rbac.Require("question:update")).
			Put("/questions/{questionID}", api.UpdateQuestionHandler(questions, auditLog))
		pr.With(rbac.Require("question:delete")).
			Delete("/questions/{questionID}", api.DeleteQuestionHandler(questions, auditLog))

		// Quiz flow
		pr.With(rbac.Require("quiz:start")).
			Post("/quiz/start", api.StartQuizHandler(questions, sessions, cfg.QuestionTimeLimitSec))
		pr.With(rbac.Require("quiz:view")).
			Get("/quiz/current", api.CurrentQuestionHandler(sessions, cfg.QuestionTimeLimitSec))
		pr.With(rbac.Require("quiz:answer")).
			Post("/quiz/answer", api.SubmitAnswerHandler(sessions))
		pr.With(rbac.Require("quiz:advance")).
			Post("/quiz/next", api.AdvanceHandler(sessions, cfg.QuestionTimeLimitSec))
		pr.With(rbac.Require("quiz:finish")).
			Post("/quiz/finish", api.FinishQuizHandler(sessions, results))
		pr.With(rbac.Require("quiz:view")).
			Get("/quiz/result", api.ResultHandler(sessions))
		pr.With(rbac.Require("quiz:reset")).
			Post("/quiz/reset", api.ResetHandler(sessions))

		// Profile. view-all keeps the door open for an admin results view.
		pr.With(rbac.RequireAny("result:view-own", "result:view-all")).
			Get("/me/results", api.MyResultsHandler(results))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
