package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	authmw "github.com/quizline/quizline/internal/auth/middleware"
	"github.com/quizline/quizline/internal/config"
)

type tokenOut struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
	Role        string `json:"role"`
}

// SignupHandler registers a student account. Admin accounts are never
// created here; the single admin is seeded from config at startup.
func SignupHandler(a *authmw.AuthService, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" || len(req.Password) < 6 {
			http.Error(w, "username and a password of at least 6 characters are required", 400)
			return
		}

		var exists int
		err := db.QueryRowContext(r.Context(), `SELECT 1 FROM users WHERE username=$1`, req.Username).Scan(&exists)
		if err == nil {
			http.Error(w, "username already taken", http.StatusConflict)
			return
		}
		if !errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "signup failed", 500)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			http.Error(w, "signup failed", 500)
			return
		}
		id := uuid.NewString()
		_, err = db.ExecContext(r.Context(),
			`INSERT INTO users (id, username, password_hash, role, created_at) VALUES ($1,$2,$3,'student',$4)`,
			id, req.Username, string(hash), time.Now().Unix())
		if err != nil {
			http.Error(w, "signup failed", 500)
			return
		}

		tok, err := a.IssueJWT(id, "student")
		if err != nil {
			http.Error(w, "issue token", 500)
			return
		}
		_ = json.NewEncoder(w).Encode(tokenOut{AccessToken: tok, Username: req.Username, Role: "student"})
	}
}

// LoginHandler checks credentials against the users table. The role on the
// token always comes from the DB row, never from the request.
func LoginHandler(a *authmw.AuthService, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}

		var id, hash, role string
		err := db.QueryRowContext(r.Context(),
			`SELECT id, password_hash, role FROM users WHERE username=$1`, req.Username).
			Scan(&id, &hash, &role)
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		if err != nil {
			http.Error(w, "login failed", 500)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		tok, err := a.IssueJWT(id, role)
		if err != nil {
			http.Error(w, "issue token", 500)
			return
		}
		_ = json.NewEncoder(w).Encode(tokenOut{AccessToken: tok, Username: req.Username, Role: role})
	}
}

// SeedAdmin ensures the configured admin account exists. No-op when the
// password hash is unset or the user is already present.
func SeedAdmin(ctx context.Context, db *sql.DB, cfg config.Config) error {
	if cfg.AdminUser == "" || cfg.AdminPassHash == "" {
		return nil
	}
	var exists int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=$1`, cfg.AdminUser).Scan(&exists)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, role, created_at) VALUES ($1,$2,$3,'admin',$4)`,
		uuid.NewString(), cfg.AdminUser, cfg.AdminPassHash, time.Now().Unix())
	return err
}
