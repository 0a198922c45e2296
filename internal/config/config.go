package config

import (
	"os"
	"strings"
)

type Mode string

const (
	ModeDev  Mode = "dev"
	ModeProd Mode = "prod"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	AuthHMACSecret string

	// Seeded admin account. Everyone else signs up as a student; admin is a
	// role on the users table, never an email match.
	AdminUser     string
	AdminPassHash string // bcrypt

	// Per-question countdown, surfaced to clients. The server never enforces
	// it; an expired timer makes the client submit an empty answer.
	QuestionTimeLimitSec int

	CORSOrigins []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeDev
	}
	return Config{
		Mode:                 mode,
		HTTPAddr:             envOr("HTTP_ADDR", ":8080"),
		DBDriver:             envOr("DB_DRIVER", "sqlite"),
		DBDSN:                envOr("DB_DSN", ""),
		AuthHMACSecret:       envOr("AUTH_HMAC_SECRET", "quizline-dev-secret"),
		AdminUser:            envOr("ADMIN_USER", "admin"),
		AdminPassHash:        envOr("ADMIN_PASS_HASH", ""),
		QuestionTimeLimitSec: envInt("QUESTION_TIME_LIMIT_SEC", 30),
		CORSOrigins:          csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return def
		}
		n = n*10 + int(c-'0')
	}
	if n <= 0 {
		return def
	}
	return n
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
