package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// Event is one admin-side change to the question bank.
type Event struct {
	Offset    int64
	Actor     string // user id of the admin
	Type      string // question.created|question.updated|question.deleted
	Key       string // question id
	DataJSON  string
	CreatedAt int64
}

type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

// Record appends an event; payload is marshalled to JSON. Failures are
// returned but callers treat the log as best-effort.
func (r *Repo) Record(ctx context.Context, actor, typ, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO audit_log (actor, typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		actor, typ, key, string(data), time.Now().Unix())
	return err
}
