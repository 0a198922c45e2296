package question

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for lookups of unknown question ids.
var ErrNotFound = errors.New("question not found")

// SQLStore persists the question bank. Records keep their stored shape
// verbatim in payload_json; normalization happens on read, at the boundary.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

// Put inserts a new question. The id is generated when absent.
func (s *SQLStore) Put(ctx context.Context, raw Raw) (Raw, error) {
	if raw.ID == "" {
		raw.ID = uuid.NewString()
	}
	raw.Difficulty = string(ParseDifficulty(raw.Difficulty))
	raw.CreatedAt = s.now().Unix()
	payload, err := json.Marshal(raw)
	if err != nil {
		return Raw{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO questions (id, difficulty, payload_json, created_at) VALUES ($1,$2,$3,$4)`,
		raw.ID, raw.Difficulty, string(payload), raw.CreatedAt)
	if err != nil {
		return Raw{}, err
	}
	return raw, nil
}

// Update replaces an existing question's payload.
func (s *SQLStore) Update(ctx context.Context, id string, raw Raw) (Raw, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return Raw{}, err
	}
	raw.ID = id
	raw.CreatedAt = existing.CreatedAt
	raw.Difficulty = string(ParseDifficulty(raw.Difficulty))
	payload, err := json.Marshal(raw)
	if err != nil {
		return Raw{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE questions SET difficulty=$1, payload_json=$2, updated_at=$3 WHERE id=$4`,
		raw.Difficulty, string(payload), s.now().Unix(), id)
	if err != nil {
		return Raw{}, err
	}
	return raw, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (Raw, error) {
	row := s.db.QueryRowContext(ctx, `SELECT payload_json FROM questions WHERE id=$1`, id)
	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Raw{}, ErrNotFound
		}
		return Raw{}, err
	}
	var raw Raw
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return Raw{}, err
	}
	return raw, nil
}

// List returns questions for one difficulty, or all when difficulty is "".
// Newest first, matching the admin panel ordering.
func (s *SQLStore) List(ctx context.Context, difficulty string) ([]Raw, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if difficulty == "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT payload_json FROM questions ORDER BY created_at DESC`)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT payload_json FROM questions WHERE difficulty=$1 ORDER BY created_at DESC`,
			string(ParseDifficulty(difficulty)))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Raw
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var raw Raw
		if err := json.Unmarshal([]byte(payload), &raw); err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, rows.Err()
}

// Bank reads the whole question bank as a snapshot grouped by difficulty.
// Sessions starting from this snapshot are unaffected by later writes.
func (s *SQLStore) Bank(ctx context.Context) (Bank, error) {
	all, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}
	bank := Bank{}
	for _, raw := range all {
		d := ParseDifficulty(raw.Difficulty)
		bank[d] = append(bank[d], raw)
	}
	return bank, nil
}
