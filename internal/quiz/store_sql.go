package quiz

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/quizline/quizline/internal/question"
)

// ResultRecord is a finished session summary as persisted for the profile
// history view.
type ResultRecord struct {
	ID         string              `json:"id"`
	UserID     string              `json:"user_id"`
	Difficulty question.Difficulty `json:"difficulty"`
	ResultSummary
	FinishedAt int64 `json:"finished_at"`
}

// ResultStore archives finished sessions. The engine itself discards the
// session on finish; this is the only durable trace of an attempt.
type ResultStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewResultStore(db *sql.DB) *ResultStore {
	return &ResultStore{db: db, now: time.Now}
}

func (s *ResultStore) Save(ctx context.Context, userID string, difficulty question.Difficulty, sum ResultSummary) (ResultRecord, error) {
	rec := ResultRecord{
		ID:            uuid.NewString(),
		UserID:        userID,
		Difficulty:    difficulty,
		ResultSummary: sum,
		FinishedAt:    s.now().Unix(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (id, user_id, difficulty, total_questions, correct_count, percentage, elapsed_ms, finished_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		rec.ID, rec.UserID, string(rec.Difficulty), rec.TotalQuestions, rec.CorrectCount,
		rec.Percentage, rec.ElapsedMillis, rec.FinishedAt)
	if err != nil {
		return ResultRecord{}, err
	}
	return rec, nil
}

// ListByUser returns a user's past results, newest first.
func (s *ResultStore) ListByUser(ctx context.Context, userID string) ([]ResultRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, difficulty, total_questions, correct_count, percentage, elapsed_ms, finished_at
		 FROM results WHERE user_id=$1 ORDER BY finished_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ResultRecord{}
	for rows.Next() {
		var rec ResultRecord
		var diff string
		if err := rows.Scan(&rec.ID, &rec.UserID, &diff, &rec.TotalQuestions, &rec.CorrectCount,
			&rec.Percentage, &rec.ElapsedMillis, &rec.FinishedAt); err != nil {
			return nil, err
		}
		rec.Difficulty = question.Difficulty(diff)
		rec.IncorrectCount = rec.TotalQuestions - rec.CorrectCount
		out = append(out, rec)
	}
	return out, rows.Err()
}
