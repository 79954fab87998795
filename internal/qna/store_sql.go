package qna

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SQLStore persists answers and question sets through database/sql. Queries
// use $N placeholders, which both the modernc sqlite driver and pgx accept.
//
// Replace operations are atomic per call, but two sessions replacing the same
// key race last-writer-wins; that is an accepted limitation.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) ReplaceAnswers(ctx context.Context, studentID, dateKey string, entries []AnswerEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// remove previous answers for the same student/date so a resubmit never
	// leaves a mix of old and new rows
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM answers WHERE student_id=$1 AND date_week=$2`, studentID, dateKey); err != nil {
		return fmt.Errorf("delete answers: %w", err)
	}
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO answers (student_id, date_week, question_no, question, answer, checked)
			 VALUES ($1,$2,$3,$4,$5,0)`,
			studentID, dateKey, e.QuestionNo, e.Question, e.Answer); err != nil {
			return fmt.Errorf("insert answer %d: %w", e.QuestionNo, err)
		}
	}
	return tx.Commit()
}

func (s *SQLStore) QueryAnswers(ctx context.Context, opts SearchOpts) ([]AnswerRecord, error) {
	var (
		where []string
		args  []interface{}
	)
	if opts.DateKey != "" {
		args = append(args, opts.DateKey)
		where = append(where, fmt.Sprintf("date_week = $%d", len(args)))
	}
	if opts.StudentSubstring != "" {
		args = append(args, opts.StudentSubstring)
		where = append(where, fmt.Sprintf("student_id LIKE '%%' || $%d || '%%'", len(args)))
	}
	q := `SELECT id, student_id, date_week, question_no, question, answer, checked FROM answers`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += ` ORDER BY student_id, question_no`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AnswerRecord{}
	for rows.Next() {
		var (
			rec     AnswerRecord
			checked int
		)
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.DateKey, &rec.QuestionNo,
			&rec.Question, &rec.Answer, &checked); err != nil {
			return nil, err
		}
		rec.Checked = checked != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLStore) SetChecked(ctx context.Context, ids []int64, checked bool) error {
	if len(ids) == 0 {
		return nil
	}
	val := 0
	if checked {
		val = 1
	}
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, val)
	ph := make([]string, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
		ph = append(ph, fmt.Sprintf("$%d", len(args)))
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE answers SET checked = $1 WHERE id IN (`+strings.Join(ph, ",")+`)`, args...)
	return err
}

func (s *SQLStore) ReplaceQuestionSet(ctx context.Context, dateKey string, texts []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE date_week=$1`, dateKey); err != nil {
		return fmt.Errorf("delete questions: %w", err)
	}
	for i, text := range texts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO questions (date_week, question_no, question) VALUES ($1,$2,$3)`,
			dateKey, i+1, strings.TrimSpace(text)); err != nil {
			return fmt.Errorf("insert question %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

func (s *SQLStore) LoadQuestionSet(ctx context.Context, dateKey string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT question FROM questions WHERE date_week=$1 ORDER BY question_no`, dateKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListQuestionSetDates(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT date_week FROM questions ORDER BY date_week DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
