package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:answers.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/qnachecker?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := EnsureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates both tables if absent. Safe to call repeatedly.
func EnsureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var stmts []string
	switch driver {
	case DriverSQLite:
		stmts = schemaSQLite
	case DriverPostgres:
		stmts = schemaPostgres
	default:
		return fmt.Errorf("unsupported driver: %s", driver)
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// The questions table keeps a plain unique index on (date_week, question_no).
// Saves always run delete-then-insert in one transaction, so no conflict
// action is needed at the constraint level.
var schemaSQLite = []string{
	`CREATE TABLE IF NOT EXISTS answers (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  student_id TEXT NOT NULL,
  date_week TEXT NOT NULL,
  question_no INTEGER NOT NULL,
  question TEXT NOT NULL,
  answer TEXT NOT NULL,
  checked INTEGER NOT NULL DEFAULT 0
);`,
	`CREATE TABLE IF NOT EXISTS questions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  date_week TEXT NOT NULL,
  question_no INTEGER NOT NULL,
  question TEXT NOT NULL,
  UNIQUE(date_week, question_no)
);`,
	`CREATE INDEX IF NOT EXISTS idx_answers_student_date ON answers(student_id, date_week);`,
	`CREATE INDEX IF NOT EXISTS idx_answers_date ON answers(date_week);`,
}

var schemaPostgres = []string{
	`CREATE TABLE IF NOT EXISTS answers (
  id BIGSERIAL PRIMARY KEY,
  student_id TEXT NOT NULL,
  date_week TEXT NOT NULL,
  question_no INTEGER NOT NULL,
  question TEXT NOT NULL,
  answer TEXT NOT NULL,
  checked INTEGER NOT NULL DEFAULT 0
);`,
	`CREATE TABLE IF NOT EXISTS questions (
  id BIGSERIAL PRIMARY KEY,
  date_week TEXT NOT NULL,
  question_no INTEGER NOT NULL,
  question TEXT NOT NULL,
  UNIQUE(date_week, question_no)
);`,
	`CREATE INDEX IF NOT EXISTS idx_answers_student_date ON answers(student_id, date_week);`,
	`CREATE INDEX IF NOT EXISTS idx_answers_date ON answers(date_week);`,
}
