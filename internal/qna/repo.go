package qna

import "context"

// SearchOpts filters answer queries. Both filters are AND-combined; a zero
// value means no constraint on that column.
type SearchOpts struct {
	DateKey          string // exact match
	StudentSubstring string // substring match on student_id
}

type Store interface {
	// ReplaceAnswers drops all rows for (studentID, dateKey) and inserts the
	// given batch with checked=false, all inside one transaction.
	ReplaceAnswers(ctx context.Context, studentID, dateKey string, entries []AnswerEntry) error

	// QueryAnswers returns matching rows ordered by (student_id, question_no).
	QueryAnswers(ctx context.Context, opts SearchOpts) ([]AnswerRecord, error)

	// SetChecked bulk-updates checked for the given ids. Empty id set is a
	// no-op; unknown ids are ignored.
	SetChecked(ctx context.Context, ids []int64, checked bool) error

	// ReplaceQuestionSet drops all rows for dateKey and inserts one row per
	// text with 1-based question numbers, inside one transaction. Texts are
	// stored trimmed.
	ReplaceQuestionSet(ctx context.Context, dateKey string, texts []string) error

	// LoadQuestionSet returns question texts for dateKey ordered by
	// question_no, or an empty slice when none are saved.
	LoadQuestionSet(ctx context.Context, dateKey string) ([]string, error)

	// ListQuestionSetDates returns distinct date keys with a saved set,
	// most recent first.
	ListQuestionSetDates(ctx context.Context) ([]string, error)
}
