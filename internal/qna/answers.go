package qna

import (
	"context"
	"strings"
)

// AnswerService handles submission batches and the teacher's checked flag.
type AnswerService struct {
	store Store
}

func NewAnswerService(store Store) *AnswerService {
	return &AnswerService{store: store}
}

// Submit replaces the answer batch for (studentID, dateKey). questions and
// answers are parallel slices; a length mismatch is a caller contract
// violation and is rejected, never truncated.
func (s *AnswerService) Submit(ctx context.Context, studentID, dateKey string, questions, answers []string) error {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return ErrEmptyStudentID
	}
	if len(questions) != len(answers) {
		return ErrLengthMismatch
	}
	entries := make([]AnswerEntry, len(questions))
	for i := range questions {
		entries[i] = AnswerEntry{QuestionNo: i + 1, Question: questions[i], Answer: answers[i]}
	}
	return s.store.ReplaceAnswers(ctx, studentID, strings.TrimSpace(dateKey), entries)
}

// Search returns answer rows matching opts, ordered by (student_id,
// question_no). An empty result is not an error.
func (s *AnswerService) Search(ctx context.Context, opts SearchOpts) ([]AnswerRecord, error) {
	return s.store.QueryAnswers(ctx, opts)
}

// MarkChecked sets the checked flag on the given ids.
func (s *AnswerService) MarkChecked(ctx context.Context, ids []int64, checked bool) error {
	return s.store.SetChecked(ctx, ids, checked)
}

// MarkAllChecked marks every record in a loaded result set as checked.
func (s *AnswerService) MarkAllChecked(ctx context.Context, recs []AnswerRecord) error {
	ids := make([]int64, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
	}
	return s.store.SetChecked(ctx, ids, true)
}
