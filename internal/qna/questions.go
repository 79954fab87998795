package qna

import (
	"context"
	"strings"
)

// DefaultQuestions is the built-in fallback set used when no question set is
// saved for a date key.
var DefaultQuestions = []string{
	"Explain one key concept you learned today.",
	"Give an example related to the concept.",
	"What is one question you still have?",
}

// QuestionSetService wraps the store with the default-fallback policy.
type QuestionSetService struct {
	store Store
}

func NewQuestionSetService(store Store) *QuestionSetService {
	return &QuestionSetService{store: store}
}

// Get returns the stored question set for dateKey, or the built-in defaults
// when dateKey is blank or nothing is saved for it.
func (s *QuestionSetService) Get(ctx context.Context, dateKey string) ([]string, error) {
	if strings.TrimSpace(dateKey) == "" {
		return defaults(), nil
	}
	qs, err := s.store.LoadQuestionSet(ctx, strings.TrimSpace(dateKey))
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return defaults(), nil
	}
	return qs, nil
}

// Save replaces the question set for dateKey. Texts are trimmed; empty texts
// are allowed (matching the source workflow, which only trims).
func (s *QuestionSetService) Save(ctx context.Context, dateKey string, texts []string) error {
	dateKey = strings.TrimSpace(dateKey)
	if dateKey == "" {
		return ErrEmptyDateKey
	}
	return s.store.ReplaceQuestionSet(ctx, dateKey, texts)
}

// SavedDates lists date keys with a saved question set, most recent first.
func (s *QuestionSetService) SavedDates(ctx context.Context) ([]string, error) {
	return s.store.ListQuestionSetDates(ctx)
}

func defaults() []string {
	out := make([]string, len(DefaultQuestions))
	copy(out, DefaultQuestions)
	return out
}
