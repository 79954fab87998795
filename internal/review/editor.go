package review

import (
	"context"
	"strings"

	"github.com/classkit/qna-checker/internal/qna"
)

// LoadSavedInto replaces the draft with the question set saved for dateKey
// (or the defaults when none is saved).
func (m *Manager) LoadSavedInto(ctx context.Context, sessionID, dateKey string) error {
	qs, err := m.questions.Get(ctx, dateKey)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.get(sessionID)
	if err != nil {
		return err
	}
	s.draft = qs
	return nil
}

// ResetToDefault replaces the draft with the built-in default questions.
func (m *Manager) ResetToDefault(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.get(sessionID)
	if err != nil {
		return err
	}
	draft := make([]string, len(qna.DefaultQuestions))
	copy(draft, qna.DefaultQuestions)
	s.draft = draft
	return nil
}

// Resize grows or shrinks the draft to num entries, padding with empty
// strings or truncating while keeping existing entries at their index.
func (m *Manager) Resize(sessionID string, num int) error {
	if num < MinQuestions || num > MaxQuestions {
		return ErrBadQuestionCount
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.get(sessionID)
	if err != nil {
		return err
	}
	switch {
	case len(s.draft) < num:
		s.draft = append(s.draft, make([]string, num-len(s.draft))...)
	case len(s.draft) > num:
		s.draft = s.draft[:num]
	}
	return nil
}

// SetDraft updates one draft entry in place.
func (m *Manager) SetDraft(sessionID string, index int, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.get(sessionID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(s.draft) {
		return ErrBadDraftIndex
	}
	s.draft[index] = text
	return nil
}

// Draft returns a copy of the current draft list.
func (m *Manager) Draft(sessionID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, err := m.get(sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(s.draft))
	copy(out, s.draft)
	return out, nil
}

// SaveDraft persists the draft as the question set for dateKey.
func (m *Manager) SaveDraft(ctx context.Context, sessionID, dateKey string) error {
	if strings.TrimSpace(dateKey) == "" {
		return qna.ErrEmptyDateKey
	}
	draft, err := m.Draft(sessionID)
	if err != nil {
		return err
	}
	return m.questions.Save(ctx, strings.TrimSpace(dateKey), draft)
}
