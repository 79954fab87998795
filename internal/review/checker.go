package review

import (
	"context"
	"strings"

	"github.com/classkit/qna-checker/internal/qna"
)

// LoadAnswers fetches the matching answer rows into the session: one frozen
// snapshot and one working copy for checkbox edits. A blank date filter
// searches all dates.
func (m *Manager) LoadAnswers(ctx context.Context, sessionID, dateKey, studentSearch string) ([]qna.AnswerRecord, error) {
	recs, err := m.answers.Search(ctx, qna.SearchOpts{
		DateKey:          strings.TrimSpace(dateKey),
		StudentSubstring: strings.TrimSpace(studentSearch),
	})
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.get(sessionID)
	if err != nil {
		return nil, err
	}
	s.snapshot = append([]qna.AnswerRecord(nil), recs...)
	s.working = append([]qna.AnswerRecord(nil), recs...)
	s.loaded = true
	s.dateKey = strings.TrimSpace(dateKey)
	return recs, nil
}

// Toggle flips the checked box on the working copy only; nothing is persisted
// until SaveChecks.
func (m *Manager) Toggle(sessionID string, id int64, checked bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.get(sessionID)
	if err != nil {
		return err
	}
	if !s.loaded {
		return ErrNoSnapshot
	}
	for i := range s.working {
		if s.working[i].ID == id {
			s.working[i].Checked = checked
			return nil
		}
	}
	return ErrRowNotLoaded
}

// Rows returns the working copy as currently edited.
func (m *Manager) Rows(sessionID string) ([]qna.AnswerRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, err := m.get(sessionID)
	if err != nil {
		return nil, err
	}
	if !s.loaded {
		return nil, ErrNoSnapshot
	}
	return append([]qna.AnswerRecord(nil), s.working...), nil
}

// ExportDateKey returns the date filter of the last load, for file naming.
func (m *Manager) ExportDateKey(sessionID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, err := m.get(sessionID)
	if err != nil {
		return "", err
	}
	return s.dateKey, nil
}

// SaveChecks computes the two disjoint flipped-id sets against the snapshot
// and applies them, then advances the snapshot to the saved state.
func (m *Manager) SaveChecks(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	s, err := m.get(sessionID)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	if !s.loaded {
		m.mu.Unlock()
		return ErrNoSnapshot
	}
	toCheck, toUncheck := diffChecked(s.snapshot, s.working)
	saved := append([]qna.AnswerRecord(nil), s.working...)
	m.mu.Unlock()

	if err := m.answers.MarkChecked(ctx, toCheck, true); err != nil {
		return err
	}
	if err := m.answers.MarkChecked(ctx, toUncheck, false); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, err := m.get(sessionID); err == nil {
		s.snapshot = saved
	}
	return nil
}

// MarkAllChecked checks every loaded row unconditionally.
func (m *Manager) MarkAllChecked(ctx context.Context, sessionID string) error {
	rows, err := m.Rows(sessionID)
	if err != nil {
		return err
	}
	if err := m.answers.MarkAllChecked(ctx, rows); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.get(sessionID)
	if err != nil {
		return err
	}
	for i := range s.working {
		s.working[i].Checked = true
	}
	s.snapshot = append([]qna.AnswerRecord(nil), s.working...)
	return nil
}

// diffChecked compares the edited copy against the original snapshot by id
// and returns the ids flipped false→true and true→false. The two sets are
// disjoint by construction.
func diffChecked(orig, edited []qna.AnswerRecord) (toCheck, toUncheck []int64) {
	was := make(map[int64]bool, len(orig))
	for _, r := range orig {
		was[r.ID] = r.Checked
	}
	for _, r := range edited {
		before, ok := was[r.ID]
		if !ok || before == r.Checked {
			continue
		}
		if r.Checked {
			toCheck = append(toCheck, r.ID)
		} else {
			toUncheck = append(toUncheck, r.ID)
		}
	}
	return toCheck, toUncheck
}
