package qna

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type memoryStore struct {
	mu        sync.RWMutex
	nextID    int64
	answers   []AnswerRecord
	questions map[string][]string // dateKey -> ordered texts
}

// NewInMemoryStore returns a Store backed by process memory. It mirrors the
// SQL store's semantics and is used by tests and throwaway setups.
func NewInMemoryStore() Store {
	return &memoryStore{nextID: 1, questions: map[string][]string{}}
}

func (m *memoryStore) ReplaceAnswers(ctx context.Context, studentID, dateKey string, entries []AnswerEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.answers[:0]
	for _, a := range m.answers {
		if a.StudentID == studentID && a.DateKey == dateKey {
			continue
		}
		kept = append(kept, a)
	}
	m.answers = kept
	for _, e := range entries {
		m.answers = append(m.answers, AnswerRecord{
			ID:         m.nextID,
			StudentID:  studentID,
			DateKey:    dateKey,
			QuestionNo: e.QuestionNo,
			Question:   e.Question,
			Answer:     e.Answer,
		})
		m.nextID++
	}
	return nil
}

func (m *memoryStore) QueryAnswers(ctx context.Context, opts SearchOpts) ([]AnswerRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []AnswerRecord{}
	for _, a := range m.answers {
		if opts.DateKey != "" && a.DateKey != opts.DateKey {
			continue
		}
		if opts.StudentSubstring != "" && !strings.Contains(a.StudentID, opts.StudentSubstring) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StudentID != out[j].StudentID {
			return out[i].StudentID < out[j].StudentID
		}
		return out[i].QuestionNo < out[j].QuestionNo
	})
	return out, nil
}

func (m *memoryStore) SetChecked(ctx context.Context, ids []int64, checked bool) error {
	if len(ids) == 0 {
		return nil
	}
	want := map[int64]bool{}
	for _, id := range ids {
		want[id] = true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.answers {
		if want[m.answers[i].ID] {
			m.answers[i].Checked = checked
		}
	}
	return nil
}

func (m *memoryStore) ReplaceQuestionSet(ctx context.Context, dateKey string, texts []string) error {
	trimmed := make([]string, len(texts))
	for i, t := range texts {
		trimmed[i] = strings.TrimSpace(t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions[dateKey] = trimmed
	return nil
}

func (m *memoryStore) LoadQuestionSet(ctx context.Context, dateKey string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	qs := m.questions[dateKey]
	out := make([]string, len(qs))
	copy(out, qs)
	return out, nil
}

func (m *memoryStore) ListQuestionSetDates(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.questions))
	for d := range m.questions {
		out = append(out, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out, nil
}
