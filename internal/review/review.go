package review

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/classkit/qna-checker/internal/qna"
)

var (
	ErrSessionNotFound  = errors.New("review session not found")
	ErrBadQuestionCount = errors.New("question count must be between 1 and 20")
	ErrBadDraftIndex    = errors.New("draft index out of range")
	ErrNoSnapshot       = errors.New("no answers loaded")
	ErrRowNotLoaded     = errors.New("row not in loaded snapshot")
)

// MinQuestions and MaxQuestions bound the editor's question count.
const (
	MinQuestions = 1
	MaxQuestions = 20
)

type session struct {
	draft []string

	snapshot []qna.AnswerRecord // as loaded from the store
	working  []qna.AnswerRecord // with the teacher's checkbox edits
	loaded   bool
	dateKey  string // filter used for the load, kept for export naming
}

// Manager drives the teacher's two sub-flows: the question-set editor and the
// answer checker. Each session holds its own draft and snapshot, keyed by an
// opaque id like the student wizard.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*session

	questions *qna.QuestionSetService
	answers   *qna.AnswerService
}

func NewManager(questions *qna.QuestionSetService, answers *qna.AnswerService) *Manager {
	return &Manager{
		sessions:  map[string]*session{},
		questions: questions,
		answers:   answers,
	}
}

// Create registers a review session with a default-seeded draft.
func (m *Manager) Create() string {
	id := uuid.NewString()
	draft := make([]string, len(qna.DefaultQuestions))
	copy(draft, qna.DefaultQuestions)
	m.mu.Lock()
	m.sessions[id] = &session{draft: draft}
	m.mu.Unlock()
	return id
}

func (m *Manager) get(sessionID string) (*session, error) {
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}
