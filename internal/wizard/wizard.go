package wizard

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/classkit/qna-checker/internal/qna"
)

var (
	ErrSessionNotFound = errors.New("wizard session not found")
	ErrNoActiveWizard  = errors.New("wizard not started")
	ErrNotPreviewing   = errors.New("submit requires preview")
)

// PreviewRow is one line of the read-only preview table.
type PreviewRow struct {
	QuestionNo int    `json:"question_no"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
}

// View is a snapshot of a session, shaped for the rendering layer.
type View struct {
	State      string       `json:"state"` // idle|in_progress
	StudentID  string       `json:"student_id,omitempty"`
	DateKey    string       `json:"date_key,omitempty"`
	Cursor     int          `json:"cursor"`
	Total      int          `json:"total"`
	Question   string       `json:"question,omitempty"`
	Answer     string       `json:"answer,omitempty"`
	Progress   float64      `json:"progress"`
	Previewing bool         `json:"previewing"`
	Preview    []PreviewRow `json:"preview,omitempty"`
}

type session struct {
	started    bool
	previewing bool
	studentID  string
	dateKey    string
	questions  []string
	answers    []string
	cursor     int
}

// Manager drives per-session wizard state. Sessions are isolated by opaque
// id, never shared, so concurrent students cannot leak state into each other.
//
// A session keeps the question set it loaded at Start; a teacher edit made
// while the wizard is in flight does not invalidate it.
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

// Create registers a fresh idle session and returns its id.
func (m *Manager) Create() string {
	id := uuid.NewString()
	m.mu.Lock()
	m.sessions[id] = &session{}
	m.mu.Unlock()
	return id
}

// Start loads the question set for dateKey and enters the questionnaire. A
// blank student id rejects the transition and leaves the session untouched.
func (m *Manager) Start(ctx context.Context, sessionID, studentID, dateKey string) error {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return qna.ErrEmptyStudentID
	}
	dateKey = strings.TrimSpace(dateKey)

	qs, err := m.questions.Get(ctx, dateKey)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	s.started = true
	s.previewing = false
	s.studentID = studentID
	s.dateKey = dateKey
	s.questions = qs
	s.answers = make([]string, len(qs))
	s.cursor = 0
	return nil
}

// Back moves the cursor one question back; a no-op on the first question.
func (m *Manager) Back(sessionID string) error {
	return m.navigate(sessionID, -1)
}

// Next moves the cursor one question forward; a no-op on the last question.
func (m *Manager) Next(sessionID string) error {
	return m.navigate(sessionID, +1)
}

func (m *Manager) navigate(sessionID string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	if !s.started {
		return ErrNoActiveWizard
	}
	next := s.cursor + delta
	if next >= 0 && next < len(s.questions) {
		s.cursor = next
	}
	s.previewing = false
	return nil
}

// EditAnswer records text for the current question. Answers persist across
// back/next navigation.
func (m *Manager) EditAnswer(sessionID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	if !s.started {
		return ErrNoActiveWizard
	}
	s.answers[s.cursor] = text
	s.previewing = false
	return nil
}

// Preview reveals the read-only answer table. It is an overlay over the
// questionnaire, not a separate state; any edit or navigation hides it again.
func (m *Manager) Preview(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	if !s.started {
		return ErrNoActiveWizard
	}
	s.previewing = true
	return nil
}

// Submit persists the batch and resets the session to idle. Resubmission for
// the same student/date silently replaces the earlier batch.
func (m *Manager) Submit(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if !ok {
		m.mu.Unlock()
		return ErrSessionNotFound
	}
	if !s.started {
		m.mu.Unlock()
		return ErrNoActiveWizard
	}
	if !s.previewing {
		m.mu.Unlock()
		return ErrNotPreviewing
	}
	studentID, dateKey := s.studentID, s.dateKey
	questions := append([]string(nil), s.questions...)
	answers := append([]string(nil), s.answers...)
	m.mu.Unlock()

	if err := m.answers.Submit(ctx, studentID, dateKey, questions, answers); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok {
		s.started = false
		s.previewing = false
		s.questions = nil
		s.answers = make([]string, len(qna.DefaultQuestions))
		s.cursor = 0
	}
	return nil
}

// View returns a snapshot of the session for rendering.
func (m *Manager) View(sessionID string) (View, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return View{}, ErrSessionNotFound
	}
	v := View{State: "idle", Cursor: s.cursor}
	if !s.started {
		return v, nil
	}
	v.State = "in_progress"
	v.StudentID = s.studentID
	v.DateKey = s.dateKey
	v.Total = len(s.questions)
	v.Question = s.questions[s.cursor]
	v.Answer = s.answers[s.cursor]
	v.Progress = float64(s.cursor+1) / float64(len(s.questions))
	v.Previewing = s.previewing
	if s.previewing {
		v.Preview = make([]PreviewRow, len(s.questions))
		for i := range s.questions {
			v.Preview[i] = PreviewRow{QuestionNo: i + 1, Question: s.questions[i], Answer: s.answers[i]}
		}
	}
	return v, nil
}
