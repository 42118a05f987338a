// Package session holds in-progress test state, keyed by student. A
// session exists only between drawing questions and submission; the
// durable stores never see it.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smartlearn-ai/smartlearn/internal/grading"
	"github.com/smartlearn-ai/smartlearn/internal/quiz"
)

var (
	ErrNoSession   = errors.New("no test in progress for student")
	ErrNoQuestions = errors.New("no questions available")
	ErrNoHistory   = errors.New("no attempt history; take a regular test first")
	ErrBadSize     = errors.New("test size must be at least 1")
	ErrBadChoice   = errors.New("choice must be a letter A-D")
	ErrNotInTest   = errors.New("question is not part of this test")
)

// Session is one student's in-progress test.
type Session struct {
	ID        string           `json:"session_id"`
	StudentID string           `json:"student_id"`
	Adaptive  bool             `json:"adaptive"`
	Questions []quiz.Question  `json:"questions"` // answer keys stripped in View
	Answers   map[int64]string `json:"answers"`   // question id -> chosen letter
	StartedAt time.Time        `json:"started_at"`
}

// View returns a copy safe to serve to the student: answer keys stripped,
// answers snapshot detached from internal state.
func (s *Session) View() Session {
	out := *s
	out.Questions = make([]quiz.Question, len(s.Questions))
	for i, q := range s.Questions {
		q.Answer = ""
		out.Questions[i] = q
	}
	out.Answers = make(map[int64]string, len(s.Answers))
	for k, v := range s.Answers {
		out.Answers[k] = v
	}
	return out
}

// Result is the outcome of a submitted test.
type Result struct {
	SessionID string             `json:"session_id"`
	StudentID string             `json:"student_id"`
	Total     int                `json:"total"`
	Correct   int                `json:"correct"`
	Acc       float64            `json:"accuracy"`
	ByChapter []quiz.ChapterStat `json:"by_chapter,omitempty"`
}

// Manager owns all live sessions. At most one session per student;
// re-entering the test view resumes it rather than resampling, so a view
// refresh never re-randomizes questions mid-test.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	store    quiz.Store
}

func NewManager(store quiz.Store) *Manager {
	return &Manager{sessions: make(map[string]*Session), store: store}
}

// Start draws a fresh sample for the student, or resumes an existing
// in-progress session. Adaptive tests restrict the pool to the student's
// weakest chapters.
func (m *Manager) Start(ctx context.Context, studentID string, n int, adaptive bool) (Session, bool, error) {
	if n < 1 {
		return Session{}, false, ErrBadSize
	}

	m.mu.Lock()
	if s, ok := m.sessions[studentID]; ok {
		v := s.View()
		m.mu.Unlock()
		return v, true, nil
	}
	m.mu.Unlock()

	var (
		qs  []quiz.Question
		err error
	)
	if adaptive {
		weak, werr := m.store.WeakestChapters(ctx, studentID, quiz.WeakChapterLimit)
		if werr != nil {
			return Session{}, false, werr
		}
		if len(weak) == 0 {
			return Session{}, false, ErrNoHistory
		}
		chapters := make([]string, len(weak))
		for i, w := range weak {
			chapters[i] = w.Chapter
		}
		qs, err = m.store.SampleByChapters(ctx, chapters, n)
	} else {
		qs, err = m.store.RandomSample(ctx, n)
	}
	if err != nil {
		return Session{}, false, err
	}
	if len(qs) == 0 {
		return Session{}, false, ErrNoQuestions
	}

	s := &Session{
		ID:        uuid.NewString(),
		StudentID: studentID,
		Adaptive:  adaptive,
		Questions: qs,
		Answers:   make(map[int64]string, len(qs)),
		StartedAt: time.Now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// A session may have raced in for the same student; the earlier one wins.
	if prior, ok := m.sessions[studentID]; ok {
		return prior.View(), true, nil
	}
	m.sessions[studentID] = s
	return s.View(), false, nil
}

// Get returns the student's in-progress session, if any.
func (m *Manager) Get(studentID string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[studentID]
	if !ok {
		return Session{}, ErrNoSession
	}
	return s.View(), nil
}

// Answer records the student's letter choice for one question of the test.
func (m *Manager) Answer(studentID string, questionID int64, choice string) error {
	if !grading.IsLetter(choice) {
		return ErrBadChoice
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[studentID]
	if !ok {
		return ErrNoSession
	}
	for _, q := range s.Questions {
		if q.ID == questionID {
			s.Answers[questionID] = choice
			return nil
		}
	}
	return ErrNotInTest
}

// Discard drops the student's in-progress session, if any.
func (m *Manager) Discard(studentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, studentID)
}

// Submit grades every question of the test (unanswered counts as wrong),
// flushes the attempts as one transaction, and discards the session. The
// session survives a failed flush so the student can retry.
//
// The session leaves the map before grading: once a submit claims it, a
// concurrent Answer or second Submit sees no session instead of racing on
// its state, and one test can never flush twice.
func (m *Manager) Submit(ctx context.Context, studentID string) (Result, error) {
	m.mu.Lock()
	s, ok := m.sessions[studentID]
	if ok {
		delete(m.sessions, studentID)
	}
	m.mu.Unlock()
	if !ok {
		return Result{}, ErrNoSession
	}

	answers := make([]quiz.Answered, 0, len(s.Questions))
	correct := 0
	ids := make([]int64, 0, len(s.Questions))
	for _, q := range s.Questions {
		ok := grading.Correct(q.Answer, s.Answers[q.ID])
		if ok {
			correct++
		}
		answers = append(answers, quiz.Answered{QuestionID: q.ID, Correct: ok})
		ids = append(ids, q.ID)
	}

	if err := m.store.RecordBatch(ctx, studentID, answers); err != nil {
		m.mu.Lock()
		if _, exists := m.sessions[studentID]; !exists {
			m.sessions[studentID] = s
		}
		m.mu.Unlock()
		return Result{}, err
	}

	res := Result{
		SessionID: s.ID,
		StudentID: studentID,
		Total:     len(answers),
		Correct:   correct,
	}
	res.Acc = 100.0 * float64(correct) / float64(res.Total)

	// Per-chapter performance for just this test; advisory, so a failure
	// here does not fail the submission.
	if by, err := m.store.ChapterBreakdown(ctx, studentID, ids); err == nil {
		res.ByChapter = by
	}
	return res, nil
}
