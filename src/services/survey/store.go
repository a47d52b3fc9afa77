package survey

import (
	"context"
	"errors"
	"sync"
	"time"

	"Backend-Retreat-Survey/src/models"

	"github.com/google/uuid"
)

var ErrSubmitInFlight = errors.New("a submission for this session is already in progress")

// ProgressStore is the durable key-value store behind a session. Writers of
// the same session race with last-write-wins semantics.
type ProgressStore interface {
	// Load returns the stored progress; a session that was never saved loads
	// as empty progress.
	Load(ctx context.Context, sessionID string) (models.Progress, error)
	SaveAnswers(ctx context.Context, sessionID string, answers models.Answers, specify models.SpecifyValues) error
	SaveSection(ctx context.Context, sessionID string, index int) error
	// SaveCheckpoint stores cp, or removes the checkpoint when cp is nil.
	SaveCheckpoint(ctx context.Context, sessionID string, cp *models.SubmitCheckpoint) error
	// Clear purges everything stored for the session.
	Clear(ctx context.Context, sessionID string) error
	// AcquireSubmitLock fails with ErrSubmitInFlight while another submit
	// holds the lock. The returned release func is safe to call once.
	AcquireSubmitLock(ctx context.Context, sessionID string, ttl time.Duration) (release func(), err error)
}

// MemoryStore keeps progress in process memory. It backs tests and runs
// without Redis.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]models.Progress
	locks    map[string]memoryLock
}

type memoryLock struct {
	token string
	until time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: map[string]models.Progress{},
		locks:    map[string]memoryLock{},
	}
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) (models.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.sessions[sessionID]
	p.Answers = p.Answers.Clone()
	p.Specify = p.Specify.Clone()
	if p.Checkpoint != nil {
		cp := *p.Checkpoint
		p.Checkpoint = &cp
	}
	return p, nil
}

func (m *MemoryStore) SaveAnswers(_ context.Context, sessionID string, answers models.Answers, specify models.SpecifyValues) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.sessions[sessionID]
	p.Answers = answers.Clone()
	p.Specify = specify.Clone()
	m.sessions[sessionID] = p
	return nil
}

func (m *MemoryStore) SaveSection(_ context.Context, sessionID string, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.sessions[sessionID]
	p.SectionIndex = index
	m.sessions[sessionID] = p
	return nil
}

func (m *MemoryStore) SaveCheckpoint(_ context.Context, sessionID string, cp *models.SubmitCheckpoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.sessions[sessionID]
	if cp != nil {
		c := *cp
		cp = &c
	}
	p.Checkpoint = cp
	m.sessions[sessionID] = p
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	return nil
}

func (m *MemoryStore) AcquireSubmitLock(_ context.Context, sessionID string, ttl time.Duration) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.locks[sessionID]; ok && time.Now().Before(l.until) {
		return nil, ErrSubmitInFlight
	}
	token := uuid.NewString()
	m.locks[sessionID] = memoryLock{token: token, until: time.Now().Add(ttl)}

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			// an expired lock may already belong to another submit
			if m.locks[sessionID].token == token {
				delete(m.locks, sessionID)
			}
		})
	}, nil
}

// Has reports whether anything is stored for the session.
func (m *MemoryStore) Has(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.sessions[sessionID]
	return ok
}
