package pos

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bodo2020/market-maadaoui-sells-sub000/internal/models"
)

// Session is the explicit per-terminal state: one cart, the cashier who owns
// it, the register it settles against and the keystroke buffer feeding the
// scanner. A processing flag blocks duplicate checkout submissions while the
// previous one is in flight.
type Session struct {
	ID           string
	UserID       uint
	RegisterKind string
	Cart         *Cart
	Scanner      *ScanBuffer
	CreatedAt    time.Time

	mu         sync.Mutex
	processing bool
}

// Lock serializes cart access for the single-terminal session.
func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// BeginCheckout flips the processing guard; callers must hold the session lock.
func (s *Session) BeginCheckout() error {
	if s.processing {
		return ErrCheckoutInProgress
	}
	s.processing = true
	return nil
}

func (s *Session) EndCheckout() {
	s.processing = false
}

// SessionStore holds open POS sessions in memory, keyed by uuid.
type SessionStore struct {
	scanWindow time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionStore(scanWindow time.Duration) *SessionStore {
	return &SessionStore{
		scanWindow: scanWindow,
		sessions:   make(map[string]*Session),
	}
}

func (s *SessionStore) Open(userID uint, registerKind string) *Session {
	if registerKind == "" {
		registerKind = models.RegisterStore
	}
	session := &Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		RegisterKind: registerKind,
		Cart:         NewCart(),
		Scanner:      NewScanBuffer(s.scanWindow),
		CreatedAt:    time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return session
}

func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *SessionStore) Close(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
