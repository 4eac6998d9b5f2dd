package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/algox/internal/models"
	"github.com/desertthunder/algox/internal/shared"
)

// Persister saves a credential outside the process.
type Persister interface {
	Load(ctx context.Context) (models.Credential, bool, error)
	Save(ctx context.Context, cred models.Credential) error
	Clear(ctx context.Context) error
}

// Store holds at most one credential. Safe for concurrent use.
type Store struct {
	// saveMu orders writes so the persisted credential matches memory.
	// mu guards only the in-memory value and is never held during I/O.
	saveMu    sync.Mutex
	mu        sync.RWMutex
	cred      models.Credential
	present   bool
	persister Persister
	logger    *log.Logger
}

// NewStore creates an empty store. A nil persister keeps the credential in memory only.
func NewStore(p Persister, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{persister: p, logger: logger}
}

// Open creates a store and restores any credential saved by the persister.
func Open(ctx context.Context, p Persister, logger *log.Logger) (*Store, error) {
	s := NewStore(p, logger)
	if p == nil {
		return s, nil
	}

	cred, ok, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if ok && cred.Token != "" && !cred.UserID.IsZero() {
		s.cred, s.present = cred, true
		s.logger.Debug("restored session", "user_id", cred.UserID)
	}
	return s, nil
}

// Set replaces the held credential. The last call wins.
//
// The in-memory value is updated even when persisting fails so the
// current process stays logged in; the persistence error is returned.
func (s *Store) Set(ctx context.Context, token string, userID models.ID) error {
	if token == "" || userID.IsZero() {
		return shared.Validation("credential requires a token and a user id")
	}
	cred := models.Credential{Token: token, UserID: userID}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	s.cred, s.present = cred, true
	s.mu.Unlock()

	if s.persister != nil {
		if err := s.persister.Save(ctx, cred); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}
	}
	return nil
}

// Get returns the held credential and whether one is present.
func (s *Store) Get() (models.Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred, s.present
}

// UserID returns the id of the logged in user.
func (s *Store) UserID() (models.ID, error) {
	cred, ok := s.Get()
	if !ok {
		return "", shared.ErrNotAuthenticated
	}
	return cred.UserID, nil
}

// Clear forgets the held credential.
func (s *Store) Clear(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	s.cred, s.present = models.Credential{}, false
	s.mu.Unlock()

	if s.persister != nil {
		if err := s.persister.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
	}
	return nil
}
