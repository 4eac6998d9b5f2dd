package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/algox/internal/models"
)

const (
	sessionTable = "session"
	keyToken     = "token"
	keyUserID    = "user_id"
)

// SessionRepository implements [session.Persister] over the session table.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Load returns the saved credential. The boolean is false unless both the token and user id are stored.
func (r *SessionRepository) Load(ctx context.Context) (models.Credential, bool, error) {
	values, err := GetValues(ctx, r.db, sessionTable, keyToken, keyUserID)
	if err != nil {
		return models.Credential{}, false, fmt.Errorf("failed to load session: %w", err)
	}

	token, hasToken := values[keyToken]
	userID, hasUser := values[keyUserID]
	if !hasToken || !hasUser {
		return models.Credential{}, false, nil
	}
	return models.Credential{Token: token, UserID: models.ID(userID)}, true, nil
}

// Save replaces the stored credential in one transaction.
func (r *SessionRepository) Save(ctx context.Context, cred models.Credential) error {
	return PutValues(ctx, r.db, sessionTable, map[string]string{
		keyToken:  cred.Token,
		keyUserID: cred.UserID.String(),
	})
}

// Clear deletes the stored credential.
func (r *SessionRepository) Clear(ctx context.Context) error {
	return DeleteValues(ctx, r.db, sessionTable, keyToken, keyUserID)
}
