// Package session persists login sessions. Each session row holds the API
// bearer token and a cached copy of the user record; the browser only ever
// sees a signed cookie carrying the session ID. This is the dashboard's one
// piece of durable state — domain entities are never stored locally.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Avina-dox/DasavenaTI/internal/models"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// Session is one logged-in browser session.
type Session struct {
	ID        string
	Token     string
	User      *models.User
	ExpiresAt time.Time
}

type Store struct {
	db  *sql.DB
	ttl time.Duration
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	token      TEXT NOT NULL,
	user_json  TEXT,
	created_at TIMESTAMP NOT NULL,
	expires_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions (expires_at);
`

// Open opens (creating if needed) the session database at path.
func Open(path string, ttl time.Duration) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating session schema: %w", err)
	}
	return &Store{db: db, ttl: ttl}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Create persists a new session for the given API token and cached user.
func (s *Store) Create(ctx context.Context, token string, user *models.User) (*Session, error) {
	var userJSON []byte
	if user != nil {
		var err error
		userJSON, err = json.Marshal(user)
		if err != nil {
			return nil, fmt.Errorf("encoding user: %w", err)
		}
	}

	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		ExpiresAt: now.Add(s.ttl),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, token, user_json, created_at, expires_at) VALUES (?, ?, ?, ?, ?)`,
		sess.ID, sess.Token, string(userJSON), now, sess.ExpiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	// Opportunistically clean up expired sessions.
	_, _ = s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, now)

	return sess, nil
}

// Get returns the session with the given ID, or ErrNotFound when it does
// not exist or has expired.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	var (
		sess     Session
		userJSON string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, token, user_json, expires_at FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.Token, &userJSON, &sess.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	if time.Now().After(sess.ExpiresAt) {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
		return nil, ErrNotFound
	}

	if userJSON != "" {
		var user models.User
		if err := json.Unmarshal([]byte(userJSON), &user); err == nil {
			sess.User = &user
		}
	}
	return &sess, nil
}

// UpdateUser refreshes the cached user record of a session.
func (s *Store) UpdateUser(ctx context.Context, id string, user *models.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `UPDATE sessions SET user_json = ? WHERE id = ?`, string(userJSON), id)
	if err != nil {
		return fmt.Errorf("updating session user: %w", err)
	}
	return nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
