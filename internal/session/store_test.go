package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avina-dox/DasavenaTI/internal/models"
)

func openTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "sessions.db"), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSessionRoundtrip(t *testing.T) {
	store := openTestStore(t, time.Hour)
	ctx := context.Background()

	user := &models.User{ID: 3, Name: "Ana López", Email: "ana@example.com"}
	created, err := store.Create(ctx, "tok123", user)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), created.ExpiresAt, 5*time.Second)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "tok123", got.Token)
	require.NotNil(t, got.User)
	assert.Equal(t, "Ana López", got.User.Name)
}

func TestSessionWithoutUser(t *testing.T) {
	store := openTestStore(t, time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "tok123", nil)
	require.NoError(t, err)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.User)
}

func TestSessionExpiry(t *testing.T) {
	store := openTestStore(t, time.Millisecond)
	ctx := context.Background()

	created, err := store.Create(ctx, "tok123", nil)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = store.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionDelete(t *testing.T) {
	store := openTestStore(t, time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "tok123", nil)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, created.ID))

	_, err = store.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is fine.
	assert.NoError(t, store.Delete(ctx, created.ID))
}

func TestSessionGetUnknown(t *testing.T) {
	store := openTestStore(t, time.Hour)
	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUser(t *testing.T) {
	store := openTestStore(t, time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "tok123", &models.User{ID: 3, Name: "Ana"})
	require.NoError(t, err)

	require.NoError(t, store.UpdateUser(ctx, created.ID, &models.User{ID: 3, Name: "Ana María"}))
	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", got.User.Name)
}

func TestCookieSignAndParse(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"
	signed, err := SignCookie(secret, "session-id-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	id, err := ParseCookie(secret, signed)
	require.NoError(t, err)
	assert.Equal(t, "session-id-1", id)
}

func TestParseCookieRejectsWrongSecret(t *testing.T) {
	signed, err := SignCookie("0123456789abcdef0123456789abcdef", "session-id-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = ParseCookie("another-secret-another-secret-ab", signed)
	assert.Error(t, err)
}

func TestParseCookieRejectsExpired(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"
	signed, err := SignCookie(secret, "session-id-1", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = ParseCookie(secret, signed)
	assert.Error(t, err)
}

func TestParseCookieRejectsGarbage(t *testing.T) {
	_, err := ParseCookie("0123456789abcdef0123456789abcdef", "not-a-jwt")
	assert.Error(t, err)
}
