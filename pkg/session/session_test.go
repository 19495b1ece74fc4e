package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin-1",
		"exp": exp.Unix(),
	})
	raw, err := tok.SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return raw
}

func TestManagerLoginLogout(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, zap.NewNop())
	ctx := context.Background()

	resets := 0
	m.OnLogout(func() { resets++ })

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	s, err := m.Login(ctx, signedToken(t, exp), RoleAdmin, "root")
	require.NoError(t, err)
	assert.True(t, s.Active())
	assert.Equal(t, RoleAdmin, m.Role())
	assert.Equal(t, "admin-1", s.Subject)
	require.NotNil(t, s.Expires)
	assert.True(t, exp.Equal(*s.Expires))
	assert.False(t, s.Expired(time.Now()))

	token, _ := store.Get(ctx, KeyToken)
	assert.Equal(t, m.Token(), token)

	require.NoError(t, m.Logout(ctx))
	assert.Empty(t, m.Token())
	assert.Empty(t, m.Role())
	assert.Equal(t, 1, resets)

	token, _ = store.Get(ctx, KeyToken)
	role, _ := store.Get(ctx, KeyRole)
	assert.Empty(t, token)
	assert.Empty(t, role)
}

func TestManagerRejectsEmptyToken(t *testing.T) {
	m := NewManager(nil, nil)
	_, err := m.Login(context.Background(), "", RoleAdmin, "x")
	require.Error(t, err)
	assert.False(t, m.Current().Active())
}

func TestOpaqueTokenHasNoExpiry(t *testing.T) {
	m := NewManager(NewMemoryStore(), nil)
	s, err := m.Login(context.Background(), "opaque-token", "admin", "root")
	require.NoError(t, err)
	assert.Nil(t, s.Expires)
	assert.Equal(t, "opaque-token", m.Token())
}

func TestFileStoreSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	ctx := context.Background()

	store, err := NewFileStore(path)
	require.NoError(t, err)
	first := NewManager(store, nil)
	_, err = first.Login(ctx, "tok-1", RoleAdmin, "root")
	require.NoError(t, err)

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	second := NewManager(reopened, nil)
	s, err := second.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", s.Token)
	assert.Equal(t, RoleAdmin, s.Role)
	assert.Equal(t, "root", s.LoginID)

	require.NoError(t, second.Logout(ctx))
	s, err = NewManager(reopened, nil).Restore(ctx)
	require.NoError(t, err)
	assert.False(t, s.Active())
}

// failingStore fails Set for one key.
type failingStore struct {
	*MemoryStore
	failKey string
}

func (s *failingStore) Set(ctx context.Context, key, value string) error {
	if key == s.failKey {
		return errors.New("disk full")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func TestLoginRollsBackPartialWrite(t *testing.T) {
	ctx := context.Background()
	for _, key := range []string{KeyRole, KeyLoginID} {
		store := &failingStore{MemoryStore: NewMemoryStore(), failKey: key}
		m := NewManager(store, nil)

		_, err := m.Login(ctx, "tok-1", RoleAdmin, "root")
		require.Error(t, err, key)
		assert.False(t, m.Current().Active())

		for _, k := range []string{KeyToken, KeyRole, KeyLoginID} {
			v, _ := store.Get(ctx, k)
			assert.Empty(t, v, "%s after failing %s", k, key)
		}
		s, err := NewManager(store, nil).Restore(ctx)
		require.NoError(t, err)
		assert.False(t, s.Active())
	}
}
