package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/estate-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".estate", "session.toml")
}

func agentSession() domain.Session {
	return domain.Session{
		Token: "token-123",
		Identity: &domain.Identity{
			ID:    "U1",
			Role:  domain.RoleAgent,
			Name:  "Vishnu",
			Email: "v@example.com",
			Phone: "+91 98765 43210",
		},
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(sessionPath(t))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, agentSession()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, agentSession(), loaded)
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(sessionPath(t))

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStoreSaveRejectsPartialSession(t *testing.T) {
	store := NewStore(sessionPath(t))
	ctx := context.Background()

	tests := []struct {
		name    string
		session domain.Session
	}{
		{name: "token without identity", session: domain.Session{Token: "token-123"}},
		{name: "identity without token", session: domain.Session{Identity: &domain.Identity{ID: "U1"}}},
		{name: "zero session", session: domain.Session{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Save(ctx, tt.session)
			assert.ErrorIs(t, err, domain.ErrPartialSession)
		})
	}

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound, "rejected saves must leave nothing on disk")
}

func TestStoreLoadHalfWrittenRecordIsAbsent(t *testing.T) {
	path := sessionPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("version = 1\ntoken = \"token-123\"\n"), 0o600))

	store := NewStore(path)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStoreClearRemovesFile(t *testing.T) {
	store := NewStore(sessionPath(t))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, agentSession()))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStoreClearIsIdempotent(t *testing.T) {
	store := NewStore(sessionPath(t))
	ctx := context.Background()

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
}

func TestStoreSaveReplacesExistingSession(t *testing.T) {
	store := NewStore(sessionPath(t))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, agentSession()))

	replacement := domain.Session{
		Token:    "token-456",
		Identity: &domain.Identity{ID: "U2", Role: domain.RoleBuyer, Name: "Asha", Email: "asha@example.com"},
	}
	require.NoError(t, store.Save(ctx, replacement))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, replacement, loaded)
}

func TestStoreSessionFilePermissions(t *testing.T) {
	path := sessionPath(t)
	store := NewStore(path)

	require.NoError(t, store.Save(context.Background(), agentSession()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())
}

func TestStoreLeavesNoTempFilesBehind(t *testing.T) {
	path := sessionPath(t)
	store := NewStore(path)

	require.NoError(t, store.Save(context.Background(), agentSession()))

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".session-*.toml.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestStoreHonoursContextCancellation(t *testing.T) {
	store := NewStore(sessionPath(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Save(ctx, agentSession()), context.Canceled)
	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Clear(ctx), context.Canceled)
}
