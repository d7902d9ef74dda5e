package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rockfall-console-backend/internal/kvstore"
	"rockfall-console-backend/internal/model"
)

func TestStaticVerifier(t *testing.T) {
	v := NewStaticVerifier("admintime")

	assert.True(t, v.Verify("admintime"))
	assert.False(t, v.Verify("Admintime"), "comparison is case-sensitive")
	assert.False(t, v.Verify(""))
	assert.False(t, v.Verify("admintime "))
}

func TestBcryptVerifier(t *testing.T) {
	hash, err := HashSecret("admintime")
	require.NoError(t, err)

	v := NewBcryptVerifier(hash)
	assert.True(t, v.Verify("admintime"))
	assert.False(t, v.Verify("wrong"))
}

func newSessionStore(t *testing.T) kvstore.Store {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.KVEntry{}))
	return kvstore.NewGormStore(db)
}

func TestSession_LoginLogout(t *testing.T) {
	store := newSessionStore(t)
	s := NewSession("RockfallPrediction@gmail.com", "admin123", store)
	ctx := context.Background()

	err := s.Login(ctx, "RockfallPrediction@gmail.com", "nope")
	var aerr *AuthError
	require.ErrorAs(t, err, &aerr)

	loggedIn, err := s.LoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn, "a failed login must not set the flag")

	require.NoError(t, s.Login(ctx, "RockfallPrediction@gmail.com", "admin123"))
	loggedIn, err = s.LoggedIn(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)

	email, found, err := store.Get(ctx, kvstore.KeyUserEmail)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "RockfallPrediction@gmail.com", email)

	require.NoError(t, s.Logout(ctx))
	loggedIn, err = s.LoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)
}
