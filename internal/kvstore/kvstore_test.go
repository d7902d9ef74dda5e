package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rockfall-console-backend/internal/model"
)

func newTestStore(t *testing.T) Store {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.KVEntry{}))
	return NewGormStore(db)
}

func TestStore_SetGetDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, found, err := s.Get(ctx, KeyIsLoggedIn)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, KeyIsLoggedIn, "true"))

	val, found, err := s.Get(ctx, KeyIsLoggedIn)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "true", val)

	// Last write wins.
	require.NoError(t, s.Set(ctx, KeyIsLoggedIn, "false"))
	val, _, err = s.Get(ctx, KeyIsLoggedIn)
	require.NoError(t, err)
	assert.Equal(t, "false", val)

	require.NoError(t, s.Delete(ctx, KeyIsLoggedIn))
	_, found, err = s.Get(ctx, KeyIsLoggedIn)
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting an absent slot is fine.
	require.NoError(t, s.Delete(ctx, KeyIsLoggedIn))
}

func TestStore_JSONRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	profile := model.DefaultProfile()
	profile.Location = "Sudbury, Canada"
	require.NoError(t, s.SetJSON(ctx, KeyUserProfile, profile))

	var got model.UserProfile
	found, err := s.GetJSON(ctx, KeyUserProfile, &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, profile, got)

	var missing model.UserProfile
	found, err = s.GetJSON(ctx, "noSuchSlot", &missing)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_MalformedJSON(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyUserProfile, "{not json"))

	var got model.UserProfile
	found, err := s.GetJSON(ctx, KeyUserProfile, &got)
	assert.True(t, found)
	assert.Error(t, err)
}
