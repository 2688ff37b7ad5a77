package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airxelerate/flightboard/internal/hash"
	"github.com/airxelerate/flightboard/internal/token"
)

func TestUserRegister(t *testing.T) {
	svc := &UserService{DB: InitTestDB(t)}
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "Secret123", token.RoleUser)
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, "USER", user.Role)
	assert.True(t, user.Enabled)
	assert.NotEqual(t, "Secret123", user.PasswordHash)
	assert.True(t, hash.CheckPassword(user.PasswordHash, "Secret123"))
}

func TestUserRegisterDuplicate(t *testing.T) {
	svc := &UserService{DB: InitTestDB(t)}
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "Secret123", token.RoleUser)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "Other456", token.RoleAdmin)
	require.ErrorIs(t, err, ErrUserExists)
}

func TestUserGetByIDAndUsername(t *testing.T) {
	svc := &UserService{DB: InitTestDB(t)}
	ctx := context.Background()

	created, err := svc.Register(ctx, "alice", "Secret123", token.RoleAdmin)
	require.NoError(t, err)

	byID, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = svc.GetByID(ctx, created.ID+100)
	require.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.GetByUsername(ctx, "bob")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserList(t *testing.T) {
	svc := &UserService{DB: InitTestDB(t)}
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "Secret123", token.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.Register(ctx, "bob", "Secret123", token.RoleUser)
	require.NoError(t, err)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}
