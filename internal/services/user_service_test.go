package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mquintal/aitutor/internal/database/testutil"
	"github.com/mquintal/aitutor/internal/models"
	apperrors "github.com/mquintal/aitutor/pkg/errors"
)

func strptr(s string) *string { return &s }

func TestUserServiceCreateAndLookup(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	user, err := svc.Create(context.Background(), CreateUserInput{
		Username:     "alice",
		PasswordHash: "bcrypt-blob",
		Email:        strptr("Alice@Example.com"),
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "alice@example.com", *user.Email)
	require.False(t, user.IsAdmin)

	found, err := svc.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, user.ID, found.ID)

	byID, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	require.Equal(t, "alice", byID.Username)
}

func TestUserServiceLookupAbsentIsNotAnError(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	user, err := svc.GetByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	require.Nil(t, user)

	user, err = svc.GetByID(context.Background(), 999)
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestUserServiceDuplicateUsername(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateUserInput{Username: "alice", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateUserInput{Username: "alice", PasswordHash: "h2"})
	require.ErrorIs(t, err, apperrors.ErrDuplicateKey)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestUserServiceDuplicateEmail(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateUserInput{Username: "alice", PasswordHash: "h", Email: strptr("a@example.com")})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateUserInput{Username: "bob", PasswordHash: "h", Email: strptr("a@example.com")})
	require.ErrorIs(t, err, apperrors.ErrDuplicateKey)
}

func TestUserServiceAllowsMultipleUsersWithoutEmail(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateUserInput{Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateUserInput{Username: "bob", PasswordHash: "h"})
	require.NoError(t, err)
}

func TestUserServiceIsAdmin(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	admin, err := svc.Create(context.Background(), CreateUserInput{Username: "root", PasswordHash: "h", IsAdmin: true})
	require.NoError(t, err)
	student, err := svc.Create(context.Background(), CreateUserInput{Username: "student", PasswordHash: "h"})
	require.NoError(t, err)

	require.True(t, svc.IsAdmin(context.Background(), admin.ID))
	require.False(t, svc.IsAdmin(context.Background(), student.ID))
	require.False(t, svc.IsAdmin(context.Background(), 12345))
}

func TestUserServiceListNewestFirstWithoutHashes(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		user := models.User{Username: name, PasswordHash: "h", CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, db.Create(&user).Error)
	}

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, "third", users[0].Username)
	require.Equal(t, "second", users[1].Username)
	require.Equal(t, "first", users[2].Username)

	for _, u := range users {
		require.Empty(t, u.PasswordHash)
	}
}

func TestUserServiceUpdateSubscription(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	user, err := svc.Create(context.Background(), CreateUserInput{Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	expires := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.UpdateSubscription(context.Background(), user.ID, true, &expires))

	updated, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.True(t, updated.SubscriptionActive)
	require.NotNil(t, updated.SubscriptionExpires)
	require.True(t, expires.Equal(*updated.SubscriptionExpires))

	// Clearing the expiry together with deactivation overwrites both fields.
	require.NoError(t, svc.UpdateSubscription(context.Background(), user.ID, false, nil))

	updated, err = svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.False(t, updated.SubscriptionActive)
	require.Nil(t, updated.SubscriptionExpires)
}

func TestUserServiceUpdateSubscriptionUnknownIDIsNoOpSuccess(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateSubscription(context.Background(), 4242, true, nil))
}
