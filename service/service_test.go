package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankh-social/ankh-backend/model"
	"github.com/ankh-social/ankh-backend/storage"
	"github.com/ankh-social/ankh-backend/store"
)

func newTestService() *Service {
	return New(
		store.NewEntityStore(storage.NewMemoryStore()),
		NewTokenSigner("test-secret"),
		nil,
	)
}

func mustRegister(t *testing.T, svc *Service, name, email string) model.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		Name:      name,
		Email:     email,
		Password:  "password-1",
		BirthDate: "2000-01-01",
	})
	require.Nil(t, err)
	return user
}

func TestRegister(t *testing.T) {
	svc := newTestService()
	user := mustRegister(t, svc, "Nefertari", "nefertari@ankh.io")

	assert.NotEmpty(t, user.Id)
	assert.Equal(t, model.VerificationNone, user.Verified)
	assert.Equal(t, []string{}, user.Followers)
	assert.Equal(t, []string{}, user.Following)
	assert.False(t, user.JoinedAt.IsZero())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	mustRegister(t, svc, "Nefertari", "nefertari@ankh.io")

	_, err := svc.Register(ctx, RegisterInput{Name: "Imposter", Email: "nefertari@ankh.io"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// The collection gained exactly one entry.
	users, err := svc.store.Users(ctx)
	require.Nil(t, err)
	assert.Len(t, users, 1)
}

func TestRegister_EmailMatchIsCaseSensitive(t *testing.T) {
	svc := newTestService()
	mustRegister(t, svc, "Nefertari", "nefertari@ankh.io")

	// Exact-match-only duplicate detection: a different casing registers.
	_, err := svc.Register(context.Background(), RegisterInput{
		Name:  "Other",
		Email: "Nefertari@ankh.io",
	})
	assert.Nil(t, err)
}

func TestLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	registered := mustRegister(t, svc, "Nefertari", "nefertari@ankh.io")

	token, user, err := svc.Login(ctx, "nefertari@ankh.io", "password-1")
	require.Nil(t, err)
	assert.Equal(t, registered.Id, user.Id)

	claims, err := svc.tokens.Parse(token)
	require.Nil(t, err)
	assert.Equal(t, registered.Id, claims.UserID)

	session, active, err := svc.CurrentSession(ctx)
	require.Nil(t, err)
	assert.True(t, active)
	assert.Equal(t, registered.Id, session.UserId)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService()
	_, _, err := svc.Login(context.Background(), "nobody@ankh.io", "password-1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService()
	mustRegister(t, svc, "Nefertari", "nefertari@ankh.io")

	_, _, err := svc.Login(context.Background(), "nefertari@ankh.io", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestLogout(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	mustRegister(t, svc, "Nefertari", "nefertari@ankh.io")

	_, _, err := svc.Login(ctx, "nefertari@ankh.io", "password-1")
	require.Nil(t, err)
	require.Nil(t, svc.Logout(ctx))

	_, active, err := svc.CurrentSession(ctx)
	require.Nil(t, err)
	assert.False(t, active)
}

func TestGetUser(t *testing.T) {
	svc := newTestService()
	registered := mustRegister(t, svc, "Nefertari", "nefertari@ankh.io")

	user, err := svc.GetUser(context.Background(), registered.Id)
	require.Nil(t, err)
	assert.Equal(t, "Nefertari", user.Name)

	_, err = svc.GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile_ShallowMerge(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	registered := mustRegister(t, svc, "Nefertari", "nefertari@ankh.io")

	bio := "keeper of the river"
	updated, err := svc.UpdateProfile(ctx, registered.Id, ProfileUpdate{Bio: &bio})
	require.Nil(t, err)
	assert.Equal(t, "keeper of the river", updated.Bio)

	// Unsupplied fields stay untouched.
	avatar := "https://ankh.io/nefertari.png"
	updated, err = svc.UpdateProfile(ctx, registered.Id, ProfileUpdate{AvatarUrl: &avatar})
	require.Nil(t, err)
	assert.Equal(t, "keeper of the river", updated.Bio)
	assert.Equal(t, avatar, updated.AvatarUrl)
}

func TestUpdateProfile_UserNotFound(t *testing.T) {
	svc := newTestService()
	bio := "ghost"
	_, err := svc.UpdateProfile(context.Background(), "missing", ProfileUpdate{Bio: &bio})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
