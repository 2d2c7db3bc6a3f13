package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankh-social/ankh-backend/model"
)

var testBootstrap = BootstrapConfig{
	AdminEmail:    "admin@ankh.io",
	AdminPassword: "operator-password",
	AdminName:     "Operator",
	AdminBio:      "keeper of the network",
}

func TestBootstrap_SeedsOperator(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	require.Nil(t, svc.Bootstrap(ctx, testBootstrap))

	operator, err := svc.GetUser(ctx, "admin")
	require.Nil(t, err)
	assert.Equal(t, model.VerificationYellow, operator.Verified)
	assert.Equal(t, "admin@ankh.io", operator.Email)
}

// No magic-credential path exists in login: without the seed, the operator
// email is just an unknown user.
func TestLogin_OperatorRequiresBootstrap(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, _, err := svc.Login(ctx, testBootstrap.AdminEmail, testBootstrap.AdminPassword)
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.Nil(t, svc.Bootstrap(ctx, testBootstrap))

	_, operator, err := svc.Login(ctx, testBootstrap.AdminEmail, testBootstrap.AdminPassword)
	require.Nil(t, err)
	assert.Equal(t, "admin", operator.Id)
}

func TestBootstrap_Idempotent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	require.Nil(t, svc.Bootstrap(ctx, testBootstrap))

	// Profile edits survive a later re-seed.
	bio := "rewritten by the operator"
	_, err := svc.UpdateProfile(ctx, "admin", ProfileUpdate{Bio: &bio})
	require.Nil(t, err)

	require.Nil(t, svc.Bootstrap(ctx, testBootstrap))

	users, err := svc.store.Users(ctx)
	require.Nil(t, err)
	assert.Len(t, users, 1)
	operator, err := svc.GetUser(ctx, "admin")
	require.Nil(t, err)
	assert.Equal(t, "rewritten by the operator", operator.Bio)
}

func TestBootstrapConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("ANKH_ADMIN_EMAIL", "")
	t.Setenv("ANKH_ADMIN_PASSWORD", "")
	t.Setenv("ANKH_ADMIN_NAME", "")
	t.Setenv("ANKH_ADMIN_BIO", "")

	cfg := BootstrapConfigFromEnv()
	assert.Equal(t, "admin@ankh.io", cfg.AdminEmail)
	assert.NotEmpty(t, cfg.AdminPassword)
	assert.NotEmpty(t, cfg.AdminName)
}

func TestBootstrapConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("ANKH_ADMIN_EMAIL", "root@example.com")
	t.Setenv("ANKH_ADMIN_PASSWORD", "hunter2")

	cfg := BootstrapConfigFromEnv()
	assert.Equal(t, "root@example.com", cfg.AdminEmail)
	assert.Equal(t, "hunter2", cfg.AdminPassword)
}
