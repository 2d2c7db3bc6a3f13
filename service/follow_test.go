package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowUser_AddsBothSides(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	actor := mustRegister(t, svc, "Nefertari", "nefertari@ankh.io")
	target := mustRegister(t, svc, "Ramesses", "ramesses@ankh.io")

	updated, err := svc.FollowUser(ctx, actor.Id, target.Id)
	require.Nil(t, err)
	assert.Equal(t, []string{target.Id}, updated.Following)

	targetUser, err := svc.GetUser(ctx, target.Id)
	require.Nil(t, err)
	assert.Equal(t, []string{actor.Id}, targetUser.Followers)
}

// Following twice is a toggle, not an idempotent add: the second call removes
// the edge from both sides.
func TestFollowUser_Toggle(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	actor := mustRegister(t, svc, "Nefertari", "nefertari@ankh.io")
	target := mustRegister(t, svc, "Ramesses", "ramesses@ankh.io")

	_, err := svc.FollowUser(ctx, actor.Id, target.Id)
	require.Nil(t, err)
	updated, err := svc.FollowUser(ctx, actor.Id, target.Id)
	require.Nil(t, err)

	assert.Empty(t, updated.Following)
	targetUser, err := svc.GetUser(ctx, target.Id)
	require.Nil(t, err)
	assert.Empty(t, targetUser.Followers)
}

func TestFollowUser_MissingUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	actor := mustRegister(t, svc, "Nefertari", "nefertari@ankh.io")

	_, err := svc.FollowUser(ctx, actor.Id, "missing")
	assert.ErrorIs(t, err, ErrRelationNotFound)

	_, err = svc.FollowUser(ctx, "missing", actor.Id)
	assert.ErrorIs(t, err, ErrRelationNotFound)
}

// Self-follow stays unguarded on purpose; see the service doc comment.
func TestFollowUser_SelfFollowAllowed(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	actor := mustRegister(t, svc, "Nefertari", "nefertari@ankh.io")

	updated, err := svc.FollowUser(ctx, actor.Id, actor.Id)
	require.Nil(t, err)
	assert.Equal(t, []string{actor.Id}, updated.Following)
	assert.Equal(t, []string{actor.Id}, updated.Followers)
}
