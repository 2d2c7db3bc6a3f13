package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankh-social/ankh-backend/events"
	"github.com/ankh-social/ankh-backend/model"
	"github.com/ankh-social/ankh-backend/storage"
	"github.com/ankh-social/ankh-backend/store"
)

func collectEvents(t *testing.T, ch <-chan events.Event, n int) []events.Event {
	t.Helper()
	collected := []events.Event{}
	for len(collected) < n {
		select {
		case event := <-ch:
			collected = append(collected, event)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d events", len(collected), n)
		}
	}
	return collected
}

func TestMutationsPublishEvents(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()
	svc := New(store.NewEntityStore(storage.NewMemoryStore()), NewTokenSigner("test-secret"), bus)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	postCh, err := bus.Subscribe(ctx, events.TopicPosts)
	require.Nil(t, err)

	user := mustRegister(t, svc, "Nefertari", "nefertari@ankh.io")
	post := mustCreatePost(t, svc, user.Id, "hello")
	_, err = svc.ReactToPost(ctx, post.Id, model.ReactionAnkh)
	require.Nil(t, err)
	_, err = svc.AddComment(ctx, post.Id, user.Name, "first")
	require.Nil(t, err)

	got := collectEvents(t, postCh, 3)
	assert.Equal(t, events.PostCreated, got[0].Type)
	assert.Equal(t, post.Id, got[0].EntityId)
	assert.Equal(t, events.PostReacted, got[1].Type)
	assert.Equal(t, string(model.ReactionAnkh), got[1].Detail)
	assert.Equal(t, events.PostCommented, got[2].Type)
}

func TestFollowPublishesUserEvent(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()
	svc := New(store.NewEntityStore(storage.NewMemoryStore()), NewTokenSigner("test-secret"), bus)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	userCh, err := bus.Subscribe(ctx, events.TopicUsers)
	require.Nil(t, err)

	actor := mustRegister(t, svc, "Alice", "alice@ankh.io")
	target := mustRegister(t, svc, "Bob", "bob@ankh.io")
	_, err = svc.FollowUser(ctx, actor.Id, target.Id)
	require.Nil(t, err)

	got := collectEvents(t, userCh, 1)
	assert.Equal(t, events.UserFollowed, got[0].Type)
	assert.Equal(t, target.Id, got[0].EntityId)
	assert.Equal(t, actor.Id, got[0].ActorId)
}
