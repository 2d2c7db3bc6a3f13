package store

import (
	"context"
	"sync"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"

	"github.com/ankh-social/ankh-backend/model"
	"github.com/ankh-social/ankh-backend/storage"
)

// Session is the persisted auth marker: which user is signed in on this
// instance, and with which token.
type Session struct {
	Token  string `json:"token"`
	UserId string `json:"userId"`
}

// EntityStore owns the four entity collections. Every collection is read and
// written as a whole document; every mutation is a read-modify-write cycle.
//
// All access is serialized behind one mutex. The backing store has no
// isolation of its own, so two interleaved read-modify-write cycles would
// silently drop one side's update; funnelling every cycle through a single
// owner closes that window.
type EntityStore struct {
	mu    sync.Mutex
	store storage.Store
}

func NewEntityStore(s storage.Store) *EntityStore {
	return &EntityStore{store: s}
}

// Users returns a deep copy of the Users collection in store order. Callers
// can hold or modify the result without aliasing stored state.
func (es *EntityStore) Users(ctx context.Context) ([]model.User, error) {
	es.mu.Lock()
	defer es.mu.Unlock()
	users, err := es.readUsers(ctx)
	if err != nil {
		return nil, err
	}
	return cloneSlice(users)
}

// Posts returns a deep copy of the Posts collection, most recent first.
func (es *EntityStore) Posts(ctx context.Context) ([]model.Post, error) {
	es.mu.Lock()
	defer es.mu.Unlock()
	posts, err := es.readPosts(ctx)
	if err != nil {
		return nil, err
	}
	return cloneSlice(posts)
}

// Reels returns a deep copy of the Reels collection, most recent first.
func (es *EntityStore) Reels(ctx context.Context) ([]model.Reel, error) {
	es.mu.Lock()
	defer es.mu.Unlock()
	reels, err := es.readReels(ctx)
	if err != nil {
		return nil, err
	}
	return cloneSlice(reels)
}

// MutateUsers runs fn on the current Users collection and persists whatever
// fn returns, all under the store lock. fn returning an error aborts the
// cycle without writing.
func (es *EntityStore) MutateUsers(ctx context.Context, fn func(users []model.User) ([]model.User, error)) error {
	es.mu.Lock()
	defer es.mu.Unlock()
	users, err := es.readUsers(ctx)
	if err != nil {
		return err
	}
	updated, err := fn(users)
	if err != nil {
		return err
	}
	return errors.Wrap(es.store.Write(ctx, storage.KeyUsers, updated), "failed to write users collection")
}

// MutatePosts runs fn on the current Posts collection and persists the result.
func (es *EntityStore) MutatePosts(ctx context.Context, fn func(posts []model.Post) ([]model.Post, error)) error {
	es.mu.Lock()
	defer es.mu.Unlock()
	posts, err := es.readPosts(ctx)
	if err != nil {
		return err
	}
	updated, err := fn(posts)
	if err != nil {
		return err
	}
	return errors.Wrap(es.store.Write(ctx, storage.KeyPosts, updated), "failed to write posts collection")
}

// MutateReels runs fn on the current Reels collection and persists the result.
func (es *EntityStore) MutateReels(ctx context.Context, fn func(reels []model.Reel) ([]model.Reel, error)) error {
	es.mu.Lock()
	defer es.mu.Unlock()
	reels, err := es.readReels(ctx)
	if err != nil {
		return err
	}
	updated, err := fn(reels)
	if err != nil {
		return err
	}
	return errors.Wrap(es.store.Write(ctx, storage.KeyReels, updated), "failed to write reels collection")
}

// Session returns the persisted auth marker, if a user is signed in.
func (es *EntityStore) Session(ctx context.Context) (Session, bool, error) {
	es.mu.Lock()
	defer es.mu.Unlock()
	var session Session
	found, err := es.store.Read(ctx, storage.KeyAuth, &session)
	if err != nil {
		return Session{}, false, errors.Wrap(err, "failed to read session marker")
	}
	return session, found && session.Token != "", nil
}

// SaveSession persists the auth marker for the signed-in user.
func (es *EntityStore) SaveSession(ctx context.Context, session Session) error {
	es.mu.Lock()
	defer es.mu.Unlock()
	return errors.Wrap(es.store.Write(ctx, storage.KeyAuth, session), "failed to write session marker")
}

// ClearSession removes the auth marker by overwriting it with the zero value.
func (es *EntityStore) ClearSession(ctx context.Context) error {
	return es.SaveSession(ctx, Session{})
}

// read helpers assume the caller holds es.mu.

func (es *EntityStore) readUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	if _, err := es.store.Read(ctx, storage.KeyUsers, &users); err != nil {
		return nil, errors.Wrap(err, "failed to read users collection")
	}
	return users, nil
}

func (es *EntityStore) readPosts(ctx context.Context) ([]model.Post, error) {
	posts := []model.Post{}
	if _, err := es.store.Read(ctx, storage.KeyPosts, &posts); err != nil {
		return nil, errors.Wrap(err, "failed to read posts collection")
	}
	return posts, nil
}

func (es *EntityStore) readReels(ctx context.Context) ([]model.Reel, error) {
	reels := []model.Reel{}
	if _, err := es.store.Read(ctx, storage.KeyReels, &reels); err != nil {
		return nil, errors.Wrap(err, "failed to read reels collection")
	}
	return reels, nil
}

func cloneSlice[T any](src []T) ([]T, error) {
	dst := []T{}
	if err := copier.CopyWithOption(&dst, &src, copier.Option{DeepCopy: true}); err != nil {
		return nil, errors.Wrap(err, "failed to clone collection")
	}
	return dst, nil
}
