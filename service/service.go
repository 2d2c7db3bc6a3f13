package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ankh-social/ankh-backend/events"
	"github.com/ankh-social/ankh-backend/model"
	"github.com/ankh-social/ankh-backend/store"
	Logger "github.com/ankh-social/ankh-backend/utils/log"
)

// Service is the in-process backend facade. It owns no entity state of its
// own: every operation is one read-modify-write cycle against the entity
// store, mirroring what a request handler would do against a real database.
//
// No operation checks authorization. Any caller can mutate any entity by
// supplying its id; this boundary is where an access-control layer would be
// inserted without touching call sites.
type Service struct {
	store  *store.EntityStore
	tokens *TokenSigner
	bus    *events.Bus
}

// New wires a Service. bus may be nil to disable event publication.
func New(es *store.EntityStore, tokens *TokenSigner, bus *events.Bus) *Service {
	return &Service{store: es, tokens: tokens, bus: bus}
}

// RegisterInput is the profile supplied at signup.
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	BirthDate string
}

// Register creates a new account. Fails with ErrDuplicateEmail when another
// user already holds the exact same email (case-sensitive). No session is
// established; the caller logs in separately.
func (s *Service) Register(ctx context.Context, input RegisterInput) (model.User, error) {
	newUser := model.User{
		Id:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  input.Password,
		BirthDate: input.BirthDate,
		Followers: []string{},
		Following: []string{},
		JoinedAt:  time.Now(),
		Verified:  model.VerificationNone,
	}

	err := s.store.MutateUsers(ctx, func(users []model.User) ([]model.User, error) {
		for _, u := range users {
			if u.Email == input.Email {
				return nil, errors.Wrapf(ErrDuplicateEmail, "email %s", input.Email)
			}
		}
		return append(users, newUser), nil
	})
	if err != nil {
		return model.User{}, err
	}

	Logger.LogV2.Info(fmt.Sprintf("registered user %s", newUser.Id))
	return newUser, nil
}

// Login checks credentials and returns a session token with the matched
// user. ErrUserNotFound when no user holds email, ErrInvalidCredential on a
// password mismatch. The session marker is persisted so the instance stays
// signed in across restarts.
func (s *Service) Login(ctx context.Context, email, password string) (string, model.User, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return "", model.User{}, err
	}

	var matched *model.User
	for i := range users {
		if users[i].Email == email {
			matched = &users[i]
			break
		}
	}
	if matched == nil {
		return "", model.User{}, errors.Wrapf(ErrUserNotFound, "email %s", email)
	}
	if matched.Password != password {
		return "", model.User{}, errors.Wrapf(ErrInvalidCredential, "user %s", matched.Id)
	}

	token, err := s.tokens.Sign(matched.Id)
	if err != nil {
		return "", model.User{}, err
	}
	if err := s.store.SaveSession(ctx, store.Session{Token: token, UserId: matched.Id}); err != nil {
		return "", model.User{}, err
	}

	return token, *matched, nil
}

// Logout clears the persisted session marker.
func (s *Service) Logout(ctx context.Context) error {
	return s.store.ClearSession(ctx)
}

// CurrentSession returns the persisted auth marker, if any.
func (s *Service) CurrentSession(ctx context.Context) (store.Session, bool, error) {
	return s.store.Session(ctx)
}

// GetUser looks up a single user by id.
func (s *Service) GetUser(ctx context.Context, userId string) (model.User, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.Id == userId {
			return u, nil
		}
	}
	return model.User{}, errors.Wrapf(ErrUserNotFound, "id %s", userId)
}

// ProfileUpdate carries the fields a profile edit may change. Nil fields are
// left untouched (shallow merge).
type ProfileUpdate struct {
	Bio       *string
	AvatarUrl *string
	Verified  *model.VerificationStatus
}

// UpdateProfile merges update into the stored user and returns the updated
// record. ErrUserNotFound when userId does not exist.
func (s *Service) UpdateProfile(ctx context.Context, userId string, update ProfileUpdate) (model.User, error) {
	var updated model.User
	err := s.store.MutateUsers(ctx, func(users []model.User) ([]model.User, error) {
		for i := range users {
			if users[i].Id != userId {
				continue
			}
			if update.Bio != nil {
				users[i].Bio = *update.Bio
			}
			if update.AvatarUrl != nil {
				users[i].AvatarUrl = *update.AvatarUrl
			}
			if update.Verified != nil {
				users[i].Verified = *update.Verified
			}
			updated = users[i]
			return users, nil
		}
		return nil, errors.Wrapf(ErrUserNotFound, "id %s", userId)
	})
	if err != nil {
		return model.User{}, err
	}
	return updated, nil
}

func (s *Service) publish(topic string, event events.Event) {
	if s.bus != nil {
		s.bus.Publish(topic, event)
	}
}
