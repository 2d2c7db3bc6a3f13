package service

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/ankh-social/ankh-backend/events"
	"github.com/ankh-social/ankh-backend/model"
	Logger "github.com/ankh-social/ankh-backend/utils/log"
)

// VerificationKind is the badge a user may request.
type VerificationKind string

const (
	VerificationKindBlue   VerificationKind = "blue"
	VerificationKindYellow VerificationKind = "yellow"
)

// Decision is an admin ruling on a pending verification.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// RequestVerification puts the user into the pending state for kind. A
// repeated request, or a request from an already-verified user, silently
// overwrites the prior status; the workflow has no guard against either.
func (s *Service) RequestVerification(ctx context.Context, userId string, kind VerificationKind) (model.User, error) {
	status := model.VerificationPendingBlue
	if kind == VerificationKindYellow {
		status = model.VerificationPendingYellow
	}
	return s.UpdateProfile(ctx, userId, ProfileUpdate{Verified: &status})
}

// PendingVerifications returns every user awaiting a decision, in store
// order. Store order is insertion order of the Users collection, not
// submission order of the requests.
func (s *Service) PendingVerifications(ctx context.Context) ([]model.User, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	pending := []model.User{}
	for _, u := range users {
		if u.Verified.Pending() {
			pending = append(pending, u)
		}
	}
	return pending, nil
}

// ResolveVerification applies an admin decision. Approving maps
// pending_yellow to yellow and anything else to blue; rejecting resets to
// none. An unknown userId is a silent no-op: admin actions against stale
// data are inert, not errors.
func (s *Service) ResolveVerification(ctx context.Context, userId string, decision Decision) error {
	resolved := false
	err := s.store.MutateUsers(ctx, func(users []model.User) ([]model.User, error) {
		for i := range users {
			if users[i].Id != userId {
				continue
			}
			if decision == DecisionApprove {
				if users[i].Verified == model.VerificationPendingYellow {
					users[i].Verified = model.VerificationYellow
				} else {
					users[i].Verified = model.VerificationBlue
				}
			} else {
				users[i].Verified = model.VerificationNone
			}
			resolved = true
			return users, nil
		}
		return nil, errNoChange
	})
	if errors.Is(err, errNoChange) {
		Logger.LogV2.Info(fmt.Sprintf("verification decision for unknown user %s ignored", userId))
		return nil
	}
	if err != nil {
		return err
	}

	if resolved {
		s.publish(events.TopicUsers, events.Event{
			Type:     events.VerificationResolved,
			EntityId: userId,
			Detail:   string(decision),
		})
	}
	return nil
}
