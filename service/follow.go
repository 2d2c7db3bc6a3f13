package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ankh-social/ankh-backend/events"
	"github.com/ankh-social/ankh-backend/model"
)

// FollowUser toggles the follow edge between actor and target: if the actor
// already follows the target, both sides of the edge are removed, otherwise
// both sides are added, within a single collection write. ErrRelationNotFound
// when either user is missing.
//
// Self-follow is deliberately not guarded; the stored behavior of the product
// allows it and adding a guard would change observable state.
func (s *Service) FollowUser(ctx context.Context, actorId, targetId string) (model.User, error) {
	var updatedActor model.User
	err := s.store.MutateUsers(ctx, func(users []model.User) ([]model.User, error) {
		actorIdx, targetIdx := -1, -1
		for i := range users {
			if users[i].Id == actorId {
				actorIdx = i
			}
			if users[i].Id == targetId {
				targetIdx = i
			}
		}
		if actorIdx == -1 || targetIdx == -1 {
			return nil, errors.Wrapf(ErrRelationNotFound, "actor %s target %s", actorId, targetId)
		}

		if users[actorIdx].IsFollowing(targetId) {
			users[actorIdx].Following = removeId(users[actorIdx].Following, targetId)
			users[targetIdx].Followers = removeId(users[targetIdx].Followers, actorId)
		} else {
			users[actorIdx].Following = append(users[actorIdx].Following, targetId)
			users[targetIdx].Followers = append(users[targetIdx].Followers, actorId)
		}

		updatedActor = users[actorIdx]
		return users, nil
	})
	if err != nil {
		return model.User{}, err
	}

	s.publish(events.TopicUsers, events.Event{
		Type:     events.UserFollowed,
		EntityId: targetId,
		ActorId:  actorId,
	})
	return updatedActor, nil
}

func removeId(ids []string, id string) []string {
	kept := ids[:0]
	for _, cur := range ids {
		if cur != id {
			kept = append(kept, cur)
		}
	}
	return kept
}
