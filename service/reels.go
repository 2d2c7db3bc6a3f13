package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ankh-social/ankh-backend/events"
	"github.com/ankh-social/ankh-backend/model"
)

// CreateReel publishes a reel, prepending it to the Reels collection. Reels
// record their author by display name only; there is no owner id to join or
// permission-check against.
func (s *Service) CreateReel(ctx context.Context, videoUrl, description, authorName string) (model.Reel, error) {
	newReel := model.Reel{
		Id:          uuid.New().String(),
		VideoUrl:    videoUrl,
		Description: description,
		AuthorName:  authorName,
		Likes:       0,
		Views:       0,
	}

	err := s.store.MutateReels(ctx, func(reels []model.Reel) ([]model.Reel, error) {
		return append([]model.Reel{newReel}, reels...), nil
	})
	if err != nil {
		return model.Reel{}, err
	}

	s.publish(events.TopicReels, events.Event{
		Type:     events.ReelCreated,
		EntityId: newReel.Id,
	})
	return newReel, nil
}

// ListReels returns every reel, most recent first.
func (s *Service) ListReels(ctx context.Context) ([]model.Reel, error) {
	return s.store.Reels(ctx)
}
