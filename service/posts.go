package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ankh-social/ankh-backend/events"
	"github.com/ankh-social/ankh-backend/model"
	Logger "github.com/ankh-social/ankh-backend/utils/log"
)

// CreatePostInput is the content supplied when publishing a post.
type CreatePostInput struct {
	UserId     string
	AuthorName string
	Content    string
	ImageUrl   string
	VideoUrl   string
}

// CreatePost publishes a post with a zeroed reaction tally, no views and no
// comments, prepending it to the Posts collection. Prepend-on-create is the
// only ordering mechanism: every reader relies on the collection staying
// most-recent-first.
func (s *Service) CreatePost(ctx context.Context, input CreatePostInput) (model.Post, error) {
	newPost := model.Post{
		Id:         uuid.New().String(),
		UserId:     input.UserId,
		AuthorName: input.AuthorName,
		Content:    input.Content,
		ImageUrl:   input.ImageUrl,
		VideoUrl:   input.VideoUrl,
		Reactions:  model.NewReactionTally(),
		Views:      0,
		Comments:   []model.Comment{},
		CreatedAt:  time.Now(),
	}

	err := s.store.MutatePosts(ctx, func(posts []model.Post) ([]model.Post, error) {
		return append([]model.Post{newPost}, posts...), nil
	})
	if err != nil {
		return model.Post{}, err
	}

	s.publish(events.TopicPosts, events.Event{
		Type:     events.PostCreated,
		EntityId: newPost.Id,
		ActorId:  input.UserId,
	})
	return newPost, nil
}

// ListPosts returns every post, most recent first, with AuthorVerified
// populated from the owning user's current status. The author name is frozen
// at creation time but the badge is live.
func (s *Service) ListPosts(ctx context.Context) ([]model.Post, error) {
	posts, err := s.store.Posts(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}

	verifiedById := make(map[string]model.VerificationStatus, len(users))
	for _, u := range users {
		verifiedById[u.Id] = u.Verified
	}
	for i := range posts {
		status, ok := verifiedById[posts[i].UserId]
		if !ok || status == "" {
			status = model.VerificationNone
		}
		posts[i].AuthorVerified = status
	}
	return posts, nil
}

// ListUserPosts is ListPosts filtered to a single owner.
func (s *Service) ListUserPosts(ctx context.Context, userId string) ([]model.Post, error) {
	posts, err := s.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	owned := []model.Post{}
	for _, p := range posts {
		if p.UserId == userId {
			owned = append(owned, p)
		}
	}
	return owned, nil
}

// ReactToPost increments exactly one reaction counter by one and returns the
// updated post. There is no undo and no per-user dedup: every call adds one,
// however often the same caller repeats it. ErrPostNotFound when postId is
// unknown.
func (s *Service) ReactToPost(ctx context.Context, postId string, kind model.ReactionKind) (model.Post, error) {
	var updated model.Post
	err := s.store.MutatePosts(ctx, func(posts []model.Post) ([]model.Post, error) {
		for i := range posts {
			if posts[i].Id != postId {
				continue
			}
			if posts[i].Reactions == nil {
				posts[i].Reactions = model.NewReactionTally()
			}
			posts[i].Reactions[kind]++
			updated = posts[i]
			return posts, nil
		}
		return nil, errors.Wrapf(ErrPostNotFound, "id %s", postId)
	})
	if err != nil {
		return model.Post{}, err
	}

	s.publish(events.TopicPosts, events.Event{
		Type:     events.PostReacted,
		EntityId: postId,
		Detail:   string(kind),
	})
	return updated, nil
}

// IncrementPostView bumps the raw impression counter. Unknown ids are a
// silent no-op, and repeated views from the same viewer all count.
func (s *Service) IncrementPostView(ctx context.Context, postId string) error {
	err := s.store.MutatePosts(ctx, func(posts []model.Post) ([]model.Post, error) {
		for i := range posts {
			if posts[i].Id == postId {
				posts[i].Views++
				return posts, nil
			}
		}
		return nil, errNoChange
	})
	if errors.Is(err, errNoChange) {
		Logger.LogV2.Debug(fmt.Sprintf("view on unknown post %s ignored", postId))
		return nil
	}
	return err
}

// AddComment appends a comment with a fresh id and timestamp to the post's
// comment sequence. The author is recorded by display name only and cannot
// be resolved back to a user. ErrPostNotFound when postId is unknown.
func (s *Service) AddComment(ctx context.Context, postId, authorName, text string) (model.Comment, error) {
	newComment := model.Comment{
		Id:         uuid.New().String(),
		AuthorName: authorName,
		Text:       text,
		CreatedAt:  time.Now(),
	}

	err := s.store.MutatePosts(ctx, func(posts []model.Post) ([]model.Post, error) {
		for i := range posts {
			if posts[i].Id == postId {
				posts[i].Comments = append(posts[i].Comments, newComment)
				return posts, nil
			}
		}
		return nil, errors.Wrapf(ErrPostNotFound, "id %s", postId)
	})
	if err != nil {
		return model.Comment{}, err
	}

	s.publish(events.TopicPosts, events.Event{
		Type:     events.PostCommented,
		EntityId: postId,
	})
	return newComment, nil
}
