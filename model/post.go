package model

import (
	"time"
)

// ReactionKind is one of the fixed reaction buttons on a post.
type ReactionKind string

const (
	ReactionAnkh  ReactionKind = "ankh"
	ReactionHeart ReactionKind = "heart"
	ReactionWow   ReactionKind = "wow"
	ReactionHaha  ReactionKind = "haha"
	ReactionSad   ReactionKind = "sad"
)

// ReactionKinds lists every reaction kind in display order.
var ReactionKinds = []ReactionKind{
	ReactionAnkh,
	ReactionHeart,
	ReactionWow,
	ReactionHaha,
	ReactionSad,
}

// NewReactionTally returns a tally with every kind present and zeroed. A post
// always carries the full kind set so counters never need lazy insertion.
func NewReactionTally() map[ReactionKind]int {
	tally := make(map[ReactionKind]int, len(ReactionKinds))
	for _, kind := range ReactionKinds {
		tally[kind] = 0
	}
	return tally
}

/*

Comment is a single comment embedded in a post

Id: primary key within the owning post's comment sequence
AuthorName: display name frozen at creation time, not a user id
Text: comment body
CreatedAt: time when the comment is appended

Comments are append-only and never resolve back to a live user.

*/

type Comment struct {
	Id         string    `json:"id"`
	AuthorName string    `json:"authorName"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

/*

Post is a data model for a feed post

Id: primary key, use to identify a post
UserId: id of the owning user
AuthorName: owner's display name frozen at creation time
Content: post body text
ImageUrl: optional image attachment reference
VideoUrl: optional video attachment reference
Likes: legacy counter kept for layout compatibility, no operation mutates it
Reactions: counter per reaction kind, always the full kind set
Views: raw impression counter, incremented on every render with no dedup
Comments: append-only embedded comment sequence
CreatedAt: time when the post is published

AuthorVerified is filled at read time from the owner's current record and is
never persisted; it reflects live status even though AuthorName is frozen.

The Posts collection is ordered most-recent-first: creation prepends, and no
reader sorts. Posts are never edited or deleted.

*/

type Post struct {
	Id             string               `json:"id"`
	UserId         string               `json:"userId"`
	AuthorName     string               `json:"authorName"`
	Content        string               `json:"content"`
	ImageUrl       string               `json:"imageUrl,omitempty"`
	VideoUrl       string               `json:"videoUrl,omitempty"`
	Likes          int                  `json:"likes"`
	Reactions      map[ReactionKind]int `json:"reactions"`
	Views          int                  `json:"views"`
	Comments       []Comment            `json:"comments"`
	CreatedAt      time.Time            `json:"createdAt"`
	AuthorVerified VerificationStatus   `json:"authorVerified,omitempty"`
}

func (p Post) GetID() string { return p.Id }

// TotalReactions is the sum over every reaction kind.
func (p Post) TotalReactions() int {
	total := 0
	for _, count := range p.Reactions {
		total += count
	}
	return total
}
