package model

/*

Reel is a data model for a short video reel

Id: primary key, use to identify a reel
VideoUrl: video asset reference
Description: free-form caption
AuthorName: display name only, no user id linkage
Likes: like counter, persisted but not mutated by any service operation
Views: raw impression counter

Reels carry no owner id, so they cannot be permission-checked or joined back
to a user. The Reels collection is ordered most-recent-first.

*/

type Reel struct {
	Id          string `json:"id"`
	VideoUrl    string `json:"videoUrl"`
	Description string `json:"description"`
	AuthorName  string `json:"authorName"`
	Likes       int    `json:"likes"`
	Views       int    `json:"views"`
}

func (r Reel) GetID() string { return r.Id }
