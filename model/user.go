package model

import (
	"strings"
	"time"
)

// VerificationStatus is the lifecycle of a user's verification badge. A user
// starts at none, moves to one of the pending states by requesting a badge,
// and ends at blue/yellow (approved) or back at none (rejected).
type VerificationStatus string

const (
	VerificationNone          VerificationStatus = "none"
	VerificationPendingBlue   VerificationStatus = "pending_blue"
	VerificationPendingYellow VerificationStatus = "pending_yellow"
	VerificationBlue          VerificationStatus = "blue"
	VerificationYellow        VerificationStatus = "yellow"
)

const pendingPrefix = "pending_"

// Pending reports whether the status is awaiting an admin decision.
func (s VerificationStatus) Pending() bool {
	return strings.HasPrefix(string(s), pendingPrefix)
}

// Approved reports whether the status is a concrete badge.
func (s VerificationStatus) Approved() bool {
	return s == VerificationBlue || s == VerificationYellow
}

/*

User is a data model for an ANKH user

Id: primary key, use to identify a user
Name: display name, don't need to be unique
Email: login identity, unique across the Users collection (exact match)
Password: login credential, stored as-is
Bio: free-form profile text
AvatarUrl: user's icon URL
BirthDate: profile field, not validated
Followers: ids of users following this user
Following: ids of users this user follows
JoinedAt: time when the account is created
Verified: verification badge lifecycle, see VerificationStatus

Followers/Following are maintained pairwise by the follow operation: an edge
always appears on both sides or on neither.

*/

type User struct {
	Id        string             `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Password  string             `json:"password,omitempty"`
	Bio       string             `json:"bio,omitempty"`
	AvatarUrl string             `json:"avatarUrl,omitempty"`
	BirthDate string             `json:"birthDate"`
	Followers []string           `json:"followers"`
	Following []string           `json:"following"`
	JoinedAt  time.Time          `json:"joinedAt"`
	Verified  VerificationStatus `json:"verified,omitempty"`
}

func (u User) GetID() string   { return u.Id }
func (u User) GetName() string { return u.Name }

// IsFollowing reports whether u follows the given user id.
func (u User) IsFollowing(userId string) bool {
	for _, id := range u.Following {
		if id == userId {
			return true
		}
	}
	return false
}
