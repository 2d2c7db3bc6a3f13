package service

import "github.com/pkg/errors"

// Error taxonomy of the service layer. Every failure an operation can report
// wraps one of these sentinels; callers match with errors.Is.
var (
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidCredential = errors.New("wrong password")
	ErrPostNotFound      = errors.New("post not found")
	ErrRelationNotFound  = errors.New("user in follow relation not found")
)

// errNoChange aborts a mutate cycle without writing, for operations whose
// policy is a silent no-op rather than a caller-visible failure.
var errNoChange = errors.New("no change")
