package storage

import "context"

// Storage keys for the four top-level documents. Each key holds one whole
// JSON document: a collection array, or the session marker object.
const (
	KeyUsers = "ankh_users"
	KeyPosts = "ankh_posts"
	KeyReels = "ankh_reels"
	KeyAuth  = "ankh_auth"
)

// Store is a whole-document key-value adapter. Read decodes the document
// stored under key into out and reports whether a usable document was found;
// a missing key and an undecodable document both report found=false, leaving
// out untouched so the caller falls back to its default. Write serializes
// value and replaces whatever was stored under key.
//
// A Store makes no atomicity promise beyond the single key: callers that
// read-modify-write must serialize access themselves.
type Store interface {
	Read(ctx context.Context, key string, out interface{}) (bool, error)
	Write(ctx context.Context, key string, value interface{}) error
}
