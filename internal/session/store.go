// Package session maps opaque cookie tokens to user ids with a fixed TTL.
//
// The board keeps ownership of session semantics here so the rest of the
// application never cares whether sessions live in a table, a JSON file or a
// map (tests). Expired entries are removed lazily on the next Resolve; there
// is no background sweep and no cross-process write discipline.
package session

import (
	"errors"
	"time"
)

// DefaultTTL applies when a store is constructed with a non-positive TTL.
const DefaultTTL = 30 * time.Minute

// ErrInvalid is returned by Resolve for absent or expired tokens.
var ErrInvalid = errors.New("session invalid or expired")

// Store is the session contract: opaque token -> user id with expiry.
type Store interface {
	// Create issues a new random token for the user, valid for the store TTL.
	Create(userID string) (string, error)
	// Resolve returns the owning user id, or ErrInvalid if the token is
	// absent or expired. An expired entry is deleted as a side effect.
	Resolve(token string) (string, error)
	// Destroy removes the token; removing an absent token is not an error.
	Destroy(token string) error
	// Extend resets the expiry to now+TTL if the token is present; no-op
	// otherwise.
	Extend(token string) error
}
