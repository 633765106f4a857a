// Package journal provides append-only persistence of feature registry
// transitions. The registry core is in-memory; a journal store is the
// boundary a durability layer plugs into. The registry only ever
// appends — replaying a journal back into a registry is the consumer's
// concern, not the core's.
package journal

import (
	"errors"
	"time"
)

// Ops recorded in the journal.
const (
	// OpRegister records a new feature version registration.
	OpRegister = "register"

	// OpDeprecate records deprecation of a feature's latest version.
	OpDeprecate = "deprecate"
)

// Entry is one recorded registry transition.
type Entry struct {
	// Name is the feature name.
	Name string
	// Entity is the feature's entity.
	Entity string
	// Version is the spec version the transition applies to.
	Version string
	// Op is OpRegister or OpDeprecate.
	Op string
	// Timestamp is when the transition happened, in UTC.
	Timestamp time.Time
	// Spec is the JSON-encoded spec snapshot at transition time.
	Spec []byte
}

// Store persists registry transitions.
// Implementations must be safe for concurrent use.
type Store interface {
	// Append records a transition. Entries are never overwritten;
	// repeated transitions for the same (name, entity, version)
	// accumulate in order.
	Append(e Entry) error

	// List returns all entries for a feature key in append order.
	// Returns an empty slice (not an error) if the key has no entries.
	List(name, entity string) ([]Entry, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for journal operations.
var (
	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("journal store closed")
)
