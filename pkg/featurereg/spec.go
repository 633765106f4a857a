package featurereg

import "time"

// KeySet is a set of feature keys. It is the dependency representation
// on specs and in the dependency graph. The zero value is not usable;
// construct with NewKeySet.
type KeySet map[Key]struct{}

// NewKeySet builds a set from the given keys.
func NewKeySet(keys ...Key) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Add inserts a key into the set.
func (s KeySet) Add(k Key) {
	s[k] = struct{}{}
}

// Has reports whether the set contains k.
func (s KeySet) Has(k Key) bool {
	_, ok := s[k]
	return ok
}

// Len returns the number of keys in the set.
func (s KeySet) Len() int {
	return len(s)
}

// Keys returns the set's members in unspecified order.
func (s KeySet) Keys() []Key {
	keys := make([]Key, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}

// Clone returns an independent copy of the set. Clone of a nil set
// returns an empty, non-nil set.
func (s KeySet) Clone() KeySet {
	out := make(KeySet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// Spec is one versioned, registered instance of a feature contract.
// Specs are minted only by Registry.Register and are never deleted;
// deprecated specs remain in the store as audit records.
//
// Public Spec values are snapshots: the registry hands out copies with
// cloned dependency sets, so holding a Spec never shares mutable state
// with the registry. The two lifecycle flags change only through
// Registry.Deprecate; everything else is immutable after creation.
type Spec struct {
	// Key is the feature's version-independent identity.
	Key Key

	// Metadata is the contract this version was registered under.
	Metadata Metadata

	// Version is an opaque token unique per (Key, Version) for the
	// lifetime of the registry.
	Version string

	// CreatedAt is when the spec was registered, in UTC.
	CreatedAt time.Time

	// Dependencies are the keys this feature declares as inputs. They
	// are recorded verbatim; a dependency need not itself be
	// registered, and cycles are not detected.
	Dependencies KeySet

	// IsActive is true until the spec's version is deprecated.
	// Multiple historical specs may remain active without being the
	// latest; latest-ness is tracked by the registry's index, not here.
	IsActive bool

	// IsDeprecated is true once the spec's version has been deprecated.
	IsDeprecated bool
}

// featureSpec is the registry's internal mutable record backing a Spec.
type featureSpec struct {
	key          Key
	metadata     Metadata
	version      string
	createdAt    time.Time
	dependencies KeySet
	isActive     bool
	isDeprecated bool
}

// snapshot returns a public copy with an independent dependency set.
func (s *featureSpec) snapshot() Spec {
	return Spec{
		Key:          s.key,
		Metadata:     s.metadata,
		Version:      s.version,
		CreatedAt:    s.createdAt,
		Dependencies: s.dependencies.Clone(),
		IsActive:     s.isActive,
		IsDeprecated: s.isDeprecated,
	}
}
