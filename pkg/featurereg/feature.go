package featurereg

import (
	"fmt"
	"time"
)

// Key is the version-independent identity of a feature: what it is
// named and which entity it is computed for. Key is a comparable value
// type; two keys with equal fields are interchangeable and map-key safe.
type Key struct {
	Name   string `json:"name" yaml:"name"`
	Entity string `json:"entity" yaml:"entity"`
}

// String returns the key in "name@entity" form.
func (k Key) String() string {
	return k.Name + "@" + k.Entity
}

// Metadata describes a feature at the schema and governance level.
// It carries no data, only the contract: a stable name, the entity it
// belongs to, its value type, and who owns it. Metadata is immutable
// after construction; the registry applies versioning on top of it.
type Metadata struct {
	// Name uniquely identifies the feature (e.g. "user_7d_spend").
	Name string

	// Entity is the subject the feature is computed for (e.g. "user").
	Entity string

	// ValueType is the declared type of computed values.
	ValueType ValueType

	// Description explains what the feature means.
	Description string

	// Owner is the team or person responsible for the feature.
	Owner string
}

// Key derives the feature's identity from its metadata.
func (m Metadata) Key() Key {
	return Key{Name: m.Name, Entity: m.Entity}
}

// Signature returns the stable descriptor for this contract.
func (m Metadata) Signature() Signature {
	return Signature{
		Name:      m.Name,
		Entity:    m.Entity,
		ValueType: m.ValueType.String(),
	}
}

// Signature is a stable, order-independent descriptor of a feature
// contract. It is what the registry and any downstream compiler use to
// hash, compare, and track feature definitions.
type Signature struct {
	Name      string `json:"name" yaml:"name"`
	Entity    string `json:"entity" yaml:"entity"`
	ValueType string `json:"value_type" yaml:"value_type"`
}

// String returns a canonical single-line form suitable for hashing.
// Field order is fixed, so equal signatures always render identically.
func (s Signature) String() string {
	return fmt.Sprintf("name=%s;entity=%s;value_type=%s", s.Name, s.Entity, s.ValueType)
}

// Feature is the core capability of the registry: a deterministic,
// time-aware transformation from raw data to a typed value.
//
// Compute must be a pure function of raw and must not use information
// dated after eventTime. That is a contract on implementers; the
// library cannot enforce it at runtime, but it is what makes offline
// and online pipelines share logic and keeps point-in-time correctness
// possible.
//
// Any type exposing Metadata and Compute satisfies the role; use New
// to lift a plain function into a Feature.
type Feature interface {
	// Metadata returns the immutable contract this feature is bound to.
	Metadata() Metadata

	// Compute derives the feature value from raw data as of eventTime.
	Compute(raw RawData, eventTime time.Time) (any, error)
}

// ComputeFunc is the signature of a feature computation.
type ComputeFunc func(raw RawData, eventTime time.Time) (any, error)

// funcFeature adapts a ComputeFunc to the Feature interface.
type funcFeature struct {
	md Metadata
	fn ComputeFunc
}

// New binds a compute function to a contract, producing a Feature.
//
// Panics if fn is nil or md.ValueType is not a valid declared type,
// since a feature without a computation or a checkable type is a
// programming error, not a runtime condition.
func New(md Metadata, fn ComputeFunc) Feature {
	if fn == nil {
		panic("featurereg: compute function cannot be nil")
	}
	if !md.ValueType.Valid() {
		panic(fmt.Sprintf("featurereg: feature %q has invalid value type", md.Name))
	}
	return &funcFeature{md: md, fn: fn}
}

func (f *funcFeature) Metadata() Metadata {
	return f.md
}

func (f *funcFeature) Compute(raw RawData, eventTime time.Time) (any, error) {
	return f.fn(raw, eventTime)
}

// SignatureOf returns the stable descriptor of a feature's contract.
func SignatureOf(f Feature) Signature {
	return f.Metadata().Signature()
}
