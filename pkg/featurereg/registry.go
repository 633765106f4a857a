package featurereg

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/featurereg/pkg/featurereg/journal"
	"github.com/randalmurphal/featurereg/pkg/featurereg/observability"
)

// versionedKey addresses one spec in the store: every registration of
// the same feature identity gets its own entry.
type versionedKey struct {
	key     Key
	version string
}

// Registry owns the authoritative set of registered feature versions
// and their activity state. It resolves the single latest active
// version per key, supports deprecation, and exposes a dependency
// graph snapshot for downstream tooling.
//
// All methods are safe for concurrent use. Each operation runs as one
// atomic critical section under the registry's lock; coarse locking is
// fine here since every critical section is a bounded map operation.
//
// The registry never validates dependencies against registered keys and
// never looks for cycles. Both are deliberate: referential integrity
// and ordering belong to the downstream compiler, not this core.
type Registry struct {
	mu     sync.RWMutex
	store  map[versionedKey]*featureSpec
	latest map[Key]string

	now        func() time.Time
	newVersion func() string
	logger     *slog.Logger
	metrics    observability.MetricsRecorder
	journal    journal.Store
}

// NewRegistry creates an empty registry.
//
// By default the registry is silent (no logger), records no metrics,
// persists nothing, stamps specs with time.Now, and mints version
// tokens with uuid.NewString. All of these are configurable through
// options.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		store:      make(map[versionedKey]*featureSpec),
		latest:     make(map[Key]string),
		now:        time.Now,
		newVersion: uuid.NewString,
		metrics:    observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register mints a new version of the feature described by md and makes
// it the latest active version for its key. The previous latest (if
// any) stays in the store untouched, still active but no longer
// resolvable through Get.
//
// Dependencies are recorded verbatim; they need not reference
// registered keys. Register always succeeds for well-formed metadata.
// The returned Spec is a snapshot the caller owns.
func (r *Registry) Register(md Metadata, deps KeySet) Spec {
	key := md.Key()

	r.mu.Lock()
	version := r.mintVersionLocked(key)
	spec := &featureSpec{
		key:          key,
		metadata:     md,
		version:      version,
		createdAt:    r.now().UTC(),
		dependencies: deps.Clone(),
		isActive:     true,
		isDeprecated: false,
	}
	r.store[versionedKey{key: key, version: version}] = spec
	r.latest[key] = version
	snap := spec.snapshot()
	r.mu.Unlock()

	r.appendJournal(journal.OpRegister, snap)
	r.metrics.RecordRegistration(context.Background(), key.Entity)
	observability.LogRegister(r.logger, key.Name, key.Entity, version, snap.Dependencies.Len())
	return snap
}

// mintVersionLocked returns a version token unused by key.
// Must be called with the write lock held. The retry loop keeps the
// (key, version) uniqueness invariant even when an injected version
// func has low entropy.
func (r *Registry) mintVersionLocked(key Key) string {
	for {
		version := r.newVersion()
		if _, exists := r.store[versionedKey{key: key, version: version}]; !exists {
			return version
		}
	}
}

// Get resolves the current latest version of a feature key and returns
// a snapshot of its spec. It fails with a NotFoundError (wrapping
// ErrNotFound) if the key was never registered, or if its last
// registration has been deprecated.
func (r *Registry) Get(name, entity string) (Spec, error) {
	key := Key{Name: name, Entity: entity}

	r.mu.RLock()
	version, ok := r.latest[key]
	var snap Spec
	if ok {
		snap = r.store[versionedKey{key: key, version: version}].snapshot()
	}
	r.mu.RUnlock()

	r.metrics.RecordLookup(context.Background(), ok)
	if !ok {
		observability.LogLookupMiss(r.logger, name, entity)
		return Spec{}, &NotFoundError{Key: key}
	}
	return snap, nil
}

// Deprecate retires the current latest version of a feature key: the
// spec's flags flip to inactive and deprecated, and the key drops out
// of latest resolution until a new version is registered. No other
// stored spec is touched, and the deprecated record itself is retained
// forever as an audit entry.
//
// Fails with a NotFoundError under the same condition as Get.
func (r *Registry) Deprecate(name, entity string) error {
	key := Key{Name: name, Entity: entity}

	r.mu.Lock()
	version, ok := r.latest[key]
	var snap Spec
	if ok {
		spec := r.store[versionedKey{key: key, version: version}]
		spec.isActive = false
		spec.isDeprecated = true
		delete(r.latest, key)
		snap = spec.snapshot()
	}
	r.mu.Unlock()

	if !ok {
		observability.LogLookupMiss(r.logger, name, entity)
		return &NotFoundError{Key: key}
	}

	r.appendJournal(journal.OpDeprecate, snap)
	r.metrics.RecordDeprecation(context.Background(), key.Entity)
	observability.LogDeprecate(r.logger, name, entity, version)
	return nil
}

// DependencyGraph returns a snapshot mapping every distinct key in the
// store to a dependency set, covering active, inactive, and deprecated
// specs alike. The snapshot is fully copied under the lock; callers can
// iterate it freely while the registry keeps mutating.
//
// When several versions exist for one key, the entry reflects whichever
// version the store iteration visits last — not necessarily the latest.
// Consumers that need latest-only dependencies should resolve keys
// through Get instead.
func (r *Registry) DependencyGraph() map[Key]KeySet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	graph := make(map[Key]KeySet, len(r.latest))
	for vk, spec := range r.store {
		graph[vk.key] = spec.dependencies.Clone()
	}
	return graph
}

// Has reports whether a key currently resolves to a latest version.
func (r *Registry) Has(name, entity string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.latest[Key{Name: name, Entity: entity}]
	return ok
}

// Versions returns every stored spec for a key, oldest first. The
// result includes deprecated and superseded versions; it is empty if
// the key was never registered.
func (r *Registry) Versions(name, entity string) []Spec {
	key := Key{Name: name, Entity: entity}

	r.mu.RLock()
	specs := make([]Spec, 0)
	for vk, spec := range r.store {
		if vk.key == key {
			specs = append(specs, spec.snapshot())
		}
	}
	r.mu.RUnlock()

	sort.Slice(specs, func(i, j int) bool {
		if !specs[i].CreatedAt.Equal(specs[j].CreatedAt) {
			return specs[i].CreatedAt.Before(specs[j].CreatedAt)
		}
		return specs[i].Version < specs[j].Version
	})
	return specs
}

// Keys returns the distinct feature keys present in the store,
// including keys whose every version has been deprecated.
// The order is not guaranteed.
func (r *Registry) Keys() []Key {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Key]struct{}, len(r.latest))
	keys := make([]Key, 0, len(r.latest))
	for vk := range r.store {
		if _, ok := seen[vk.key]; ok {
			continue
		}
		seen[vk.key] = struct{}{}
		keys = append(keys, vk.key)
	}
	return keys
}

// Len returns the total number of stored specs across all versions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.store)
}

// Range iterates over a snapshot of all stored specs. The function fn
// is called for each spec; if fn returns false, iteration stops.
// Registry mutations during iteration do not affect the snapshot.
func (r *Registry) Range(fn func(Spec) bool) {
	r.mu.RLock()
	snapshot := make([]Spec, 0, len(r.store))
	for _, spec := range r.store {
		snapshot = append(snapshot, spec.snapshot())
	}
	r.mu.RUnlock()

	for _, spec := range snapshot {
		if !fn(spec) {
			return
		}
	}
}

// specPayload is the JSON form of a spec written to the journal.
type specPayload struct {
	Name         string    `json:"name"`
	Entity       string    `json:"entity"`
	ValueType    ValueType `json:"value_type"`
	Description  string    `json:"description"`
	Owner        string    `json:"owner"`
	Version      string    `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	Dependencies []Key     `json:"dependencies"`
	IsActive     bool      `json:"is_active"`
	IsDeprecated bool      `json:"is_deprecated"`
}

// appendJournal records a transition if a journal store is configured.
// Journal failures never fail the registry operation; they are logged
// and dropped.
func (r *Registry) appendJournal(op string, spec Spec) {
	if r.journal == nil {
		return
	}

	deps := spec.Dependencies.Keys()
	sort.Slice(deps, func(i, j int) bool { return deps[i].String() < deps[j].String() })

	payload, err := json.Marshal(specPayload{
		Name:         spec.Key.Name,
		Entity:       spec.Key.Entity,
		ValueType:    spec.Metadata.ValueType,
		Description:  spec.Metadata.Description,
		Owner:        spec.Metadata.Owner,
		Version:      spec.Version,
		CreatedAt:    spec.CreatedAt,
		Dependencies: deps,
		IsActive:     spec.IsActive,
		IsDeprecated: spec.IsDeprecated,
	})
	if err == nil {
		err = r.journal.Append(journal.Entry{
			Name:      spec.Key.Name,
			Entity:    spec.Key.Entity,
			Version:   spec.Version,
			Op:        op,
			Timestamp: r.now().UTC(),
			Spec:      payload,
		})
	}
	if err != nil {
		observability.LogJournalError(r.logger, op, err)
	}
}
