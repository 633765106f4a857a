/*
Package featurereg provides the contract and lifecycle core of a
feature registry for ML feature computation.

# Overview

featurereg covers two things: the Feature evaluation contract — a
deterministic, time-aware transformation from raw data to a typed
value, executed through a single validate-on-the-way-out entry point —
and the versioned Registry that tracks named feature definitions over
time: registration, latest-version resolution, deprecation, and
dependency-graph extraction.

Everything else a feature platform needs (ingestion, point-in-time
joins, DAG compilation, serving) consumes this core through its public
surface; none of it lives here.

# Defining a feature

A Feature binds immutable Metadata to a compute function:

	spend := featurereg.New(featurereg.Metadata{
	    Name:        "user_7d_spend",
	    Entity:      "user",
	    ValueType:   featurereg.TypeFloat,
	    Description: "Total user spend over the trailing 7 days",
	    Owner:       "risk-features",
	}, func(raw featurereg.RawData, eventTime time.Time) (any, error) {
	    return raw.Float("spend_7d", 0), nil
	})

	value, err := featurereg.Evaluate(spend, raw, eventTime)

Compute must be a pure function of its raw data and must not read
information dated after eventTime. The library cannot enforce that; it
is the contract that keeps offline and online pipelines consistent.

# Registering versions

The Registry mints a fresh version token per registration and resolves
the latest active version per (name, entity) key:

	reg := featurereg.NewRegistry()
	reg.Register(spend.Metadata(), featurereg.NewKeySet(
	    featurereg.Key{Name: "txn_count", Entity: "user"},
	))

	spec, err := reg.Get("user_7d_spend", "user")
	graph := reg.DependencyGraph()

Deprecating a key retires its latest version from resolution while
keeping the record forever as an audit entry.

# Observability and persistence

Logging (slog), metrics and tracing (OpenTelemetry), and an append-only
journal (memory or SQLite) are all opt-in via options; see the
observability and journal subpackages.
*/
package featurereg
