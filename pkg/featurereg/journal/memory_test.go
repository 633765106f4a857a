package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(op, version string) Entry {
	return Entry{
		Name:      "user_7d_spend",
		Entity:    "user",
		Version:   version,
		Op:        op,
		Timestamp: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Spec:      []byte(`{"name":"user_7d_spend"}`),
	}
}

func TestMemoryStore_AppendAndList(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	require.NoError(t, store.Append(testEntry(OpRegister, "v1")))
	require.NoError(t, store.Append(testEntry(OpDeprecate, "v1")))
	require.NoError(t, store.Append(Entry{Name: "other", Entity: "merchant", Op: OpRegister}))

	entries, err := store.List("user_7d_spend", "user")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, OpRegister, entries[0].Op)
	assert.Equal(t, OpDeprecate, entries[1].Op)
	assert.Equal(t, 3, store.Len())
}

func TestMemoryStore_ListUnknownKey(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	entries, err := store.List("missing", "user")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMemoryStore_CopiesSpecBytes(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	spec := []byte(`{"name":"a"}`)
	e := testEntry(OpRegister, "v1")
	e.Spec = spec
	require.NoError(t, store.Append(e))

	// Mutating the caller's slice must not reach the store.
	spec[2] = 'X'

	entries, err := store.List("user_7d_spend", "user")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []byte(`{"name":"a"}`), entries[0].Spec)

	// And mutating a listed entry must not reach the store either.
	entries[0].Spec[2] = 'Y'
	again, err := store.List("user_7d_spend", "user")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"name":"a"}`), again[0].Spec)
}

func TestMemoryStore_Closed(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.Append(testEntry(OpRegister, "v1")), ErrStoreClosed)

	_, err := store.List("user_7d_spend", "user")
	assert.ErrorIs(t, err, ErrStoreClosed)
}
