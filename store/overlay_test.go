package store

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

// countingStore records inner store traffic for cache assertions.
type countingStore struct {
	data    map[string][]byte
	gets    int
	sets    []string
	failSet bool
}

func newCountingStore() *countingStore {
	return &countingStore{data: map[string][]byte{}}
}

func (c *countingStore) Get(key []byte) ([]byte, error) {
	c.gets++
	return c.data[string(key)], nil
}

func (c *countingStore) Exists(key []byte) (bool, error) {
	_, ok := c.data[string(key)]
	return ok, nil
}

func (c *countingStore) Set(key []byte, value []byte) error {
	if c.failSet {
		return errors.New("set failed")
	}
	c.sets = append(c.sets, string(key))
	c.data[string(key)] = append([]byte{}, value...)
	return nil
}

func (c *countingStore) Delete(key []byte) error {
	delete(c.data, string(key))
	return nil
}

func TestOverlayCommit(t *testing.T) {
	base := newCountingStore()
	base.data["keep"] = []byte{1}
	base.data["drop"] = []byte{2}

	o := NewOverlay(base)
	require.NoError(t, o.Set([]byte("z"), []byte{3}))
	require.NoError(t, o.Set([]byte("a"), []byte{4}))
	require.NoError(t, o.Delete([]byte("drop")))

	value, err := o.Get([]byte("drop"))
	require.NoError(t, err)
	assert.Nil(t, value)
	exists, err := o.Exists([]byte("keep"))
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, 3, o.Dirty())

	_, ok := base.data["z"]
	assert.False(t, ok, "base untouched before commit")

	require.NoError(t, o.Commit())
	assert.Equal(t, []string{"a", "z"}, base.sets, "writes applied in key order")
	assert.Equal(t, map[string][]byte{
		"keep": {1},
		"a":    {4},
		"z":    {3},
	}, base.data)
	assert.Zero(t, o.Dirty())
}

func TestOverlayDiscard(t *testing.T) {
	base := newCountingStore()
	base.data["k"] = []byte{1}

	o := NewOverlay(base)
	require.NoError(t, o.Set([]byte("k"), []byte{9}))
	require.NoError(t, o.Set([]byte("n"), []byte{9}))

	value, err := o.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte{9}, value)

	o.Discard()
	value, err = o.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, value)
	assert.Len(t, base.data, 1)
}

func TestOverlayCommitError(t *testing.T) {
	base := newCountingStore()
	base.failSet = true

	o := NewOverlay(base)
	require.NoError(t, o.Set([]byte("k"), []byte{1}))
	assert.ErrorContains(t, o.Commit(), "set failed")
	assert.Equal(t, 1, o.Dirty())
}

func TestOverlayOnPebble(t *testing.T) {
	db := newTestPebbleStore(t)
	o := NewOverlay(db)
	require.NoError(t, o.Set([]byte("k"), []byte("v")))
	require.NoError(t, o.Commit())

	value, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)
}

func TestCachedStore(t *testing.T) {
	inner := newCountingStore()
	inner.data["k"] = []byte("v")

	c, err := NewCachedStore(inner, 8)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		value, err := c.Get([]byte("k"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), value)
	}
	assert.Equal(t, 1, inner.gets)

	// absent keys are cached too
	for i := 0; i < 2; i++ {
		value, err := c.Get([]byte("missing"))
		require.NoError(t, err)
		assert.Nil(t, value)
	}
	assert.Equal(t, 2, inner.gets)

	require.NoError(t, c.Set([]byte("missing"), []byte("now")))
	value, err := c.Get([]byte("missing"))
	require.NoError(t, err)
	assert.Equal(t, []byte("now"), value)
	assert.Equal(t, 2, inner.gets)

	require.NoError(t, c.Delete([]byte("k")))
	exists, err := c.Exists([]byte("k"))
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, 2, c.Len())

	assert.ErrorIs(t, c.Iterate(nil, nil), ErrNotIterable)

	inner.failSet = true
	assert.Error(t, c.Set([]byte("k"), []byte("x")))
	c.Purge()
	assert.Zero(t, c.Len())
}

func TestCachedStoreBatchInvalidates(t *testing.T) {
	db := newTestPebbleStore(t)
	c, err := NewCachedStore(db, 8)
	require.NoError(t, err)

	require.NoError(t, c.Set([]byte("k"), []byte("old")))
	o := NewOverlay(c)
	require.NoError(t, o.Set([]byte("k"), []byte("new")))
	require.NoError(t, o.Commit())

	value, err := c.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), value)

	var keys []string
	require.NoError(t, c.Iterate(nil, func(key, _ []byte) error {
		keys = append(keys, string(key))
		return nil
	}))
	assert.Equal(t, []string{"k"}, keys)
}

func TestPrefixStore(t *testing.T) {
	db := newTestPebbleStore(t)
	a := NewPrefixStore(db, []byte("a:"))
	b := NewPrefixStore(db, []byte("b:"))

	require.NoError(t, a.Set([]byte("x"), []byte{1}))
	require.NoError(t, b.Set([]byte("x"), []byte{2}))

	value, err := a.Get([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, value)

	raw, err := db.Get([]byte("b:x"))
	require.NoError(t, err)
	assert.Equal(t, []byte{2}, raw)

	var keys []string
	require.NoError(t, a.Iterate(nil, func(key, _ []byte) error {
		keys = append(keys, string(key))
		return nil
	}))
	assert.Equal(t, []string{"x"}, keys)

	require.NoError(t, a.Delete([]byte("x")))
	exists, err := a.Exists([]byte("x"))
	require.NoError(t, err)
	assert.False(t, exists)

	// proxies work unchanged on a partition
	arr := wasmtypes.NewProxy(b).Root("list")
	_, err = arr.Append()
	require.NoError(t, err)
	raw, err = db.Get([]byte("b:list"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, raw)
}
