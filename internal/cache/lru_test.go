package cache_test

import (
	"testing"

	"github.com/nj301365/version-control-system-mygit/ginternals/object"
	"github.com/nj301365/version-control-system-mygit/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU(t *testing.T) {
	t.Parallel()

	t.Run("Add and get data", func(t *testing.T) {
		t.Parallel()

		c, err := cache.NewLRU(1)
		require.NoError(t, err)

		assert.Equal(t, 0, c.Len(), "expected an empty cache")

		o := object.New(object.TypeBlob, []byte("hello\n"))
		rv, ok := c.Get(o.ID())
		assert.False(t, ok, "should not find data that does not exist")
		assert.Nil(t, rv, "returned value should be nil when not found")

		c.Add(o)
		assert.Equal(t, 1, c.Len(), "expected 1 item in the cache")

		rv, ok = c.Get(o.ID())
		require.True(t, ok, "should have found data")
		assert.Equal(t, o.ID(), rv.ID(), "unexpected data retrieved from cache")

		c.Remove(o.ID())
		assert.Equal(t, 0, c.Len(), "expected the object to have been removed")

		c.Add(o)
		c.Clear()
		assert.Equal(t, 0, c.Len(), "expected the cache t have been emptied")
	})

	t.Run("oldest entries get evicted", func(t *testing.T) {
		t.Parallel()

		c, err := cache.NewLRU(1)
		require.NoError(t, err)

		a := object.New(object.TypeBlob, []byte("a"))
		b := object.New(object.TypeBlob, []byte("b"))
		c.Add(a)
		c.Add(b)

		_, ok := c.Get(a.ID())
		assert.False(t, ok, "a should have been evicted")
		_, ok = c.Get(b.ID())
		assert.True(t, ok, "b should still be cached")
	})

	t.Run("invalid size should fail", func(t *testing.T) {
		t.Parallel()

		_, err := cache.NewLRU(0)
		require.Error(t, err)
	})
}
