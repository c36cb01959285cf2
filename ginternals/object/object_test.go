package object_test

import (
	"fmt"
	"testing"

	"github.com/nj301365/version-control-system-mygit/ginternals"
	"github.com/nj301365/version-control-system-mygit/ginternals/object"
	"github.com/nj301365/version-control-system-mygit/internal/zlibutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType(t *testing.T) {
	t.Parallel()

	for _, typ := range []object.Type{object.TypeBlob, object.TypeTree, object.TypeCommit} {
		assert.True(t, typ.IsValid())
		parsed, err := object.NewTypeFromString(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}

	assert.False(t, object.Type(4).IsValid())
	_, err := object.NewTypeFromString("tag")
	require.ErrorIs(t, err, object.ErrObjectUnknown)
}

func TestObject(t *testing.T) {
	t.Parallel()

	t.Run("ID should be the sha of the serialized object", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeBlob, []byte("hello\n"))
		assert.Equal(t, "ce013625030ba8dba906f756967f9e9ca394464a", o.ID().String())
		assert.Equal(t, []byte("blob 6\x00hello\n"), o.Serialize())
		assert.Equal(t, 6, o.Size())
		assert.Equal(t, object.TypeBlob, o.Type())
	})

	t.Run("an empty blob should have a well-known ID", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeBlob, []byte{})
		assert.Equal(t, "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391", o.ID().String())
	})

	t.Run("Compress and NewFromCompressed should round trip", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeBlob, []byte("hello\n"))
		data, err := o.Compress()
		require.NoError(t, err)

		parsed, err := object.NewFromCompressed(data)
		require.NoError(t, err)
		assert.Equal(t, o.ID(), parsed.ID())
		assert.Equal(t, o.Bytes(), parsed.Bytes())
		assert.Equal(t, o.Type(), parsed.Type())
	})
}

func TestNewFromSerialized(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc string
		data string
	}{
		{
			desc: "no type",
			data: "blob",
		},
		{
			desc: "unknown type",
			data: "tag 0\x00",
		},
		{
			desc: "no size",
			data: "blob 6",
		},
		{
			desc: "size is not a number",
			data: "blob -6\x00hello\n",
		},
		{
			desc: "size is too big",
			data: "blob 7\x00hello\n",
		},
		{
			desc: "size is too small",
			data: "blob 5\x00hello\n",
		},
	}
	for i, tc := range testCases {
		tc := tc
		i := i
		t.Run(fmt.Sprintf("%d/%s", i, tc.desc), func(t *testing.T) {
			t.Parallel()

			_, err := object.NewFromSerialized([]byte(tc.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ginternals.ErrCorruptObject)
		})
	}

	t.Run("data that isn't zlib compressed should be corrupt", func(t *testing.T) {
		t.Parallel()

		_, err := object.NewFromCompressed([]byte("blob 6\x00hello\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ginternals.ErrCorruptObject)
	})

	t.Run("a compressed garbage should be corrupt", func(t *testing.T) {
		t.Parallel()

		data, err := zlibutil.Compress([]byte("not an object"))
		require.NoError(t, err)
		_, err = object.NewFromCompressed(data)
		require.Error(t, err)
		assert.ErrorIs(t, err, ginternals.ErrCorruptObject)
	})
}

func TestAsBlob(t *testing.T) {
	t.Parallel()

	t.Run("should return the content of the blob", func(t *testing.T) {
		t.Parallel()

		blob, err := object.New(object.TypeBlob, []byte("hello\n")).AsBlob()
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(blob.Bytes()))
		assert.Equal(t, 6, blob.Size())
		assert.Equal(t, "ce013625030ba8dba906f756967f9e9ca394464a", blob.ID().String())

		cp := blob.BytesCopy()
		cp[0] = 'j'
		assert.Equal(t, "hello\n", string(blob.Bytes()), "BytesCopy should not share memory")
	})

	t.Run("should fail on a tree", func(t *testing.T) {
		t.Parallel()

		_, err := object.New(object.TypeTree, []byte{}).AsBlob()
		require.ErrorIs(t, err, object.ErrObjectInvalid)
	})
}
