package nametable

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.db")

	src := setup(t)
	a := src.Create("alpha")
	dead := src.Create("gone")
	b := src.Create("beta")
	unnamed := src.Entities().Create()
	src.Delete(dead)
	src.step()
	require.NoError(t, SaveSnapshot(path, src.World))
	// saving twice replaces the previous contents
	require.NoError(t, SaveSnapshot(path, src.World))

	dst := setup(t)
	require.NoError(t, LoadSnapshot(path, dst.World))
	assert.Zero(t, dst.NameTable().Len(), "table catches up on the next step")
	dst.step()

	assert.Equal(t, []pair{{"alpha", a}, {"beta", b}}, rows(dst.NameTable()))
	assert.True(t, dst.Entities().IsAlive(unnamed))
	assert.False(t, dst.Entities().IsAlive(dead))
	assert.Equal(t, 3, dst.Entities().Len())

	reused := dst.Entities().Create()
	assert.Equal(t, Entity{dead.Index, dead.Gen + 1}, reused)
}

func TestSnapshot_LoadIntoNonEmptyWorld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.db")
	src := setup(t)
	src.Create("a")
	require.NoError(t, SaveSnapshot(path, src.World))

	dst := setup(t)
	dst.Create("b")
	assert.ErrorIs(t, LoadSnapshot(path, dst.World), ErrWorldNotEmpty)
}

func TestSnapshot_ChecksumMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.db")
	src := setup(t)
	e := src.Create("a")
	require.NoError(t, SaveSnapshot(path, src.World))

	bdb, err := bbolt.Open(path, 0666, nil)
	require.NoError(t, err)
	require.NoError(t, bdb.Update(func(btx *bbolt.Tx) error {
		rec := nameRecord{Gen: e.Gen, Name: "tampered", Sum: NewName("a").Hash()}
		return btx.Bucket(namesBucket).Put(indexKey(e.Index), must(msgpack.Marshal(&rec)))
	}))
	require.NoError(t, bdb.Close())

	err = LoadSnapshot(path, setup(t).World)
	require.ErrorIs(t, err, ErrSnapshotCorrupted)
	var de *DataError
	assert.ErrorAs(t, err, &de)
}

func TestSnapshot_MissingBuckets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	bdb, err := bbolt.Open(path, 0666, nil)
	require.NoError(t, err)
	require.NoError(t, bdb.Close())

	assert.ErrorIs(t, LoadSnapshot(path, setup(t).World), ErrSnapshotCorrupted)
}
