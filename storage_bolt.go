package nametable

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"
)

var (
	entitiesBucket = []byte("entities")
	namesBucket    = []byte("names")
)

type entityRecord struct {
	Gen   uint32 `msgpack:"g"`
	Alive bool   `msgpack:"a"`
}

type nameRecord struct {
	Gen  uint32 `msgpack:"g"`
	Name string `msgpack:"n"`
	Sum  uint64 `msgpack:"s"`
}

func openBolt(path string, readOnly bool) (*bbolt.DB, error) {
	bdb, err := bbolt.Open(path, 0666, &bbolt.Options{
		Timeout:  10 * time.Second,
		ReadOnly: readOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return bdb, nil
}

// SaveSnapshot writes every entity slot and every name of the world into the
// Bolt file at path, replacing a previous snapshot. The name table itself is
// not saved; it is derived data.
func SaveSnapshot(path string, w *World) error {
	bdb, err := openBolt(path, false)
	if err != nil {
		return err
	}
	defer bdb.Close()

	err = bdb.Update(func(btx *bbolt.Tx) error {
		for _, name := range [][]byte{entitiesBucket, namesBucket} {
			if err := btx.DeleteBucket(name); err != nil && err != bbolt.ErrBucketNotFound {
				return err
			}
		}
		eb, err := btx.CreateBucket(entitiesBucket)
		if err != nil {
			return err
		}
		nb, err := btx.CreateBucket(namesBucket)
		if err != nil {
			return err
		}

		var putErr error
		w.entities.each(func(idx, gen uint32, alive bool) {
			if putErr == nil {
				putErr = eb.Put(indexKey(idx), must(msgpack.Marshal(&entityRecord{gen, alive})))
			}
		})
		if putErr != nil {
			return putErr
		}
		w.names.each(func(e Entity, name Name) {
			if putErr == nil {
				putErr = nb.Put(indexKey(e.Index), must(msgpack.Marshal(&nameRecord{e.Gen, name.s, name.Hash()})))
			}
		})
		return putErr
	})
	if err != nil {
		return fmt.Errorf("snapshot: saving %s: %w", path, err)
	}
	if w.verbose {
		w.logger.Debug("nametable: snapshot saved", "path", path, "entities", w.entities.Len(), "names", w.names.Len())
	}
	return nil
}

// LoadSnapshot restores a snapshot written by SaveSnapshot into an empty world.
// Names are inserted through the NameStore, so the NameTable catches up on the
// next bookkeeping step.
func LoadSnapshot(path string, w *World) error {
	if w.entities.slots() != 0 || w.names.Len() != 0 {
		return ErrWorldNotEmpty
	}
	bdb, err := openBolt(path, true)
	if err != nil {
		return err
	}
	defer bdb.Close()

	err = bdb.View(func(btx *bbolt.Tx) error {
		eb, nb := btx.Bucket(entitiesBucket), btx.Bucket(namesBucket)
		if eb == nil || nb == nil {
			return fmt.Errorf("%w: missing buckets", ErrSnapshotCorrupted)
		}

		c := eb.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			idx, ok := parseIndexKey(k)
			if !ok {
				return dataErrf(k, 0, ErrSnapshotCorrupted, "invalid entity key")
			}
			var rec entityRecord
			if err := msgpack.Unmarshal(v, &rec); err != nil {
				return dataErrf(v, 0, err, "entity %d", idx)
			}
			if int(idx) != w.entities.slots() {
				return dataErrf(k, 0, ErrSnapshotCorrupted, "entity %d out of sequence", idx)
			}
			w.entities.restore(idx, rec.Gen, rec.Alive)
		}
		w.entities.rebuildFreeList()

		c = nb.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			idx, ok := parseIndexKey(k)
			if !ok {
				return dataErrf(k, 0, ErrSnapshotCorrupted, "invalid name key")
			}
			var rec nameRecord
			if err := msgpack.Unmarshal(v, &rec); err != nil {
				return dataErrf(v, 0, err, "name of entity %d", idx)
			}
			name := NewName(rec.Name)
			if name.Hash() != rec.Sum {
				return dataErrf(v, 0, ErrSnapshotCorrupted, "name of entity %d: checksum mismatch", idx)
			}
			if err := w.names.Insert(Entity{idx, rec.Gen}, name); err != nil {
				return fmt.Errorf("%w: %w", ErrSnapshotCorrupted, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("snapshot: loading %s: %w", path, err)
	}
	if w.verbose {
		w.logger.Debug("nametable: snapshot loaded", "path", path, "entities", w.entities.Len(), "names", w.names.Len())
	}
	return nil
}
