package nametable

import (
	"encoding/binary"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func indexKey(idx uint32) []byte {
	return binary.BigEndian.AppendUint32(make([]byte, 0, 4), idx)
}

func parseIndexKey(k []byte) (uint32, bool) {
	if len(k) != 4 {
		return 0, false
	}
	return binary.BigEndian.Uint32(k), true
}
