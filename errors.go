package nametable

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDeadEntity        = errors.New("entity is not alive")
	ErrNoName            = errors.New("entity has no name")
	ErrSnapshotCorrupted = errors.New("corrupted snapshot")
	ErrWorldNotEmpty     = errors.New("world is not empty")
)

type DataError struct {
	Data []byte
	Off  int
	Err  error
	Msg  string
}

func dataErrf(data []byte, off int, err error, format string, args ...any) error {
	return &DataError{data, off, err, fmt.Sprintf(format, args...)}
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func (e *DataError) Error() string {
	const prefixLen = 64
	const suffixLen = 32
	n := len(e.Data)
	if n <= prefixLen+suffixLen {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: (%d) %x", e.Msg, e.Err, n, e.Data)
		} else {
			return fmt.Sprintf("%s: (%d) %x", e.Msg, n, e.Data)
		}
	} else {
		p, s := e.Data[:prefixLen], e.Data[n-suffixLen:]
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: (%d) %x...%x", e.Msg, e.Err, n, p, s)
		} else {
			return fmt.Sprintf("%s: (%d) %x...%x", e.Msg, n, p, s)
		}
	}
}

type EntityError struct {
	Entity Entity
	Msg    string
	Err    error
}

func entityErrf(e Entity, err error, format string, args ...any) error {
	return &EntityError{e, fmt.Sprintf(format, args...), err}
}

func (e *EntityError) Unwrap() error {
	return e.Err
}

func (e *EntityError) Error() string {
	var buf strings.Builder
	buf.WriteString("entity ")
	buf.WriteString(e.Entity.String())
	if e.Msg != "" {
		buf.WriteString(": ")
		buf.WriteString(e.Msg)
	}
	if e.Err != nil {
		buf.WriteString(": ")
		buf.WriteString(e.Err.Error())
	}
	return buf.String()
}
