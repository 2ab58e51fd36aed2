// Package store provides random access to the fixed-size glyph records of
// a flat font blob. A blob has no header or metadata; record index i lives
// at byte offset i*RecordSize, and that is the whole format.
package store

import (
	"errors"
	"fmt"

	"github.com/mzhao/hzkconv/internal/model"
)

// ErrSizeMismatch reports a record buffer whose length is not exactly the
// spec's record size. This is a caller bug, not a data condition.
var ErrSizeMismatch = errors.New("record length does not match glyph size")

// Store wraps a font blob for record-level access. Records are views into
// the blob, owned by it; the store never copies or caches them.
type Store struct {
	data []byte
	spec model.GlyphSpec
}

// New wraps data as a store of spec-sized records.
func New(data []byte, spec model.GlyphSpec) *Store {
	return &Store{data: data, spec: spec}
}

// Spec returns the glyph dimensions the store was opened with.
func (s *Store) Spec() model.GlyphSpec {
	return s.spec
}

// Len returns the blob length in bytes.
func (s *Store) Len() int {
	return len(s.data)
}

// RecordCount returns the number of complete records in the blob.
func (s *Store) RecordCount() int {
	return len(s.data) / s.spec.RecordSize()
}

// Remainder returns the trailing bytes that do not form a complete record.
// Nonzero is an integrity warning, not an error; the store stays usable
// for every complete record.
func (s *Store) Remainder() int {
	return len(s.data) % s.spec.RecordSize()
}

// ReadRecord returns the record at index as a view into the blob.
//
// A record falling partly or fully past the end of the blob returns as
// many bytes as exist, possibly none; combined with bitplane's
// zero-extension this treats a truncated tail as blank pixels. A negative
// index returns nil.
func (s *Store) ReadRecord(index int) []byte {
	if index < 0 {
		return nil
	}
	size := s.spec.RecordSize()
	off := index * size
	if off >= len(s.data) {
		return nil
	}
	end := off + size
	if end > len(s.data) {
		end = len(s.data)
	}
	return s.data[off:end]
}

// WriteRecord overwrites the record at index. rec must be exactly one
// record long and the record must lie entirely inside the blob.
func (s *Store) WriteRecord(index int, rec []byte) error {
	size := s.spec.RecordSize()
	if len(rec) != size {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(rec), size)
	}
	off := index * size
	if index < 0 || off+size > len(s.data) {
		return fmt.Errorf("record %d does not fit in %d-byte store", index, len(s.data))
	}
	copy(s.data[off:off+size], rec)
	return nil
}
