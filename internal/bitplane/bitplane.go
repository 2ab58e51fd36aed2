// Package bitplane addresses individual pixels inside a packed glyph record.
//
// A glyph record is a flat byte sequence whose bits are laid out either
// row-major or column-major (see model.Packing), MSB first within each byte.
// This package is the only place that knows the linear-index arithmetic;
// everything else reads and writes pixels through Get and Set.
package bitplane

import (
	"errors"
	"fmt"

	"github.com/mzhao/hzkconv/internal/model"
)

// ErrOutOfRange reports a (row,col) coordinate outside the glyph cell.
// This is a caller bug, not a data condition.
var ErrOutOfRange = errors.New("coordinate outside glyph cell")

// ErrShortBuffer reports a Set target too short to hold the addressed bit.
var ErrShortBuffer = errors.New("buffer too short for glyph record")

// linearIndex maps a cell coordinate to its bit position in the record.
func linearIndex(spec model.GlyphSpec, packing model.Packing, row, col int) int {
	if packing == model.RowMajor {
		return row*spec.Width + col
	}
	return col*spec.Height + row
}

func checkBounds(spec model.GlyphSpec, row, col int) error {
	if row < 0 || row >= spec.Height || col < 0 || col >= spec.Width {
		return fmt.Errorf("%w: (%d,%d) in %s cell", ErrOutOfRange, row, col, spec)
	}
	return nil
}

// Get returns the pixel at (row,col) as 0 or 1.
//
// Reading past the end of a truncated record returns 0: source blobs are
// sometimes shorter than RecordSize and the established behavior is to
// zero-extend rather than reject.
func Get(data []byte, spec model.GlyphSpec, packing model.Packing, row, col int) (int, error) {
	if err := checkBounds(spec, row, col); err != nil {
		return 0, err
	}
	idx := linearIndex(spec, packing, row, col)
	byteIdx := idx / 8
	if byteIdx >= len(data) {
		return 0, nil
	}
	if data[byteIdx]&(0x80>>uint(idx%8)) != 0 {
		return 1, nil
	}
	return 0, nil
}

// Set writes the pixel at (row,col). Any nonzero value sets the bit.
// Unlike Get, the buffer must cover the addressed byte.
func Set(data []byte, spec model.GlyphSpec, packing model.Packing, row, col, value int) error {
	if err := checkBounds(spec, row, col); err != nil {
		return err
	}
	idx := linearIndex(spec, packing, row, col)
	byteIdx := idx / 8
	if byteIdx >= len(data) {
		return fmt.Errorf("%w: need byte %d, have %d", ErrShortBuffer, byteIdx, len(data))
	}
	mask := byte(0x80 >> uint(idx%8))
	if value != 0 {
		data[byteIdx] |= mask
	} else {
		data[byteIdx] &^= mask
	}
	return nil
}
