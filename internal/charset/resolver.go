package charset

import (
	"fmt"

	"github.com/mzhao/hzkconv/internal/model"
)

// Grid constants for the GB2312 region/position addressing scheme.
const (
	gridBase    = 0xA0 // region/position 1 encodes as byte 0xA1
	gridSize    = 94   // regions and positions both run 1..94
	skipRegions = 15   // regions omitted from traditional-only font files
)

// EncodeBytes returns the two GB2312 encoding bytes for r.
//
// ASCII code points map into the fullwidth form region: (0xA3, r+0x80),
// the historical `0xA3 + r - 35` formula. Code points below '!' have no
// fullwidth slot and report ErrNotEncodable. Everything else defers to the
// codec.
func EncodeBytes(r rune, codec Codec) (byte, byte, error) {
	if r < 0x80 {
		b2 := int(r) + 0x80
		if b2 < 0xA1 || b2 > 0xFE {
			return 0, 0, fmt.Errorf("%w: %U has no fullwidth form", ErrNotEncodable, r)
		}
		return 0xA3, byte(b2), nil
	}
	return codec.Encode(r)
}

// ResolveIndex converts encoding bytes to a record index in a GB2312 grid.
//
// With skip set the first 15 regions are absent from the file and the
// region term shifts down accordingly; characters from those regions
// resolve to a negative index and report ErrInvalidCode.
func ResolveIndex(b1, b2 byte, skip bool) (int, error) {
	if b1 < 0xA1 || b1 > 0xFE || b2 < 0xA1 || b2 > 0xFE {
		return 0, fmt.Errorf("%w: 0x%02X 0x%02X", ErrInvalidCode, b1, b2)
	}
	region := int(b1) - gridBase
	position := int(b2) - gridBase
	if skip {
		region -= skipRegions
	}
	index := gridSize*(region-1) + (position - 1)
	if index < 0 {
		return 0, fmt.Errorf("%w: region %d absent from this font", ErrInvalidCode, int(b1)-gridBase)
	}
	return index, nil
}

// Resolve maps a code point to its record index for the given family.
// For ASCII-indexed families the index is simply r-32; GB2312 families go
// through EncodeBytes and ResolveIndex.
func Resolve(r rune, fam model.Family, codec Codec) (int, error) {
	switch fam.Charset {
	case model.CharsetASCII:
		return ASCIIIndex(r)
	case model.CharsetGB2312:
		b1, b2, err := EncodeBytes(r, codec)
		if err != nil {
			return 0, err
		}
		return ResolveIndex(b1, b2, fam.SkipRegions)
	default:
		return 0, fmt.Errorf("unknown charset %q", fam.Charset)
	}
}

// ASCIIIndex returns the record index of r in a printable-ASCII store.
func ASCIIIndex(r rune) (int, error) {
	if r < 0x20 || r > 0x7E {
		return 0, fmt.Errorf("%w: %U outside printable ASCII", ErrNotEncodable, r)
	}
	return int(r) - 0x20, nil
}
