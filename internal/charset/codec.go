// Package charset resolves characters to positions inside a glyph store.
//
// GB2312-indexed fonts address glyphs through the 94x94 region/position
// grid derived from the two EUC encoding bytes; ASCII-indexed fonts hold
// the 95 printable characters in codepoint order. The legacy-charset
// conversion itself is behind the Codec interface so the resolver and the
// codepoint map never depend on a particular coder.
package charset

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// ErrNotEncodable reports a code point with no legacy-charset form.
// Recoverable: callers skip the character or substitute a blank glyph.
var ErrNotEncodable = errors.New("code point not representable in GB2312")

// ErrInvalidCode reports encoding bytes outside the valid region/position
// grid, or a character absent from a skip-region font's window.
var ErrInvalidCode = errors.New("encoding bytes outside region/position grid")

// Codec converts between Unicode code points and a legacy double-byte code.
// Both directions fail as ordinary outcomes: unassigned grid pairs and
// unrepresentable code points are expected, not exceptional.
type Codec interface {
	Decode(b1, b2 byte) (rune, error)
	Encode(r rune) (b1, b2 byte, err error)
}

// gbCodec adapts the x/text GBK coder to strict(ish) GB2312.
//
// x/text ships no standalone GB2312 coder. GBK is byte-compatible with
// GB2312 over the EUC range 0xA1A1-0xFEFE, but it also assigns private-use
// code points to pairs GB2312 leaves empty; those decodes are rejected so
// map building skips them the way a strict codec would.
type gbCodec struct {
	dec *encoding.Decoder
	enc *encoding.Encoder
}

// NewGB2312 returns the default legacy-charset codec.
func NewGB2312() Codec {
	return &gbCodec{
		dec: simplifiedchinese.GBK.NewDecoder(),
		enc: simplifiedchinese.GBK.NewEncoder(),
	}
}

func (c *gbCodec) Decode(b1, b2 byte) (rune, error) {
	if b1 < 0xA1 || b1 > 0xFE || b2 < 0xA1 || b2 > 0xFE {
		return 0, fmt.Errorf("%w: 0x%02X 0x%02X", ErrInvalidCode, b1, b2)
	}
	out, err := c.dec.Bytes([]byte{b1, b2})
	if err != nil {
		return 0, fmt.Errorf("decode 0x%02X 0x%02X: %w", b1, b2, err)
	}
	r, size := utf8.DecodeRune(out)
	if r == utf8.RuneError || size != len(out) {
		return 0, fmt.Errorf("decode 0x%02X 0x%02X: unassigned pair", b1, b2)
	}
	if r >= 0xE000 && r <= 0xF8FF {
		// GBK parks GB2312's unassigned pairs in the private-use area.
		return 0, fmt.Errorf("decode 0x%02X 0x%02X: unassigned pair", b1, b2)
	}
	return r, nil
}

func (c *gbCodec) Encode(r rune) (byte, byte, error) {
	out, err := c.enc.Bytes([]byte(string(r)))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %U", ErrNotEncodable, r)
	}
	if len(out) != 2 {
		return 0, 0, fmt.Errorf("%w: %U", ErrNotEncodable, r)
	}
	return out[0], out[1], nil
}
