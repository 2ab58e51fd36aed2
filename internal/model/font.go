package model

import "fmt"

// GlyphSpec describes the pixel dimensions of a single glyph cell.
// Every record in a font blob for a given spec has exactly RecordSize bytes.
type GlyphSpec struct {
	Width  int // Cell width in pixels
	Height int // Cell height in pixels
}

// BytesPerRow returns the number of bytes one pixel row occupies.
// Widths that are not byte multiples round up; the trailing bits are padding.
func (s GlyphSpec) BytesPerRow() int {
	return (s.Width + 7) / 8
}

// RecordSize returns the fixed size of one glyph record in bytes.
func (s GlyphSpec) RecordSize() int {
	return s.BytesPerRow() * s.Height
}

// Valid reports whether both dimensions are positive.
func (s GlyphSpec) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

func (s GlyphSpec) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Packing identifies the bit-packing direction of a glyph record.
//
// Which packing a raw blob uses is a property of the font family, not of
// the data itself; it is carried as Family configuration and never guessed
// from the bytes.
type Packing int

const (
	// RowMajor stores bit (row,col) at linear index row*width+col,
	// MSB first, rows top to bottom ("horizontal" in HZK terminology).
	RowMajor Packing = iota
	// ColumnMajor stores bit (row,col) at linear index col*height+row,
	// MSB first, columns left to right ("vertical").
	ColumnMajor
)

func (p Packing) String() string {
	switch p {
	case RowMajor:
		return "horizontal"
	case ColumnMajor:
		return "vertical"
	default:
		return fmt.Sprintf("Packing(%d)", int(p))
	}
}

// ParsePacking accepts the CLI spellings of a packing direction.
func ParsePacking(s string) (Packing, error) {
	switch s {
	case "horizontal", "row", "row-major":
		return RowMajor, nil
	case "vertical", "col", "column-major":
		return ColumnMajor, nil
	default:
		return 0, fmt.Errorf("unknown packing %q (want horizontal or vertical)", s)
	}
}

// Charset identifies how a font blob is indexed.
type Charset string

const (
	// CharsetASCII blobs hold the 95 printable ASCII characters,
	// record index = codepoint - 32.
	CharsetASCII Charset = "ascii"
	// CharsetGB2312 blobs are indexed by the 94x94 region/position grid.
	CharsetGB2312 Charset = "gb2312"
)

// Family bundles the external facts needed to address one font file:
// cell dimensions, bit-packing direction, index charset, and whether the
// file omits the first 15 GB2312 regions. None of these are derivable from
// the blob itself.
type Family struct {
	Name        string
	Spec        GlyphSpec
	Packing     Packing
	Charset     Charset
	SkipRegions bool // first 15 regions absent (observed for HZK40/HZK48)
}

// Families is the registry of known font families. The packing entries
// reproduce the historical per-file conventions: ASC heights 12 and 48 are
// row-major, the other ASC sizes column-major; HZK files are row-major.
var Families = map[string]Family{
	"ASC12": {Name: "ASC12", Spec: GlyphSpec{8, 12}, Packing: RowMajor, Charset: CharsetASCII},
	"ASC16": {Name: "ASC16", Spec: GlyphSpec{8, 16}, Packing: ColumnMajor, Charset: CharsetASCII},
	"ASC24": {Name: "ASC24", Spec: GlyphSpec{12, 24}, Packing: ColumnMajor, Charset: CharsetASCII},
	"ASC32": {Name: "ASC32", Spec: GlyphSpec{16, 32}, Packing: ColumnMajor, Charset: CharsetASCII},
	"ASC48": {Name: "ASC48", Spec: GlyphSpec{24, 48}, Packing: RowMajor, Charset: CharsetASCII},

	"HZK12": {Name: "HZK12", Spec: GlyphSpec{12, 12}, Packing: RowMajor, Charset: CharsetGB2312},
	"HZK16": {Name: "HZK16", Spec: GlyphSpec{16, 16}, Packing: RowMajor, Charset: CharsetGB2312},
	"HZK24": {Name: "HZK24", Spec: GlyphSpec{24, 24}, Packing: RowMajor, Charset: CharsetGB2312},
	"HZK32": {Name: "HZK32", Spec: GlyphSpec{32, 32}, Packing: RowMajor, Charset: CharsetGB2312},
	"HZK40": {Name: "HZK40", Spec: GlyphSpec{40, 40}, Packing: RowMajor, Charset: CharsetGB2312, SkipRegions: true},
	"HZK48": {Name: "HZK48", Spec: GlyphSpec{48, 48}, Packing: RowMajor, Charset: CharsetGB2312, SkipRegions: true},
}

// LookupFamily returns the registry entry for name.
func LookupFamily(name string) (Family, bool) {
	f, ok := Families[name]
	return f, ok
}

// FamilyNames returns the registered family names, unsorted.
func FamilyNames() []string {
	names := make([]string, 0, len(Families))
	for name := range Families {
		names = append(names, name)
	}
	return names
}
