// Package render formats glyph records for human inspection and for
// source-level embedding. It is purely presentational: records are read
// through bitplane and never modified, and none of the output formats are
// load-bearing for transcoding.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mzhao/hzkconv/internal/bitplane"
	"github.com/mzhao/hzkconv/internal/model"
)

// Cell sentinels for the pattern dump. Two characters per pixel keeps the
// aspect ratio of terminal cells roughly square.
const (
	FilledCell = "██"
	EmptyCell  = "[]"
)

// ANSI escape sequences for terminal output. Display-only, read-only.
var ansi = map[string]string{
	"reset":  "\033[0m",
	"bold":   "\033[1m",
	"red":    "\033[91m",
	"green":  "\033[92m",
	"yellow": "\033[93m",
	"blue":   "\033[94m",
	"cyan":   "\033[96m",
	"white":  "\033[97m",
}

// Writer renders glyph records to an output stream.
type Writer struct {
	w     io.Writer
	color bool
}

// NewWriter creates a renderer. With color set, the pattern dump
// highlights filled cells using ANSI escapes.
func NewWriter(w io.Writer, color bool) *Writer {
	return &Writer{w: w, color: color}
}

// Rows returns the pattern of rec as one string per pixel row, each row a
// run of two-character cells, read under the given packing.
func Rows(rec []byte, spec model.GlyphSpec, packing model.Packing) ([]string, error) {
	rows := make([]string, 0, spec.Height)
	var sb strings.Builder
	for row := 0; row < spec.Height; row++ {
		sb.Reset()
		for col := 0; col < spec.Width; col++ {
			bit, err := bitplane.Get(rec, spec, packing, row, col)
			if err != nil {
				return nil, err
			}
			if bit != 0 {
				sb.WriteString(FilledCell)
			} else {
				sb.WriteString(EmptyCell)
			}
		}
		rows = append(rows, sb.String())
	}
	return rows, nil
}

// WritePattern dumps rec as a framed pixel grid with column and row
// rulers and a trailing legend.
func (w *Writer) WritePattern(rec []byte, spec model.GlyphSpec, packing model.Packing) error {
	rows, err := Rows(rec, spec, packing)
	if err != nil {
		return err
	}

	// Column ruler: tens then units.
	fmt.Fprint(w.w, "     ")
	for col := 0; col < spec.Width; col++ {
		if col >= 10 {
			fmt.Fprintf(w.w, "%d ", col/10)
		} else {
			fmt.Fprint(w.w, "  ")
		}
	}
	fmt.Fprintln(w.w)
	fmt.Fprint(w.w, "     ")
	for col := 0; col < spec.Width; col++ {
		fmt.Fprintf(w.w, "%d ", col%10)
	}
	fmt.Fprintln(w.w)

	rule := "    +" + strings.Repeat("-", spec.Width*2+1) + "+"
	fmt.Fprintln(w.w, rule)
	for i, row := range rows {
		if w.color {
			row = strings.ReplaceAll(row, FilledCell, ansi["green"]+FilledCell+ansi["reset"])
		}
		fmt.Fprintf(w.w, "%3d | %s |\n", i, row)
	}
	fmt.Fprintln(w.w, rule)

	fmt.Fprintf(w.w, "\n%s filled, %s empty; coordinates are (row, col) from 0\n",
		FilledCell, EmptyCell)
	return nil
}

// SourceArray formats rec as byte literals grouped by BytesPerRow, each
// group annotated with its bits. The exact layout is a display convenience;
// only the byte values are contractual.
func SourceArray(rec []byte, spec model.GlyphSpec) []string {
	perRow := spec.BytesPerRow()
	size := spec.RecordSize()

	var lines []string
	for off := 0; off < size; off += perRow {
		hexes := make([]string, 0, perRow)
		var bits strings.Builder
		for i := off; i < off+perRow && i < size; i++ {
			var b byte
			if i < len(rec) {
				b = rec[i]
			}
			hexes = append(hexes, fmt.Sprintf("0x%02x", b))
			bits.WriteString(fmt.Sprintf("%08b", b))
		}
		lines = append(lines, fmt.Sprintf("    %s, /* %s */", strings.Join(hexes, ", "), bits.String()))
	}
	return lines
}

// WriteSourceArray dumps rec as a C-style array literal.
func (w *Writer) WriteSourceArray(rec []byte, spec model.GlyphSpec) error {
	if _, err := fmt.Fprintf(w.w, "const uint8_t font_data[%d] = {\n", spec.RecordSize()); err != nil {
		return err
	}
	for _, line := range SourceArray(rec, spec) {
		fmt.Fprintln(w.w, line)
	}
	_, err := fmt.Fprintln(w.w, "};")
	return err
}

// TableGlyph is one character's entry in a full-table export.
type TableGlyph struct {
	Codepoint rune
	Record    []byte // row-major, RecordSize bytes; nil renders blank
}

// WriteTable emits a whole-font data table with a metadata header, one
// commented group of byte literals per glyph.
func (w *Writer) WriteTable(name string, spec model.GlyphSpec, glyphs []TableGlyph) error {
	fmt.Fprintf(w.w, "const font_%s = {\n", name)
	fmt.Fprintf(w.w, "    width: %d,\n", spec.Width)
	fmt.Fprintf(w.w, "    height: %d,\n", spec.Height)
	fmt.Fprintf(w.w, "    bytesPerChar: %d,\n", spec.RecordSize())
	fmt.Fprintln(w.w, "    data: [")

	blank := make([]byte, spec.RecordSize())
	for _, g := range glyphs {
		rec := g.Record
		if rec == nil {
			rec = blank
		}
		fmt.Fprintf(w.w, "    /* %d 0x%02x %s */\n", g.Codepoint, g.Codepoint, glyphName(g.Codepoint))
		for _, line := range SourceArray(rec, spec) {
			fmt.Fprintln(w.w, line)
		}
		fmt.Fprintln(w.w)
	}
	fmt.Fprintln(w.w, "    ]")
	_, err := fmt.Fprintln(w.w, "}")
	return err
}

// glyphName renders a code point for a table comment, caret-escaping
// control characters.
func glyphName(r rune) string {
	switch {
	case r < 0x20:
		return fmt.Sprintf("'^%c'", r+0x40)
	case r == 0x7F:
		return "'.'"
	default:
		return fmt.Sprintf("'%c'", r)
	}
}
