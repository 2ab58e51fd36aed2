package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mzhao/hzkconv/internal/model"
	"github.com/mzhao/hzkconv/internal/transcode"
)

func TestRowsTopLeftSquare(t *testing.T) {
	// 16x16 column-major record, top-left 2x2 set.
	spec := model.GlyphSpec{Width: 16, Height: 16}
	rec := make([]byte, spec.RecordSize())
	rec[0] = 0xC0
	rec[2] = 0xC0

	rows, err := Rows(rec, spec, model.ColumnMajor)
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if len(rows) != 16 {
		t.Fatalf("got %d rows, want 16", len(rows))
	}

	wantTop := FilledCell + FilledCell + strings.Repeat(EmptyCell, 14)
	wantBlank := strings.Repeat(EmptyCell, 16)
	for i, row := range rows {
		want := wantBlank
		if i < 2 {
			want = wantTop
		}
		if row != want {
			t.Errorf("row %d = %q, want %q", i, row, want)
		}
	}
}

func TestRowsIdenticalAfterTranscode(t *testing.T) {
	// The visual output must not change when the record is re-packed and
	// re-read under the new packing.
	spec := model.GlyphSpec{Width: 16, Height: 16}
	rec := make([]byte, spec.RecordSize())
	rec[0] = 0xC0
	rec[2] = 0xC0

	before, err := Rows(rec, spec, model.ColumnMajor)
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}

	converted, err := transcode.Record(rec, spec, model.ColumnMajor, model.RowMajor)
	if err != nil {
		t.Fatalf("transcode failed: %v", err)
	}
	after, err := Rows(converted, spec, model.RowMajor)
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}

	for i := range before {
		if before[i] != after[i] {
			t.Errorf("row %d differs after transcode:\n  %q\n  %q", i, before[i], after[i])
		}
	}
}

func TestSourceArray(t *testing.T) {
	spec := model.GlyphSpec{Width: 16, Height: 2}
	rec := []byte{0xC0, 0x00, 0x01, 0xFF}

	lines := SourceArray(rec, spec)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "0xc0, 0x00") {
		t.Errorf("line 0 = %q, missing byte literals", lines[0])
	}
	if !strings.Contains(lines[0], "1100000000000000") {
		t.Errorf("line 0 = %q, missing bit comment", lines[0])
	}
	if !strings.Contains(lines[1], "0x01, 0xff") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestSourceArrayZeroPadsShortRecord(t *testing.T) {
	spec := model.GlyphSpec{Width: 8, Height: 4}
	lines := SourceArray([]byte{0xFF}, spec)
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	for _, line := range lines[1:] {
		if !strings.Contains(line, "0x00") {
			t.Errorf("padding line = %q, want zero byte", line)
		}
	}
}

func TestWritePattern(t *testing.T) {
	spec := model.GlyphSpec{Width: 8, Height: 8}
	rec := make([]byte, spec.RecordSize())
	rec[0] = 0x80

	var buf bytes.Buffer
	if err := NewWriter(&buf, false).WritePattern(rec, spec, model.RowMajor); err != nil {
		t.Fatalf("WritePattern failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, FilledCell) {
		t.Errorf("output missing filled cell:\n%s", out)
	}
	if !strings.Contains(out, "  0 |") {
		t.Errorf("output missing row ruler:\n%s", out)
	}
}

func TestWriteTable(t *testing.T) {
	spec := model.GlyphSpec{Width: 8, Height: 2}
	var buf bytes.Buffer
	w := NewWriter(&buf, false)

	glyphs := []TableGlyph{
		{Codepoint: 'A', Record: []byte{0x18, 0x24}},
		{Codepoint: 0x01}, // blank
	}
	if err := w.WriteTable("8x2", spec, glyphs); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"width: 8", "height: 2", "bytesPerChar: 2", "'A'", "'^A'", "0x18"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
