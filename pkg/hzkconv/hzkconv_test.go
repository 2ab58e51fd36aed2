package hzkconv

import (
	"bytes"
	"testing"

	"github.com/mzhao/hzkconv/internal/model"
)

func TestFamilyLookup(t *testing.T) {
	fam, err := Family("HZK16")
	if err != nil {
		t.Fatalf("Family failed: %v", err)
	}
	if fam.Spec.RecordSize() != 32 {
		t.Errorf("HZK16 record size = %d, want 32", fam.Spec.RecordSize())
	}

	if _, err := Family("NOPE"); err == nil {
		t.Errorf("unknown family resolved")
	}
}

func TestGlyph(t *testing.T) {
	fam, _ := Family("HZK16")

	// Build a blob where record 5029 (U+4E2D) carries a marker byte.
	blob := make([]byte, (5029+1)*32)
	blob[5029*32] = 0xAA

	rec, err := Glyph(fam, blob, '中')
	if err != nil {
		t.Fatalf("Glyph failed: %v", err)
	}
	if len(rec) != 32 || rec[0] != 0xAA {
		t.Errorf("Glyph returned the wrong record")
	}

	// Unrepresentable characters fail as ordinary outcomes.
	if _, err := Glyph(fam, blob, '㐖'); err == nil {
		t.Errorf("non-GB2312 character resolved")
	}
}

func TestTranscodeBlobRoundTrip(t *testing.T) {
	spec := model.GlyphSpec{Width: 16, Height: 16}
	blob := make([]byte, 3*spec.RecordSize())
	for i := range blob {
		blob[i] = byte(i * 7)
	}

	mid, report, err := TranscodeBlob(blob, spec, model.ColumnMajor, model.RowMajor)
	if err != nil {
		t.Fatalf("TranscodeBlob failed: %v", err)
	}
	if report.Records != 3 || report.DroppedBytes != 0 {
		t.Errorf("report = %+v", report)
	}

	back, _, err := TranscodeBlob(mid, spec, model.RowMajor, model.ColumnMajor)
	if err != nil {
		t.Fatalf("TranscodeBlob failed: %v", err)
	}
	if !bytes.Equal(blob, back) {
		t.Errorf("round trip does not reproduce the blob")
	}
}

func TestRowsAndMap(t *testing.T) {
	fam, _ := Family("HZK16")
	rec := make([]byte, 32)
	rec[0] = 0x80

	rows, err := Rows(rec, fam.Spec, model.RowMajor)
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if len(rows) != 16 {
		t.Errorf("got %d rows", len(rows))
	}

	m := BuildCodepointMap()
	if b, ok := m.Lookup('中'); !ok || b != [2]byte{0xD6, 0xD0} {
		t.Errorf("Lookup('中') = %v, %v", b, ok)
	}
}
