package store

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mzhao/hzkconv/internal/model"
)

var spec16 = model.GlyphSpec{Width: 16, Height: 16} // 32-byte records

func TestReadRecord(t *testing.T) {
	blob := make([]byte, 96)
	for i := range blob {
		blob[i] = byte(i)
	}
	s := New(blob, spec16)

	rec := s.ReadRecord(1)
	if len(rec) != 32 {
		t.Fatalf("record length = %d, want 32", len(rec))
	}
	if rec[0] != 32 || rec[31] != 63 {
		t.Errorf("record 1 = [%d..%d], want [32..63]", rec[0], rec[31])
	}
}

func TestReadRecordPastEnd(t *testing.T) {
	blob := make([]byte, 40) // one complete record plus 8 bytes
	s := New(blob, spec16)

	if got := len(s.ReadRecord(1)); got != 8 {
		t.Errorf("partial record length = %d, want 8", got)
	}
	if rec := s.ReadRecord(2); rec != nil {
		t.Errorf("record past end = %v, want nil", rec)
	}
	if rec := s.ReadRecord(-1); rec != nil {
		t.Errorf("negative index = %v, want nil", rec)
	}
}

func TestWriteRecord(t *testing.T) {
	blob := make([]byte, 64)
	s := New(blob, spec16)

	rec := bytes.Repeat([]byte{0xAB}, 32)
	if err := s.WriteRecord(1, rec); err != nil {
		t.Fatalf("WriteRecord failed: %v", err)
	}
	if blob[31] != 0 {
		t.Errorf("record 0 modified")
	}
	if blob[32] != 0xAB || blob[63] != 0xAB {
		t.Errorf("record 1 not written")
	}
}

func TestWriteRecordSizeMismatch(t *testing.T) {
	s := New(make([]byte, 64), spec16)

	if err := s.WriteRecord(0, make([]byte, 31)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("short record error = %v, want ErrSizeMismatch", err)
	}
	if err := s.WriteRecord(0, make([]byte, 33)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("long record error = %v, want ErrSizeMismatch", err)
	}
	if err := s.WriteRecord(2, make([]byte, 32)); err == nil {
		t.Errorf("write past end succeeded")
	}
}

func TestRecordCountAndRemainder(t *testing.T) {
	cases := []struct {
		size      int
		count     int
		remainder int
	}{
		{0, 0, 0},
		{31, 0, 31},
		{32, 1, 0},
		{100, 3, 4},
	}
	for _, c := range cases {
		s := New(make([]byte, c.size), spec16)
		if got := s.RecordCount(); got != c.count {
			t.Errorf("size %d: RecordCount = %d, want %d", c.size, got, c.count)
		}
		if got := s.Remainder(); got != c.remainder {
			t.Errorf("size %d: Remainder = %d, want %d", c.size, got, c.remainder)
		}
	}
}

func TestRecordIsAView(t *testing.T) {
	blob := make([]byte, 32)
	s := New(blob, spec16)

	rec := s.ReadRecord(0)
	rec[0] = 0xFF
	if blob[0] != 0xFF {
		t.Errorf("ReadRecord returned a copy, want a view")
	}
}
