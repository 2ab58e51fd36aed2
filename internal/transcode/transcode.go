// Package transcode re-packs glyph records between bit-packing directions.
//
// Transcoding permutes bit positions and never changes bit values, so the
// set-pixel count of a record is invariant and a round trip reproduces the
// input exactly.
package transcode

import (
	"fmt"

	"github.com/mzhao/hzkconv/internal/bitplane"
	"github.com/mzhao/hzkconv/internal/model"
	"github.com/mzhao/hzkconv/internal/store"
)

// Record re-packs a single glyph record from one packing direction to the
// other and returns a fresh RecordSize buffer. src may be shorter than a
// full record; missing trailing bytes read as blank pixels.
func Record(src []byte, spec model.GlyphSpec, from, to model.Packing) ([]byte, error) {
	dst := make([]byte, spec.RecordSize())
	for row := 0; row < spec.Height; row++ {
		for col := 0; col < spec.Width; col++ {
			bit, err := bitplane.Get(src, spec, from, row, col)
			if err != nil {
				return nil, fmt.Errorf("read (%d,%d): %w", row, col, err)
			}
			if bit == 0 {
				continue
			}
			if err := bitplane.Set(dst, spec, to, row, col, 1); err != nil {
				return nil, fmt.Errorf("write (%d,%d): %w", row, col, err)
			}
		}
	}
	return dst, nil
}

// Report summarizes a whole-store conversion. DroppedBytes counts the
// trailing partial record left out of the destination; it is informational
// and must be surfaced to the user, never silently ignored.
type Report struct {
	Records      int
	DroppedBytes int
}

// Progress receives the running record count during a whole-store
// conversion. A nil Progress is quietly skipped.
type Progress func(done, total int)

// All converts every complete record of src in index order and returns the
// destination blob. A trailing partial record is dropped and reported.
func All(src *store.Store, from, to model.Packing, progress Progress) ([]byte, Report, error) {
	spec := src.Spec()
	size := spec.RecordSize()
	count := src.RecordCount()

	report := Report{DroppedBytes: src.Remainder()}
	dstBlob := make([]byte, count*size)
	dst := store.New(dstBlob, spec)

	for i := 0; i < count; i++ {
		rec, err := Record(src.ReadRecord(i), spec, from, to)
		if err != nil {
			return nil, report, fmt.Errorf("record %d: %w", i, err)
		}
		if err := dst.WriteRecord(i, rec); err != nil {
			return nil, report, fmt.Errorf("record %d: %w", i, err)
		}
		report.Records++
		if progress != nil {
			progress(i+1, count)
		}
	}
	return dstBlob, report, nil
}
