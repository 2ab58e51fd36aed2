// Package hzkconv provides functions for working with HZK-style fixed-size
// bitmap glyph stores.
//
// This package can be used as a library to locate, transcode, and render
// glyph records programmatically.
//
// Example usage:
//
//	data, _ := os.ReadFile("HZK16")
//	fam, _ := hzkconv.Family("HZK16")
//
//	rec, err := hzkconv.Glyph(fam, data, '中')
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rows, _ := hzkconv.Rows(rec, fam.Spec, fam.Packing)
package hzkconv

import (
	"github.com/mzhao/hzkconv/internal/charset"
	"github.com/mzhao/hzkconv/internal/model"
	"github.com/mzhao/hzkconv/internal/render"
	"github.com/mzhao/hzkconv/internal/store"
	"github.com/mzhao/hzkconv/internal/transcode"
)

// Family looks up a registered font family by name.
//
// Example:
//
//	fam, err := hzkconv.Family("HZK16")
func Family(name string) (model.Family, error) {
	fam, ok := model.LookupFamily(name)
	if !ok {
		return model.Family{}, &Error{Code: "unknown_family", Message: "unknown font family: " + name}
	}
	return fam, nil
}

// Glyph resolves r inside a font blob and returns its record.
//
// The returned slice is a view into data; it may be shorter than
// RecordSize when the blob is truncated, which renders as blank pixels.
func Glyph(fam model.Family, data []byte, r rune) ([]byte, error) {
	index, err := charset.Resolve(r, fam, charset.NewGB2312())
	if err != nil {
		return nil, err
	}
	return store.New(data, fam.Spec).ReadRecord(index), nil
}

// Transcode re-packs a single glyph record between packing directions.
func Transcode(rec []byte, spec model.GlyphSpec, from, to model.Packing) ([]byte, error) {
	return transcode.Record(rec, spec, from, to)
}

// TranscodeBlob re-packs every complete record of a font blob, preserving
// record order, and reports any trailing bytes it had to drop.
//
// Example:
//
//	dst, report, err := hzkconv.TranscodeBlob(src, fam.Spec, model.ColumnMajor, model.RowMajor)
//	if report.DroppedBytes > 0 {
//	    // blob length was not a record multiple
//	}
func TranscodeBlob(data []byte, spec model.GlyphSpec, from, to model.Packing) ([]byte, transcode.Report, error) {
	return transcode.All(store.New(data, spec), from, to, nil)
}

// Rows renders a record as one string of two-character cells per pixel
// row, read under the given packing.
func Rows(rec []byte, spec model.GlyphSpec, packing model.Packing) ([]string, error) {
	return render.Rows(rec, spec, packing)
}

// BuildCodepointMap enumerates the full 94x94 GB2312 grid and returns the
// Unicode-to-encoding-bytes table.
func BuildCodepointMap() *charset.Map {
	return charset.BuildFullMap(charset.NewGB2312())
}

// Error represents an hzkconv error.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
