package charset

// Map is an immutable table from Unicode code points to their two GB2312
// encoding bytes, built by exhaustive enumeration of the addressing grid.
type Map struct {
	byRune map[rune][2]byte
}

// BuildMap enumerates every (region, position) pair in the given ranges,
// asks the codec to decode the corresponding bytes, and records each
// success. Unassigned pairs are expected and skipped. If the codec maps two
// pairs to the same code point the later pair in enumeration order wins;
// this is the documented tie-break, not an accident.
func BuildMap(codec Codec, regionLo, regionHi, posLo, posHi int) *Map {
	m := &Map{byRune: make(map[rune][2]byte)}
	for region := regionLo; region <= regionHi; region++ {
		for pos := posLo; pos <= posHi; pos++ {
			b1 := byte(gridBase + region)
			b2 := byte(gridBase + pos)
			r, err := codec.Decode(b1, b2)
			if err != nil {
				continue
			}
			m.byRune[r] = [2]byte{b1, b2}
		}
	}
	return m
}

// BuildFullMap enumerates the complete 94x94 grid.
func BuildFullMap(codec Codec) *Map {
	return BuildMap(codec, 1, gridSize, 1, gridSize)
}

// Lookup returns the encoding bytes for r.
func (m *Map) Lookup(r rune) ([2]byte, bool) {
	b, ok := m.byRune[r]
	return b, ok
}

// Len returns the number of mapped code points.
func (m *Map) Len() int {
	return len(m.byRune)
}

// Entries returns a copy of the underlying table, one entry per mapped
// code point. The copy keeps Map immutable after construction.
func (m *Map) Entries() map[rune][2]byte {
	out := make(map[rune][2]byte, len(m.byRune))
	for r, b := range m.byRune {
		out[r] = b
	}
	return out
}
