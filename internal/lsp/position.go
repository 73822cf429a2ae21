package lsp

// PositionConverter translates between byte offsets, which spelling
// problems use, and LSP positions, whose character is counted in UTF-16
// code units.
type PositionConverter struct {
	content string
	lines   []lineInfo
}

// lineInfo stores one line's extent.
type lineInfo struct {
	byteOffset int // Byte offset of line start
	byteLen    int // Length in bytes, excluding the newline
}

// NewPositionConverter creates a converter for content.
func NewPositionConverter(content string) *PositionConverter {
	pc := &PositionConverter{content: content}
	pc.buildLineIndex()
	return pc
}

func (pc *PositionConverter) buildLineIndex() {
	start := 0
	for i := 0; i < len(pc.content); i++ {
		if pc.content[i] == '\n' {
			pc.lines = append(pc.lines, lineInfo{byteOffset: start, byteLen: i - start})
			start = i + 1
		}
	}
	// Last line, possibly empty.
	pc.lines = append(pc.lines, lineInfo{byteOffset: start, byteLen: len(pc.content) - start})
}

// LineCount returns the number of lines.
func (pc *PositionConverter) LineCount() int {
	return len(pc.lines)
}

// OffsetToPosition converts a byte offset to a position. Offsets outside
// the content are clamped.
func (pc *PositionConverter) OffsetToPosition(offset int) Position {
	if offset <= 0 {
		return Position{}
	}
	if offset > len(pc.content) {
		offset = len(pc.content)
	}

	// Binary search for the last line starting at or before offset.
	lo, hi := 0, len(pc.lines)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if pc.lines[mid].byteOffset <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	line := pc.lines[lo]
	inLine := offset - line.byteOffset
	if inLine > line.byteLen {
		inLine = line.byteLen
	}
	text := pc.content[line.byteOffset : line.byteOffset+line.byteLen]
	return Position{Line: lo, Character: byteToUTF16Offset(text, inLine)}
}

// PositionToOffset converts a position to a byte offset. Positions past
// the end of a line map to the line end, and past the last line to the end
// of the content.
func (pc *PositionConverter) PositionToOffset(pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(pc.lines) {
		return len(pc.content)
	}
	line := pc.lines[pos.Line]
	text := pc.content[line.byteOffset : line.byteOffset+line.byteLen]
	return line.byteOffset + utf16ToByteOffset(text, pos.Character)
}

// SpanToRange converts a byte span to a range.
func (pc *PositionConverter) SpanToRange(offset, length int) Range {
	return Range{
		Start: pc.OffsetToPosition(offset),
		End:   pc.OffsetToPosition(offset + length),
	}
}

// RangeToSpan converts a range to a byte offset and length.
func (pc *PositionConverter) RangeToSpan(rng Range) (offset, length int) {
	start := pc.PositionToOffset(rng.Start)
	end := pc.PositionToOffset(rng.End)
	if end < start {
		end = start
	}
	return start, end - start
}

// --- UTF-16 conversion helpers ---

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2 // Surrogate pair
	}
	return 1
}

// byteToUTF16Offset converts a byte offset within s to a UTF-16 offset.
func byteToUTF16Offset(s string, byteOff int) int {
	n := 0
	for i, r := range s {
		if i >= byteOff {
			break
		}
		n += utf16Len(r)
	}
	return n
}

// utf16ToByteOffset converts a UTF-16 offset within s to a byte offset.
func utf16ToByteOffset(s string, utf16Off int) int {
	if utf16Off <= 0 {
		return 0
	}
	n := 0
	for i, r := range s {
		if n >= utf16Off {
			return i
		}
		n += utf16Len(r)
	}
	return len(s)
}

// ComparePositions returns -1 if a < b, 0 if a == b, 1 if a > b.
func ComparePositions(a, b Position) int {
	switch {
	case a.Line < b.Line:
		return -1
	case a.Line > b.Line:
		return 1
	case a.Character < b.Character:
		return -1
	case a.Character > b.Character:
		return 1
	}
	return 0
}

// RangesOverlap reports whether a and b share a position. Touching
// ranges overlap so a cursor at the end of a word still selects it.
func RangesOverlap(a, b Range) bool {
	return ComparePositions(a.Start, b.End) <= 0 && ComparePositions(b.Start, a.End) <= 0
}
