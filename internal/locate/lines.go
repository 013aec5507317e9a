package locate

import "strings"

// line is one document line without its terminator, plus the byte offset of
// its first character in the document.
type line struct {
	text  string
	start int
}

// splitLines derives the document's line table. Offsets always point into the
// original content, so spans computed from them splice cleanly.
func splitLines(content string) []line {
	var lines []line
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			lines = append(lines, line{text: content[start:i], start: start})
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, line{text: content[start:], start: start})
	}
	return lines
}

// endOffset converts a terminating line index from resolveEnd into a byte
// offset. An index past the last line means the span runs to end of document.
func endOffset(lines []line, endLine, docLen int) int {
	if endLine >= len(lines) {
		return docLen
	}
	return lines[endLine].start
}

// spanEndOffset converts resolveEnd's terminating line into a byte offset,
// stepping back over any run of blank lines directly before the boundary so
// the separation between a function and its next sibling survives
// replacement. Comment lines stay inside the span.
func spanEndOffset(lines []line, startLine, endLine, docLen int) int {
	for endLine > startLine+1 && endLine-1 < len(lines) && isBlank(lines[endLine-1].text) {
		endLine--
	}
	return endOffset(lines, endLine, docLen)
}

// indentWidth counts the leading whitespace columns of a line. Tabs and
// spaces each count as one column; the count is only ever compared against
// counts produced the same way.
func indentWidth(text string) int {
	for i := 0; i < len(text); i++ {
		if text[i] != ' ' && text[i] != '\t' {
			return i
		}
	}
	return len(text)
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

func isComment(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "#")
}
