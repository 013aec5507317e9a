package locate

// boundaryState drives the end-of-block scan below a definition line.
type boundaryState int

const (
	stateInBody boundaryState = iota
	stateDone
)

// resolveEnd returns the index of the first line at or below startLine+1 that
// terminates the block starting at startLine: the first non-blank,
// non-comment line whose indentation is <= indent. Blank and comment lines
// never terminate the block and stay inside it regardless of their own
// indentation. Returns len(lines) when the block runs to end of document.
//
// The scan is a pure indentation heuristic: it does not understand multi-line
// strings, so a low-indentation line inside a triple-quoted literal terminates
// the block early. Known limitation.
func resolveEnd(lines []line, startLine, indent int) int {
	state := stateInBody
	end := len(lines)

	for i := startLine + 1; i < len(lines) && state == stateInBody; i++ {
		ln := lines[i]
		if isBlank(ln.text) || isComment(ln.text) {
			continue
		}
		if indentWidth(ln.text) <= indent {
			end = i
			state = stateDone
		}
	}
	return end
}
