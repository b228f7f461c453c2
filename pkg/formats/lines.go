package formats

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// trailingSpace is the set trimmed from the end of every OBJ/MTL line.
const trailingSpace = " \t\n\r\f\v"

// maxLineSize bounds a single line; large exports put thousands of
// vertex keys on one face line.
const maxLineSize = 4 << 20

// lineReader yields the directive lines of a Wavefront text file.
// Comment and blank lines are skipped.
type lineReader struct {
	sc        *bufio.Scanner
	line      int
	directive string
	rest      string
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &lineReader{sc: sc}
}

// next advances to the next directive line. It returns false at EOF or on
// a read error, which Err reports.
func (lr *lineReader) next() bool {
	for lr.sc.Scan() {
		lr.line++
		text := lr.sc.Text()
		if strings.HasPrefix(text, "#") {
			continue
		}
		text = strings.TrimRight(text, trailingSpace)
		if text == "" {
			continue
		}
		lr.split(text)
		return true
	}
	return false
}

// split stores the first token as the directive and the rest of the line,
// with leading whitespace removed, verbatim.
func (lr *lineReader) split(text string) {
	text = strings.TrimLeft(text, trailingSpace)
	end := strings.IndexAny(text, trailingSpace)
	if end < 0 {
		lr.directive, lr.rest = text, ""
		return
	}
	lr.directive = text[:end]
	lr.rest = strings.TrimLeft(text[end:], trailingSpace)
}

// fields splits the remainder of the current line into tokens.
func (lr *lineReader) fields() []string {
	return strings.FieldsFunc(lr.rest, isSpace)
}

func (lr *lineReader) err() error {
	return lr.sc.Err()
}

func isSpace(r rune) bool {
	return strings.ContainsRune(trailingSpace, r)
}

// parseFloats reads up to len(dst) numbers from tokens. Missing, malformed
// or non-finite numbers leave the destination at zero.
func parseFloats(tokens []string, dst []float32) {
	for i := range dst {
		dst[i] = 0
		if i >= len(tokens) {
			continue
		}
		f, err := strconv.ParseFloat(tokens[i], 32)
		if err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			dst[i] = float32(f)
		}
	}
}
