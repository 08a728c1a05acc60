package text

import (
	"math"
	"sort"
	"strings"
)

// MeasureFunc returns the rendered advance width of s in pixels.
type MeasureFunc func(s string) float64

// Wrapped is wrapped text that still knows where each source word went.
type Wrapped struct {
	Text string

	// byte offset of word i in the source and in Text
	src []int
	dst []int
}

// Wrap inserts line breaks into s so lines stay close to an even share of
// maxWidth. See Layout.
func Wrap(s string, maxWidth float64, measure MeasureFunc) string {
	return Layout(s, maxWidth, measure).Text
}

// Layout greedily balances s over 1+floor(total/maxWidth) lines.
//
// Words are split on single spaces, so runs of blanks survive as empty
// words. A word that keeps the line within the per-line budget is appended
// with a trailing space. Past the budget, the word still joins the line when
// the result stays under maxWidth and the line is closed; otherwise the line
// is closed before it. Lines may keep trailing spaces. A word wider than
// maxWidth ends up alone on its line.
func Layout(s string, maxWidth float64, measure MeasureFunc) Wrapped {
	if s == "" || maxWidth <= 0 || measure == nil {
		return Wrapped{Text: s}
	}

	total := measure(s)
	lineCount := 1 + math.Floor(total/maxWidth)
	budget := math.Ceil(total / lineCount)

	words := strings.Split(s, " ")
	w := Wrapped{
		src: make([]int, len(words)),
		dst: make([]int, len(words)),
	}

	var out, current strings.Builder
	pos := 0
	for i, word := range words {
		w.src[i] = pos
		pos += len(word) + 1

		width := measure(current.String() + word)
		switch {
		case width <= budget:
			w.dst[i] = out.Len() + current.Len()
			current.WriteString(word)
			current.WriteByte(' ')
		case width < maxWidth:
			w.dst[i] = out.Len() + current.Len()
			current.WriteString(word)
			out.WriteString(current.String())
			out.WriteByte('\n')
			current.Reset()
		default:
			if current.Len() > 0 {
				out.WriteString(current.String())
				out.WriteByte('\n')
				current.Reset()
			}
			w.dst[i] = out.Len()
			current.WriteString(word)
			current.WriteByte(' ')
		}
	}
	out.WriteString(current.String())
	w.Text = out.String()
	return w
}

// Offset maps a byte offset in the unwrapped text to the matching offset in
// w.Text.
func (w Wrapped) Offset(off int) int {
	if len(w.src) == 0 {
		return off
	}
	i := sort.SearchInts(w.src, off+1) - 1
	if i < 0 {
		return off
	}
	return w.dst[i] + off - w.src[i]
}

// Lines splits w.Text on line breaks.
func (w Wrapped) Lines() []string {
	return strings.Split(w.Text, "\n")
}

// Locate returns the line containing byte offset off in s and the text of
// that line before off.
func Locate(s string, off int) (line int, prefix string) {
	if off > len(s) {
		off = len(s)
	}
	if off < 0 {
		off = 0
	}
	head := s[:off]
	line = strings.Count(head, "\n")
	if i := strings.LastIndexByte(head, '\n'); i >= 0 {
		head = head[i+1:]
	}
	return line, head
}
