package documents

import (
	"strings"
	"unicode"
)

// FontMetrics measures text set in one font.
type FontMetrics interface {
	TextWidth(text string, size float64) float64
}

// DrawOp is one run of text to draw with its baseline at (X, Y).
// Y grows upwards from the bottom of the page.
type DrawOp struct {
	Text string
	X    float64
	Y    float64
	Bold bool
	Size float64
}

type token struct {
	text  string
	bold  bool
	space bool
	width float64
}

// tokenize splits text into alternating word and whitespace runs.
func tokenize(text string, bold bool) []token {
	var (
		tokens  []token
		current strings.Builder
		inSpace bool
	)

	for i, r := range text {
		space := unicode.IsSpace(r)
		if i > 0 && space != inSpace {
			tokens = append(tokens, token{text: current.String(), bold: bold, space: inSpace})
			current.Reset()
		}
		inSpace = space
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		tokens = append(tokens, token{text: current.String(), bold: bold, space: inSpace})
	}

	return tokens
}

// LayoutWrapped greedily packs the segments' words into lines no wider than maxWidth.
// The first line sits at startY and each line moves the cursor down by lineHeight.
// It returns the draw operations and the cursor below the last line.
// A word wider than maxWidth gets a line of its own.
func LayoutWrapped(segments []Segment, originX, startY, maxWidth, fontSize float64, normal, bold FontMetrics, lineHeight float64) ([]DrawOp, float64) {
	var (
		ops       []DrawOp
		line      []token
		lineWidth float64
		y         = startY
	)

	flush := func() {
		ops = append(ops, lineOps(line, originX, y, fontSize)...)
		y -= lineHeight
		line = line[:0]
		lineWidth = 0
	}

	for _, seg := range segments {
		for _, tok := range tokenize(seg.Text, seg.Bold) {
			if tok.space && len(line) == 0 {
				continue
			}

			metrics := normal
			if tok.bold {
				metrics = bold
			}
			tok.width = metrics.TextWidth(tok.text, fontSize)

			if len(line) > 0 && lineWidth+tok.width > maxWidth {
				flush()
				if tok.space {
					continue
				}
			}

			line = append(line, tok)
			lineWidth += tok.width
		}
	}

	if len(line) > 0 {
		flush()
	}

	return ops, y
}

// lineOps merges consecutive tokens of the same weight and drops trailing whitespace.
func lineOps(line []token, x, y, size float64) []DrawOp {
	for len(line) > 0 && line[len(line)-1].space {
		line = line[:len(line)-1]
	}

	var ops []DrawOp
	var current *DrawOp
	for _, tok := range line {
		if current == nil || current.Bold != tok.bold {
			ops = append(ops, DrawOp{X: x, Y: y, Bold: tok.bold, Size: size})
			current = &ops[len(ops)-1]
		}
		current.Text += tok.text
		x += tok.width
	}
	return ops
}

// WrapText wraps single-style text word by word and returns the lines.
func WrapText(text string, maxWidth, size float64, metrics FontMetrics) []string {
	var (
		lines []string
		line  string
	)

	for _, word := range strings.Fields(text) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if line != "" && metrics.TextWidth(candidate, size) > maxWidth {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, line)
	}

	return lines
}
