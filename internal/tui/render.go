package tui

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Box drawing characters (Unicode)
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
	BoxTeeLeft     = "├"
	BoxTeeRight    = "┤"
)

// Separator is a content line that BoxWithContent draws as a horizontal rule.
const Separator = "\x00sep"

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;?]*[A-Za-z]")

// VisibleWidth returns the number of runes in s, not counting ANSI escape
// sequences.
func VisibleWidth(s string) int {
	return utf8.RuneCountInString(ansiPattern.ReplaceAllString(s, ""))
}

// BoxWithContent draws a box containing the given content lines.
// Each line is padded/truncated to fit within the box.
func BoxWithContent(width int, content []string) []string {
	if width < 4 {
		return nil
	}

	inner := width - 4 // borders and padding
	rule := strings.Repeat(BoxHorizontal, width-2)

	lines := make([]string, 0, len(content)+2)
	lines = append(lines, BoxTopLeft+rule+BoxTopRight)
	for _, line := range content {
		if line == Separator {
			lines = append(lines, BoxTeeLeft+rule+BoxTeeRight)
			continue
		}
		lines = append(lines, BoxVertical+" "+PadOrTruncate(line, inner)+" "+BoxVertical)
	}
	lines = append(lines, BoxBottomLeft+rule+BoxBottomRight)
	return lines
}

// PadOrTruncate pads or truncates a string to exactly width visible
// characters. Styled strings that need truncating lose their styling.
func PadOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	n := VisibleWidth(s)
	switch {
	case n == width:
		return s
	case n < width:
		return s + strings.Repeat(" ", width-n)
	}
	return Truncate(ansiPattern.ReplaceAllString(s, ""), width)
}

// Truncate truncates a string to max width, adding ellipsis if needed.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width >= 3 {
		return string(runes[:width-3]) + "..."
	}
	return string(runes[:width])
}

// SplitColumns renders left and right on one line of the given width, with
// right flush against the end.
func SplitColumns(left, right string, width int) string {
	gap := width - VisibleWidth(left) - VisibleWidth(right)
	if gap < 1 {
		return PadOrTruncate(left+" "+right, width)
	}
	return left + strings.Repeat(" ", gap) + right
}

// Style applies ANSI style codes to text.
func Style(s string, codes ...string) string {
	if len(codes) == 0 {
		return s
	}
	return strings.Join(codes, "") + s + Reset
}
