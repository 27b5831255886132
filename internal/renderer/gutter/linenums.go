// Package gutter formats the line-number column to the left of the text.
//
// The column is NumberWidth(lineCount) cells of right-justified 1-based
// line number followed by one blank separator, so text starts at
// Width(lineCount).
package gutter

import "strconv"

// NumberWidth returns the width of the number field: floor(log10(n)) + 2.
// The extra cell leaves a blank before the widest number.
func NumberWidth(lineCount int) int {
	return countDigits(lineCount) + 1
}

// Width returns the total gutter width including the separator.
func Width(lineCount int) int {
	return NumberWidth(lineCount) + 1
}

// Format returns the gutter text for line (0-indexed): the 1-based number
// right-justified in NumberWidth(lineCount), then the separator.
func Format(line, lineCount int) string {
	return PadLeft(FormatNumber(line+1), NumberWidth(lineCount)) + " "
}

// Blank returns the gutter used on soft-wrapped continuation rows.
func Blank(lineCount int) string {
	return PadLeft("", Width(lineCount))
}

// FormatNumber converts a number to a decimal string.
func FormatNumber(n int) string {
	return strconv.Itoa(n)
}

// PadLeft pads a string with spaces on the left to the specified width.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := make([]byte, width-len(s))
	for i := range padding {
		padding[i] = ' '
	}
	return string(padding) + s
}

// countDigits returns the number of decimal digits in n, at least 1.
func countDigits(n int) int {
	digits := 1
	for n >= 10 {
		n /= 10
		digits++
	}
	return digits
}
