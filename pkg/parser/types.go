// Package parser provides ordered line-stream reading for test runner output.
package parser

// Line is a single line of runner output.
type Line struct {
	// Content is the line text without the trailing newline.
	Content string

	// Source identifies where the line came from (file path or "stdin").
	Source string

	// Num is the 1-based line number within the source.
	Num int
}
