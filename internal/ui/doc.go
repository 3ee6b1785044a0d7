// Package ui provides theme and color support for the ecurve command line.
// It exposes ANSI escape codes through the Color* functions and lipgloss
// styles for headings and framed blocks, all switched off together by
// --no-color or the NO_COLOR environment variable.
package ui
