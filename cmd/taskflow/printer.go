package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	faint  = color.New(color.Faint)
)

func success(w io.Writer, format string, a ...any) {
	green.Fprintf(w, "✓ %s\n", fmt.Sprintf(format, a...))
}

func warning(w io.Writer, format string, a ...any) {
	yellow.Fprintf(w, "! %s\n", fmt.Sprintf(format, a...))
}

func failure(w io.Writer, err error) {
	red.Fprintf(w, "error: %v\n", err)
}
