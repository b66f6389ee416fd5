package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY returns true if the given writer is a terminal.
// It supports os.File and any wrapper that provides an Fd() method.
func IsTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether ANSI colors should be written to w.
//
// NO_COLOR (https://no-color.org) and TERM=dumb always disable color.
// CLICOLOR_FORCE enables it for non-terminals, which CI logs need to
// render colored reports. Otherwise color follows terminal detection.
func SupportsColor(w io.Writer) bool {
	return colorEnabled(os.LookupEnv, IsTTY(w))
}

func colorEnabled(lookup func(string) (string, bool), isTTY bool) bool {
	if _, ok := lookup("NO_COLOR"); ok {
		return false
	}
	if v, _ := lookup("TERM"); v == "dumb" {
		return false
	}
	if v, ok := lookup("CLICOLOR_FORCE"); ok && v != "" && v != "0" {
		return true
	}
	return isTTY
}
