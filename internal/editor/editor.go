// Package editor launches the user's text editor on a file.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/rsscheck/internal/errors"
)

// ErrNoEditor is returned when no editor command can be determined.
var ErrNoEditor = errors.New("no editor found; set $EDITOR")

// Resolve returns the editor command line: $VISUAL, then $EDITOR, then the
// first of nano or vi found on PATH. Values like "code --wait" are split
// into command and arguments.
func Resolve(getenv func(string) string, lookPath func(string) (string, error)) ([]string, error) {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(getenv(key)); len(fields) > 0 {
			return fields, nil
		}
	}
	for _, name := range []string{"nano", "vi"} {
		if _, err := lookPath(name); err == nil {
			return []string{name}, nil
		}
	}
	return nil, ErrNoEditor
}

// Open runs the editor on path and waits for it to exit.
func Open(ctx context.Context, path string, stdin io.Reader, stdout, stderr io.Writer) error {
	argv, err := Resolve(os.Getenv, exec.LookPath)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", argv[0])
	}
	return nil
}
