// Package logging builds the slog loggers used by rsscheck.
//
// Console output uses a compact text handler (colored on terminals) or
// JSON. A --log-file adds a JSON mirror through [MultiHandler]:
//
//	logger := logging.New(logging.Config{
//		Level:   logging.LevelFromVerbosity(2),
//		Output:  os.Stderr,
//		Mirrors: []io.Writer{logFile},
//	})
//
// Loggers travel in the context; packages call [FromContext] rather than
// taking a logger parameter. Feed URLs show up in many records, so the text
// handler masks URL passwords and the values of secret-looking keys.
//
// Tests use [ForTest], which routes output through t.Log.
package logging
