// Package errors provides error handling conventions for the rsscheck CLI.
//
// It re-exports the wrapping helpers from github.com/cockroachdb/errors so
// callers import a single errors package, defines sentinel errors for the
// failure conditions the validator distinguishes, and carries an ExitError
// type that maps failures onto process exit codes.
//
// # Sentinel Errors
//
//	if errors.Is(err, rsserrors.ErrFetch) {
//	    // the remote source could not be retrieved
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): every validated feed passed
//   - ExitUser (1): no feeds found, bad usage, or at least one feed failed
//   - ExitSystem (2): I/O failure outside of feed validation (report file, log file)
//
// # ExitError
//
//	err := rsserrors.NewUserError(rsserrors.ErrNoSources, "Check the path or URL")
//	var exitErr *rsserrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
