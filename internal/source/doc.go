// Package source turns a command-line target into the set of feed sources
// to validate.
//
// A target is a local file, a local directory searched recursively for the
// conventional feed file names, a direct feed URL, or a site base URL whose
// common feed paths are probed over HTTP. Results are deterministic: the
// same target always resolves to the same ordered, duplicate-free set.
package source
