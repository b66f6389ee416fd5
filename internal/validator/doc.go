// Package validator provides the diagnostics model shared by the feed
// validator, the runner, the CLI and the HTTP service.
//
// # Core Concepts
//
//   - [Severity]: error, warning, info, plus the pass marker that closes a
//     successful result.
//   - [Issue]: a single diagnostic, optionally tied to a field and an item.
//   - [Result]: the ordered diagnostics of one feed source.
//   - [Summary]: every result of a run, sorted by source.
//   - [Reporter]: renders a Summary as text, JSON, YAML or TOML.
//
// A Result passes if and only if it holds no error-severity issue. Warnings
// and info lines never change the verdict.
//
// # Basic Usage
//
//	result := validator.NewResult("public/index.xml")
//	result.AddError("channel", "Missing required channel elements: link")
//	if !result.Passed() {
//		// handle validation failure
//	}
package validator
