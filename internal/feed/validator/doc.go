// Package validator checks parsed feeds against the RSS 2.0 rule set.
//
// Rules run in a fixed order and most of them stop at the first failure:
// acquisition, parsing, version, required channel elements, items, then
// informational notes. The diagnostics of a result are therefore ordered,
// and validating the same content twice yields the same diagnostics.
//
// A wrong feed version is only a warning while a missing one is an error,
// and item problems are reported before the result fails without the
// informational notes.
package validator
