package validator

import (
	"fmt"
	"strings"
)

// Diagnostic messages. Reports and tests match on these exactly.
const (
	MsgNoVersion = "No RSS version specified"
	MsgNoItems   = "No items found in feed"
	MsgPassed    = "RSS 2.0 validation successful"
)

func msgCannotRead(err error) string {
	return "Cannot read file - " + err.Error()
}

func msgCannotFetch(err error) string {
	return "Cannot fetch URL - " + err.Error()
}

func msgCannotDecodeURL(err error) string {
	return "Failed to read from URL - " + err.Error()
}

func msgParseFailed(err error) string {
	return "Feed parsing failed - " + err.Error()
}

func msgWrongVersion(version string) string {
	return fmt.Sprintf("Not RSS 2.0 (found: %s)", version)
}

func msgMissingChannel(names []string) string {
	return "Missing required channel elements: " + strings.Join(names, ", ")
}

func msgItemNoContent(i int) string {
	return fmt.Sprintf("Item %d missing both title and description", i)
}

func msgItemMissing(i int, what string) string {
	return fmt.Sprintf("Item %d missing %s", i, what)
}

func msgFoundItems(n int) string {
	return fmt.Sprintf("Found %d items", n)
}
