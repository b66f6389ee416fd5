package validator

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/rsscheck/internal/errors"
)

// Severity represents the impact of a validation issue.
type Severity int

const (
	// SeverityError indicates a blocking validation failure.
	SeverityError Severity = iota
	// SeverityWarning indicates a recommended but non-blocking issue.
	SeverityWarning
	// SeverityInfo indicates an informational note.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Label returns the upper-case tag used in text reports.
func (s Severity) Label() string {
	return strings.ToUpper(s.String())
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	if s < SeverityError || s > SeverityInfo {
		return nil, errors.Newf("unknown severity %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return errors.Newf("unknown severity %q", text)
	}
	return nil
}

// Issue represents a single diagnostic.
type Issue struct {
	// Severity indicates the impact of the issue.
	Severity Severity `json:"severity" yaml:"severity" toml:"severity"`
	// Field identifies the feed element concerned (optional).
	Field string `json:"field,omitempty" yaml:"field,omitempty" toml:"field,omitempty"`
	// Item is the zero-based index of the feed item concerned, nil for
	// feed-level issues.
	Item *int `json:"item,omitempty" yaml:"item,omitempty" toml:"item,omitempty"`
	// Message is a human-readable description of the problem.
	Message string `json:"message" yaml:"message" toml:"message"`
	// Context is additional detail, such as the detected feed version.
	Context map[string]string `json:"context,omitempty" yaml:"context,omitempty" toml:"context,omitempty"`
	// Pass marks the info line that closes a successful result.
	Pass bool `json:"pass,omitempty" yaml:"pass,omitempty" toml:"pass,omitempty"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if i.Item != nil {
		fmt.Fprintf(&sb, "item %d: ", *i.Item)
	}
	if i.Field != "" {
		sb.WriteString("field \"")
		sb.WriteString(i.Field)
		sb.WriteString("\": ")
	}
	sb.WriteString(i.Message)
	return sb.String()
}

// Label returns the tag printed in text reports: the severity label, or
// PASS for the closing line of a successful result.
func (i Issue) Label() string {
	if i.Pass {
		return "PASS"
	}
	return i.Severity.Label()
}

// Line renders the issue the way text reports print it.
func (i Issue) Line() string {
	return i.Label() + ": " + i.Message
}

// Result aggregates the diagnostics of one feed source, in emission order.
type Result struct {
	Source string
	Issues []Issue
}

// NewResult creates an empty Result for source.
func NewResult(source string) *Result {
	return &Result{Source: source}
}

// Passed reports whether the result holds no error-severity issue.
func (r *Result) Passed() bool {
	return !r.HasErrors()
}

// HasErrors returns true if any issue has SeverityError.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if any issue has SeverityWarning.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	for _, i := range r.Issues {
		if i.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Add appends issue to the result.
func (r *Result) Add(issue Issue) {
	r.Issues = append(r.Issues, issue)
}

// AddError adds an error issue to the result.
func (r *Result) AddError(field, message string) {
	r.Add(Issue{Severity: SeverityError, Field: field, Message: message})
}

// AddWarning adds a warning issue to the result.
func (r *Result) AddWarning(field, message string) {
	r.Add(Issue{Severity: SeverityWarning, Field: field, Message: message})
}

// AddInfo adds an info issue to the result.
func (r *Result) AddInfo(field, message string) {
	r.Add(Issue{Severity: SeverityInfo, Field: field, Message: message})
}

// AddPass appends the closing info line of a successful result.
func (r *Result) AddPass(message string) {
	r.Add(Issue{Severity: SeverityInfo, Message: message, Pass: true})
}

// ItemIssue builds an issue tied to the item at index.
func ItemIssue(severity Severity, index int, field, message string) Issue {
	return Issue{
		Severity: severity,
		Field:    field,
		Item:     &index,
		Message:  message,
	}
}

// Errors returns a slice of all issues with SeverityError.
func (r *Result) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns a slice of all issues with SeverityWarning.
func (r *Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

// Infos returns a slice of all issues with SeverityInfo.
func (r *Result) Infos() []Issue {
	return r.filter(SeverityInfo)
}

func (r *Result) filter(s Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			res = append(res, i)
		}
	}
	return res
}
