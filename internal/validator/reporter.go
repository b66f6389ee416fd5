package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/rsscheck/internal/errors"
	"github.com/thoreinstein/rsscheck/internal/logging"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
	// FormatYAML produces YAML output.
	FormatYAML Format = "yaml"
	// FormatTOML produces TOML output.
	FormatTOML Format = "toml"
)

// Separator closes the per-source section of a text report.
var Separator = strings.Repeat("=", 50)

// Verdict lines printed at the end of a text report.
const (
	SuccessLine = "SUCCESS: All RSS feeds are valid!"
	FailureLine = "FAILURE: Some RSS feeds have validation errors!"
)

// Reporter formats and writes validation results.
type Reporter struct {
	out    io.Writer
	format Format
	color  bool
}

// NewReporter creates a new Reporter. Text output is colored when out is a
// terminal that supports it.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
		color:  logging.SupportsColor(out),
	}
}

// Report writes the summary to the output.
func (r *Reporter) Report(summary *Summary) error {
	if summary == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(summary)
	case FormatYAML:
		return r.reportYAML(summary)
	case FormatTOML:
		return r.reportTOML(summary)
	default:
		return r.reportText(summary)
	}
}

// SummaryDocument is the structured form of a Summary.
type SummaryDocument struct {
	Success bool             `json:"success" yaml:"success" toml:"success"`
	Total   int              `json:"total" yaml:"total" toml:"total"`
	Passed  int              `json:"passed" yaml:"passed" toml:"passed"`
	Failed  int              `json:"failed" yaml:"failed" toml:"failed"`
	Results []ResultDocument `json:"results" yaml:"results" toml:"results"`
}

// ResultDocument is the structured form of a Result.
type ResultDocument struct {
	Source      string  `json:"source" yaml:"source" toml:"source"`
	Passed      bool    `json:"passed" yaml:"passed" toml:"passed"`
	Diagnostics []Issue `json:"diagnostics" yaml:"diagnostics" toml:"diagnostics"`
}

// Document converts a Summary for structured encoders.
func (s *Summary) Document() SummaryDocument {
	doc := SummaryDocument{
		Success: s.Success(),
		Total:   len(s.Results),
		Passed:  s.Passed(),
		Failed:  s.Failed(),
		Results: make([]ResultDocument, 0, len(s.Results)),
	}
	for _, res := range s.Results {
		doc.Results = append(doc.Results, res.Document())
	}
	return doc
}

// Document converts a Result for structured encoders.
func (r *Result) Document() ResultDocument {
	issues := r.Issues
	if issues == nil {
		issues = []Issue{}
	}
	return ResultDocument{
		Source:      r.Source,
		Passed:      r.Passed(),
		Diagnostics: issues,
	}
}

// reportJSON writes the summary as JSON.
func (r *Reporter) reportJSON(summary *Summary) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(summary.Document()), "encoding JSON report")
}

// reportYAML writes the summary as YAML.
func (r *Reporter) reportYAML(summary *Summary) error {
	encoder := yaml.NewEncoder(r.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(summary.Document()); err != nil {
		return errors.Wrap(err, "encoding YAML report")
	}
	return errors.Wrap(encoder.Close(), "flushing YAML report")
}

// reportTOML writes the summary as TOML.
func (r *Reporter) reportTOML(summary *Summary) error {
	return errors.Wrap(toml.NewEncoder(r.out).Encode(summary.Document()), "encoding TOML report")
}

// reportText writes the summary as human-readable text.
func (r *Reporter) reportText(summary *Summary) error {
	r.Header(len(summary.Results))
	for _, res := range summary.Results {
		r.Result(res)
	}
	r.Footer(summary)
	return nil
}

// Header writes the first line of a text report. Together with Result and
// Footer it lets a caller print results while a run is still in progress.
func (r *Reporter) Header(total int) {
	fmt.Fprintf(r.out, "Found %d RSS file(s) to validate\n", total)
}

// Result writes the section of one source.
func (r *Reporter) Result(res *Result) {
	fmt.Fprintf(r.out, "\nValidating RSS 2.0 compliance for: %s\n", res.Source)
	for _, i := range res.Issues {
		r.printIssue(i)
	}
}

// Footer writes the separator and the overall verdict.
func (r *Reporter) Footer(summary *Summary) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, Separator)
	if summary.Success() {
		fmt.Fprintln(r.out, r.paint(SuccessLine, color.FgGreen, color.Bold))
	} else {
		fmt.Fprintln(r.out, r.paint(FailureLine, color.FgRed, color.Bold))
	}
}

// Format:  LABEL: message
func (r *Reporter) printIssue(i Issue) {
	label := i.Label()
	switch {
	case i.Pass:
		label = r.paint(label, color.FgGreen)
	case i.Severity == SeverityError:
		label = r.paint(label, color.FgRed)
	case i.Severity == SeverityWarning:
		label = r.paint(label, color.FgYellow)
	default:
		label = r.paint(label, color.FgHiBlack)
	}
	fmt.Fprintf(r.out, "  %s: %s\n", label, i.Message)
}

func (r *Reporter) paint(s string, attrs ...color.Attribute) string {
	if !r.color {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}
