package validator

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleSummary() *Summary {
	ok := NewResult("public/rss.xml")
	ok.Add(ItemIssue(SeverityWarning, 0, "guid", "Item 0 missing guid"))
	ok.AddInfo("items", "Found 1 items")
	ok.AddPass("RSS 2.0 validation successful")

	bad := NewResult("public/index.xml")
	bad.AddError("channel", "Missing required channel elements: description")

	s := &Summary{Results: []*Result{ok, bad}}
	s.Sort()
	return s
}

func TestReporter_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatText).Report(sampleSummary()))

	want := `Found 2 RSS file(s) to validate

Validating RSS 2.0 compliance for: public/index.xml
  ERROR: Missing required channel elements: description

Validating RSS 2.0 compliance for: public/rss.xml
  WARNING: Item 0 missing guid
  INFO: Found 1 items
  PASS: RSS 2.0 validation successful

==================================================
FAILURE: Some RSS feeds have validation errors!
`
	assert.Equal(t, want, buf.String())
}

func TestReporter_TextSuccess(t *testing.T) {
	ok := NewResult("feed.xml")
	ok.AddPass("RSS 2.0 validation successful")

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatText).Report(&Summary{Results: []*Result{ok}}))

	assert.True(t, strings.HasSuffix(buf.String(), Separator+"\n"+SuccessLine+"\n"))
}

func TestReporter_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatJSON).Report(sampleSummary()))

	var decoded SummaryDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.False(t, decoded.Success)
	assert.Equal(t, 2, decoded.Total)
	assert.Equal(t, 1, decoded.Failed)
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "public/index.xml", decoded.Results[0].Source)
	assert.False(t, decoded.Results[0].Passed)

	warn := decoded.Results[1].Diagnostics[0]
	assert.Equal(t, SeverityWarning, warn.Severity)
	require.NotNil(t, warn.Item)
	assert.Equal(t, 0, *warn.Item)
	assert.Contains(t, buf.String(), `"severity": "warning"`)
	assert.NotContains(t, buf.String(), `"severity": "pass"`)

	closing := decoded.Results[1].Diagnostics[len(decoded.Results[1].Diagnostics)-1]
	assert.Equal(t, SeverityInfo, closing.Severity)
	assert.True(t, closing.Pass)
}

func TestReporter_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatYAML).Report(sampleSummary()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.Contains(t, buf.String(), "severity: error")
}

func TestReporter_TOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatTOML).Report(sampleSummary()))

	var decoded map[string]any
	require.NoError(t, toml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.Contains(t, buf.String(), "public/index.xml")
}

func TestReporter_NilSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatText).Report(nil))
	assert.Empty(t, buf.String())
}

func TestReporter_StreamedTextMatchesReport(t *testing.T) {
	summary := sampleSummary()

	var whole bytes.Buffer
	require.NoError(t, NewReporter(&whole, FormatText).Report(summary))

	var streamed bytes.Buffer
	r := NewReporter(&streamed, FormatText)
	r.Header(len(summary.Results))
	for _, res := range summary.Results {
		r.Result(res)
	}
	r.Footer(summary)

	assert.Equal(t, whole.String(), streamed.String())
}
