package commands

import (
	"runtime"
	"strings"
	"testing"

	"github.com/thoreinstein/rsscheck/cmd"
)

func TestVersionCommand_OutputFormat(t *testing.T) {
	output, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version command should not return an error, got: %v", err)
	}

	tests := []struct {
		name     string
		contains string
	}{
		{"contains version header", "rsscheck version " + cmd.Version},
		{"contains commit field", "commit: " + cmd.Commit},
		{"contains built field", "built:  " + cmd.Date},
		{"contains go version", runtime.Version()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(output, tt.contains) {
				t.Errorf("version output missing %q\nGot:\n%s", tt.contains, output)
			}
		})
	}
}

func TestVersionCommand_OutputLineCount(t *testing.T) {
	output, err := execute(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 4 {
		t.Errorf("version output has %d lines, want 4\nOutput:\n%s", len(lines), output)
	}
}

// TestVersionCommand_CommandMetadata verifies the command's metadata is set correctly.
func TestVersionCommand_CommandMetadata(t *testing.T) {
	if versionCmd.Use != "version" {
		t.Errorf("versionCmd.Use = %q, want %q", versionCmd.Use, "version")
	}
	if versionCmd.Short == "" {
		t.Error("versionCmd.Short should not be empty")
	}
	if versionCmd.Long == "" {
		t.Error("versionCmd.Long should not be empty")
	}
}

func TestUserAgent(t *testing.T) {
	if !strings.HasPrefix(cmd.UserAgent(), "rsscheck/"+cmd.Version) {
		t.Errorf("UserAgent() = %q", cmd.UserAgent())
	}
}
