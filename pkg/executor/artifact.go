package executor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ArtifactWriter handles writing run artifacts
type ArtifactWriter struct {
	outputDir string
	config    ArtifactConfig
}

// NewArtifactWriter creates a new artifact writer
func NewArtifactWriter(config ArtifactConfig) *ArtifactWriter {
	return &ArtifactWriter{
		outputDir: config.OutputDir,
		config:    config,
	}
}

// Dir returns the directory artifacts of result are written to.
func (w *ArtifactWriter) Dir(result *RunResult) string {
	return filepath.Join(w.outputDir, result.StartTime.Format("20060102_150405")+"_"+shortID(result.RunID))
}

// WriteAll writes all configured artifact formats and returns their directory
func (w *ArtifactWriter) WriteAll(result *RunResult) (string, error) {
	dir := w.Dir(result)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	if w.config.JSON {
		if err := w.WriteRunJSON(dir, result); err != nil {
			return dir, err
		}
	}

	if w.config.Markdown {
		if err := w.WriteSummaryMarkdown(dir, result); err != nil {
			return dir, err
		}
	}

	return dir, nil
}

// WriteRunJSON writes the full run result as JSON
func (w *ArtifactWriter) WriteRunJSON(dir string, result *RunResult) error {
	path := filepath.Join(dir, "run.json")

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run result: %w", err)
	}

	if writeErr := os.WriteFile(path, data, 0600); writeErr != nil {
		return fmt.Errorf("failed to write run JSON: %w", writeErr)
	}

	return nil
}

// WriteSummaryMarkdown writes a human-readable markdown summary
func (w *ArtifactWriter) WriteSummaryMarkdown(dir string, result *RunResult) error {
	path := filepath.Join(dir, "summary.md")

	var md strings.Builder

	md.WriteString("# Demo Run Summary\n\n")
	md.WriteString(fmt.Sprintf("**Scenario:** %s\n\n", result.Scenario))
	md.WriteString(fmt.Sprintf("**Run ID:** %s\n\n", result.RunID))
	md.WriteString(fmt.Sprintf("**Started:** %s\n\n", result.StartTime.Format(time.RFC3339)))
	md.WriteString(fmt.Sprintf("**Completed:** %s\n\n", result.EndTime.Format(time.RFC3339)))
	md.WriteString(fmt.Sprintf("**Duration:** %s\n\n", result.Duration))

	md.WriteString("## Result\n\n")
	if result.Success {
		md.WriteString("✅ **Success**\n\n")
	} else {
		md.WriteString("❌ **Failed**")
		if result.Error != "" {
			md.WriteString(fmt.Sprintf(": %s", result.Error))
		}
		md.WriteString("\n\n")
	}

	if len(result.Steps) > 0 {
		md.WriteString("## Steps\n\n")
		md.WriteString("| # | Action | Description | Status | Duration |\n")
		md.WriteString("|---|---|---|---|---|\n")
		for _, s := range result.Steps {
			status := string(s.Status)
			if s.Optional {
				status += " (optional)"
			}
			md.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
				s.Index, s.Kind, escapeCell(s.Description), status, s.Duration.Round(time.Millisecond)))
		}
		md.WriteString("\n")

		for _, s := range result.Steps {
			if s.Error != "" {
				md.WriteString(fmt.Sprintf("- Step %d: %s\n", s.Index, s.Error))
			}
		}
	}

	if len(result.Videos) > 0 {
		md.WriteString("\n## Recordings\n\n")
		for _, v := range result.Videos {
			md.WriteString(fmt.Sprintf("- `%s`\n", v))
		}
	}

	if writeErr := os.WriteFile(path, []byte(md.String()), 0600); writeErr != nil {
		return fmt.Errorf("failed to write summary markdown: %w", writeErr)
	}

	return nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
