package executor

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/entrhq/autodemo/pkg/ui"
)

// LogLevel represents the console verbosity level
type LogLevel int

const (
	// LogLevelQuiet shows only warnings, errors and the final summary
	LogLevelQuiet LogLevel = iota
	// LogLevelNormal shows step progress (default)
	LogLevelNormal
	// LogLevelVerbose shows timing and selector details
	LogLevelVerbose
	// LogLevelDebug shows everything
	LogLevelDebug
)

// Logger prints run progress for the operator.
type Logger struct {
	level  LogLevel
	writer io.Writer
}

// NewLogger creates a console logger writing to stdout.
func NewLogger(level LogLevel) *Logger {
	return &Logger{level: level, writer: os.Stdout}
}

// NewLoggerTo creates a console logger writing to w.
func NewLoggerTo(level LogLevel, w io.Writer) *Logger {
	return &Logger{level: level, writer: w}
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.writer
}

// Level returns the configured verbosity.
func (l *Logger) Level() LogLevel {
	return l.level
}

// Header prints a prominent header message
func (l *Logger) Header(message string) {
	if l.level >= LogLevelNormal {
		fmt.Fprintf(l.writer, "\n%s\n", ui.Rule(70))
		fmt.Fprintf(l.writer, "  %s\n", ui.HeaderStyle.Render(message))
		fmt.Fprintf(l.writer, "%s\n", ui.Rule(70))
	}
}

// Step prints the [i/N] progress line of a step
func (l *Logger) Step(index, total int, description string) {
	if l.level >= LogLevelNormal {
		fmt.Fprintf(l.writer, "%s %s\n", ui.StepStyle.Render(fmt.Sprintf("[%d/%d]", index, total)), description)
	}
}

// Successf prints a success message with checkmark
func (l *Logger) Successf(format string, args ...interface{}) {
	if l.level >= LogLevelNormal {
		fmt.Fprintln(l.writer, ui.SuccessStyle.Render("✓ "+fmt.Sprintf(format, args...)))
	}
}

// Infof prints an informational message
func (l *Logger) Infof(format string, args ...interface{}) {
	if l.level >= LogLevelNormal {
		fmt.Fprintln(l.writer, ui.InfoStyle.Render(fmt.Sprintf(format, args...)))
	}
}

// Warningf prints a warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	fmt.Fprintln(l.writer, ui.WarningStyle.Render("⚠ Warning: "+fmt.Sprintf(format, args...)))
}

// Errorf prints an error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	fmt.Fprintln(l.writer, ui.ErrorStyle.Render("✗ Error: "+fmt.Sprintf(format, args...)))
}

// Verbosef prints detailed information (only in verbose mode)
func (l *Logger) Verbosef(format string, args ...interface{}) {
	if l.level >= LogLevelVerbose {
		fmt.Fprintln(l.writer, ui.MutedStyle.Render("→ "+fmt.Sprintf(format, args...)))
	}
}

// Debugf prints debug information (only in debug mode)
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.level >= LogLevelDebug {
		fmt.Fprintln(l.writer, ui.MutedStyle.Render("[DEBUG] "+fmt.Sprintf(format, args...)))
	}
}

// Summary prints the final run summary. It is shown at every level.
func (l *Logger) Summary(result *RunResult) {
	var b strings.Builder

	b.WriteString(ui.HeaderStyle.Render("RUN SUMMARY"))
	b.WriteString("\n\n")
	b.WriteString("Status:   ")
	if result.Success {
		b.WriteString(ui.SuccessStyle.Render("✓ SUCCESS"))
	} else {
		b.WriteString(ui.ErrorStyle.Render("✗ FAILED"))
	}
	b.WriteString("\n")
	if result.Scenario != "" {
		fmt.Fprintf(&b, "Scenario: %s\n", result.Scenario)
	}
	fmt.Fprintf(&b, "Duration: %s\n", result.Duration.Round(100*time.Millisecond))

	counts := result.Counts()
	fmt.Fprintf(&b, "Steps:    %d succeeded, %d failed, %d skipped", counts[StatusSuccess], counts[StatusFailed], counts[StatusSkipped])

	if l.level >= LogLevelVerbose && len(result.Steps) > 0 {
		b.WriteString("\n")
		for _, s := range result.Steps {
			fmt.Fprintf(&b, "\n  %s %2d. %-13s %s", statusMark(s.Status), s.Index, s.Kind, s.Description)
			if s.Error != "" {
				fmt.Fprintf(&b, "\n      %s", ui.MutedStyle.Render(s.Error))
			}
		}
	}

	if result.RecordingDir != "" {
		fmt.Fprintf(&b, "\n\nRecording: %s", result.RecordingDir)
		for _, v := range result.Videos {
			fmt.Fprintf(&b, "\n  • %s", v)
		}
	}

	if result.Error != "" {
		fmt.Fprintf(&b, "\n\n%s\n  %s", ui.ErrorStyle.Render("Error Details:"), result.Error)
	}

	fmt.Fprintf(l.writer, "\n%s\n\n", ui.SummaryBoxStyle.Render(b.String()))
}

func statusMark(s StepStatus) string {
	switch s {
	case StatusSuccess:
		return ui.SuccessStyle.Render("✓")
	case StatusFailed:
		return ui.ErrorStyle.Render("✗")
	default:
		return ui.MutedStyle.Render("-")
	}
}

// ParseLogLevel converts a string log level to LogLevel type
func ParseLogLevel(level string) LogLevel {
	switch level {
	case "quiet":
		return LogLevelQuiet
	case "normal":
		return LogLevelNormal
	case "verbose":
		return LogLevelVerbose
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelNormal
	}
}
