package executor

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/entrhq/autodemo/pkg/scenario"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(LogLevelQuiet, &buf)

	l.Header("demo")
	l.Step(1, 2, "Open home")
	l.Infof("info")
	l.Verbosef("verbose")
	assert.Empty(t, buf.String())

	l.Warningf("careful")
	l.Errorf("broken")
	assert.Contains(t, buf.String(), "careful")
	assert.Contains(t, buf.String(), "broken")
}

func TestLogger_StepLine(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(LogLevelNormal, &buf)

	l.Step(2, 5, "Upload a file")
	l.Verbosef("hidden")

	assert.Contains(t, buf.String(), "[2/5]")
	assert.Contains(t, buf.String(), "Upload a file")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestLogger_Summary(t *testing.T) {
	result := &RunResult{
		Scenario: "Tour",
		Duration: 3 * time.Second,
		Steps: []StepOutcome{
			{Index: 1, Kind: scenario.KindNavigate, Status: StatusSuccess},
			{Index: 2, Kind: scenario.KindClick, Status: StatusFailed, Error: "no element"},
			{Index: 3, Kind: scenario.KindWait, Status: StatusSkipped},
		},
		Error:        "required step 2 failed: no element",
		RecordingDir: "recordings/demo_20240101_120000",
	}

	var buf bytes.Buffer
	NewLoggerTo(LogLevelVerbose, &buf).Summary(result)
	out := buf.String()

	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "Tour")
	assert.Contains(t, out, "1 succeeded, 1 failed, 1 skipped")
	assert.Contains(t, out, "no element")
	assert.Contains(t, out, "recordings/demo_20240101_120000")
}

func TestLogger_Level(t *testing.T) {
	assert.Equal(t, LogLevelDebug, NewLoggerTo(ParseLogLevel("debug"), &bytes.Buffer{}).Level())
	assert.Equal(t, LogLevelNormal, NewLogger(LogLevelNormal).Level())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelQuiet, ParseLogLevel("quiet"))
	assert.Equal(t, LogLevelVerbose, ParseLogLevel("verbose"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, LogLevelNormal, ParseLogLevel("whatever"))
}
