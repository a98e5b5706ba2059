package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullScenario = `
name: Policy walkthrough
description: Upload and browse policies
base_url: http://demo.local:8080
config:
  action_delay: 2
  slow_motion: 120
steps:
  - action: navigate
    url: /policies
    description: Open the policy list
    subtitle: Policies at a glance
  - action: click
    selector: "#upload"
    fallback:
      - button.upload
      - selector: "text=Upload"
    optional: true
  - action: fill
    selector: "input[name=q]"
    value: 2024
  - action: wait
    duration: 0.5
  - action: scroll_smooth
    direction: up
    duration: 3
  - action: message
    text: done
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Full(t *testing.T) {
	path := writeScenario(t, fullScenario)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Policy walkthrough", s.Name)
	assert.Equal(t, "http://demo.local:8080", s.BaseURL)
	assert.Equal(t, path, s.Path)
	assert.Equal(t, 2*time.Second, s.Config.ActionDelay)
	assert.Equal(t, 120*time.Millisecond, s.Config.SlowMotion)
	require.Len(t, s.Steps, 6)

	for i, step := range s.Steps {
		assert.Equal(t, i+1, step.Index)
	}

	assert.Equal(t, Navigate{URL: "/policies"}, s.Steps[0].Action)
	assert.Equal(t, "Policies at a glance", s.Steps[0].Caption())

	click, ok := s.Steps[1].Action.(Click)
	require.True(t, ok)
	assert.Equal(t, "#upload", click.Selector)
	assert.Equal(t, []string{"button.upload", "text=Upload"}, click.Fallback)
	assert.Equal(t, []string{"#upload", "button.upload", "text=Upload"}, click.Selectors())
	assert.True(t, s.Steps[1].Optional)

	assert.Equal(t, Fill{Selector: "input[name=q]", Value: "2024"}, s.Steps[2].Action)
	assert.Equal(t, Wait{Duration: 500 * time.Millisecond}, s.Steps[3].Action)
	assert.Equal(t, ScrollSmooth{Direction: DirectionUp, Duration: 3 * time.Second}, s.Steps[4].Action)
	assert.Equal(t, Message{Text: "done"}, s.Steps[5].Action)
	assert.Equal(t, KindMessage, s.Steps[5].Kind())
}

func TestParse_Defaults(t *testing.T) {
	s, err := Parse([]byte(`
steps:
  - action: navigate
    description: Home
  - action: wait
  - action: scroll_smooth
`))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, s.BaseURL)
	assert.Equal(t, 1500*time.Millisecond, s.Config.ActionDelay)
	assert.Equal(t, 50*time.Millisecond, s.Config.SlowMotion)
	assert.Equal(t, Navigate{URL: "/"}, s.Steps[0].Action)
	assert.Equal(t, "Home", s.Steps[0].Caption())
	assert.Equal(t, Wait{Duration: time.Second}, s.Steps[1].Action)
	assert.Equal(t, ScrollSmooth{Direction: DirectionDown, Duration: 5 * time.Second}, s.Steps[2].Action)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Contains(t, le.Path, "missing.yaml")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  error
		wantStep int
	}{
		{name: "empty document", input: "", wantErr: ErrEmpty},
		{name: "comments only", input: "# nothing here\n", wantErr: ErrEmpty},
		{name: "no steps", input: "name: x\nsteps: []\n", wantErr: ErrEmpty},
		{name: "malformed yaml", input: "steps: [\n  - action: navigate", wantErr: ErrParse},
		{name: "top-level list", input: "- action: navigate\n", wantErr: ErrParse},
		{name: "unknown action", input: "steps:\n  - action: hover\n", wantErr: ErrParse, wantStep: 1},
		{name: "missing action", input: "steps:\n  - action: wait\n  - description: x\n", wantErr: ErrParse, wantStep: 2},
		{name: "click without selector", input: "steps:\n  - action: click\n", wantErr: ErrInvalid, wantStep: 1},
		{name: "fill without selector", input: "steps:\n  - action: fill\n    value: a\n", wantErr: ErrInvalid, wantStep: 1},
		{name: "negative wait", input: "steps:\n  - action: wait\n    duration: -1\n", wantErr: ErrInvalid, wantStep: 1},
		{name: "bad direction", input: "steps:\n  - action: scroll_smooth\n    direction: left\n", wantErr: ErrInvalid, wantStep: 1},
		{name: "negative delay", input: "config:\n  action_delay: -2\nsteps:\n  - action: wait\n", wantErr: ErrInvalid},
		{name: "overflowing wait", input: "steps:\n  - action: wait\n    duration: 1e12\n", wantErr: ErrInvalid, wantStep: 1},
		{name: "nan wait", input: "steps:\n  - action: wait\n    duration: .nan\n", wantErr: ErrInvalid, wantStep: 1},
		{name: "infinite scroll", input: "steps:\n  - action: wait\n  - action: scroll_smooth\n    duration: .inf\n", wantErr: ErrInvalid, wantStep: 2},
		{name: "overflowing delay", input: "config:\n  action_delay: 1e10\nsteps:\n  - action: wait\n", wantErr: ErrInvalid},
		{name: "nan delay", input: "config:\n  action_delay: .nan\nsteps:\n  - action: wait\n", wantErr: ErrInvalid},
		{name: "negative slow motion", input: "config:\n  slow_motion: -1\nsteps:\n  - action: wait\n", wantErr: ErrInvalid},
		{name: "overflowing slow motion", input: "config:\n  slow_motion: 1e13\nsteps:\n  - action: wait\n", wantErr: ErrInvalid},
		{name: "infinite slow motion", input: "config:\n  slow_motion: -.inf\nsteps:\n  - action: wait\n", wantErr: ErrInvalid},
		{name: "fallback sequence", input: "steps:\n  - action: click\n    selector: a\n    fallback: [[b]]\n", wantErr: ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, tt.wantErr)

			var le *LoadError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, tt.wantStep, le.Step)
		})
	}
}

func TestParse_UnknownActionListsKinds(t *testing.T) {
	_, err := Parse([]byte("steps:\n  - action: hover\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown action "hover"`)
	for _, k := range Kinds() {
		assert.Contains(t, err.Error(), string(k))
	}
}

func TestLoad_ErrorCarriesPath(t *testing.T) {
	path := writeScenario(t, "steps:\n  - action: click\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "step 1")
	assert.Contains(t, err.Error(), "click requires a selector")
}

func TestResolveURL(t *testing.T) {
	s := &Scenario{BaseURL: "http://localhost:5000"}

	assert.Equal(t, "http://localhost:5000/", s.ResolveURL("/"))
	assert.Equal(t, "http://localhost:5000/policies?id=1", s.ResolveURL("/policies?id=1"))
	assert.Equal(t, "https://example.com/x", s.ResolveURL("https://example.com/x"))
	assert.Equal(t, "http://other:9000", s.ResolveURL("http://other:9000"))

	trailing := &Scenario{BaseURL: "http://localhost:5000/"}
	assert.Equal(t, "http://localhost:5000/a", trailing.ResolveURL("/a"))
}

func TestStepCaption(t *testing.T) {
	assert.Equal(t, "sub", Step{Description: "desc", Subtitle: "sub"}.Caption())
	assert.Equal(t, "desc", Step{Description: "desc"}.Caption())
	assert.Empty(t, Step{}.Caption())
	assert.Equal(t, Kind(""), Step{}.Kind())
}
