package scenario

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type rawScenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	BaseURL     string    `yaml:"base_url"`
	Config      rawConfig `yaml:"config"`
	Steps       []rawStep `yaml:"steps"`
}

type rawConfig struct {
	ActionDelay *float64 `yaml:"action_delay"` // seconds
	SlowMotion  *float64 `yaml:"slow_motion"`  // milliseconds
}

type rawStep struct {
	Action      string             `yaml:"action"`
	Description string             `yaml:"description"`
	Subtitle    string             `yaml:"subtitle"`
	Optional    bool               `yaml:"optional"`
	URL         string             `yaml:"url"`
	Selector    string             `yaml:"selector"`
	Fallback    []fallbackSelector `yaml:"fallback"`
	Value       string             `yaml:"value"`
	Text        string             `yaml:"text"`
	Duration    *float64           `yaml:"duration"` // seconds
	Direction   string             `yaml:"direction"`
}

// fallbackSelector accepts either a plain selector string or a mapping
// with a selector key.
type fallbackSelector string

func (f *fallbackSelector) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*f = fallbackSelector(node.Value)
		return nil
	case yaml.MappingNode:
		var m struct {
			Selector string `yaml:"selector"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		*f = fallbackSelector(m.Selector)
		return nil
	default:
		return fmt.Errorf("line %d: fallback must be a selector or {selector: ...}", node.Line)
	}
}

// Load reads and validates the scenario at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Path: path, Reason: ErrNotFound}
		}
		return nil, &LoadError{Path: path, Reason: ErrParse, Err: err}
	}

	s, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	s.Path = path
	return s, nil
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, &LoadError{Reason: ErrEmpty, Err: errors.New("empty document")}
	}

	var raw rawScenario
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Reason: ErrParse, Err: err}
	}
	if len(raw.Steps) == 0 {
		return nil, &LoadError{Reason: ErrEmpty}
	}

	s := &Scenario{
		Name:        raw.Name,
		Description: raw.Description,
		BaseURL:     raw.BaseURL,
		Config: Config{
			ActionDelay: DefaultActionDelay,
			SlowMotion:  DefaultSlowMotion,
		},
		Steps: make([]Step, 0, len(raw.Steps)),
	}
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}

	if v := raw.Config.ActionDelay; v != nil {
		d, err := toDuration(*v, time.Second)
		if err != nil {
			return nil, &LoadError{Reason: ErrInvalid, Err: fmt.Errorf("action_delay %w", err)}
		}
		s.Config.ActionDelay = d
	}
	if v := raw.Config.SlowMotion; v != nil {
		d, err := toDuration(*v, time.Millisecond)
		if err != nil {
			return nil, &LoadError{Reason: ErrInvalid, Err: fmt.Errorf("slow_motion %w", err)}
		}
		s.Config.SlowMotion = d
	}

	for i, rs := range raw.Steps {
		step, err := buildStep(i+1, rs)
		if err != nil {
			return nil, err
		}
		s.Steps = append(s.Steps, step)
	}
	return s, nil
}

func buildStep(index int, rs rawStep) (Step, error) {
	step := Step{
		Index:       index,
		Description: rs.Description,
		Subtitle:    rs.Subtitle,
		Optional:    rs.Optional,
	}

	duration := func(def time.Duration) (time.Duration, error) {
		if rs.Duration == nil {
			return def, nil
		}
		d, err := toDuration(*rs.Duration, time.Second)
		if err != nil {
			return 0, invalidStep(index, "duration %v", err)
		}
		return d, nil
	}

	switch Kind(rs.Action) {
	case KindNavigate:
		url := rs.URL
		if url == "" {
			url = DefaultNavigateURL
		}
		step.Action = Navigate{URL: url}

	case KindClick:
		if rs.Selector == "" {
			return Step{}, invalidStep(index, "click requires a selector")
		}
		var fallback []string
		for _, f := range rs.Fallback {
			if f != "" {
				fallback = append(fallback, string(f))
			}
		}
		step.Action = Click{Selector: rs.Selector, Fallback: fallback}

	case KindFill:
		if rs.Selector == "" {
			return Step{}, invalidStep(index, "fill requires a selector")
		}
		step.Action = Fill{Selector: rs.Selector, Value: rs.Value}

	case KindWait:
		d, err := duration(DefaultWaitDuration)
		if err != nil {
			return Step{}, err
		}
		step.Action = Wait{Duration: d}

	case KindScrollSmooth:
		dir := Direction(rs.Direction)
		switch dir {
		case "":
			dir = DirectionDown
		case DirectionDown, DirectionUp:
		default:
			return Step{}, invalidStep(index, "unknown scroll direction %q", rs.Direction)
		}
		d, err := duration(DefaultScrollTime)
		if err != nil {
			return Step{}, err
		}
		step.Action = ScrollSmooth{Direction: dir, Duration: d}

	case KindMessage:
		step.Action = Message{Text: rs.Text}

	case "":
		return Step{}, &LoadError{Step: index, Reason: ErrParse, Err: errors.New("missing action")}

	default:
		return Step{}, &LoadError{Step: index, Reason: ErrParse, Err: fmt.Errorf("unknown action %q (want one of %s)", rs.Action, kindList())}
	}

	return step, nil
}

func kindList() string {
	names := make([]string, 0, len(Kinds()))
	for _, k := range Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

// toDuration converts v units to a Duration. Negative, NaN, infinite and
// overflowing values are rejected.
func toDuration(v float64, unit time.Duration) (time.Duration, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("must be a finite number, got %v", v)
	}
	if v < 0 {
		return 0, fmt.Errorf("must not be negative, got %v", v)
	}
	ns := v * float64(unit)
	if ns >= math.MaxInt64 {
		return 0, fmt.Errorf("is out of range, got %v", v)
	}
	return time.Duration(ns), nil
}
