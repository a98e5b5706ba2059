package scenario

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Speed is a pacing profile applied on top of a scenario's own config.
type Speed string

const (
	SpeedNormal Speed = "normal"
	SpeedFast   Speed = "fast"
	SpeedSlow   Speed = "slow"
)

// minFastDelay bounds how short the fast profile may make the inter-step delay.
const minFastDelay = 700 * time.Millisecond

// ParseSpeed parses a profile name. The empty string means SpeedNormal.
func ParseSpeed(s string) (Speed, error) {
	switch Speed(strings.ToLower(strings.TrimSpace(s))) {
	case "", SpeedNormal:
		return SpeedNormal, nil
	case SpeedFast:
		return SpeedFast, nil
	case SpeedSlow:
		return SpeedSlow, nil
	default:
		return "", fmt.Errorf("unknown speed %q (want slow, normal or fast)", s)
	}
}

// WithSpeed returns a copy of the scenario with its pacing scaled by sp.
// The receiver is left untouched.
func (s *Scenario) WithSpeed(sp Speed) *Scenario {
	c := s.clone()
	switch sp {
	case SpeedFast:
		c.Config.ActionDelay = scale(s.Config.ActionDelay, 0.7)
		if c.Config.ActionDelay < minFastDelay {
			c.Config.ActionDelay = minFastDelay
		}
		c.Config.SlowMotion = scale(s.Config.SlowMotion, 0.5).Truncate(time.Millisecond)
	case SpeedSlow:
		c.Config.ActionDelay = scale(s.Config.ActionDelay, 1.5)
		c.Config.SlowMotion = scale(s.Config.SlowMotion, 1.5).Truncate(time.Millisecond)
	}
	return c
}

// scale multiplies d by f, saturating at the largest Duration.
func scale(d time.Duration, f float64) time.Duration {
	v := math.Round(float64(d) * f)
	if v >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(v)
}
