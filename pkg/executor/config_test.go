package executor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.NoError(t, config.Validate())
	assert.True(t, config.Headless)
	assert.Equal(t, "chromium", config.Browser)
	assert.Equal(t, "zh-CN", config.Locale)
	assert.Equal(t, "Asia/Shanghai", config.Timezone)
	assert.Equal(t, 2*time.Second, config.ObservationDelay)
	assert.True(t, config.Preflight.Enabled)
	assert.False(t, config.Recording.Enabled)
	assert.Equal(t, "recordings", config.Recording.OutputDir)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "fast speed", modify: func(c *Config) { c.Speed = "FAST" }},
		{name: "big viewport", modify: func(c *Config) { c.Viewport = "big" }},
		{name: "webkit", modify: func(c *Config) { c.Browser = "webkit" }},
		{name: "unknown speed", modify: func(c *Config) { c.Speed = "warp" }, wantErr: true},
		{name: "unknown browser", modify: func(c *Config) { c.Browser = "lynx" }, wantErr: true},
		{name: "unknown viewport", modify: func(c *Config) { c.Viewport = "huge" }, wantErr: true},
		{name: "negative observation delay", modify: func(c *Config) { c.ObservationDelay = -time.Second }, wantErr: true},
		{name: "negative preflight timeout", modify: func(c *Config) { c.Preflight.Timeout = -time.Second }, wantErr: true},
		{name: "recording without dir", modify: func(c *Config) {
			c.Recording.Enabled = true
			c.Recording.OutputDir = ""
		}, wantErr: true},
		{name: "artifacts without dir", modify: func(c *Config) {
			c.Artifacts.Enabled = true
			c.Artifacts.OutputDir = ""
		}, wantErr: true},
		{name: "bad verbosity", modify: func(c *Config) { c.Logging.Verbosity = "loud" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)
			err := config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateDefaultsVerbosity(t *testing.T) {
	config := DefaultConfig()
	config.Logging.Verbosity = ""

	assert.NoError(t, config.Validate())
	assert.Equal(t, "normal", config.Logging.Verbosity)
}
