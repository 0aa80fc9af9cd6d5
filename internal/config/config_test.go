package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("ball:\n  friction: 0.95\npaddle:\n  speed: 12\n"))
	require.NoError(t, err)

	assert.Equal(t, 0.95, cfg.Ball.Friction)
	assert.Equal(t, 12.0, cfg.Paddle.Speed)
	// Untouched keys keep their defaults
	assert.Equal(t, 800.0, cfg.Field.Width)
	assert.Equal(t, 0.5, cfg.Ball.MinSpeed)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseDurations(t *testing.T) {
	cfg, err := Parse([]byte("input:\n  release_after: 80ms\n  first_release_after: 1s\n"))
	require.NoError(t, err)
	assert.Equal(t, 80*time.Millisecond, cfg.Input.ReleaseAfter)
	assert.Equal(t, time.Second, cfg.Input.FirstReleaseAfter)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("ball:\n  spin: 3\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero field", func(c *Config) { c.Field.Width = 0 }, ErrInvalidField},
		{"paddle off field", func(c *Config) { c.Paddle.X = 750 }, ErrInvalidPaddle},
		{"paddle wider than field", func(c *Config) { c.Paddle.Width = 900 }, ErrInvalidPaddle},
		{"negative radius", func(c *Config) { c.Ball.Radius = -1 }, ErrInvalidBall},
		{"friction one", func(c *Config) { c.Ball.Friction = 1 }, ErrInvalidFriction},
		{"friction zero", func(c *Config) { c.Ball.Friction = 0 }, ErrInvalidFriction},
		{"zero tick rate", func(c *Config) { c.Physics.TickRate = 0 }, ErrInvalidPhysics},
		{"zero release window", func(c *Config) { c.Input.ReleaseAfter = 0 }, ErrInvalidInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "expected %v in %v", tc.want, err)
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Field.Height = 0
	cfg.Ball.Friction = 2

	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalidField)
	assert.ErrorIs(t, err, ErrInvalidFriction)
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("field:\n  width: 640\n  height: 480\npaddle:\n  x: 270\n  y: 460\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640.0, cfg.Field.Width)
	assert.Equal(t, 270.0, cfg.Paddle.X)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("ball:\n  friction: 1.5\n"), 0o600))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrInvalidFriction)
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Encode(DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, string(data), "boost_factor: 1.1")

	cfg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestTickInterval(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, time.Second/60, cfg.TickInterval())

	cfg.Physics.TickRate = 0
	assert.Equal(t, time.Second/60, cfg.TickInterval())
}
