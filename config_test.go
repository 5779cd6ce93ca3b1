package heartglow

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"libdb.so/heartglow/internal/led"
)

const exampleConfig = `
device = "/dev/ttyACM0"
rate = 60
settle = "250ms"
background = "#100000"

[[row]]
y = 4
color = "#ff00ff"

[[pixel]]
x = 6
y = 12
color = "#00ff00"
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(exampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyACM0", cfg.Device)
	assert.Equal(t, DefaultBaud, cfg.Baud)
	assert.Equal(t, 60, cfg.Rate)
	assert.Equal(t, TOMLDuration(250*time.Millisecond), cfg.Settle)
	assert.False(t, cfg.DriveHidden)
	assert.Equal(t, led.RGBColor{0x10, 0, 0}, cfg.Background)
	assert.Equal(t, []RowConfig{{Y: 4, Color: led.RGBColor{0xFF, 0, 0xFF}}}, cfg.Rows)
	assert.Equal(t, []PixelConfig{{X: 6, Y: 12, Color: led.RGBColor{0, 0xFF, 0}}}, cfg.Pixels)
	assert.NoError(t, cfg.Validate())
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(`device = "/dev/ttyUSB0"`))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaud, cfg.Baud)
	assert.Equal(t, DefaultRate, cfg.Rate)
	assert.Equal(t, DefaultSettle, cfg.Settle)
}

func TestParseConfigBadColor(t *testing.T) {
	_, err := ParseConfig(strings.NewReader(`background = "red"`))
	assert.Error(t, err)
}

func TestReadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heartglow.toml")
	require.NoError(t, os.WriteFile(path, []byte(exampleConfig), 0o644))

	cfg, err := ReadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyACM0", cfg.Device)

	_, err = ReadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"pixel on hole", func(c *Config) { c.Pixels = []PixelConfig{{X: 0, Y: 0}} }, true},
		{"no device", func(c *Config) { c.Device = "" }, false},
		{"no baud", func(c *Config) { c.Baud = 0 }, false},
		{"no rate", func(c *Config) { c.Rate = 0 }, false},
		{"rate too high", func(c *Config) { c.Rate = MaxRate + 1 }, false},
		{"row off grid", func(c *Config) { c.Rows = []RowConfig{{Y: 13}} }, false},
		{"pixel x off grid", func(c *Config) { c.Pixels = []PixelConfig{{X: 13, Y: 0}} }, false},
		{"pixel y off grid", func(c *Config) { c.Pixels = []PixelConfig{{X: 0, Y: 200}} }, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := testConfig()
			test.modify(cfg)

			err := cfg.Validate()
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestStaticPainter(t *testing.T) {
	cfg := testConfig()
	cfg.Rows = []RowConfig{{Y: 2, Color: green}}

	leds := led.NewMatrix()
	NewStaticPainter(cfg).Paint(leds)

	for x := uint(0); x < 13; x++ {
		assert.Equal(t, green, leds.AtXY(x, 2), "(%d, 2)", x)
	}
	assert.Equal(t, red, leds.AtXY(6, 6))
	assert.Equal(t, green, leds.AtXY(6, 12))
}
