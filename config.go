package heartglow

import (
	"encoding"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"libdb.so/heartglow/internal/led"
	"libdb.so/heartglow/xy"
)

// Config is the configuration for the heartglow daemon.
type Config struct {
	// Device is the path to the device file of the LED controller.
	// This is usually /dev/ttyUSB0 or /dev/ttyACM0.
	Device string `toml:"device"`
	// Baud is the baud rate for the serial connection.
	Baud int `toml:"baud"`
	// Rate is the maximum number of frames sent per second.
	Rate int `toml:"rate"`
	// Settle is how long to wait after opening the serial port before
	// initializing the controller.
	Settle TOMLDuration `toml:"settle"`
	// DriveHidden sends colors written to hidden LEDs as they are instead of
	// turning them off.
	DriveHidden bool `toml:"drive_hidden"`
	// Background is the color of every LED before rows and pixels are drawn.
	Background led.RGBColor `toml:"background"`
	// Rows colors entire rows of the grid.
	Rows []RowConfig `toml:"row"`
	// Pixels colors single cells of the grid. They are drawn after rows.
	Pixels []PixelConfig `toml:"pixel"`
}

// RowConfig colors a row of the grid.
type RowConfig struct {
	Y     uint         `toml:"y"`
	Color led.RGBColor `toml:"color"`
}

// PixelConfig colors a cell of the grid.
type PixelConfig struct {
	X     uint         `toml:"x"`
	Y     uint         `toml:"y"`
	Color led.RGBColor `toml:"color"`
}

// Default configuration values, applied by ParseConfig to unset fields.
const (
	DefaultBaud   = 115200
	DefaultRate   = 30
	DefaultSettle = TOMLDuration(100 * time.Millisecond)
)

// MaxRate is the highest refresh rate accepted by Validate.
const MaxRate = 1000

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Device == "" {
		return errors.New("no device configured")
	}

	if c.Baud <= 0 {
		return errors.Errorf("invalid baud rate %d", c.Baud)
	}

	if c.Rate <= 0 || c.Rate > MaxRate {
		return errors.Errorf("invalid refresh rate %d", c.Rate)
	}

	for _, row := range c.Rows {
		if row.Y >= xy.Height {
			return errors.Errorf("row %d is off the %dx%d grid", row.Y, xy.Width, xy.Height)
		}
	}

	for _, px := range c.Pixels {
		if px.X >= xy.Width || px.Y >= xy.Height {
			return errors.Errorf("pixel (%d, %d) is off the %dx%d grid", px.X, px.Y, xy.Width, xy.Height)
		}
	}

	return nil
}

func (c *Config) setDefaults() {
	if c.Baud == 0 {
		c.Baud = DefaultBaud
	}
	if c.Rate == 0 {
		c.Rate = DefaultRate
	}
	if c.Settle == 0 {
		c.Settle = DefaultSettle
	}
}

// TOMLDuration is a duration that can be parsed from TOML.
type TOMLDuration time.Duration

var (
	_ encoding.TextUnmarshaler = (*TOMLDuration)(nil)
	_ encoding.TextMarshaler   = (*TOMLDuration)(nil)
)

func (d *TOMLDuration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = TOMLDuration(duration)
	return nil
}

func (d TOMLDuration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// ParseConfig parses a configuration from a reader. Unset fields are given
// their default values.
func ParseConfig(r io.Reader) (*Config, error) {
	var config Config
	if err := toml.NewDecoder(r).Decode(&config); err != nil {
		return nil, err
	}
	config.setDefaults()
	return &config, nil
}

// ReadConfigFile parses the configuration file at the given path.
func ReadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open config file")
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	return cfg, nil
}
