package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for chart generation.
// This structure maps directly to YAML configuration files and controls:
//   - Font and color settings shared by the HTML, SVG and terminal views
//   - Coordinate mapping (time divisor and row height)
//   - The zoom slider range and its initial value
//   - Trace filtering applied at load time
//
// A file only needs to name the keys it changes; everything else keeps the
// value from getDefaultConfig.
type Config struct {
	Font struct {
		Family string `yaml:"family"` // Font family for labels and the inspector panel
		Size   int    `yaml:"size"`   // Label font size in pixels
	} `yaml:"font"`
	Colors struct {
		Background string `yaml:"background"` // Page/SVG background color
		Moment     string `yaml:"moment"`     // Fill color of moment boxes on even rows
		MomentAlt  string `yaml:"moment_alt"` // Fill color of moment boxes on odd rows
		Border     string `yaml:"border"`     // Stroke color of moment boxes
		Selected   string `yaml:"selected"`   // Fill color of the hovered/selected moment
		Text       string `yaml:"text"`       // Label and inspector text color
	} `yaml:"colors"`
	Layout struct {
		Divisor      float64 `yaml:"divisor"`       // Time units per percent of chart width
		RowHeight    int     `yaml:"row_height"`    // Vertical distance between rows in pixels
		MomentHeight int     `yaml:"moment_height"` // Height of a moment box in pixels (<= row_height)
		Margin       int     `yaml:"margin"`        // Outer margin of the SVG canvas in pixels
	} `yaml:"layout"`
	Zoom struct {
		Min   float64 `yaml:"min"`   // Lowest slider value (widest chart)
		Max   float64 `yaml:"max"`   // Highest slider value (narrowest chart)
		Step  float64 `yaml:"step"`  // Slider step
		Value float64 `yaml:"value"` // Initial slider value; chart width is 10^(-value) px
	} `yaml:"zoom"`
	Trace struct {
		MinDurationNs float64 `yaml:"min_duration_ns"` // Timers shorter than this are dropped at load
	} `yaml:"trace"`
}

// getDefaultConfig returns the default configuration:
//   - 1000 time units per percent, 20px rows with 18px boxes
//   - zoom slider from -5 to -2, starting at -3 (a 1000px wide chart)
//   - no duration filtering
func getDefaultConfig() Config {
	var config Config

	config.Font.Family = "Consolas, monospace"
	config.Font.Size = 11

	config.Colors.Background = "#ffffff"
	config.Colors.Moment = "#9ecae1"
	config.Colors.MomentAlt = "#c6dbef"
	config.Colors.Border = "#3182bd"
	config.Colors.Selected = "#fd8d3c"
	config.Colors.Text = "#222222"

	config.Layout.Divisor = 1000
	config.Layout.RowHeight = 20
	config.Layout.MomentHeight = 18
	config.Layout.Margin = 10

	config.Zoom.Min = -5
	config.Zoom.Max = -2
	config.Zoom.Step = 0.01
	config.Zoom.Value = -3

	return config
}

// loadConfig loads configuration from a YAML file on top of the defaults, or
// returns the defaults if no file is specified.
func loadConfig(configPath string) (Config, error) {
	config := getDefaultConfig()
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return config, nil
}

// validate rejects values that would make coordinate mapping meaningless
// and style values that could escape their CSS declaration.
func (c Config) validate() error {
	if c.Layout.Divisor <= 0 {
		return fmt.Errorf("layout.divisor must be positive, got %v", c.Layout.Divisor)
	}
	if c.Layout.RowHeight <= 0 {
		return fmt.Errorf("layout.row_height must be positive, got %d", c.Layout.RowHeight)
	}
	if c.Zoom.Min > c.Zoom.Max {
		return fmt.Errorf("zoom.min (%v) is greater than zoom.max (%v)", c.Zoom.Min, c.Zoom.Max)
	}
	for name, value := range map[string]string{
		"font.family":       c.Font.Family,
		"colors.background": c.Colors.Background,
		"colors.moment":     c.Colors.Moment,
		"colors.moment_alt": c.Colors.MomentAlt,
		"colors.border":     c.Colors.Border,
		"colors.selected":   c.Colors.Selected,
		"colors.text":       c.Colors.Text,
	} {
		if strings.ContainsAny(value, `<>{};\`) {
			return fmt.Errorf("%s must be a single CSS value, got %q", name, value)
		}
	}
	return nil
}
