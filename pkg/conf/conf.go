// Package conf holds the device constants. The defaults were lifted from USB
// captures of the stock software talking to the wired keyboard; anything a
// different hardware revision changes can be overridden from a yaml file.
package conf

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type Screen struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Report struct {
	// Size is the HID report length, header included.
	Size      int `yaml:"size"`
	HeaderLen int `yaml:"header_len"`
}

type Config struct {
	VendorID   uint16   `yaml:"vendor_id"`
	ProductIDs []uint16 `yaml:"product_ids"`
	UsagePage  uint16   `yaml:"usage_page"`
	Usage      uint16   `yaml:"usage"`
	Screen     Screen   `yaml:"screen"`
	Report     Report   `yaml:"report"`

	// PacketGapMs paces successive reports; the firmware drops chunks when
	// flooded.
	PacketGapMs int `yaml:"packet_gap_ms"`
}

func Default() *Config {
	return &Config{
		VendorID:    0x3151,
		ProductIDs:  []uint16{0x4010, 0x4015},
		UsagePage:   0xFFFF,
		Usage:       0x02,
		Screen:      Screen{Width: 60, Height: 9},
		Report:      Report{Size: 64, HeaderLen: 8},
		PacketGapMs: 5,
	}
}

// Load returns the defaults, overlaid with the yaml file at path when one is
// given.
func Load(fs afero.Fs, path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	bs, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(bs, c); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	if c.Report.Size <= c.Report.HeaderLen {
		return nil, errors.Errorf("report size %d leaves no payload room", c.Report.Size)
	}
	return c, nil
}

// ChunkSize is the payload room left in one report after the header.
func (c *Config) ChunkSize() int {
	return c.Report.Size - c.Report.HeaderLen
}

// FrameBytes is the full frame length: 2 bytes per RGB565 pixel.
func (c *Config) FrameBytes() int {
	return c.Screen.Width * c.Screen.Height * 2
}
