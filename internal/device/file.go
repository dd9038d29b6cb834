package device

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/inkframe/inkframe/internal/config"
)

// fileSchema is the on-disk YAML shape of a device definition.
type fileSchema struct {
	Width       int               `yaml:"width"`
	Height      int               `yaml:"height"`
	Orientation string            `yaml:"orientation"`
	BitDepth    int               `yaml:"bit_depth"`
	Extra       map[string]string `yaml:"extra"`
}

// FileConfig is a Config backed by a YAML device definition file.
type FileConfig struct {
	def fileSchema
}

// LoadFile reads a device definition from a YAML file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read device config %s: %w", path, err)
	}

	var def fileSchema
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse device config %s: %w", path, err)
	}

	if def.Width <= 0 || def.Height <= 0 {
		return nil, fmt.Errorf("device config %s: width and height must be positive, got %dx%d", path, def.Width, def.Height)
	}
	if def.Orientation != "" && def.Orientation != OrientationHorizontal && def.Orientation != OrientationVertical {
		return nil, fmt.Errorf("device config %s: unknown orientation %q", path, def.Orientation)
	}

	return &FileConfig{def: def}, nil
}

func (c *FileConfig) GetResolution() (int, int) {
	return c.def.Width, c.def.Height
}

func (c *FileConfig) GetConfig(key string) string {
	switch key {
	case "orientation":
		return c.def.Orientation
	case "bit_depth":
		if c.def.BitDepth == 0 {
			return ""
		}
		return strconv.Itoa(c.def.BitDepth)
	default:
		return c.def.Extra[key]
	}
}

// Load resolves the device configuration for this process. When
// DEVICE_CONFIG names a YAML file that file wins; otherwise the geometry
// comes from DISPLAY_WIDTH / DISPLAY_HEIGHT / DISPLAY_ORIENTATION.
func Load() (Config, error) {
	if path := config.Get("DEVICE_CONFIG", ""); path != "" {
		return LoadFile(path)
	}

	return StaticConfig{
		Width:  config.GetInt("DISPLAY_WIDTH", 800),
		Height: config.GetInt("DISPLAY_HEIGHT", 480),
		Values: map[string]string{
			"orientation": config.Get("DISPLAY_ORIENTATION", OrientationHorizontal),
			"bit_depth":   config.Get("DISPLAY_BIT_DEPTH", ""),
		},
	}, nil
}

// BitDepth returns the panel bit depth from cfg, defaulting when unset or
// malformed.
func BitDepth(cfg Config, def int) int {
	if v := cfg.GetConfig("bit_depth"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
