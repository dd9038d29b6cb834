package device

// Orientation values understood by the renderer.
const (
	OrientationHorizontal = "horizontal"
	OrientationVertical   = "vertical"
)

// Config provides read-only access to the display's geometry and settings.
// The renderer only ever reads two integers and a handful of string keys
// from it, so hosts can back it with whatever they like.
type Config interface {
	// GetResolution returns the panel's base width and height in pixels.
	GetResolution() (int, int)

	// GetConfig returns the named configuration value, or "" when absent.
	GetConfig(key string) string
}

// Geometry is the effective target geometry after orientation is applied.
type Geometry struct {
	Width  int
	Height int
}

// ResolveGeometry returns the display dimensions with the vertical
// orientation swap applied. Everything downstream of this call is
// orientation-agnostic.
func ResolveGeometry(cfg Config) Geometry {
	w, h := cfg.GetResolution()
	if cfg.GetConfig("orientation") == OrientationVertical {
		w, h = h, w
	}
	return Geometry{Width: w, Height: h}
}

// StaticConfig is an in-memory Config, used by tests and as the fallback
// when no device file is configured.
type StaticConfig struct {
	Width  int
	Height int
	Values map[string]string
}

func (c StaticConfig) GetResolution() (int, int) {
	return c.Width, c.Height
}

func (c StaticConfig) GetConfig(key string) string {
	return c.Values[key]
}
