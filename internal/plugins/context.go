package plugins

import (
	"context"
	"fmt"
	"strconv"

	"github.com/inkframe/inkframe/internal/device"
)

// PluginContext carries the device collaborator and raw settings into a
// render call. Settings arrive string-typed from the host; typed access
// goes through the parse helpers so malformed values surface as
// configuration errors instead of being silently swallowed.
type PluginContext struct {
	Context  context.Context
	Device   device.Config
	Settings map[string]string
}

// NewPluginContext creates a plugin context for a single render call.
func NewPluginContext(ctx context.Context, dev device.Config, settings map[string]string) PluginContext {
	if settings == nil {
		settings = map[string]string{}
	}
	return PluginContext{Context: ctx, Device: dev, Settings: settings}
}

// GetStringSetting returns a string setting value with fallback
func (ctx PluginContext) GetStringSetting(key string, fallback string) string {
	if val, ok := ctx.Settings[key]; ok && val != "" {
		return val
	}
	return fallback
}

// HasSetting checks if a setting exists
func (ctx PluginContext) HasSetting(key string) bool {
	_, exists := ctx.Settings[key]
	return exists
}

// ParseFloatSetting returns the float value of a setting, or fallback when
// the setting is absent or empty. A present but malformed value is an
// error.
func (ctx PluginContext) ParseFloatSetting(key string, fallback float64) (float64, error) {
	val, ok := ctx.Settings[key]
	if !ok || val == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("setting %q must be a number, got %q", key, val)
	}
	return f, nil
}

// ParseIntSetting returns the integer value of a setting, or fallback when
// the setting is absent or empty. A present but malformed value is an
// error.
func (ctx PluginContext) ParseIntSetting(key string, fallback int) (int, error) {
	val, ok := ctx.Settings[key]
	if !ok || val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("setting %q must be an integer, got %q", key, val)
	}
	return n, nil
}

// ParseBoolSetting returns true when the setting is exactly "true";
// anything else, including absence, is false.
func (ctx PluginContext) ParseBoolSetting(key string) bool {
	return ctx.Settings[key] == "true"
}
