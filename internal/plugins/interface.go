package plugins

import "image"

// Plugin defines the interface that all renderer plugins must implement
type Plugin interface {
	// Type returns the unique type identifier for this plugin
	Type() string

	// Name returns the human-readable name of the plugin
	Name() string

	// Description returns a description of what the plugin does
	Description() string

	// Version returns the version of the plugin
	Version() string

	// ConfigSchema returns the JSON schema for plugin configuration
	ConfigSchema() string

	// Validate validates the plugin settings without rendering
	Validate(settings map[string]string) error

	// GenerateImage renders a frame for the device in ctx. It returns
	// either a complete image or an error, never both and never a
	// partial frame.
	GenerateImage(ctx PluginContext) (image.Image, error)
}

// PluginInfo contains metadata about a plugin
type PluginInfo struct {
	Type         string `json:"type"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Version      string `json:"version"`
	ConfigSchema string `json:"config_schema"`
}

// GetInfo returns the plugin metadata
func GetInfo(plugin Plugin) PluginInfo {
	return PluginInfo{
		Type:         plugin.Type(),
		Name:         plugin.Name(),
		Description:  plugin.Description(),
		Version:      plugin.Version(),
		ConfigSchema: plugin.ConfigSchema(),
	}
}
