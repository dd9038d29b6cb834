package logging

// Component constants for structured logging
const (
	ComponentStartup   = "startup"
	ComponentAPIRender = "api-render"
	ComponentCapture   = "capture"
	ComponentRenderer  = "renderer"
	ComponentRewriter  = "rewriter"
	ComponentDevice    = "device"
	ComponentStorage   = "storage"
	ComponentRateLimit = "rate-limit"
)
