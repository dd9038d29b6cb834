package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkframe/inkframe/internal/device"
	"github.com/inkframe/inkframe/internal/imageprocessing"
	"github.com/inkframe/inkframe/internal/logging"
	"github.com/inkframe/inkframe/internal/plugins"
	"github.com/inkframe/inkframe/internal/storage"
)

const defaultBitDepth = 8

// RenderRequest is the body of POST /api/render.
type RenderRequest struct {
	Plugin   string            `json:"plugin" binding:"required"`
	Settings map[string]string `json:"settings"`
}

// Handler serves the render API for a single configured display.
type Handler struct {
	Device device.Config
	Store  *storage.ImageStore
}

// NewHandler creates a Handler for the given display and image store.
func NewHandler(cfg device.Config, store *storage.ImageStore) *Handler {
	return &Handler{Device: cfg, Store: store}
}

// Render runs the named plugin and returns the resulting frame as PNG.
// With ?panel=true the frame is additionally converted to the panel's
// grayscale space before encoding.
func (h *Handler) Render(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	plugin, ok := plugins.Get(req.Plugin)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown plugin: " + req.Plugin})
		return
	}

	ctx := plugins.NewPluginContext(c.Request.Context(), h.Device, req.Settings)

	img, err := plugin.GenerateImage(ctx)
	if err != nil {
		logging.WarnWithComponent(logging.ComponentAPIRender, "Render failed",
			"plugin", req.Plugin, "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	bitDepth := device.BitDepth(h.Device, defaultBitDepth)
	if c.Query("panel") == "true" {
		img, err = imageprocessing.PrepareForPanel(img, bitDepth)
		if err != nil {
			logging.ErrorWithComponent(logging.ComponentAPIRender, "Panel conversion failed",
				"plugin", req.Plugin, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image processing failed"})
			return
		}
	}

	data, err := imageprocessing.EncodePNG(img, bitDepth)
	if err != nil {
		logging.ErrorWithComponent(logging.ComponentAPIRender, "PNG encoding failed",
			"plugin", req.Plugin, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image encoding failed"})
		return
	}

	if h.Store != nil {
		filename, url, err := h.Store.Store(data, req.Plugin)
		if err != nil {
			logging.WarnWithComponent(logging.ComponentAPIRender, "Failed to store frame",
				"plugin", req.Plugin, "error", err)
		} else {
			c.Header("X-Image-Filename", filename)
			c.Header("X-Image-URL", url)
		}
	}

	logging.InfoWithComponent(logging.ComponentAPIRender, "Rendered frame",
		"plugin", req.Plugin, "bytes", len(data))
	c.Data(http.StatusOK, "image/png", data)
}

// ListPlugins returns metadata for all registered plugins.
func (h *Handler) ListPlugins(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plugins": plugins.GetAllInfo()})
}

// Health reports process liveness and the configured display geometry.
func (h *Handler) Health(c *gin.Context) {
	geometry := device.ResolveGeometry(h.Device)
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"width":  geometry.Width,
		"height": geometry.Height,
	})
}
