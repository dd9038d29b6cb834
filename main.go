package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/inkframe/inkframe/internal/config"
	"github.com/inkframe/inkframe/internal/device"
	"github.com/inkframe/inkframe/internal/handlers"
	"github.com/inkframe/inkframe/internal/logging"
	"github.com/inkframe/inkframe/internal/middleware"
	"github.com/inkframe/inkframe/internal/plugins"
	"github.com/inkframe/inkframe/internal/storage"
	"github.com/inkframe/inkframe/internal/version"

	_ "github.com/inkframe/inkframe/internal/plugins/urlrenderer"
	_ "github.com/inkframe/inkframe/internal/plugins/websiterenderer"
)

func main() {
	// Load .env file if present, real environment wins.
	_ = godotenv.Load()

	logging.Init()
	logging.InfoWithComponent(logging.ComponentStartup, "Starting inkframe",
		"version", version.String())

	deviceConfig, err := device.Load()
	if err != nil {
		logging.ErrorWithComponent(logging.ComponentStartup, "Failed to load device configuration", "error", err)
		os.Exit(1)
	}
	geometry := device.ResolveGeometry(deviceConfig)
	logging.InfoWithComponent(logging.ComponentStartup, "Display configured",
		"width", geometry.Width, "height", geometry.Height,
		"bit_depth", device.BitDepth(deviceConfig, 8))

	imageStore := storage.NewFromEnv()
	stopCleanup := make(chan struct{})
	go imageStore.StartCleanup(time.Hour, 24*time.Hour, stopCleanup)

	logging.InfoWithComponent(logging.ComponentStartup, "Plugins registered",
		"count", plugins.Count(), "types", plugins.GetAllTypes())

	if config.Get("GIN_MODE", "") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	handler := handlers.NewHandler(deviceConfig, imageStore)
	rateLimiter := middleware.NewRenderRateLimiter()

	api := router.Group("/api")
	{
		api.POST("/render", rateLimiter.RateLimit(), handler.Render)
		api.GET("/plugins", handler.ListPlugins)
	}
	router.GET("/healthz", handler.Health)
	router.Static("/images", imageStore.BasePath())

	addr := ":" + config.Get("PORT", "8080")
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.InfoWithComponent(logging.ComponentStartup, "HTTP server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorWithComponent(logging.ComponentStartup, "HTTP server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logging.InfoWithComponent(logging.ComponentStartup, "Shutting down")
	close(stopCleanup)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.ErrorWithComponent(logging.ComponentStartup, "Shutdown error", "error", err)
	}
}
