package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/inkframe/inkframe/internal/config"
	"github.com/inkframe/inkframe/internal/logging"
)

// DefaultTimeout is the hard wall-clock cap on a single browser
// invocation.
const DefaultTimeout = 30 * time.Second

// Mobile user agent so pages serve their responsive layouts, which read
// far better on small panels than desktop ones.
const mobileUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 15_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.0 Mobile/15E148 Safari/604.1"

// ChromiumInvoker captures screenshots by running a headless Chromium
// binary and reading back the image it writes to a transient file.
type ChromiumInvoker struct {
	Binary  string
	Timeout time.Duration
}

// NewChromiumInvoker creates an invoker configured from the environment.
func NewChromiumInvoker() *ChromiumInvoker {
	return &ChromiumInvoker{
		Binary:  config.Get("CHROMIUM_BINARY", "chromium-browser"),
		Timeout: config.GetDuration("CAPTURE_TIMEOUT", DefaultTimeout),
	}
}

// buildArgs assembles the Chromium command line for a capture request.
func buildArgs(req Request, outPath string) []string {
	args := []string{
		req.URL,
		"--headless=old",
		"--screenshot=" + outPath,
		fmt.Sprintf("--window-size=%d,%d", req.Width, req.Height),
		"--user-agent=" + mobileUserAgent,
		"--no-sandbox",
		"--disable-gpu",
		"--disable-software-rasterizer",
		"--disable-dev-shm-usage",
		"--hide-scrollbars",
	}
	if req.DeviceScale > 0 {
		args = append(args, fmt.Sprintf("--force-device-scale-factor=%g", req.DeviceScale))
	}
	if req.FullPage {
		args = append(args, "--force-viewport-sizing")
	}
	return args
}

// Capture runs the browser against req and decodes the frame it wrote.
// The transient output file is removed on every exit path; a failed
// capture never leaves files behind.
func (c *ChromiumInvoker) Capture(ctx context.Context, req Request) (image.Image, error) {
	outPath := filepath.Join(os.TempDir(), fmt.Sprintf("capture_%s.png", uuid.NewString()))
	defer os.Remove(outPath)

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.Binary, buildArgs(req, outPath)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		logging.ErrorWithComponent(logging.ComponentCapture, "Screenshot process timed out",
			"url", req.URL, "timeout", timeout, "stderr", stderr.String())
		return nil, ErrTimeout
	}
	if runErr != nil {
		exitCode := -1
		if cmd.ProcessState != nil {
			exitCode = cmd.ProcessState.ExitCode()
		}
		logging.ErrorWithComponent(logging.ComponentCapture, "Screenshot process failed",
			"url", req.URL, "exit_code", exitCode, "error", runErr, "stderr", stderr.String())
		return nil, &ProcessError{ExitCode: exitCode, Stderr: stderr.String()}
	}

	f, err := os.Open(outPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.ErrorWithComponent(logging.ComponentCapture, "Screenshot process produced no output",
				"url", req.URL, "stderr", stderr.String())
			return nil, &ProcessError{OutputMissing: true, Stderr: stderr.String()}
		}
		return nil, fmt.Errorf("failed to open screenshot output: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode screenshot output: %w", err)
	}
	return img, nil
}
