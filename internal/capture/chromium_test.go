package capture

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestBuildArgs(t *testing.T) {
	req := Request{URL: "https://example.com", Width: 1600, Height: 960}
	args := buildArgs(req, "/tmp/out.png")

	want := []string{
		"https://example.com",
		"--headless=old",
		"--screenshot=/tmp/out.png",
		"--window-size=1600,960",
		"--user-agent=" + mobileUserAgent,
		"--no-sandbox",
		"--disable-gpu",
		"--disable-software-rasterizer",
		"--disable-dev-shm-usage",
		"--hide-scrollbars",
	}
	if len(args) != len(want) {
		t.Fatalf("got %d args, want %d: %v", len(args), len(want), args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("arg %d = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestBuildArgsDeviceScaleAndFullPage(t *testing.T) {
	req := Request{URL: "https://example.com", Width: 800, Height: 480, DeviceScale: 1.5, FullPage: true}
	args := buildArgs(req, "/tmp/out.png")

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "--force-device-scale-factor=1.5") {
		t.Errorf("missing device scale flag in %q", joined)
	}
	if !strings.Contains(joined, "--force-viewport-sizing") {
		t.Errorf("missing full page flag in %q", joined)
	}
}

// writeStub writes an executable shell script standing in for the browser
// binary.
func writeStub(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chromium-stub")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

// tempPNG writes a small valid PNG and returns its path.
func tempPNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// assertNoLeftoverArtifacts fails if any transient capture file survived
// the call. TMPDIR is pointed at a private directory by the callers.
func assertNoLeftoverArtifacts(t *testing.T, dir string) {
	t.Helper()
	leftovers, err := filepath.Glob(filepath.Join(dir, "capture_*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(leftovers) > 0 {
		t.Errorf("transient artifacts left behind: %v", leftovers)
	}
}

func TestCaptureSuccessAndCleanup(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	t.Setenv("CAPTURE_STUB_SRC", tempPNG(t))

	// The stub copies a canned frame to whatever --screenshot path it is
	// handed, like the real browser would.
	stub := writeStub(t, `
for a in "$@"; do
  case "$a" in --screenshot=*) out="${a#--screenshot=}";; esac
done
cp "$CAPTURE_STUB_SRC" "$out"
`)

	invoker := &ChromiumInvoker{Binary: stub, Timeout: 10 * time.Second}
	img, err := invoker.Capture(context.Background(), Request{URL: "https://example.com", Width: 800, Height: 480})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("decoded %dx%d, want 4x4", img.Bounds().Dx(), img.Bounds().Dy())
	}
	assertNoLeftoverArtifacts(t, tmp)
}

func TestCaptureNonZeroExit(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	stub := writeStub(t, "echo 'renderer crashed' >&2\nexit 3\n")

	invoker := &ChromiumInvoker{Binary: stub, Timeout: 10 * time.Second}
	_, err := invoker.Capture(context.Background(), Request{URL: "https://example.com", Width: 800, Height: 480})

	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("error = %v (%T), want *ProcessError", err, err)
	}
	if procErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", procErr.ExitCode)
	}
	if !strings.Contains(procErr.Stderr, "renderer crashed") {
		t.Errorf("Stderr = %q, want diagnostic output preserved", procErr.Stderr)
	}
	assertNoLeftoverArtifacts(t, tmp)
}

func TestCaptureMissingOutputFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	stub := writeStub(t, "exit 0\n")

	invoker := &ChromiumInvoker{Binary: stub, Timeout: 10 * time.Second}
	_, err := invoker.Capture(context.Background(), Request{URL: "https://example.com", Width: 800, Height: 480})

	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("error = %v (%T), want *ProcessError", err, err)
	}
	if !procErr.OutputMissing {
		t.Error("OutputMissing = false, want true")
	}
	assertNoLeftoverArtifacts(t, tmp)
}

func TestCaptureTimeout(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	stub := writeStub(t, "sleep 5\n")

	invoker := &ChromiumInvoker{Binary: stub, Timeout: 200 * time.Millisecond}
	start := time.Now()
	_, err := invoker.Capture(context.Background(), Request{URL: "https://example.com", Width: 800, Height: 480})

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("error = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("capture hung for %v past its deadline", elapsed)
	}
	assertNoLeftoverArtifacts(t, tmp)
}

func TestCaptureSpawnFailure(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	invoker := &ChromiumInvoker{Binary: filepath.Join(tmp, "no-such-binary"), Timeout: time.Second}
	_, err := invoker.Capture(context.Background(), Request{URL: "https://example.com", Width: 800, Height: 480})

	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("error = %v (%T), want *ProcessError", err, err)
	}
	assertNoLeftoverArtifacts(t, tmp)
}
