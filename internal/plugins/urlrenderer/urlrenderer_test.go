package urlrenderer

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/inkframe/inkframe/internal/capture"
	"github.com/inkframe/inkframe/internal/device"
	"github.com/inkframe/inkframe/internal/plugins"
)

// fakeInvoker returns a frame matching the requested viewport, or a
// canned error.
type fakeInvoker struct {
	lastReq capture.Request
	err     error
}

func (f *fakeInvoker) Capture(_ context.Context, req capture.Request) (image.Image, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return image.NewRGBA(image.Rect(0, 0, req.Width, req.Height)), nil
}

func testContext(settings map[string]string, orientation string) plugins.PluginContext {
	return plugins.NewPluginContext(context.Background(), device.StaticConfig{
		Width:  800,
		Height: 480,
		Values: map[string]string{"orientation": orientation},
	}, settings)
}

func TestGenerateImageDefaultZoom(t *testing.T) {
	fake := &fakeInvoker{}
	p := New(fake)

	img, err := p.GenerateImage(testContext(map[string]string{"url": "https://example.com"}, ""))
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}

	// Default zoom 0.5 doubles the requested viewport.
	if fake.lastReq.Width != 1600 || fake.lastReq.Height != 960 {
		t.Errorf("capture viewport = %dx%d, want 1600x960", fake.lastReq.Width, fake.lastReq.Height)
	}
	// The final frame is resized back to exactly the display size.
	if img.Bounds().Dx() != 800 || img.Bounds().Dy() != 480 {
		t.Errorf("output = %dx%d, want 800x480", img.Bounds().Dx(), img.Bounds().Dy())
	}
	if fake.lastReq.DeviceScale != 0 {
		t.Error("fixed-zoom capture must not set a device scale factor")
	}
}

func TestGenerateImageUnityZoomSkipsResize(t *testing.T) {
	fake := &fakeInvoker{}
	p := New(fake)

	img, err := p.GenerateImage(testContext(map[string]string{
		"url":       "https://example.com",
		"zoomLevel": "1.0",
	}, ""))
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}

	if fake.lastReq.Width != 800 || fake.lastReq.Height != 480 {
		t.Errorf("capture viewport = %dx%d, want 800x480", fake.lastReq.Width, fake.lastReq.Height)
	}
	if img.Bounds().Dx() != 800 || img.Bounds().Dy() != 480 {
		t.Errorf("output = %dx%d, want 800x480", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestGenerateImageOrientationSwap(t *testing.T) {
	fake := &fakeInvoker{}
	p := New(fake)

	img, err := p.GenerateImage(testContext(map[string]string{
		"url":       "https://example.com",
		"zoomLevel": "1.0",
	}, device.OrientationVertical))
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}

	if fake.lastReq.Width != 480 || fake.lastReq.Height != 800 {
		t.Errorf("capture viewport = %dx%d, want 480x800 after vertical swap", fake.lastReq.Width, fake.lastReq.Height)
	}
	if img.Bounds().Dx() != 480 || img.Bounds().Dy() != 800 {
		t.Errorf("output = %dx%d, want 480x800", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestGenerateImageURLHandling(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantURL string
		wantErr bool
	}{
		{"bare host normalized", "example.com", "https://example.com", false},
		{"absolute url untouched", "http://example.com", "http://example.com", false},
		{"missing url", "", "", true},
		{"scheme without host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeInvoker{}
			p := New(fake)

			settings := map[string]string{}
			if tt.url != "" {
				settings["url"] = tt.url
			}
			_, err := p.GenerateImage(testContext(settings, ""))
			if (err != nil) != tt.wantErr {
				t.Fatalf("GenerateImage error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && fake.lastReq.URL != tt.wantURL {
				t.Errorf("captured URL = %q, want %q", fake.lastReq.URL, tt.wantURL)
			}
		})
	}
}

func TestGenerateImageRejectsBadZoom(t *testing.T) {
	for _, zoom := range []string{"0", "-0.5", "banana"} {
		fake := &fakeInvoker{}
		p := New(fake)

		_, err := p.GenerateImage(testContext(map[string]string{
			"url":       "https://example.com",
			"zoomLevel": zoom,
		}, ""))
		if err == nil {
			t.Errorf("zoomLevel %q accepted", zoom)
		}
		if fake.lastReq.URL != "" {
			t.Errorf("zoomLevel %q reached the invoker", zoom)
		}
	}
}

func TestGenerateImageConvertsCaptureFailures(t *testing.T) {
	for name, capErr := range map[string]error{
		"timeout":         capture.ErrTimeout,
		"process failure": &capture.ProcessError{ExitCode: 1, Stderr: "boom"},
		"missing output":  &capture.ProcessError{OutputMissing: true},
	} {
		t.Run(name, func(t *testing.T) {
			p := New(&fakeInvoker{err: capErr})

			_, err := p.GenerateImage(testContext(map[string]string{"url": "https://example.com"}, ""))
			if err == nil {
				t.Fatal("capture failure produced no error")
			}
			if !strings.Contains(err.Error(), "screenshot generation failed") {
				t.Errorf("error %q not converted to user-facing form", err)
			}
			// The low-level error type must not leak through the facade.
			if errors.Is(err, capture.ErrTimeout) {
				t.Error("capture-layer error escaped the facade unconverted")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	p := New(&fakeInvoker{})

	if err := p.Validate(map[string]string{"url": "example.com"}); err != nil {
		t.Errorf("valid settings rejected: %v", err)
	}
	if err := p.Validate(map[string]string{}); err == nil {
		t.Error("missing url accepted")
	}
	if err := p.Validate(map[string]string{"url": "example.com", "zoomLevel": "nope"}); err == nil {
		t.Error("malformed zoom accepted")
	}
}
