package config

import (
	"strings"
	"testing"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefault(t *testing.T) {
	p := Default()
	if p.FrameWidth != 480 || p.FrameHeight != 640 {
		t.Errorf("frame: got %dx%d, want 480x640", p.FrameWidth, p.FrameHeight)
	}
	if p.AreaThreshold != 5000 {
		t.Errorf("AreaThreshold: got %v, want 5000", p.AreaThreshold)
	}
	if p.CannyLow != 150 || p.CannyHigh != 150 {
		t.Errorf("canny: got %v/%v, want 150/150", p.CannyLow, p.CannyHigh)
	}
	if p.DilateIterations != 2 || p.ErodeIterations != 1 {
		t.Errorf("iterations: got %d/%d, want 2/1", p.DilateIterations, p.ErodeIterations)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("default params should validate: %v", err)
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
		errSub string
	}{
		{"even blur size", func(p *Params) { p.BlurSize = 4 }, "odd"},
		{"zero width", func(p *Params) { p.FrameWidth = 0 }, "FrameWidth"},
		{"high below low", func(p *Params) { p.CannyLow, p.CannyHigh = 200, 100 }, "CannyHigh"},
		{"epsilon too large", func(p *Params) { p.ApproxEpsilon = 1.5 }, "ApproxEpsilon"},
		{"crop eats frame", func(p *Params) { p.CropMargin = 240 }, "crop margin"},
		{"negative iterations", func(p *Params) { p.ErodeIterations = -1 }, "ErodeIterations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.modify(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("error %q should mention %q", err, tt.errSub)
			}
		})
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	s, err := FromEnv(envMap(nil))
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if s.LogLevel != "info" {
		t.Errorf("LogLevel: got %s, want info", s.LogLevel)
	}
	if s.OverlayColor != "#00FF00" || s.OverlayThickness != 15 {
		t.Errorf("overlay: got %s/%d", s.OverlayColor, s.OverlayThickness)
	}
	if len(s.Inputs) != 0 {
		t.Errorf("Inputs: got %v, want none", s.Inputs)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	s, err := FromEnv(envMap(map[string]string{
		"DOCSCAN_DEVICE":         "2",
		"DOCSCAN_INPUTS":         "a.png, b.jpg ,,",
		"DOCSCAN_LOG_LEVEL":      "DEBUG",
		"DOCSCAN_HEADLESS":       "true",
		"DOCSCAN_MAX_FPS":        "12.5",
		"DOCSCAN_CANNY_LOW":      "75",
		"DOCSCAN_AREA_THRESHOLD": "8000",
	}))
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if s.Device != 2 {
		t.Errorf("Device: got %d, want 2", s.Device)
	}
	if len(s.Inputs) != 2 || s.Inputs[0] != "a.png" || s.Inputs[1] != "b.jpg" {
		t.Errorf("Inputs: got %v", s.Inputs)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel: got %s, want debug", s.LogLevel)
	}
	if !s.Headless {
		t.Error("Headless should be true")
	}
	if s.MaxFPS != 12.5 {
		t.Errorf("MaxFPS: got %v, want 12.5", s.MaxFPS)
	}
	if s.Params.CannyLow != 75 || s.Params.CannyHigh != 150 {
		t.Errorf("canny: got %v/%v, want 75/150", s.Params.CannyLow, s.Params.CannyHigh)
	}
	if s.Params.AreaThreshold != 8000 {
		t.Errorf("AreaThreshold: got %v, want 8000", s.Params.AreaThreshold)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad int", map[string]string{"DOCSCAN_DEVICE": "cam0"}},
		{"bad float", map[string]string{"DOCSCAN_MAX_FPS": "fast"}},
		{"bad bool", map[string]string{"DOCSCAN_HEADLESS": "maybe"}},
		{"bad level", map[string]string{"DOCSCAN_LOG_LEVEL": "verbose"}},
		{"bad colour", map[string]string{"DOCSCAN_OVERLAY_COLOR": "green"}},
		{"negative fps", map[string]string{"DOCSCAN_MAX_FPS": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromEnv(envMap(tt.env)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
