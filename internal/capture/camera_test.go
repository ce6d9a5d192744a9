package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestNewCamera(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantFPS int
	}{
		{
			name:    "default config",
			config:  DefaultConfig(),
			wantFPS: 30,
		},
		{
			name:    "device 1 at 15 fps",
			config:  Config{DeviceID: 1, Width: 320, Height: 240, FPS: 15},
			wantFPS: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(tt.config)

			if cam == nil {
				t.Fatal("NewCamera returned nil")
			}

			if got := cam.FPS(); got != tt.wantFPS {
				t.Errorf("FPS() = %d, want %d", got, tt.wantFPS)
			}

			if cam.IsOpen() {
				t.Error("camera should not be running initially")
			}
		})
	}
}

func TestCamera_SetFPS(t *testing.T) {
	cam := NewCamera(DefaultConfig())

	tests := []struct {
		name    string
		fps     int
		wantFPS int
	}{
		{"set to 10", 10, 10},
		{"set to 1", 1, 1},
		{"set to 0 should keep previous", 0, 1},
		{"set to negative should keep previous", -5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam.SetFPS(tt.fps)
			if got := cam.FPS(); got != tt.wantFPS {
				t.Errorf("FPS() = %d, want %d", got, tt.wantFPS)
			}
		})
	}
}

func TestCamera_ReadFrameNotOpen(t *testing.T) {
	cam := NewCamera(DefaultConfig())

	frame, err := cam.ReadFrame()
	if err != ErrCameraNotOpen {
		t.Errorf("expected ErrCameraNotOpen, got %v", err)
	}
	if frame != nil {
		t.Error("expected nil frame")
	}
}

func TestCamera_CloseWithoutOpen(t *testing.T) {
	cam := NewCamera(DefaultConfig())
	if err := cam.Close(); err != nil {
		t.Errorf("Close() on unopened camera returned %v", err)
	}
}

func TestMirror(t *testing.T) {
	frame := gocv.NewMatWithSize(4, 8, gocv.MatTypeCV8UC1)
	defer frame.Close()
	frame.SetTo(gocv.NewScalar(0, 0, 0, 0))
	frame.SetUCharAt(1, 0, 200)

	Mirror(&frame)

	if got := frame.GetUCharAt(1, 7); got != 200 {
		t.Errorf("expected pixel moved to the right edge, got %d", got)
	}
	if got := frame.GetUCharAt(1, 0); got != 0 {
		t.Errorf("expected left edge cleared, got %d", got)
	}
}
