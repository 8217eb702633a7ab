package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gonewx/jovian/pkg/types"
)

func TestParseCameraConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *CameraConfig)
	}{
		{
			name:        "empty document keeps defaults",
			yamlContent: ``,
			validate: func(t *testing.T, cfg *CameraConfig) {
				if cfg.LerpSpeed != 0.08 {
					t.Errorf("expected lerpSpeed 0.08, got %f", cfg.LerpSpeed)
				}
				if cfg.Timeout() != 5*time.Second {
					t.Errorf("expected timeout 5s, got %v", cfg.Timeout())
				}
				if cfg.Offsets.POI.Z != 25 {
					t.Errorf("expected poi offset z 25, got %f", cfg.Offsets.POI.Z)
				}
			},
		},
		{
			name: "partial override",
			yamlContent: `
lerpSpeed: 0.2
snapThresholds:
  poi: { position: 0.3, target: 0.2 }
`,
			validate: func(t *testing.T, cfg *CameraConfig) {
				if cfg.LerpSpeed != 0.2 {
					t.Errorf("expected lerpSpeed 0.2, got %f", cfg.LerpSpeed)
				}
				if th := cfg.ThresholdFor(types.ViewPOIFocus); th.Position != 0.3 || th.Target != 0.2 {
					t.Errorf("unexpected poi threshold %+v", th)
				}
				// 未覆盖的阈值保持默认
				if th := cfg.ThresholdFor(types.ViewMoonFocus); th.Position != 1.2 {
					t.Errorf("expected moon threshold 1.2, got %f", th.Position)
				}
			},
		},
		{
			name:        "lerp speed out of range",
			yamlContent: `lerpSpeed: 1.5`,
			wantErr:     true,
			errContains: "lerpSpeed",
		},
		{
			name:        "zero timeout",
			yamlContent: `transitionTimeout: 0`,
			wantErr:     true,
			errContains: "transitionTimeout",
		},
		{
			name: "non-positive threshold",
			yamlContent: `
snapThresholds:
  system: { position: 0, target: 0.8 }
`,
			wantErr:     true,
			errContains: "snap threshold 'system'",
		},
		{
			name:        "malformed yaml",
			yamlContent: `lerpSpeed: [`,
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseCameraConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestThresholdFor(t *testing.T) {
	cfg := DefaultCameraConfig()
	tests := []struct {
		state        types.ViewState
		wantPosition float64
		wantTarget   float64
	}{
		{types.ViewSystem, 1.2, 0.8},
		{types.ViewMoonFocus, 1.2, 0.8},
		{types.ViewPOIFocus, 0.6, 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			th := cfg.ThresholdFor(tt.state)
			if math.Abs(th.Position-tt.wantPosition) > 1e-9 || math.Abs(th.Target-tt.wantTarget) > 1e-9 {
				t.Errorf("ThresholdFor(%v) = %+v", tt.state, th)
			}
		})
	}
}

func TestLoadCameraConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadCameraConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})

	t.Run("bundled data file", func(t *testing.T) {
		cfg, err := LoadCameraConfig("../../data/camera.yaml")
		if err != nil {
			t.Fatalf("failed to load bundled camera config: %v", err)
		}
		if cfg.PanSpeed != 18 {
			t.Errorf("expected panSpeed 18, got %f", cfg.PanSpeed)
		}
		if cfg.Offsets.System.Vec().Y != 16 {
			t.Errorf("expected system offset y 16, got %f", cfg.Offsets.System.Y)
		}
	})

	t.Run("temp file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "camera.yaml")
		if err := os.WriteFile(path, []byte("fov: 45\n"), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadCameraConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.FOV != 45 {
			t.Errorf("expected fov 45, got %f", cfg.FOV)
		}
	})
}
