package config

import (
	"image/color"
	"strings"
	"testing"
)

const validSystemYAML = `
seed: 7
star: { name: Sun, info: star, radius: 49.6, color: "#ffff88" }
planet: { name: Jupiter, info: giant, radius: 4, color: "#cf8a50", orbitRadius: 90 }
moons:
  - { name: Io, info: volcanic, radius: 0.15, orbitRadius: 7.8, color: "#ffdd88", poiCount: 3 }
  - { name: Europa, info: icy, radius: 0.15, orbitRadius: 9, color: "#eeeecc", poiCount: 2, orbitalPeriod: 72 }
`

func TestParseSystemConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
	}{
		{name: "valid", yamlContent: validSystemYAML},
		{
			name:        "duplicate names",
			yamlContent: strings.Replace(validSystemYAML, "name: Europa", "name: Io", 1),
			wantErr:     true,
			errContains: "duplicate body name",
		},
		{
			name:        "moon inside planet",
			yamlContent: strings.Replace(validSystemYAML, "orbitRadius: 7.8", "orbitRadius: 3", 1),
			wantErr:     true,
			errContains: "inside the planet",
		},
		{
			name:        "bad color",
			yamlContent: strings.Replace(validSystemYAML, `"#ffdd88"`, `"yellow"`, 1),
			wantErr:     true,
			errContains: "invalid color",
		},
		{
			name:        "no moons",
			yamlContent: "star: { name: Sun, radius: 1, color: \"#ffffff\" }\nplanet: { name: J, radius: 1, color: \"#ffffff\", orbitRadius: 9 }\n",
			wantErr:     true,
			errContains: "at least one moon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseSystemConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Seed != 7 || len(cfg.Moons) != 2 {
				t.Errorf("unexpected config: seed=%d moons=%d", cfg.Seed, len(cfg.Moons))
			}
			europa, ok := cfg.FindMoon("Europa")
			if !ok || europa.OrbitalPeriod != 72 || europa.POICount != 2 {
				t.Errorf("FindMoon(Europa) = %+v, %v", europa, ok)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#cf8a50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := color.RGBA{R: 0xcf, G: 0x8a, B: 0x50, A: 0xff}
	if c != want {
		t.Errorf("ParseHexColor = %v, want %v", c, want)
	}

	for _, bad := range []string{"", "#fff", "#gggggg", "cf8a5"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("ParseHexColor(%q) should fail", bad)
		}
	}
}

func TestLoadSystemConfig_BundledData(t *testing.T) {
	cfg, err := LoadSystemConfig("../../data/system.yaml")
	if err != nil {
		t.Fatalf("failed to load bundled system config: %v", err)
	}
	if cfg.Planet.Name != "Jupiter" {
		t.Errorf("expected planet Jupiter, got %s", cfg.Planet.Name)
	}
	if len(cfg.Moons) != 8 {
		t.Errorf("expected 8 moons, got %d", len(cfg.Moons))
	}

	pois := 0
	for _, m := range cfg.Moons {
		pois += m.POICount
	}
	if pois != 10 {
		t.Errorf("expected 10 POIs in total, got %d", pois)
	}
}
