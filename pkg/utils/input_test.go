package utils

import (
	"testing"
)

func TestDoubleClickDetector(t *testing.T) {
	type click struct {
		at   float64
		x, y int
	}
	tests := []struct {
		name   string
		clicks []click
		want   []bool
	}{
		{"single click", []click{{0, 100, 100}}, []bool{false}},
		{"fast double click", []click{{0, 100, 100}, {0.2, 101, 99}}, []bool{false, true}},
		{"too slow", []click{{0, 100, 100}, {0.5, 100, 100}}, []bool{false, false}},
		{"moved too far", []click{{0, 100, 100}, {0.1, 120, 100}}, []bool{false, false}},
		{"slow pair then fast pair", []click{{0, 10, 10}, {1, 10, 10}, {1.1, 10, 10}}, []bool{false, false, true}},
		{"third click starts over", []click{{0, 10, 10}, {0.1, 10, 10}, {0.2, 10, 10}}, []bool{false, true, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDoubleClickDetector()
			for i, c := range tt.clicks {
				if got := d.Click(c.at, c.x, c.y); got != tt.want[i] {
					t.Errorf("click %d at %.2fs: got %v, want %v", i, c.at, got, tt.want[i])
				}
			}
		})
	}
}

func TestDoubleClickDetectorReset(t *testing.T) {
	d := NewDoubleClickDetector()
	d.Click(0, 50, 50)
	d.Reset()
	if d.Click(0.1, 50, 50) {
		t.Error("click after Reset should not complete a double click")
	}
}
