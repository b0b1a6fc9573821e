package domain

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestMapCoordinates_DistanceTo(t *testing.T) {
	tests := []struct {
		name   string
		a, b   MapCoordinates
		want   float32
		wantOK bool
	}{
		{"same map", NewMapCoordinates(1, 0, 0), NewMapCoordinates(1, 3, 4), 5, true},
		{"different maps", NewMapCoordinates(1, 0, 0), NewMapCoordinates(2, 0, 0), 0, false},
		{"null space", NewMapCoordinates(NullSpace, 0, 0), NewMapCoordinates(NullSpace, 1, 0), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.DistanceTo(tt.b)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("DistanceTo = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTileAt(t *testing.T) {
	tests := []struct {
		p    mgl32.Vec2
		want TilePos
	}{
		{mgl32.Vec2{0.5, 0.5}, TilePos{X: 0, Y: 0}},
		{mgl32.Vec2{-0.5, 1.0}, TilePos{X: -1, Y: 1}},
		{mgl32.Vec2{2.99, -3.01}, TilePos{X: 2, Y: -4}},
	}
	for _, tt := range tests {
		if got := TileAt(tt.p); got != tt.want {
			t.Errorf("TileAt(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestMapCoordinates_Offset(t *testing.T) {
	c := NewMapCoordinates(3, 1, 1).Offset(mgl32.Vec2{0.5, -1})
	if c.MapID != 3 || c.Position != (mgl32.Vec2{1.5, 0}) {
		t.Errorf("Offset = %v", c)
	}
}
