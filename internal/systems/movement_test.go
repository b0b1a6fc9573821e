package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCalculateMove(t *testing.T) {
	f := newFixture(t)
	f.wall(2, 0)
	f.spawn("LockerSteel", 0.5, 2.5)
	human := f.spawn("MobHuman", 0.5, 0.5)

	tests := []struct {
		name      string
		delta     mgl32.Vec2
		wantMoved bool
		wantWall  bool
	}{
		{"free step", mgl32.Vec2{1, 0}, true, false},
		{"into wall", mgl32.Vec2{2, 0}, false, true},
		{"through wall", mgl32.Vec2{3, 0}, false, true},
		{"into locker", mgl32.Vec2{0, 2}, false, true},
		{"step up", mgl32.Vec2{0, 1}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := CalculateMove(f.sys, human, tt.delta)
			if err != nil {
				t.Fatal(err)
			}
			if res.HasMoved != tt.wantMoved || res.IsWall != tt.wantWall {
				t.Errorf("CalculateMove = %+v, want moved=%v wall=%v", res, tt.wantMoved, tt.wantWall)
			}
		})
	}
}

func TestCalculateMove_Contained(t *testing.T) {
	f := newFixture(t)
	locker := f.spawn("LockerSteel", 0.5, 0.5)
	human := f.spawn("MobHuman", 0.5, 0.5)
	_ = f.sys.Containers.Insert(human, locker, "entity_storage")

	res, err := CalculateMove(f.sys, human, mgl32.Vec2{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if res.HasMoved || !res.Contained {
		t.Errorf("contained entity must not move, got %+v", res)
	}
}
