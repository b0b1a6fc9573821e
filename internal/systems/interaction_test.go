package systems

import (
	"errors"
	"testing"
	"time"

	"station-core/internal/domain"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// humanRadius - радиус MobHuman из базовых прототипов.
const humanRadius = 0.35

func TestInRangeUnobstructed_TwoHumans(t *testing.T) {
	f := newFixture(t)
	origin, other := f.spawn("MobHuman", 0, 0), f.spawn("MobHuman", 0, 0)

	if _, err := f.sys.Containers.EnsureContainer(other, "InRangeUnobstructedTestOtherContainer"); err != nil {
		t.Fatal(err)
	}

	check := func(t *testing.T, maxRange float32, want bool) {
		t.Helper()
		originCoords, err := f.sys.Transform.WorldPosition(origin)
		if err != nil {
			t.Fatal(err)
		}
		otherCoords, err := f.sys.Transform.WorldPosition(other)
		if err != nil {
			t.Fatal(err)
		}

		shapes := []struct {
			name     string
			src, dst Target
		}{
			{"entity-entity", EntityTarget(origin), EntityTarget(other)},
			{"entity-coords", EntityTarget(origin), CoordsTarget(otherCoords)},
			{"coords-entity", CoordsTarget(originCoords), EntityTarget(other)},
			{"coords-coords", CoordsTarget(originCoords), CoordsTarget(otherCoords)},
		}
		for _, shape := range shapes {
			for _, dir := range []struct {
				name     string
				src, dst Target
			}{
				{"forward", shape.src, shape.dst},
				{"backward", shape.dst, shape.src},
			} {
				got, err := f.sys.Interaction.InRangeUnobstructed(dir.src, dir.dst, maxRange)
				if err != nil {
					t.Errorf("%s/%s: unexpected error %v", shape.name, dir.name, err)
				}
				if got != want {
					t.Errorf("%s/%s: InRangeUnobstructed(range=%v) = %v, want %v", shape.name, dir.name, maxRange, got, want)
				}
			}
		}
	}

	step := domain.InteractionRange / 1.5
	move := func(dx float32) {
		local, err := f.sys.Transform.LocalPosition(other)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.sys.Transform.SetLocalPosition(other, local.Add(mgl32.Vec2{dx, 0})); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("co-located", func(t *testing.T) {
		check(t, 0, true)
	})

	move(step)
	t.Run("within range", func(t *testing.T) {
		check(t, 0, true)
	})

	move(step + humanRadius*2)
	t.Run("beyond default range", func(t *testing.T) {
		check(t, 0, false)
	})
	t.Run("within extended range", func(t *testing.T) {
		check(t, step*3, true)
	})
}

func TestInRangeUnobstructed_SurfaceDistance(t *testing.T) {
	tests := []struct {
		name     string
		srcProto string
		dstX     float32
		maxRange float32
		want     bool
	}{
		// между центрами 2.1, между поверхностями 1.4
		{"two bodies within range", "MobHuman", 2.1, 1.5, true},
		{"two bodies past range", "MobHuman", 2.3, 1.5, false},
		// у HumanDummy нет физики: вычитается только радиус цели
		{"body without physics", "HumanDummy", 1.8, 1.5, true},
		{"body without physics past range", "HumanDummy", 1.9, 1.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			src := f.spawn(tt.srcProto, 0.5, 0.5)
			dst := f.spawn("MobHuman", 0.5+tt.dstX, 0.5)

			got, err := f.sys.Interaction.InRangeUnobstructed(EntityTarget(src), EntityTarget(dst), tt.maxRange)
			if err != nil || got != tt.want {
				t.Errorf("InRangeUnobstructed = %v, %v; want %v", got, err, tt.want)
			}
		})
	}
}

func TestInRangeUnobstructed_InclusiveBoundary(t *testing.T) {
	f := newFixture(t)
	got, err := f.sys.Interaction.InRangeUnobstructed(CoordsTarget(f.at(0, 0)), CoordsTarget(f.at(0, 1.5)), 0)
	if err != nil || !got {
		t.Errorf("distance equal to range must be in range, got %v, %v", got, err)
	}
	got, _ = f.sys.Interaction.InRangeUnobstructed(CoordsTarget(f.at(0, 0)), CoordsTarget(f.at(0, 1.51)), 0)
	if got {
		t.Error("distance above range must be out of range")
	}
}

func TestInRangeUnobstructed_Obstruction(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture)
		want  bool
	}{
		{"open floor", func(f *fixture) {}, true},
		{"wall between", func(f *fixture) { f.wall(1, 0) }, false},
		{"wall beside the line", func(f *fixture) { f.wall(1, 1) }, true},
		{"locker between", func(f *fixture) { f.spawn("LockerSteel", 1.5, 0.5) }, false},
		{"human between", func(f *fixture) { f.spawn("MobHuman", 1.5, 0.5) }, true},
		{"locker off the line", func(f *fixture) { f.spawn("LockerSteel", 1.5, 2.5) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			src, dst := CoordsTarget(f.at(0.5, 0.5)), CoordsTarget(f.at(2.5, 0.5))
			forward, err := f.sys.Interaction.InRangeUnobstructed(src, dst, 3)
			if err != nil {
				t.Fatal(err)
			}
			backward, _ := f.sys.Interaction.InRangeUnobstructed(dst, src, 3)

			if forward != tt.want || backward != tt.want {
				t.Errorf("forward=%v backward=%v, want %v", forward, backward, tt.want)
			}
		})
	}
}

func TestInRangeUnobstructed_DiagonalThroughCorner(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture)
		want  bool
	}{
		{"no walls", func(f *fixture) {}, true},
		{"wall below the corner", func(f *fixture) { f.wall(1, 0) }, false},
		{"wall left of the corner", func(f *fixture) { f.wall(0, 1) }, false},
		{"wall beyond the end", func(f *fixture) { f.wall(2, 2) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			src, dst := CoordsTarget(f.at(0.5, 0.5)), CoordsTarget(f.at(1.5, 1.5))
			forward, err := f.sys.Interaction.InRangeUnobstructed(src, dst, 3)
			if err != nil {
				t.Fatal(err)
			}
			backward, err := f.sys.Interaction.InRangeUnobstructed(dst, src, 3)
			if err != nil {
				t.Fatal(err)
			}

			if forward != tt.want || backward != tt.want {
				t.Errorf("forward=%v backward=%v, want %v", forward, backward, tt.want)
			}
		})
	}
}

func TestInRangeUnobstructed_NonFiniteCoordinates(t *testing.T) {
	nan, inf := math32.NaN(), math32.Inf(1)
	tests := []struct {
		name     string
		x, y     float32
		maxRange float32
	}{
		{"nan x", nan, 0.5, 0},
		{"nan y", 0.5, nan, 3},
		{"infinite x", inf, 0.5, 0},
		{"infinite y with infinite range", 0.5, -inf, inf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			src, dst := CoordsTarget(f.at(0.5, 0.5)), CoordsTarget(f.at(tt.x, tt.y))

			type result struct {
				ok  bool
				err error
			}
			done := make(chan result, 2)
			go func() {
				ok, err := f.sys.Interaction.InRangeUnobstructed(src, dst, tt.maxRange)
				done <- result{ok, err}
				ok, err = f.sys.Interaction.InRangeUnobstructed(dst, src, tt.maxRange)
				done <- result{ok, err}
			}()

			for range 2 {
				select {
				case r := <-done:
					if r.ok || r.err != nil {
						t.Errorf("InRangeUnobstructed = %v, %v; want false, nil", r.ok, r.err)
					}
				case <-time.After(2 * time.Second):
					t.Fatal("InRangeUnobstructed did not return")
				}
			}
		})
	}
}

func TestInRangeUnobstructed_ActorInsideLocker(t *testing.T) {
	f := newFixture(t)
	locker := f.spawn("LockerSteel", 0.5, 0.5)
	inside := f.spawn("MobHuman", 0.5, 0.5)
	outside := f.spawn("MobHuman", 1.5, 0.5)

	if err := f.sys.Containers.Insert(inside, locker, "entity_storage"); err != nil {
		t.Fatal(err)
	}

	got, err := f.sys.Interaction.InRangeUnobstructed(EntityTarget(inside), EntityTarget(outside), 0)
	if err != nil || !got {
		t.Errorf("actor inside a locker must reach a neighbour, got %v, %v", got, err)
	}

	exempt := f.sys.Interaction.exemptions(EntityTarget(inside), EntityTarget(outside))
	if _, ok := exempt[locker]; !ok {
		t.Error("locker holding the actor must be exempt")
	}
	if len(exempt) != 3 {
		t.Errorf("exempt = %v, want actor, target and locker", exempt)
	}
}

func TestInRangeUnobstructed_ContainedInCarriedContainer(t *testing.T) {
	f := newFixture(t)
	human := f.spawn("MobHuman", 0.5, 0.5)
	box := f.spawn("LockerSteel", 0.5, 0.5)
	item := f.spawn("Handcuffs", 0.5, 0.5)

	if _, err := f.sys.Containers.EnsureContainer(human, "hands"); err != nil {
		t.Fatal(err)
	}
	if err := f.sys.Containers.Insert(box, human, "hands"); err != nil {
		t.Fatal(err)
	}
	if err := f.sys.Containers.Insert(item, box, "entity_storage"); err != nil {
		t.Fatal(err)
	}

	owners := f.sys.Containers.Owners(item)
	if len(owners) != 2 || owners[0] != box || owners[1] != human {
		t.Fatalf("Owners = %v, want [box human]", owners)
	}

	got, err := f.sys.Interaction.InRangeUnobstructed(EntityTarget(item), CoordsTarget(f.at(1.5, 0.5)), 0)
	if err != nil || !got {
		t.Errorf("nested item must reach nearby point, got %v, %v", got, err)
	}
}

func TestInRangeUnobstructed_Unresolvable(t *testing.T) {
	f := newFixture(t)
	human := f.spawn("MobHuman", 0, 0)

	otherMap := f.sys.World.CreateMap()
	elsewhere, err := f.sys.World.Spawn("MobHuman", domain.NewMapCoordinates(otherMap, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	floating, err := f.sys.World.Spawn("MobHuman", domain.MapCoordinates{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		dst  Target
	}{
		{"different map", EntityTarget(elsewhere)},
		{"null space entity", EntityTarget(floating)},
		{"null space point", CoordsTarget(domain.MapCoordinates{})},
		{"unknown map point", CoordsTarget(domain.NewMapCoordinates(otherMap+5, 0, 0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.sys.Interaction.InRangeUnobstructed(EntityTarget(human), tt.dst, 100)
			if err != nil || got {
				t.Errorf("InRangeUnobstructed = %v, %v; want false, nil", got, err)
			}
		})
	}
}

func TestInRangeUnobstructed_StaleEntity(t *testing.T) {
	reporter := &recordingReporter{}
	f := newFixture(t, WithReporter(reporter))
	human := f.spawn("MobHuman", 0, 0)
	gone := f.spawn("MobHuman", 0, 0)
	f.sys.World.Delete(gone)

	got, err := f.sys.Interaction.InRangeUnobstructed(EntityTarget(human), EntityTarget(gone), 0)
	if got || !errors.Is(err, domain.ErrEntityNotFound) {
		t.Errorf("InRangeUnobstructed = %v, %v; want false, ErrEntityNotFound", got, err)
	}
	if len(reporter.errs) != 1 || !errors.Is(reporter.errs[0], domain.ErrEntityNotFound) {
		t.Errorf("reported errors = %v", reporter.errs)
	}
}

func TestInRangeUnobstructed_ConfiguredDefaultRange(t *testing.T) {
	f := newFixture(t, WithInteractionRange(4))
	if f.sys.Interaction.DefaultRange() != 4 {
		t.Fatalf("DefaultRange = %v, want 4", f.sys.Interaction.DefaultRange())
	}

	got, _ := f.sys.Interaction.InRangeUnobstructed(CoordsTarget(f.at(0, 0)), CoordsTarget(f.at(3, 0)), 0)
	if !got {
		t.Error("non-positive range must fall back to the configured default")
	}
	got, _ = f.sys.Interaction.InRangeUnobstructed(CoordsTarget(f.at(0, 0)), CoordsTarget(f.at(3, 0)), -1)
	if !got {
		t.Error("negative range must fall back to the configured default")
	}
}
