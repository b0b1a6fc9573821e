package systems

import (
	"errors"
	"testing"

	"station-core/internal/domain"

	"github.com/go-gl/mathgl/mgl32"
)

func TestWorldPosition_ThroughParents(t *testing.T) {
	f := newFixture(t)
	locker := f.spawn("LockerSteel", 2, 3)
	human := f.spawn("MobHuman", 0, 0)
	cuffs := f.spawn("Handcuffs", 0, 0)

	if err := f.sys.Containers.Insert(human, locker, "entity_storage"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.sys.Cuffable.TryAddNewCuffs(human, human, cuffs); err != nil {
		t.Fatal(err)
	}
	// Небольшой сдвиг внутри шкафа.
	if err := f.sys.Transform.SetLocalPosition(human, mgl32.Vec2{0.25, 0}); err != nil {
		t.Fatal(err)
	}

	pos, err := f.sys.Transform.WorldPosition(cuffs)
	if err != nil {
		t.Fatalf("WorldPosition failed: %v", err)
	}
	if pos != f.at(2.25, 3) {
		t.Errorf("cuffs at %v, want %v", pos, f.at(2.25, 3))
	}

	if grid := f.sys.World.GetMap(f.mapID); len(grid.GetEntitiesAt(domain.TilePos{X: 2, Y: 3})) != 1 {
		t.Error("only the locker itself must be in the spatial hash")
	}
}

func TestWorldPosition_Errors(t *testing.T) {
	f := newFixture(t)
	locker := f.spawn("LockerSteel", 0, 0)
	human := f.spawn("MobHuman", 0, 0)
	_ = f.sys.Containers.Insert(human, locker, "entity_storage")

	// Родитель удалён в обход контейнеров: ссылка повисла.
	orphan := f.spawn("Handcuffs", 0, 0)
	doomed := f.spawn("Handcuffs", 0, 0)
	f.sys.World.Get(orphan).Transform.Parent = doomed
	f.sys.World.Delete(doomed)

	// Цикл в иерархии.
	a := f.spawn("Handcuffs", 0, 0)
	b := f.spawn("Handcuffs", 0, 0)
	f.sys.World.Get(a).Transform.Parent = b
	f.sys.World.Get(b).Transform.Parent = a

	tests := []struct {
		name    string
		err     func() error
		wantErr error
	}{
		{"dangling parent", func() error { _, err := f.sys.Transform.WorldPosition(orphan); return err }, domain.ErrUnresolvableFrame},
		{"cycle", func() error { _, err := f.sys.Transform.WorldPosition(a); return err }, domain.ErrUnresolvableFrame},
		{"deleted entity", func() error { _, err := f.sys.Transform.WorldPosition(doomed); return err }, domain.ErrEntityNotFound},
		{"null space point", func() error { _, err := f.sys.Transform.ResolveCoordinates(domain.MapCoordinates{}); return err }, domain.ErrUnresolvableFrame},
		{"attach to unknown map", func() error { return f.sys.Transform.AttachToMap(human, domain.NewMapCoordinates(99, 0, 0)) }, domain.ErrMapNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.err(); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetWorldPosition_Parented(t *testing.T) {
	f := newFixture(t)
	locker := f.spawn("LockerSteel", 1, 1)
	human := f.spawn("MobHuman", 0, 0)
	_ = f.sys.Containers.Insert(human, locker, "entity_storage")

	if err := f.sys.Transform.SetWorldPosition(human, f.at(1.5, 1)); err != nil {
		t.Fatal(err)
	}
	local, _ := f.sys.Transform.LocalPosition(human)
	if local != (mgl32.Vec2{0.5, 0}) {
		t.Errorf("local = %v, want (0.5, 0)", local)
	}

	otherMap := f.sys.World.CreateMap()
	err := f.sys.Transform.SetWorldPosition(human, domain.NewMapCoordinates(otherMap, 0, 0))
	if !errors.Is(err, domain.ErrUnresolvableFrame) {
		t.Errorf("moving a child to another map: err = %v", err)
	}
}

func TestAttachToMap_UpdatesSpatialHash(t *testing.T) {
	f := newFixture(t)
	human := f.spawn("MobHuman", 0.5, 0.5)
	grid := f.sys.World.GetMap(f.mapID)

	if err := f.sys.Transform.SetLocalPosition(human, mgl32.Vec2{4.5, 0.5}); err != nil {
		t.Fatal(err)
	}
	if len(grid.GetEntitiesAt(domain.TilePos{X: 0, Y: 0})) != 0 {
		t.Error("old cell must be empty")
	}
	if got := grid.GetEntitiesAt(domain.TilePos{X: 4, Y: 0}); len(got) != 1 || got[0] != human {
		t.Errorf("new cell = %v", got)
	}

	otherMap := f.sys.World.CreateMap()
	if err := f.sys.Transform.AttachToMap(human, domain.NewMapCoordinates(otherMap, 1, 1)); err != nil {
		t.Fatal(err)
	}
	if len(grid.GetEntitiesAt(domain.TilePos{X: 4, Y: 0})) != 0 {
		t.Error("entity must leave the old map index")
	}
	if got := f.sys.World.GetMap(otherMap).GetEntitiesAt(domain.TilePos{X: 1, Y: 1}); len(got) != 1 {
		t.Errorf("entity missing from the new map index: %v", got)
	}
}
