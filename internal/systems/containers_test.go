package systems

import (
	"errors"
	"testing"

	"station-core/internal/domain"
)

func TestEnsureContainer_Idempotent(t *testing.T) {
	f := newFixture(t)
	cuffs := f.spawn("HandcuffsDummy", 0, 0)

	first, err := f.sys.Containers.EnsureContainer(cuffs, "pouch")
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.sys.Containers.EnsureContainer(cuffs, "pouch")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("EnsureContainer must return the existing container")
	}
	if first.Owner != cuffs || first.ID != "pouch" {
		t.Errorf("container = %+v", first)
	}
}

func TestContainers_InsertErrors(t *testing.T) {
	f := newFixture(t)
	outer := f.spawn("LockerSteel", 0, 0)
	inner := f.spawn("LockerSteel", 0, 0)
	human := f.spawn("MobHuman", 0, 0)
	gone := f.spawn("MobHuman", 0, 0)
	f.sys.World.Delete(gone)

	if err := f.sys.Containers.Insert(inner, outer, "entity_storage"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"unknown container", f.sys.Containers.Insert(human, outer, "pockets"), domain.ErrContainerNotFound},
		{"already contained", f.sys.Containers.Insert(inner, outer, "entity_storage"), domain.ErrAlreadyContained},
		{"into itself", f.sys.Containers.Insert(outer, outer, "entity_storage"), domain.ErrContainerLoop},
		{"into own content", f.sys.Containers.Insert(outer, inner, "entity_storage"), domain.ErrContainerLoop},
		{"stale entity", f.sys.Containers.Insert(gone, outer, "entity_storage"), domain.ErrEntityNotFound},
		{"stale owner", f.sys.Containers.Insert(human, gone, "entity_storage"), domain.ErrEntityNotFound},
		{"remove not contained", f.sys.Containers.Remove(human), domain.ErrNotContained},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.wantErr) {
				t.Errorf("err = %v, want %v", tt.err, tt.wantErr)
			}
		})
	}
}

func TestContainers_RemoveDropsAtOwner(t *testing.T) {
	f := newFixture(t)
	locker := f.spawn("LockerSteel", 3.5, 1.5)
	human := f.spawn("MobHuman", 0.5, 0.5)

	if err := f.sys.Containers.Insert(human, locker, "entity_storage"); err != nil {
		t.Fatal(err)
	}
	if f.sys.World.Get(human).OnMap() {
		t.Error("contained entity must not be directly on the map")
	}

	if err := f.sys.Containers.Remove(human); err != nil {
		t.Fatal(err)
	}
	pos, err := f.sys.Transform.WorldPosition(human)
	if err != nil || pos != f.at(3.5, 1.5) {
		t.Errorf("dropped at %v, %v; want locker position", pos, err)
	}
	storage, _ := f.sys.World.Get(locker).Containers.Get("entity_storage")
	if storage.Contains(human) {
		t.Error("storage must not list the removed entity")
	}
}

func TestContainers_RemoveFromFloatingOwner(t *testing.T) {
	f := newFixture(t)
	locker, err := f.sys.World.Spawn("LockerSteel", domain.MapCoordinates{})
	if err != nil {
		t.Fatal(err)
	}
	cuffs := f.spawn("Handcuffs", 0, 0)
	_ = f.sys.Containers.Insert(cuffs, locker, "entity_storage")

	if err := f.sys.Containers.Remove(cuffs); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := f.sys.Transform.WorldPosition(cuffs); !errors.Is(err, domain.ErrUnresolvableFrame) {
		t.Errorf("entity removed from a floating owner must land in null-space, err = %v", err)
	}
}
