package domain

import (
	"fmt"

	"station-core/internal/core/types"
	"station-core/internal/core/types/enums"
)

// Tile - клетка карты. Хранятся только "особенные" клетки, остальные - пол.
type Tile struct {
	IsWall bool `json:"isWall"`
}

// MapGrid - одна карта: стены и пространственный индекс сущностей, лежащих на ней.
type MapGrid struct {
	ID    MapID
	Tiles map[TilePos]Tile

	// SpatialHash: клетка -> сущности, чей центр лежит в этой клетке.
	// Индексируются только сущности без родителя.
	SpatialHash map[TilePos][]types.EntityID
	hashed      map[types.EntityID]TilePos

	// MaxExtent - самая большая половинная ширина тела в индексе.
	// Нужна широкой фазе: тело может торчать из своей клетки на эту величину.
	MaxExtent float32
}

func newMapGrid(id MapID) *MapGrid {
	return &MapGrid{
		ID:          id,
		Tiles:       make(map[TilePos]Tile),
		SpatialHash: make(map[TilePos][]types.EntityID),
		hashed:      make(map[types.EntityID]TilePos),
	}
}

// IsWall проверяет клетку на стену.
func (m *MapGrid) IsWall(pos TilePos) bool {
	return m.Tiles[pos].IsWall
}

// GetEntitiesAt возвращает сущности, чей центр лежит в клетке.
func (m *MapGrid) GetEntitiesAt(pos TilePos) []types.EntityID {
	return m.SpatialHash[pos]
}

type entitySlot struct {
	gen    uint16
	entity *Entity
}

// GameWorld - хранилище сущностей и карт одной симуляции.
// Мутации разрешены только из горутины симуляции.
type GameWorld struct {
	GlobalTick int

	Maps    map[MapID]*MapGrid
	nextMap MapID

	// Слот 0 зарезервирован под NilEntityID.
	slots []entitySlot
	free  []uint32

	protos PrototypeIndex
}

// NewGameWorld создаёт пустой мир. protos может быть nil, тогда Spawn недоступен.
func NewGameWorld(protos PrototypeIndex) *GameWorld {
	return &GameWorld{
		Maps:   make(map[MapID]*MapGrid),
		slots:  make([]entitySlot, 1),
		protos: protos,
	}
}

// --- КАРТЫ ---

// CreateMap создаёт новую пустую карту.
func (w *GameWorld) CreateMap() MapID {
	w.nextMap++
	w.Maps[w.nextMap] = newMapGrid(w.nextMap)
	return w.nextMap
}

// GetMap возвращает карту или nil.
func (w *GameWorld) GetMap(id MapID) *MapGrid {
	return w.Maps[id]
}

// DeleteMap удаляет карту вместе со всеми сущностями на ней.
func (w *GameWorld) DeleteMap(id MapID) error {
	if _, ok := w.Maps[id]; !ok {
		return fmt.Errorf("map %d: %w", id, ErrMapNotFound)
	}
	for _, e := range w.Entities() {
		if e.Transform != nil && e.Transform.Parent.IsNil() && e.Transform.MapID == id {
			w.Delete(e.ID)
		}
	}
	delete(w.Maps, id)
	return nil
}

// SetWall ставит или убирает стену в клетке.
func (w *GameWorld) SetWall(id MapID, pos TilePos, wall bool) error {
	m := w.Maps[id]
	if m == nil {
		return fmt.Errorf("map %d: %w", id, ErrMapNotFound)
	}
	if wall {
		m.Tiles[pos] = Tile{IsWall: true}
	} else {
		delete(m.Tiles, pos)
	}
	return nil
}

// --- СУЩНОСТИ ---

// Create выделяет слот под пустую сущность без компонентов.
func (w *GameWorld) Create(kind enums.EntityKind, name string) *Entity {
	var index uint32
	if n := len(w.free); n > 0 {
		index = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		index = uint32(len(w.slots))
		w.slots = append(w.slots, entitySlot{})
	}

	slot := &w.slots[index]
	e := &Entity{
		ID:   types.PackEntityID(kind, slot.gen, index),
		Name: name,
	}
	slot.entity = e
	return e
}

// Spawn создаёт сущность по прототипу и кладёт её на карту.
// Координаты NullSpace допустимы: сущность будет существовать вне карт.
func (w *GameWorld) Spawn(protoID string, coords MapCoordinates) (types.EntityID, error) {
	if w.protos == nil {
		return types.NilEntityID, fmt.Errorf("prototype %q: %w", protoID, ErrUnknownPrototype)
	}
	proto, ok := w.protos.Index(protoID)
	if !ok {
		return types.NilEntityID, fmt.Errorf("prototype %q: %w", protoID, ErrUnknownPrototype)
	}
	if coords.MapID != NullSpace && w.Maps[coords.MapID] == nil {
		return types.NilEntityID, fmt.Errorf("map %d: %w", coords.MapID, ErrMapNotFound)
	}

	e := w.Create(proto.Kind(), protoID)
	e.PrototypeID = protoID
	if err := proto.Apply(e); err != nil {
		w.Delete(e.ID)
		return types.NilEntityID, fmt.Errorf("apply prototype %q: %w", protoID, err)
	}

	if e.Transform == nil {
		e.Transform = &TransformComponent{}
	}
	e.Transform.MapID = coords.MapID
	e.Transform.Parent = types.NilEntityID
	e.Transform.LocalPos = coords.Position
	w.Rehash(e)

	return e.ID, nil
}

// Get возвращает живую сущность или nil (в том числе для устаревшего поколения).
func (w *GameWorld) Get(id types.EntityID) *Entity {
	index := id.Index()
	if id.IsNil() || int(index) >= len(w.slots) {
		return nil
	}
	slot := w.slots[index]
	if slot.entity == nil || slot.entity.ID != id {
		return nil
	}
	return slot.entity
}

// Exists проверяет, жива ли сущность.
func (w *GameWorld) Exists(id types.EntityID) bool {
	return w.Get(id) != nil
}

// Delete удаляет сущность вместе с содержимым её контейнеров.
// Поколение слота растёт, поэтому все старые ссылки становятся недействительными.
func (w *GameWorld) Delete(id types.EntityID) bool {
	e := w.Get(id)
	if e == nil {
		return false
	}

	if e.Containers != nil {
		for _, c := range e.Containers.Containers {
			contents := append([]types.EntityID(nil), c.Contents...)
			for _, child := range contents {
				w.Delete(child)
			}
		}
	}

	if e.Contained != nil {
		if owner := w.Get(e.Contained.Owner); owner != nil {
			if c, ok := owner.Containers.Get(e.Contained.ContainerID); ok {
				c.Remove(id)
			}
		}
		e.Contained = nil
	}

	w.unhash(id)

	index := id.Index()
	w.slots[index].entity = nil
	w.slots[index].gen++
	w.free = append(w.free, index)
	return true
}

// Entities возвращает живые сущности в порядке слотов.
func (w *GameWorld) Entities() []*Entity {
	out := make([]*Entity, 0, len(w.slots))
	for _, slot := range w.slots {
		if slot.entity != nil {
			out = append(out, slot.entity)
		}
	}
	return out
}

// --- ПРОСТРАНСТВЕННЫЙ ИНДЕКС ---

// Rehash синхронизирует положение сущности в SpatialHash с её Transform.
// Вызывается после любого изменения Transform.
func (w *GameWorld) Rehash(e *Entity) {
	w.unhash(e.ID)
	if !e.OnMap() {
		return
	}
	m := w.Maps[e.Transform.MapID]
	if m == nil {
		return
	}

	pos := TileAt(e.Transform.LocalPos)
	m.SpatialHash[pos] = append(m.SpatialHash[pos], e.ID)
	m.hashed[e.ID] = pos

	if e.Physics != nil {
		half := e.Physics.HalfSize()
		m.MaxExtent = max(m.MaxExtent, half.X(), half.Y())
	}
}

func (w *GameWorld) unhash(id types.EntityID) {
	for _, m := range w.Maps {
		pos, ok := m.hashed[id]
		if !ok {
			continue
		}
		delete(m.hashed, id)

		entities := m.SpatialHash[pos]
		for i, other := range entities {
			if other == id {
				// Порядок внутри клетки не важен: меняем с последним.
				lastIdx := len(entities) - 1
				entities[i] = entities[lastIdx]
				entities = entities[:lastIdx]
				break
			}
		}
		if len(entities) == 0 {
			delete(m.SpatialHash, pos)
		} else {
			m.SpatialHash[pos] = entities
		}
		return
	}
}
