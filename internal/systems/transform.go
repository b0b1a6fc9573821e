package systems

import (
	"fmt"

	"station-core/internal/core/types"
	"station-core/internal/domain"
	"station-core/pkg/logger"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// maxHierarchyDepth ограничивает обход родителей. Глубже - считаем, что иерархия зациклена.
const maxHierarchyDepth = 64

// TransformSystem разрешает позиции через иерархию родителей и держит SpatialHash в актуальном виде.
type TransformSystem struct {
	world *domain.GameWorld
	log   *logrus.Entry
}

func NewTransformSystem(world *domain.GameWorld) *TransformSystem {
	return &TransformSystem{
		world: world,
		log:   logger.Log.WithField("component", "transform_system"),
	}
}

func (s *TransformSystem) get(id types.EntityID) (*domain.Entity, error) {
	e := s.world.Get(id)
	if e == nil {
		return nil, fmt.Errorf("entity %s: %w", id, domain.ErrEntityNotFound)
	}
	return e, nil
}

// WorldPosition возвращает мировые координаты сущности.
// ErrUnresolvableFrame - сущность в null-space, без Transform, родитель исчез или иерархия зациклена.
func (s *TransformSystem) WorldPosition(id types.EntityID) (domain.MapCoordinates, error) {
	e, err := s.get(id)
	if err != nil {
		return domain.MapCoordinates{}, err
	}

	pos := mgl32.Vec2{}
	cur := e
	for depth := 0; depth < maxHierarchyDepth; depth++ {
		if cur.Transform == nil {
			return domain.MapCoordinates{}, fmt.Errorf("entity %s has no transform: %w", cur.ID, domain.ErrUnresolvableFrame)
		}
		pos = pos.Add(cur.Transform.LocalPos)

		if cur.Transform.Parent.IsNil() {
			mapID := cur.Transform.MapID
			if mapID == domain.NullSpace || s.world.GetMap(mapID) == nil {
				return domain.MapCoordinates{}, fmt.Errorf("entity %s is not on a map: %w", id, domain.ErrUnresolvableFrame)
			}
			return domain.MapCoordinates{MapID: mapID, Position: pos}, nil
		}

		parent := s.world.Get(cur.Transform.Parent)
		if parent == nil {
			return domain.MapCoordinates{}, fmt.Errorf("parent %s of %s is gone: %w", cur.Transform.Parent, cur.ID, domain.ErrUnresolvableFrame)
		}
		cur = parent
	}

	s.log.WithField("entity", id).Warn("Transform hierarchy is too deep or cyclic")
	return domain.MapCoordinates{}, fmt.Errorf("entity %s: hierarchy too deep: %w", id, domain.ErrUnresolvableFrame)
}

// ResolveCoordinates проверяет, что точка лежит на существующей карте.
func (s *TransformSystem) ResolveCoordinates(c domain.MapCoordinates) (domain.MapCoordinates, error) {
	if c.MapID == domain.NullSpace || s.world.GetMap(c.MapID) == nil {
		return domain.MapCoordinates{}, fmt.Errorf("%s: %w", c, domain.ErrUnresolvableFrame)
	}
	return c, nil
}

// LocalPosition возвращает позицию относительно родителя (или карты).
func (s *TransformSystem) LocalPosition(id types.EntityID) (mgl32.Vec2, error) {
	e, err := s.get(id)
	if err != nil {
		return mgl32.Vec2{}, err
	}
	if e.Transform == nil {
		return mgl32.Vec2{}, fmt.Errorf("entity %s has no transform: %w", id, domain.ErrUnresolvableFrame)
	}
	return e.Transform.LocalPos, nil
}

// SetLocalPosition двигает сущность относительно её текущего родителя.
func (s *TransformSystem) SetLocalPosition(id types.EntityID, pos mgl32.Vec2) error {
	e, err := s.get(id)
	if err != nil {
		return err
	}
	if e.Transform == nil {
		e.Transform = &domain.TransformComponent{}
	}
	e.Transform.LocalPos = pos
	s.world.Rehash(e)
	return nil
}

// SetWorldPosition ставит сущность в мировую точку, не меняя родителя.
// Для вложенной сущности точка должна лежать на карте родителя.
func (s *TransformSystem) SetWorldPosition(id types.EntityID, coords domain.MapCoordinates) error {
	e, err := s.get(id)
	if err != nil {
		return err
	}
	if e.Transform == nil || e.Transform.Parent.IsNil() {
		return s.AttachToMap(id, coords)
	}

	parentPos, err := s.WorldPosition(e.Transform.Parent)
	if err != nil {
		return err
	}
	if parentPos.MapID != coords.MapID {
		return fmt.Errorf("entity %s: parent is on map %d, not %d: %w", id, parentPos.MapID, coords.MapID, domain.ErrUnresolvableFrame)
	}
	e.Transform.LocalPos = coords.Position.Sub(parentPos.Position)
	s.world.Rehash(e)
	return nil
}

// AttachToMap отвязывает сущность от родителя и кладёт её прямо на карту.
func (s *TransformSystem) AttachToMap(id types.EntityID, coords domain.MapCoordinates) error {
	e, err := s.get(id)
	if err != nil {
		return err
	}
	if coords.MapID != domain.NullSpace && s.world.GetMap(coords.MapID) == nil {
		return fmt.Errorf("map %d: %w", coords.MapID, domain.ErrMapNotFound)
	}
	if e.Transform == nil {
		e.Transform = &domain.TransformComponent{}
	}
	e.Transform.Parent = types.NilEntityID
	e.Transform.MapID = coords.MapID
	e.Transform.LocalPos = coords.Position
	s.world.Rehash(e)

	s.log.WithFields(logrus.Fields{
		"entity": id,
		"coords": coords.String(),
	}).Debug("Entity attached to map")
	return nil
}

// setParent привязывает сущность к родителю в его начале координат.
func (s *TransformSystem) setParent(e *domain.Entity, parent types.EntityID) {
	if e.Transform == nil {
		e.Transform = &domain.TransformComponent{}
	}
	e.Transform.Parent = parent
	e.Transform.MapID = domain.NullSpace
	e.Transform.LocalPos = mgl32.Vec2{}
	s.world.Rehash(e)
}
