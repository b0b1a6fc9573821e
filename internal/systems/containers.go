package systems

import (
	"errors"
	"fmt"

	"station-core/internal/core/types"
	"station-core/internal/domain"
	"station-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ContainerSystem кладёт сущности внутрь других сущностей и вынимает их обратно.
// Вложенная сущность становится дочерней в иерархии Transform и двигается вместе с владельцем.
type ContainerSystem struct {
	world     *domain.GameWorld
	transform *TransformSystem
	log       *logrus.Entry
}

func NewContainerSystem(world *domain.GameWorld, transform *TransformSystem) *ContainerSystem {
	return &ContainerSystem{
		world:     world,
		transform: transform,
		log:       logger.Log.WithField("component", "container_system"),
	}
}

// EnsureContainer возвращает контейнер владельца, создавая его при необходимости.
func (s *ContainerSystem) EnsureContainer(owner types.EntityID, name string) (*domain.Container, error) {
	e := s.world.Get(owner)
	if e == nil {
		return nil, fmt.Errorf("container owner %s: %w", owner, domain.ErrEntityNotFound)
	}
	if e.Containers == nil {
		e.Containers = &domain.ContainerManagerComponent{Containers: make(map[string]*domain.Container)}
	}
	if c, ok := e.Containers.Get(name); ok {
		return c, nil
	}

	c := &domain.Container{ID: name, Owner: owner}
	e.Containers.Containers[name] = c
	return c, nil
}

// Insert кладёт entity в контейнер name сущности owner.
func (s *ContainerSystem) Insert(entity, owner types.EntityID, name string) error {
	item := s.world.Get(entity)
	if item == nil {
		return fmt.Errorf("insert %s: %w", entity, domain.ErrEntityNotFound)
	}
	holder := s.world.Get(owner)
	if holder == nil {
		return fmt.Errorf("insert into %s: %w", owner, domain.ErrEntityNotFound)
	}

	c, ok := holder.Containers.Get(name)
	if !ok {
		return fmt.Errorf("%s of %s: %w", name, owner, domain.ErrContainerNotFound)
	}
	if item.Contained != nil {
		return fmt.Errorf("%s is already inside %s: %w", entity, item.Contained.Owner, domain.ErrAlreadyContained)
	}
	if entity == owner || s.isInside(owner, entity) {
		return fmt.Errorf("insert %s into %s: %w", entity, owner, domain.ErrContainerLoop)
	}

	c.Insert(entity)
	item.Contained = &domain.ContainerSlot{Owner: owner, ContainerID: name}
	s.transform.setParent(item, owner)

	s.log.WithFields(logrus.Fields{
		"entity":    entity,
		"owner":     owner,
		"container": name,
	}).Debug("Entity inserted")
	return nil
}

// Remove вынимает сущность и кладёт её на карту в точку владельца.
// Если владелец сам нигде не находится, сущность уходит в null-space.
func (s *ContainerSystem) Remove(entity types.EntityID) error {
	item := s.world.Get(entity)
	if item == nil {
		return fmt.Errorf("remove %s: %w", entity, domain.ErrEntityNotFound)
	}
	if item.Contained == nil {
		return fmt.Errorf("remove %s: %w", entity, domain.ErrNotContained)
	}

	slot := *item.Contained
	if holder := s.world.Get(slot.Owner); holder != nil {
		if c, ok := holder.Containers.Get(slot.ContainerID); ok {
			c.Remove(entity)
		}
	}
	item.Contained = nil

	coords, err := s.transform.WorldPosition(slot.Owner)
	if err != nil {
		if !errors.Is(err, domain.ErrUnresolvableFrame) && !errors.Is(err, domain.ErrEntityNotFound) {
			return err
		}
		coords = domain.MapCoordinates{}
	}

	s.log.WithFields(logrus.Fields{
		"entity":    entity,
		"owner":     slot.Owner,
		"container": slot.ContainerID,
		"drop_at":   coords.String(),
	}).Debug("Entity removed")

	return s.transform.AttachToMap(entity, coords)
}

// ContainerOf возвращает владельца и имя контейнера, в котором лежит сущность.
func (s *ContainerSystem) ContainerOf(entity types.EntityID) (owner types.EntityID, name string, ok bool) {
	e := s.world.Get(entity)
	if e == nil || e.Contained == nil {
		return types.NilEntityID, "", false
	}
	return e.Contained.Owner, e.Contained.ContainerID, true
}

// Owners возвращает цепочку владельцев от ближайшего к самому внешнему.
func (s *ContainerSystem) Owners(entity types.EntityID) []types.EntityID {
	var out []types.EntityID
	cur := entity
	for depth := 0; depth < maxHierarchyDepth; depth++ {
		owner, _, ok := s.ContainerOf(cur)
		if !ok {
			break
		}
		out = append(out, owner)
		cur = owner
	}
	return out
}

// isInside проверяет, лежит ли entity (на любой глубине) внутри outer.
func (s *ContainerSystem) isInside(entity, outer types.EntityID) bool {
	for _, owner := range s.Owners(entity) {
		if owner == outer {
			return true
		}
	}
	return false
}
