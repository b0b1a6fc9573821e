package systems

import (
	"errors"
	"fmt"

	"station-core/internal/core/types"
	"station-core/internal/domain"
	"station-core/pkg/logger"

	"github.com/chewxy/math32"
	"github.com/sirupsen/logrus"
)

// Target - конец проверки взаимодействия: сущность или точка на карте.
type Target struct {
	entity   types.EntityID
	coords   domain.MapCoordinates
	isEntity bool
}

// EntityTarget - цель-сущность.
func EntityTarget(id types.EntityID) Target {
	return Target{entity: id, isEntity: true}
}

// CoordsTarget - цель-точка.
func CoordsTarget(c domain.MapCoordinates) Target {
	return Target{coords: c}
}

// Entity возвращает ID сущности, если цель - сущность.
func (t Target) Entity() (types.EntityID, bool) {
	return t.entity, t.isEntity
}

func (t Target) String() string {
	if t.isEntity {
		return t.entity.String()
	}
	return t.coords.String()
}

// InteractionSystem решает, может ли один участник дотянуться до другого.
type InteractionSystem struct {
	world        *domain.GameWorld
	transform    *TransformSystem
	physics      *PhysicsSystem
	containers   *ContainerSystem
	defaultRange float32
	reporter     BugReporter
	log          *logrus.Entry
}

func NewInteractionSystem(
	world *domain.GameWorld,
	transform *TransformSystem,
	physics *PhysicsSystem,
	containers *ContainerSystem,
	defaultRange float32,
	reporter BugReporter,
) *InteractionSystem {
	return &InteractionSystem{
		world:        world,
		transform:    transform,
		physics:      physics,
		containers:   containers,
		defaultRange: defaultRange,
		reporter:     reporter,
		log:          logger.Log.WithField("component", "interaction_system"),
	}
}

// DefaultRange - дальность, которая используется при maxRange <= 0.
func (s *InteractionSystem) DefaultRange() float32 {
	return s.defaultRange
}

// InRangeUnobstructed проверяет, что src и dst на одной карте, расстояние между
// их поверхностями не больше maxRange (граница включительно) и между ними нет преграды.
// Участники, их контейнеры и контейнеры контейнеров преградой не считаются.
//
// Ошибка возвращается только для мёртвых ссылок на сущности.
func (s *InteractionSystem) InRangeUnobstructed(src, dst Target, maxRange float32) (bool, error) {
	if !(maxRange > 0) {
		maxRange = s.defaultRange
	}

	checkLogger := s.log.WithFields(logrus.Fields{
		"function": "InRangeUnobstructed",
		"src":      src.String(),
		"dst":      dst.String(),
		"range":    maxRange,
	})

	a, ra, err := s.resolve(src)
	if err != nil {
		return s.fail(checkLogger, err)
	}
	b, rb, err := s.resolve(dst)
	if err != nil {
		return s.fail(checkLogger, err)
	}

	if !finite(a.Position) || !finite(b.Position) {
		checkLogger.Debug("Check finished: Non-finite coordinates. Result: false")
		return false, nil
	}

	centre, ok := a.DistanceTo(b)
	if !ok {
		checkLogger.Debug("Check finished: Different maps. Result: false")
		return false, nil
	}

	dist := math32.Max(centre-ra-rb, 0)
	if dist > maxRange {
		checkLogger.WithField("distance", dist).Debug("Check finished: Out of range. Result: false")
		return false, nil
	}
	if a.Position == b.Position {
		return true, nil
	}

	if s.physics.IsObstructed(a.MapID, a.Position, b.Position, s.exemptions(src, dst)) {
		checkLogger.Debug("Check finished: Obstructed. Result: false")
		return false, nil
	}
	return true, nil
}

// fail превращает ошибку разрешения в ответ: кадр не разрешился - просто false,
// мёртвая ссылка - ошибка программиста, о ней сообщаем.
func (s *InteractionSystem) fail(l *logrus.Entry, err error) (bool, error) {
	if errors.Is(err, domain.ErrEntityNotFound) {
		l.WithError(err).Error("Interaction check with a stale entity")
		s.reporter.Report(err, map[string]string{"system": "interaction"})
		return false, fmt.Errorf("in range check: %w", err)
	}
	l.WithError(err).Debug("Check finished: Unresolvable frame. Result: false")
	return false, nil
}

func (s *InteractionSystem) resolve(t Target) (domain.MapCoordinates, float32, error) {
	id, isEntity := t.Entity()
	if !isEntity {
		c, err := s.transform.ResolveCoordinates(t.coords)
		return c, 0, err
	}

	c, err := s.transform.WorldPosition(id)
	if err != nil {
		return domain.MapCoordinates{}, 0, err
	}
	radius, _ := s.physics.Radius(id)
	return c, radius, nil
}

// exemptions - участники и все, в чьих контейнерах они лежат.
func (s *InteractionSystem) exemptions(targets ...Target) map[types.EntityID]struct{} {
	out := make(map[types.EntityID]struct{})
	for _, t := range targets {
		id, ok := t.Entity()
		if !ok {
			continue
		}
		out[id] = struct{}{}
		for _, owner := range s.containers.Owners(id) {
			out[owner] = struct{}{}
		}
	}
	return out
}
