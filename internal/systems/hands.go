package systems

import (
	"fmt"

	"station-core/internal/core/types"
	"station-core/internal/domain"
	"station-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HandsSystem добавляет и удаляет руки, сообщая об этом через шину.
type HandsSystem struct {
	world *domain.GameWorld
	bus   *domain.EventBus
	log   *logrus.Entry
}

func NewHandsSystem(world *domain.GameWorld, bus *domain.EventBus) *HandsSystem {
	return &HandsSystem{
		world: world,
		bus:   bus,
		log:   logger.Log.WithField("component", "hands_system"),
	}
}

func (s *HandsSystem) hands(id types.EntityID) (*domain.HandsComponent, error) {
	e := s.world.Get(id)
	if e == nil {
		return nil, fmt.Errorf("hands of %s: %w", id, domain.ErrEntityNotFound)
	}
	if e.Hands == nil {
		return nil, fmt.Errorf("%s: %w", id, domain.ErrNoHands)
	}
	return e.Hands, nil
}

// AddHand добавляет свободную руку. Пустое имя заменяется на "hand N".
func (s *HandsSystem) AddHand(id types.EntityID, name string, location domain.HandLocation) (domain.HandID, error) {
	h, err := s.hands(id)
	if err != nil {
		return 0, err
	}
	if name == "" {
		name = fmt.Sprintf("hand %d", h.Count()+1)
	}

	hand, err := h.AddHand(name, location)
	if err != nil {
		return 0, fmt.Errorf("add hand to %s: %w", id, err)
	}

	s.log.WithFields(logrus.Fields{
		"entity":   id,
		"hand":     hand,
		"location": location,
		"total":    h.Count(),
	}).Debug("Hand added")

	s.bus.Publish(domain.HandsChangedEvent{Entity: id, Hand: hand, Added: true, TotalHands: h.Count()})
	return hand, nil
}

// RemoveHand удаляет руку. Наручники, державшие её, отпускают её через подписку на событие.
func (s *HandsSystem) RemoveHand(id types.EntityID, hand domain.HandID) error {
	h, err := s.hands(id)
	if err != nil {
		return err
	}
	if _, ok := h.RemoveHand(hand); !ok {
		return fmt.Errorf("hand %d of %s: %w", hand, id, domain.ErrHandNotFound)
	}

	s.log.WithFields(logrus.Fields{
		"entity": id,
		"hand":   hand,
		"total":  h.Count(),
	}).Debug("Hand removed")

	s.bus.Publish(domain.HandsChangedEvent{Entity: id, Hand: hand, Added: false, TotalHands: h.Count()})
	return nil
}

// LastHand возвращает последнюю по порядку появления руку.
func (s *HandsSystem) LastHand(id types.EntityID) (domain.HandID, error) {
	h, err := s.hands(id)
	if err != nil {
		return 0, err
	}
	sorted := h.SortedHands()
	if len(sorted) == 0 {
		return 0, fmt.Errorf("%s: %w", id, domain.ErrHandNotFound)
	}
	return sorted[len(sorted)-1].ID, nil
}

// HandCount - общее число рук (0 для сущности без рук).
func (s *HandsSystem) HandCount(id types.EntityID) int {
	e := s.world.Get(id)
	if e == nil {
		return 0
	}
	return e.Hands.Count()
}
