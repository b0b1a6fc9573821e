package systems

import (
	"errors"
	"fmt"

	"station-core/internal/core/types"
	"station-core/internal/domain"
	"station-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

// CuffableSystem надевает и снимает наручники.
//
// Наручники захватывают min(ёмкость, свободные руки) свободных рук в порядке их появления.
// Захваченные руки выключаются, снятие возвращает ровно те руки, что были захвачены.
// Надетые наручники лежат в контейнере "cuffs" цели и перемещаются вместе с ней.
type CuffableSystem struct {
	world      *domain.GameWorld
	bus        *domain.EventBus
	containers *ContainerSystem
	log        *logrus.Entry
}

func NewCuffableSystem(world *domain.GameWorld, bus *domain.EventBus, containers *ContainerSystem) *CuffableSystem {
	s := &CuffableSystem{
		world:      world,
		bus:        bus,
		containers: containers,
		log:        logger.Log.WithField("component", "cuffable_system"),
	}
	bus.Subscribe(domain.EventHandsChanged, s.onHandsChanged)
	return s
}

// TryAddNewCuffs надевает наручники cuffs на target от имени user.
// Возвращает true, если захвачена хотя бы одна рука. Если свободных рук нет,
// наручники всё равно считаются надетыми, но ничего не держат (false, nil).
func (s *CuffableSystem) TryAddNewCuffs(target, user, cuffs types.EntityID) (bool, error) {
	t := s.world.Get(target)
	if t == nil {
		return false, fmt.Errorf("cuff target %s: %w", target, domain.ErrEntityNotFound)
	}
	device := s.world.Get(cuffs)
	if device == nil {
		return false, fmt.Errorf("cuffs %s: %w", cuffs, domain.ErrEntityNotFound)
	}
	if device.Handcuff == nil {
		return false, fmt.Errorf("%s is not a restraint: %w", cuffs, domain.ErrInvalidDevice)
	}
	if device.Handcuff.IsApplied() {
		return false, fmt.Errorf("%s is already applied to %s: %w", cuffs, device.Handcuff.AppliedTo, domain.ErrInvalidDevice)
	}
	if t.Cuffable == nil {
		return false, fmt.Errorf("%s: %w", target, domain.ErrNotCuffable)
	}

	// Наручники переезжают к цели. Все проверки контейнера идут до Remove,
	// чтобы при отказе наручники остались там, где были.
	if cuffs == target || s.containers.isInside(target, cuffs) {
		return false, fmt.Errorf("cuff %s with %s: %w", target, cuffs, domain.ErrContainerLoop)
	}
	if _, err := s.containers.EnsureContainer(target, domain.CuffsContainerID); err != nil {
		return false, err
	}
	if _, _, inside := s.containers.ContainerOf(cuffs); inside {
		if err := s.containers.Remove(cuffs); err != nil {
			return false, err
		}
	}
	if err := s.containers.Insert(cuffs, target, domain.CuffsContainerID); err != nil {
		return false, err
	}

	claimed := s.claimHands(t, device.Handcuff.Capacity)
	t.Cuffable.Devices.Set(cuffs, &domain.AppliedCuffs{Device: cuffs, Claimed: claimed})
	device.Handcuff.AppliedTo = target

	s.log.WithFields(logrus.Fields{
		"target":  target,
		"user":    user,
		"cuffs":   cuffs,
		"claimed": len(claimed),
		"cuffed":  t.Cuffable.CuffedHandCount(),
		"hands":   t.Hands.Count(),
	}).Info("Cuffs applied")

	s.publish(t, cuffs, true)
	return len(claimed) > 0, nil
}

// claimHands выбирает свободные руки в порядке появления и выключает их.
func (s *CuffableSystem) claimHands(t *domain.Entity, capacity int) []domain.HandID {
	available := t.Hands.Count() - t.Cuffable.CuffedHandCount()
	want := min(capacity, available)
	if want <= 0 || t.Hands == nil {
		return nil
	}

	claimed := make([]domain.HandID, 0, want)
	for _, hand := range t.Hands.SortedHands() {
		if len(claimed) == want {
			break
		}
		if _, taken := t.Cuffable.ClaimedBy(hand.ID); taken {
			continue
		}
		claimed = append(claimed, hand.ID)
		t.Hands.SetEnabled(hand.ID, false)
	}
	return claimed
}

// Uncuff снимает наручники cuffs с target и бросает их на землю рядом.
func (s *CuffableSystem) Uncuff(target, user, cuffs types.EntityID) error {
	t := s.world.Get(target)
	if t == nil {
		return fmt.Errorf("uncuff target %s: %w", target, domain.ErrEntityNotFound)
	}
	if t.Cuffable == nil {
		return fmt.Errorf("%s: %w", target, domain.ErrNotCuffable)
	}
	applied, ok := t.Cuffable.Devices.Get(cuffs)
	if !ok {
		return fmt.Errorf("%s on %s: %w", cuffs, target, domain.ErrDeviceNotApplied)
	}

	t.Cuffable.Devices.Delete(cuffs)
	for _, hand := range applied.Claimed {
		if _, still := t.Cuffable.ClaimedBy(hand); !still {
			t.Hands.SetEnabled(hand, true)
		}
	}

	if device := s.world.Get(cuffs); device != nil {
		if device.Handcuff != nil {
			device.Handcuff.AppliedTo = types.NilEntityID
		}
		if err := s.containers.Remove(cuffs); err != nil && !errors.Is(err, domain.ErrNotContained) {
			return err
		}
	}

	s.log.WithFields(logrus.Fields{
		"target":   target,
		"user":     user,
		"cuffs":    cuffs,
		"released": len(applied.Claimed),
		"cuffed":   t.Cuffable.CuffedHandCount(),
	}).Info("Cuffs removed")

	s.publish(t, cuffs, false)
	return nil
}

// UsableHandCount - сколько рук актор может использовать прямо сейчас.
func (s *CuffableSystem) UsableHandCount(id types.EntityID) int {
	e := s.world.Get(id)
	if e == nil {
		return 0
	}
	return max(e.Hands.Count()-e.Cuffable.CuffedHandCount(), 0)
}

// CuffedHandCount - сколько рук актора держат наручники.
func (s *CuffableSystem) CuffedHandCount(id types.EntityID) int {
	e := s.world.Get(id)
	if e == nil {
		return 0
	}
	return e.Cuffable.CuffedHandCount()
}

// State - агрегированное состояние сковывания.
func (s *CuffableSystem) State(id types.EntityID) domain.RestraintState {
	e := s.world.Get(id)
	if e == nil {
		return domain.Unrestrained
	}
	return e.Cuffable.State(e.Hands.Count())
}

// CanUseHands - есть ли у актора хотя бы одна свободная рука.
func (s *CuffableSystem) CanUseHands(id types.EntityID) bool {
	return s.UsableHandCount(id) > 0
}

// AppliedCuffs возвращает наручники на сущности в порядке надевания.
func (s *CuffableSystem) AppliedCuffs(id types.EntityID) []types.EntityID {
	e := s.world.Get(id)
	if e == nil {
		return nil
	}
	return e.Cuffable.AppliedDevices()
}

// onHandsChanged вычёркивает пропавшую руку из захвата наручников.
func (s *CuffableSystem) onHandsChanged(ev domain.Event) {
	changed := ev.(domain.HandsChangedEvent)
	if changed.Added {
		return
	}
	e := s.world.Get(changed.Entity)
	if e == nil || e.Cuffable == nil {
		return
	}

	device, claimed := e.Cuffable.ClaimedBy(changed.Hand)
	if !claimed {
		return
	}
	e.Cuffable.ReleaseHand(changed.Hand)

	s.log.WithFields(logrus.Fields{
		"entity": changed.Entity,
		"hand":   changed.Hand,
		"cuffs":  device,
	}).Debug("Removed hand released from cuffs")

	s.publish(e, device, true)
}

func (s *CuffableSystem) publish(t *domain.Entity, cuffs types.EntityID, applied bool) {
	s.bus.Publish(domain.CuffedStateChangedEvent{
		Target:      t.ID,
		Device:      cuffs,
		Applied:     applied,
		CuffedHands: t.Cuffable.CuffedHandCount(),
		UsableHands: max(t.Hands.Count()-t.Cuffable.CuffedHandCount(), 0),
		State:       t.Cuffable.State(t.Hands.Count()),
	})
}
