package domain

import "station-core/internal/core/types"

// RestraintState - агрегированное состояние сковывания.
type RestraintState uint8

const (
	Unrestrained RestraintState = iota
	PartiallyRestrained
	FullyRestrained
)

func (s RestraintState) String() string {
	switch s {
	case Unrestrained:
		return "UNRESTRAINED"
	case PartiallyRestrained:
		return "PARTIALLY_RESTRAINED"
	case FullyRestrained:
		return "FULLY_RESTRAINED"
	}
	return "UNKNOWN"
}

// AppliedCuffs - одни надетые наручники и руки, которые они держат.
type AppliedCuffs struct {
	Device  types.EntityID
	Claimed []HandID
}

// CuffedHandCount - сколько рук сейчас скованы всеми наручниками вместе.
func (c *CuffableComponent) CuffedHandCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for el := c.Devices.Front(); el != nil; el = el.Next() {
		n += len(el.Value.Claimed)
	}
	return n
}

// DeviceCount - сколько наручников надето (включая "декоративные" без захваченных рук).
func (c *CuffableComponent) DeviceCount() int {
	if c == nil {
		return 0
	}
	return c.Devices.Len()
}

// AppliedDevices возвращает наручники в порядке надевания.
func (c *CuffableComponent) AppliedDevices() []types.EntityID {
	if c == nil {
		return nil
	}
	return c.Devices.Keys()
}

// ClaimedBy возвращает наручники, которые держат руку.
func (c *CuffableComponent) ClaimedBy(hand HandID) (types.EntityID, bool) {
	for el := c.Devices.Front(); el != nil; el = el.Next() {
		for _, h := range el.Value.Claimed {
			if h == hand {
				return el.Key, true
			}
		}
	}
	return types.NilEntityID, false
}

// ReleaseHand вычёркивает руку из захвата любых наручников (рука исчезла с тела).
func (c *CuffableComponent) ReleaseHand(hand HandID) bool {
	for el := c.Devices.Front(); el != nil; el = el.Next() {
		claimed := el.Value.Claimed
		for i, h := range claimed {
			if h == hand {
				el.Value.Claimed = append(claimed[:i], claimed[i+1:]...)
				return true
			}
		}
	}
	return false
}

// State вычисляет состояние по числу рук у сущности.
func (c *CuffableComponent) State(handCount int) RestraintState {
	if c.DeviceCount() == 0 {
		return Unrestrained
	}
	if c.CuffedHandCount() >= handCount {
		return FullyRestrained
	}
	return PartiallyRestrained
}
