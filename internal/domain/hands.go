package domain

import (
	"math"
	"strings"
)

// HandID - стабильный идентификатор руки в пределах одной сущности.
type HandID uint16

// HandLocation - где рука расположена на теле.
type HandLocation uint8

const (
	HandLocationLeft HandLocation = iota
	HandLocationMiddle
	HandLocationRight
)

var handLocationToString = map[HandLocation]string{
	HandLocationLeft:   "LEFT",
	HandLocationMiddle: "MIDDLE",
	HandLocationRight:  "RIGHT",
}

func (l HandLocation) String() string {
	if val, ok := handLocationToString[l]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseHandLocation разбирает расположение руки из прототипа. Неизвестное значение - MIDDLE.
func ParseHandLocation(s string) HandLocation {
	switch strings.ToUpper(s) {
	case "LEFT":
		return HandLocationLeft
	case "RIGHT":
		return HandLocationRight
	default:
		return HandLocationMiddle
	}
}

// Hand - одна рука.
type Hand struct {
	ID       HandID
	Name     string
	Location HandLocation
	// Enabled == false, пока руку держат наручники.
	Enabled bool
}

// AddHand добавляет новую свободную руку в конец пула.
// Когда идентификаторы исчерпаны, рука не добавляется: ID не переиспользуются.
func (h *HandsComponent) AddHand(name string, location HandLocation) (HandID, error) {
	if h.nextID == math.MaxUint16 {
		return 0, ErrTooManyHands
	}
	h.nextID++
	h.hands = append(h.hands, Hand{
		ID:       h.nextID,
		Name:     name,
		Location: location,
		Enabled:  true,
	})
	return h.nextID, nil
}

// RemoveHand удаляет руку, сохраняя порядок остальных.
func (h *HandsComponent) RemoveHand(id HandID) (Hand, bool) {
	for i, hand := range h.hands {
		if hand.ID == id {
			h.hands = append(h.hands[:i], h.hands[i+1:]...)
			return hand, true
		}
	}
	return Hand{}, false
}

// Hand ищет руку по ID.
func (h *HandsComponent) Hand(id HandID) (Hand, bool) {
	for _, hand := range h.hands {
		if hand.ID == id {
			return hand, true
		}
	}
	return Hand{}, false
}

// SetEnabled меняет флаг доступности руки. Возвращает false, если руки нет.
func (h *HandsComponent) SetEnabled(id HandID, enabled bool) bool {
	for i := range h.hands {
		if h.hands[i].ID == id {
			h.hands[i].Enabled = enabled
			return true
		}
	}
	return false
}

// SortedHands возвращает копию рук в порядке их появления.
func (h *HandsComponent) SortedHands() []Hand {
	out := make([]Hand, len(h.hands))
	copy(out, h.hands)
	return out
}

// Count - общее число рук.
func (h *HandsComponent) Count() int {
	if h == nil {
		return 0
	}
	return len(h.hands)
}

// EnabledCount - число рук, которыми можно пользоваться.
func (h *HandsComponent) EnabledCount() int {
	if h == nil {
		return 0
	}
	n := 0
	for _, hand := range h.hands {
		if hand.Enabled {
			n++
		}
	}
	return n
}
