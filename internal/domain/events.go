package domain

import (
	"strings"

	"station-core/internal/core/types"
)

// EventType - Внутренний числовой идентификатор события
type EventType uint8

const (
	EventUnknown EventType = iota
	EventCuffedStateChanged
	EventHandsChanged
)

var eventStringToType = map[string]EventType{
	"CUFFED_STATE_CHANGED": EventCuffedStateChanged,
	"HANDS_CHANGED":        EventHandsChanged,
}

var eventTypeToString = map[EventType]string{
	EventCuffedStateChanged: "CUFFED_STATE_CHANGED",
	EventHandsChanged:       "HANDS_CHANGED",
}

// ParseEvent конвертирует строку в EventType
func ParseEvent(s string) EventType {
	if val, ok := eventStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return EventUnknown
}

func (t EventType) String() string {
	if val, ok := eventTypeToString[t]; ok {
		return val
	}
	return "UNKNOWN"
}

// Event - то, что системы публикуют после изменения состояния.
type Event interface {
	Type() EventType
}

// CuffedStateChangedEvent - на сущность надели или с неё сняли наручники.
type CuffedStateChangedEvent struct {
	Target      types.EntityID
	Device      types.EntityID
	Applied     bool
	CuffedHands int
	UsableHands int
	State       RestraintState
}

func (CuffedStateChangedEvent) Type() EventType { return EventCuffedStateChanged }

// HandsChangedEvent - у сущности появилась или пропала рука.
type HandsChangedEvent struct {
	Entity     types.EntityID
	Hand       HandID
	Added      bool
	TotalHands int
}

func (HandsChangedEvent) Type() EventType { return EventHandsChanged }

// EventHandler - подписчик шины.
type EventHandler func(Event)

// EventBus - синхронная шина событий. Подписчики вызываются в порядке подписки
// в той же горутине, что и Publish.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[EventType][]EventHandler)}
}

// Subscribe добавляет подписчика на тип события.
func (b *EventBus) Subscribe(t EventType, h EventHandler) {
	b.handlers[t] = append(b.handlers[t], h)
}

// Publish раздаёт событие подписчикам.
func (b *EventBus) Publish(ev Event) {
	if b == nil {
		return
	}
	for _, h := range b.handlers[ev.Type()] {
		h(ev)
	}
}
