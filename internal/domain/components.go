package domain

import (
	"station-core/internal/core/types"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// --- КОМПОНЕНТЫ ---

// TransformComponent - положение сущности в иерархии.
// Если Parent пуст, сущность лежит прямо на карте MapID и LocalPos - её мировая позиция.
// Иначе позиция отсчитывается от родителя (например, от контейнера, в котором она лежит).
type TransformComponent struct {
	MapID    MapID
	Parent   types.EntityID
	LocalPos mgl32.Vec2
}

// PhysicsComponent - физическое тело.
type PhysicsComponent struct {
	// Radius - радиус тела для измерения дистанции "от поверхности до поверхности".
	Radius float32
	// HalfExtents - половинные размеры коробки столкновений. Нулевые - берётся Radius.
	HalfExtents mgl32.Vec2
	// Impassable - тело заслоняет взаимодействие (стены, шкафы). Мобы обычно не заслоняют.
	Impassable bool
}

// HalfSize возвращает половинные размеры коробки тела.
func (p *PhysicsComponent) HalfSize() mgl32.Vec2 {
	if p.HalfExtents.X() > 0 || p.HalfExtents.Y() > 0 {
		return p.HalfExtents
	}
	return mgl32.Vec2{p.Radius, p.Radius}
}

// HandsComponent - пул рук сущности. Руки хранятся в порядке появления
// и адресуются стабильными HandID, которые никогда не переиспользуются.
type HandsComponent struct {
	hands  []Hand
	nextID HandID
}

// CuffableComponent - состояние сковывания: какие наручники надеты и какие руки они держат.
// Порядок в Devices - порядок надевания.
type CuffableComponent struct {
	Devices *orderedmap.OrderedMap[types.EntityID, *AppliedCuffs]
}

// NewCuffableComponent создаёт пустое состояние (никто не скован).
func NewCuffableComponent() *CuffableComponent {
	return &CuffableComponent{
		Devices: orderedmap.NewOrderedMap[types.EntityID, *AppliedCuffs](),
	}
}

// HandcuffComponent - наручники как предмет.
type HandcuffComponent struct {
	// Capacity - сколько рук максимум сковывает этот предмет.
	Capacity int
	// CuffDelay и UncuffDelay - длительность действия в тиках (0 - мгновенно).
	CuffDelay   int
	UncuffDelay int
	// AppliedTo - на ком надеты. Пусто, если наручники свободны.
	AppliedTo types.EntityID
}

// IsApplied проверяет, надеты ли наручники на кого-нибудь.
func (h *HandcuffComponent) IsApplied() bool {
	return !h.AppliedTo.IsNil()
}

// ContainerManagerComponent хранит именованные контейнеры сущности (карманы, шкаф, наручники).
type ContainerManagerComponent struct {
	Containers map[string]*Container
}

// ContainerSlot - обратная ссылка: в чьём контейнере лежит сущность.
type ContainerSlot struct {
	Owner       types.EntityID
	ContainerID string
}
