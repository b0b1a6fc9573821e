package domain

import (
	"station-core/internal/core/types"
	"station-core/internal/core/types/enums"
)

// --- СУЩНОСТЬ ---

// Entity - объект симуляции. Компоненты - указатели: nil означает, что свойства нет.
type Entity struct {
	// Идентификация
	ID          types.EntityID
	PrototypeID string
	Name        string

	Transform  *TransformComponent
	Physics    *PhysicsComponent
	Hands      *HandsComponent
	Cuffable   *CuffableComponent
	Handcuff   *HandcuffComponent
	Containers *ContainerManagerComponent

	// Contained заполнен, пока сущность лежит в чужом контейнере.
	Contained *ContainerSlot
}

// Kind возвращает тип сущности, упакованный в ID.
func (e *Entity) Kind() enums.EntityKind {
	return e.ID.Kind()
}

// OnMap проверяет, лежит ли сущность прямо на карте (без родителя).
func (e *Entity) OnMap() bool {
	return e.Transform != nil && e.Transform.Parent.IsNil() && e.Transform.MapID != NullSpace
}
