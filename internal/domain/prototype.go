package domain

import "station-core/internal/core/types/enums"

// Prototype - шаблон сущности. Apply навешивает на пустую сущность компоненты шаблона.
type Prototype interface {
	ID() string
	Kind() enums.EntityKind
	Apply(e *Entity) error
}

// PrototypeIndex - источник шаблонов для GameWorld.Spawn.
type PrototypeIndex interface {
	Index(id string) (Prototype, bool)
}
