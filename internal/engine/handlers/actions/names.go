package actions

import (
	"station-core/internal/core/types"
	"station-core/internal/systems"
)

// nameOf возвращает имя сущности для сообщений игроку.
func nameOf(sys *systems.Systems, id types.EntityID) string {
	if e := sys.World.Get(id); e != nil && e.Name != "" {
		return e.Name
	}
	return id.String()
}
