package domain

import (
	"encoding/json"

	"station-core/internal/core/types"
)

// InternalCommand - команда для симуляции.
// Использует ActionType вместо string.
type InternalCommand struct {
	Action  ActionType
	Actor   types.EntityID  // Кто действует (NilEntityID для консоли)
	Payload json.RawMessage // Сырые данные (парсятся хендлером)
}
