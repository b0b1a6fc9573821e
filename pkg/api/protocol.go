package api

import (
	"encoding/json"

	"station-core/internal/core/types"
)

// --- СИМУЛЯЦИЯ -> КОНСОЛЬ ---

// LogEntry представляет одну запись в игровом логе (чате).
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, ACTION, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КОНСОЛЬ -> СИМУЛЯЦИЯ ---

// ClientCommand это корневой объект для всех команд.
type ClientCommand struct {
	// Actor ID сущности, от имени которой выполняется действие.
	// Пустой Actor - консоль администратора.
	Actor types.EntityID `json:"actor,omitempty"`

	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// DirectionPayload используется для MOVE.
type DirectionPayload struct {
	Dx float32 `json:"dx"`
	Dy float32 `json:"dy"`
}

// EntityPayload используется для действий, нацеленных на другую сущность (e.g. INTERACT).
type EntityPayload struct {
	TargetID types.EntityID `json:"targetId"`
}

// CuffPayload используется для CUFF: кого сковать и чем.
type CuffPayload struct {
	TargetID types.EntityID `json:"targetId"`
	CuffsID  types.EntityID `json:"cuffsId"`
}

// UncuffPayload используется для UNCUFF. Без cuffsId снимаются последние надетые наручники.
type UncuffPayload struct {
	TargetID types.EntityID `json:"targetId"`
	CuffsID  types.EntityID `json:"cuffsId,omitempty"`
}
