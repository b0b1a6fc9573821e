package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionWait
	ActionMove
	ActionInteract
	ActionCuff
	ActionUncuff

	// Админские команды
	ActionAddHand
	ActionRemoveHand
	ActionSpawn
	ActionTeleport
	ActionCreateMap
	ActionSetWall
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"WAIT":     ActionWait,
	"MOVE":     ActionMove,
	"INTERACT": ActionInteract,
	"CUFF":     ActionCuff,
	"UNCUFF":   ActionUncuff,
	"ADDHAND":  ActionAddHand,
	"RMHAND":   ActionRemoveHand,
	"SPAWN":    ActionSpawn,
	"TELEPORT": ActionTeleport,
	"MKMAP":    ActionCreateMap,
	"WALL":     ActionSetWall,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionWait:       "WAIT",
	ActionMove:       "MOVE",
	ActionInteract:   "INTERACT",
	ActionCuff:       "CUFF",
	ActionUncuff:     "UNCUFF",
	ActionAddHand:    "ADDHAND",
	ActionRemoveHand: "RMHAND",
	ActionSpawn:      "SPAWN",
	ActionTeleport:   "TELEPORT",
	ActionCreateMap:  "MKMAP",
	ActionSetWall:    "WALL",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// IsAdmin - команда доступна только администратору (консоль).
func (a ActionType) IsAdmin() bool {
	return a >= ActionAddHand
}
