package enums

import "strings"

// EntityKind - грубая классификация сущности, зашитая в EntityID.
type EntityKind uint8

const (
	EntityKindUnknown EntityKind = iota
	EntityKindMob
	EntityKindItem
	EntityKindStructure
)

var entityKindToString = map[EntityKind]string{
	EntityKindMob:       "MOB",
	EntityKindItem:      "ITEM",
	EntityKindStructure: "STRUCTURE",
}

var entityKindStringToKind = map[string]EntityKind{
	"MOB":       EntityKindMob,
	"ITEM":      EntityKindItem,
	"STRUCTURE": EntityKindStructure,
}

// String возвращает строковое представление (для логов и дебага)
func (k EntityKind) String() string {
	if val, ok := entityKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseEntityKind конвертирует строку в Enum (нужно для загрузки прототипов)
func ParseEntityKind(s string) EntityKind {
	upper := strings.ToUpper(s)
	if val, ok := entityKindStringToKind[upper]; ok {
		return val
	}
	return EntityKindUnknown
}
