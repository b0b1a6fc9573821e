package types

import (
	"fmt"
	"strconv"

	"station-core/internal/core/types/enums"
)

// EntityID - 64-битный идентификатор сущности внутри одной симуляции.
//
// Формат битов (от старших к младшим):
//
//	[ reserved (8) | Kind (8) | Generation (16) | Index (32) ]
//
// Где:
//   - Kind - грубый тип сущности (моб, предмет, конструкция)
//   - Generation - версия слота в хранилище GameWorld
//   - Index - номер слота в хранилище
//
// Слот с индексом 0 никогда не выдаётся, поэтому нулевой EntityID
// однозначно означает "сущности нет". Ссылка с устаревшим поколением
// не разрешается хранилищем: так висячие ссылки отличаются от живых.
type EntityID uint64

// NilEntityID - нулевой идентификатор сущности.
const NilEntityID EntityID = 0

const (
	bitsIndex = 32
	bitsGen   = 16
	bitsKind  = 8

	shiftGen  = bitsIndex
	shiftKind = bitsIndex + bitsGen

	maskIndex = (1 << bitsIndex) - 1
	maskGen   = (1 << bitsGen) - 1
	maskKind  = (1 << bitsKind) - 1
)

// PackEntityID собирает EntityID из составных частей.
// Проверок диапазонов нет: хранилище само следит за валидностью.
func PackEntityID(kind enums.EntityKind, gen uint16, index uint32) EntityID {
	return EntityID(
		(uint64(kind) << shiftKind) |
			(uint64(gen) << shiftGen) |
			uint64(index),
	)
}

// Index возвращает номер слота в хранилище.
func (id EntityID) Index() uint32 {
	return uint32(id & maskIndex)
}

// Generation возвращает поколение слота.
func (id EntityID) Generation() uint16 {
	return uint16((id >> shiftGen) & maskGen)
}

// Kind возвращает тип сущности.
func (id EntityID) Kind() enums.EntityKind {
	return enums.EntityKind((id >> shiftKind) & maskKind)
}

// IsNil проверяет, является ли идентификатор нулевым.
func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

// String возвращает человекочитаемое представление для логов.
func (id EntityID) String() string {
	if id.IsNil() {
		return "<nil>"
	}

	return fmt.Sprintf("[%s gen=%d idx=%d]", id.Kind(), id.Generation(), id.Index())
}

// MarshalJSON сериализует EntityID строкой, чтобы JS-клиенты не теряли точность.
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает как строковое, так и числовое представление.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	s := string(data)

	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" {
		*id = NilEntityID
		return nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}

	*id = EntityID(v)
	return nil
}
