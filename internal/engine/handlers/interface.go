package handlers

import (
	"station-core/internal/core/types"
	"station-core/internal/domain"
	"station-core/internal/systems"
)

// Scheduler откладывает завершение действия на несколько тиков.
// Simulation реализует этот интерфейс.
type Scheduler interface {
	Schedule(d DoAfter)
}

// DoAfter - отложенное действие (надеть/снять наручники).
// Перед Complete симуляция заново проверяет дистанцию и, если нужно, руки.
type DoAfter struct {
	User   types.EntityID
	Target types.EntityID
	Used   types.EntityID // Предмет, которым действуют (может быть пустым)

	Delay     int     // В тиках
	Range     float32 // <= 0 - дальность по умолчанию
	NeedHands bool

	Complete func() (Result, error)
}

// Context передает хендлеру состояние мира.
// Хендлер мутирует мир только через системы.
type Context struct {
	Actor     types.EntityID // Тот, кто выполняет команду (NilEntityID - консоль)
	Sys       *systems.Systems
	Tick      int
	Scheduler Scheduler
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи симуляции напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, ACTION, ERROR)
}

// HandlerFunc - это контракт для любой команды (MOVE, CUFF, etc).
type HandlerFunc func(ctx Context, payload []byte) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// Deny - отказ, который увидит игрок.
func Deny(msg string) Result {
	return Result{Msg: msg, MsgType: domain.MsgTypeError}
}
