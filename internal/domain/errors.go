package domain

import "errors"

// Ошибки вызывающей стороны. Обычные игровые отказы ("далеко", "заслонено",
// "нет свободных рук") ошибками не являются и возвращаются как bool/результат.
var (
	// ErrInvalidDevice - предмет не является наручниками или уже надет на кого-то.
	ErrInvalidDevice = errors.New("invalid restraint device")
	// ErrDeviceNotApplied - наручники не надеты на указанную сущность.
	ErrDeviceNotApplied = errors.New("restraint device is not applied to this entity")
	// ErrNotCuffable - сущность нельзя сковать.
	ErrNotCuffable = errors.New("entity is not cuffable")
	// ErrNoHands - у сущности нет компонента рук.
	ErrNoHands = errors.New("entity has no hands")
	// ErrHandNotFound - рука с таким идентификатором не найдена.
	ErrHandNotFound = errors.New("hand not found")
	// ErrTooManyHands - идентификаторы рук сущности исчерпаны.
	ErrTooManyHands = errors.New("hand ids exhausted")
)

// Ошибки пространства.
var (
	// ErrUnresolvableFrame - позицию нельзя выразить в общей системе координат
	// (разные карты, нулевое пространство, оборванная иерархия).
	ErrUnresolvableFrame = errors.New("unresolvable coordinate frame")
	// ErrMapNotFound - карта не существует.
	ErrMapNotFound = errors.New("map not found")
)

// Ошибки хранилища.
var (
	// ErrEntityNotFound - ссылка на несуществующую (или удалённую) сущность.
	// Это ошибка программиста, а не игровая ситуация.
	ErrEntityNotFound = errors.New("entity not found")
	// ErrUnknownPrototype - прототип с таким ID не загружен.
	ErrUnknownPrototype = errors.New("unknown prototype")
)

// Ошибки контейнеров.
var (
	ErrContainerNotFound = errors.New("container not found")
	ErrAlreadyContained  = errors.New("entity is already inside a container")
	ErrNotContained      = errors.New("entity is not inside a container")
	ErrContainerLoop     = errors.New("entity cannot be inserted into itself")
)
