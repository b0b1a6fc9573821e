package domain

// Параметры взаимодействия
const (
	// InteractionRange - дальность взаимодействия по умолчанию (в метрах/клетках).
	InteractionRange float32 = 1.5

	// DefaultHandcuffCapacity - сколько рук сковывают наручники, если прототип не указал иное.
	DefaultHandcuffCapacity = 2
)

// CuffsContainerID - контейнер на скованной сущности, в котором лежат надетые наручники.
const CuffsContainerID = "cuffs"

// Типы сообщений лога
const (
	MsgTypeInfo   = "INFO"
	MsgTypeAction = "ACTION"
	MsgTypeError  = "ERROR"
)
