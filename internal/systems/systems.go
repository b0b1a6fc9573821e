package systems

import (
	"station-core/internal/domain"
)

// BugReporter получает ошибки программиста (висячие ссылки и т.п.).
// tags попадают в отчёт как есть.
type BugReporter interface {
	Report(err error, tags map[string]string)
}

type nopReporter struct{}

func (nopReporter) Report(error, map[string]string) {}

// Systems - набор систем над одним GameWorld. Все системы работают
// только из горутины симуляции.
type Systems struct {
	World *domain.GameWorld
	Bus   *domain.EventBus

	Transform   *TransformSystem
	Physics     *PhysicsSystem
	Containers  *ContainerSystem
	Hands       *HandsSystem
	Cuffable    *CuffableSystem
	Interaction *InteractionSystem
	Targeting   *TargetingSystem
}

// Option настраивает Systems при создании.
type Option func(*options)

type options struct {
	interactionRange float32
	reporter         BugReporter
}

// WithInteractionRange задаёт дальность взаимодействия по умолчанию.
func WithInteractionRange(r float32) Option {
	return func(o *options) {
		if r > 0 {
			o.interactionRange = r
		}
	}
}

// WithReporter задаёт получателя ошибок программиста.
func WithReporter(r BugReporter) Option {
	return func(o *options) {
		if r != nil {
			o.reporter = r
		}
	}
}

// New собирает все системы и связывает их через общую шину событий.
func New(world *domain.GameWorld, opts ...Option) *Systems {
	o := options{
		interactionRange: domain.InteractionRange,
		reporter:         nopReporter{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	bus := domain.NewEventBus()
	s := &Systems{World: world, Bus: bus}

	s.Transform = NewTransformSystem(world)
	s.Physics = NewPhysicsSystem(world)
	s.Containers = NewContainerSystem(world, s.Transform)
	s.Hands = NewHandsSystem(world, bus)
	s.Cuffable = NewCuffableSystem(world, bus, s.Containers)
	s.Interaction = NewInteractionSystem(world, s.Transform, s.Physics, s.Containers, o.interactionRange, o.reporter)
	s.Targeting = NewTargetingSystem(world, s.Interaction, s.Cuffable)

	return s
}
