package engine

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"time"

	"station-core/internal/core/types"
	"station-core/internal/domain"
	"station-core/internal/engine/handlers"
	"station-core/internal/engine/handlers/actions"
	"station-core/internal/engine/handlers/admin"
	"station-core/internal/systems"
	"station-core/pkg/api"
	"station-core/pkg/logger"

	"github.com/sirupsen/logrus"
)

var (
	// ErrQueueFull - очередь команд переполнена, команда отброшена.
	ErrQueueFull = errors.New("command queue is full")
	// ErrUnknownAction - название действия не распознано.
	ErrUnknownAction = errors.New("unknown action")
)

// Reporter получает ошибки программиста и паники хендлеров.
type Reporter interface {
	systems.BugReporter
	Recover(panicValue any, tags map[string]string)
}

type nopReporter struct{}

func (nopReporter) Report(error, map[string]string) {}
func (nopReporter) Recover(any, map[string]string)  {}

// Simulation владеет одним миром. Мир меняется только внутри Tick,
// снаружи команды приходят через CommandChan.
type Simulation struct {
	World  *domain.GameWorld
	Sys    *systems.Systems
	Config Config

	CommandChan chan domain.InternalCommand

	CurrentTick int
	Logs        []api.LogEntry // Последние записи игрового лога

	handlers map[domain.ActionType]handlers.HandlerFunc

	doAfters DoAfterQueue
	busy     map[types.EntityID]*DoAfterItem // Не больше одного действия на актора
	seq      uint64

	logSink  func(api.LogEntry)
	reporter Reporter
	log      *logrus.Entry
}

// NewSimulation создает мир, системы и пустые карты из конфига.
// reporter может быть nil.
func NewSimulation(cfg Config, protos domain.PrototypeIndex, reporter Reporter) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if reporter == nil {
		reporter = nopReporter{}
	}

	world := domain.NewGameWorld(protos)
	sys := systems.New(world,
		systems.WithInteractionRange(cfg.InteractionRange),
		systems.WithReporter(reporter),
	)
	for i := 0; i < cfg.Maps; i++ {
		world.CreateMap()
	}

	s := &Simulation{
		World:       world,
		Sys:         sys,
		Config:      cfg,
		CommandChan: make(chan domain.InternalCommand, cfg.CommandBuffer),
		Logs:        []api.LogEntry{},
		handlers:    make(map[domain.ActionType]handlers.HandlerFunc),
		doAfters:    make(DoAfterQueue, 0),
		busy:        make(map[types.EntityID]*DoAfterItem),
		reporter:    reporter,
		log:         logger.Log.WithField("component", "simulation"),
	}
	heap.Init(&s.doAfters)

	s.registerHandlers()
	sys.Bus.Subscribe(domain.EventCuffedStateChanged, s.onCuffedStateChanged)
	return s, nil
}

func (s *Simulation) registerHandlers() {
	s.handlers[domain.ActionWait] = handlers.WithEmptyPayload(actions.HandleWait)
	s.handlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	s.handlers[domain.ActionInteract] = handlers.WithPayload(actions.HandleInteract)
	s.handlers[domain.ActionCuff] = handlers.WithPayload(actions.HandleCuff)
	s.handlers[domain.ActionUncuff] = handlers.WithPayload(actions.HandleUncuff)

	s.handlers[domain.ActionAddHand] = handlers.WithPayload(admin.HandleAddHand)
	s.handlers[domain.ActionRemoveHand] = handlers.WithPayload(admin.HandleRemoveHand)
	s.handlers[domain.ActionSpawn] = handlers.WithPayload(admin.HandleSpawn)
	s.handlers[domain.ActionTeleport] = handlers.WithPayload(admin.HandleTeleport)
	s.handlers[domain.ActionCreateMap] = handlers.WithEmptyPayload(admin.HandleCreateMap)
	s.handlers[domain.ActionSetWall] = handlers.WithPayload(admin.HandleSetWall)
}

// SetLogSink задает получателя новых записей лога. Вызывается до Run;
// sink работает в горутине симуляции.
func (s *Simulation) SetLogSink(sink func(api.LogEntry)) {
	s.logSink = sink
}

// ProcessCommand принимает команду от внешнего мира (консоль).
func (s *Simulation) ProcessCommand(externalCmd api.ClientCommand) error {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		return fmt.Errorf("%q: %w", externalCmd.Action, ErrUnknownAction)
	}

	return s.Submit(domain.InternalCommand{
		Action:  actionType,
		Actor:   externalCmd.Actor,
		Payload: externalCmd.Payload,
	})
}

// Submit ставит команду в очередь, не блокируясь. Безопасен из любой горутины.
func (s *Simulation) Submit(cmd domain.InternalCommand) error {
	select {
	case s.CommandChan <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run тикает с частотой Config.TickRateHz, пока не отменят ctx.
func (s *Simulation) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.Config.TickRateHz))
	defer ticker.Stop()

	s.log.WithField("tick_rate_hz", s.Config.TickRateHz).Info("Simulation loop started")
	for {
		select {
		case <-ctx.Done():
			s.log.WithField("tick", s.CurrentTick).Info("Simulation loop stopped")
			return ctx.Err()
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick продвигает время: сначала завершает созревшие отложенные действия,
// затем выполняет все накопившиеся команды.
func (s *Simulation) Tick() {
	s.CurrentTick++
	s.World.GlobalTick = s.CurrentTick

	for {
		item := s.doAfters.Peek()
		if item == nil || item.Priority > s.CurrentTick {
			break
		}
		heap.Pop(&s.doAfters)
		delete(s.busy, item.Value.User)
		s.finishDoAfter(item.Value)
	}

	for {
		select {
		case cmd := <-s.CommandChan:
			s.Execute(cmd)
		default:
			return
		}
	}
}

// Execute выполняет команду сразу. Вызывается только из горутины симуляции.
func (s *Simulation) Execute(cmd domain.InternalCommand) handlers.Result {
	l := s.log.WithFields(logrus.Fields{
		"action": cmd.Action.String(),
		"actor":  cmd.Actor,
		"tick":   s.CurrentTick,
	})

	handler, ok := s.handlers[cmd.Action]
	if !ok {
		l.Warn("No handler for action")
		return s.emit(handlers.Deny("Неизвестное действие."))
	}

	// 1. Права
	if cmd.Action.IsAdmin() {
		if !cmd.Actor.IsNil() {
			l.Warn("Admin command refused")
			return s.emit(handlers.Deny("Недостаточно прав."))
		}
	} else if s.World.Get(cmd.Actor) == nil {
		return s.emit(handlers.Deny("Вас нет в мире."))
	}

	// 2. Занятость: шаг прерывает отложенное действие, остальное ждёт
	if _, busy := s.busy[cmd.Actor]; busy {
		switch cmd.Action {
		case domain.ActionWait:
		case domain.ActionMove:
			s.CancelDoAfter(cmd.Actor)
			s.AddLog(fmt.Sprintf("%s прерывает действие.", s.nameOf(cmd.Actor)), domain.MsgTypeInfo)
		default:
			return s.emit(handlers.Deny("Вы заняты другим делом."))
		}
	}

	ctx := handlers.Context{
		Actor:     cmd.Actor,
		Sys:       s.Sys,
		Tick:      s.CurrentTick,
		Scheduler: s,
	}
	tags := map[string]string{"action": cmd.Action.String(), "actor": cmd.Actor.String()}
	return s.emit(s.invoke(l, tags, func() (handlers.Result, error) {
		return handler(ctx, cmd.Payload)
	}))
}

// invoke запускает хендлер, превращая ошибки и паники в отказ игроку.
func (s *Simulation) invoke(l *logrus.Entry, tags map[string]string, fn func() (handlers.Result, error)) (res handlers.Result) {
	defer func() {
		if r := recover(); r != nil {
			l.WithField("panic", r).Error("Handler panicked")
			s.reporter.Recover(r, tags)
			res = handlers.Deny("Что-то пошло не так.")
		}
	}()

	res, err := fn()
	if err == nil {
		return res
	}

	if errors.Is(err, handlers.ErrInvalidPayload) {
		l.WithError(err).Debug("Bad payload")
		return handlers.Deny("Неверная команда.")
	}
	l.WithError(err).Error("Handler failed")
	s.reporter.Report(err, tags)
	return handlers.Deny("Что-то пошло не так.")
}

func (s *Simulation) emit(res handlers.Result) handlers.Result {
	if res.Msg != "" {
		s.AddLog(res.Msg, res.MsgType)
	}
	return res
}

// Schedule реализует handlers.Scheduler.
func (s *Simulation) Schedule(d handlers.DoAfter) {
	s.CancelDoAfter(d.User)

	s.seq++
	item := &DoAfterItem{Value: d, Priority: s.CurrentTick + max(d.Delay, 1), seq: s.seq}
	heap.Push(&s.doAfters, item)
	s.busy[d.User] = item

	s.log.WithFields(logrus.Fields{
		"user":   d.User,
		"target": d.Target,
		"used":   d.Used,
		"due":    item.Priority,
	}).Debug("Do-after scheduled")
}

// CancelDoAfter отменяет отложенное действие актора, если оно есть.
func (s *Simulation) CancelDoAfter(user types.EntityID) bool {
	item, ok := s.busy[user]
	if !ok {
		return false
	}
	heap.Remove(&s.doAfters, item.Index)
	delete(s.busy, user)
	return true
}

// PendingDoAfter сообщает, ждёт ли актор завершения действия.
func (s *Simulation) PendingDoAfter(user types.EntityID) bool {
	_, ok := s.busy[user]
	return ok
}

// finishDoAfter повторяет проверки начала действия и завершает его.
func (s *Simulation) finishDoAfter(d handlers.DoAfter) {
	l := s.log.WithFields(logrus.Fields{
		"user":   d.User,
		"target": d.Target,
		"used":   d.Used,
		"tick":   s.CurrentTick,
	})

	gone := s.World.Get(d.User) == nil || s.World.Get(d.Target) == nil ||
		(!d.Used.IsNil() && s.World.Get(d.Used) == nil)
	if gone {
		l.Debug("Do-after cancelled: participant gone")
		return
	}

	if d.NeedHands && !s.Sys.Cuffable.CanUseHands(d.User) {
		s.emit(handlers.Deny("Действие прервано: ваши руки скованы."))
		return
	}

	if d.User != d.Target {
		ok, err := s.Sys.Interaction.InRangeUnobstructed(systems.EntityTarget(d.User), systems.EntityTarget(d.Target), d.Range)
		if err != nil || !ok {
			l.Debug("Do-after cancelled: out of range")
			s.emit(handlers.Deny("Действие прервано: цель слишком далеко."))
			return
		}
	}

	tags := map[string]string{"do_after": "complete", "actor": d.User.String()}
	s.emit(s.invoke(l, tags, d.Complete))
}

func (s *Simulation) nameOf(id types.EntityID) string {
	if e := s.World.Get(id); e != nil && e.Name != "" {
		return e.Name
	}
	return id.String()
}

func (s *Simulation) onCuffedStateChanged(ev domain.Event) {
	e, ok := ev.(domain.CuffedStateChangedEvent)
	if !ok {
		return
	}
	s.log.WithFields(logrus.Fields{
		"target":  e.Target,
		"cuffs":   e.Device,
		"applied": e.Applied,
		"cuffed":  e.CuffedHands,
		"usable":  e.UsableHands,
		"state":   e.State.String(),
	}).Info("Restraint state changed")
}
