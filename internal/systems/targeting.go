package systems

import (
	"station-core/internal/core/types"
	"station-core/internal/domain"
)

// ValidationResult - результат проверки цели
type ValidationResult struct {
	Target  *domain.Entity
	Valid   bool
	Message string // Сообщение для игрока, если Valid == false
}

// TargetingSystem объединяет проверку дальности и проверку свободных рук.
type TargetingSystem struct {
	world       *domain.GameWorld
	interaction *InteractionSystem
	cuffable    *CuffableSystem
}

func NewTargetingSystem(world *domain.GameWorld, interaction *InteractionSystem, cuffable *CuffableSystem) *TargetingSystem {
	return &TargetingSystem{world: world, interaction: interaction, cuffable: cuffable}
}

// ValidateInteraction проверяет, может ли actor взаимодействовать с targetID.
//
// Параметры:
// - rangeLimit: максимальная дистанция (<= 0 - дальность по умолчанию).
// - needHands: действию нужна свободная рука (надеть наручники, подобрать).
func (s *TargetingSystem) ValidateInteraction(actorID, targetID types.EntityID, rangeLimit float32, needHands bool) ValidationResult {
	// 1. Поиск участников
	if s.world.Get(actorID) == nil {
		return ValidationResult{Valid: false, Message: "Вас нет в мире."}
	}
	target := s.world.Get(targetID)
	if target == nil {
		return ValidationResult{Valid: false, Message: "Цель не найдена."}
	}

	// 2. Руки
	if needHands && !s.cuffable.CanUseHands(actorID) {
		return ValidationResult{Valid: false, Message: "Ваши руки скованы."}
	}

	// 3. Дистанция и преграды
	ok, err := s.interaction.InRangeUnobstructed(EntityTarget(actorID), EntityTarget(targetID), rangeLimit)
	if err != nil || !ok {
		return ValidationResult{Valid: false, Message: "Цель слишком далеко."}
	}

	return ValidationResult{Target: target, Valid: true}
}

// ValidatePoint - то же для точки на карте (без требования рук).
func (s *TargetingSystem) ValidatePoint(actorID types.EntityID, coords domain.MapCoordinates, rangeLimit float32) ValidationResult {
	if s.world.Get(actorID) == nil {
		return ValidationResult{Valid: false, Message: "Вас нет в мире."}
	}
	ok, err := s.interaction.InRangeUnobstructed(EntityTarget(actorID), CoordsTarget(coords), rangeLimit)
	if err != nil || !ok {
		return ValidationResult{Valid: false, Message: "Точка слишком далеко."}
	}
	return ValidationResult{Valid: true}
}
