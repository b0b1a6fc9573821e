package systems

import (
	"fmt"

	"station-core/internal/core/types"
	"station-core/internal/domain"

	"github.com/go-gl/mathgl/mgl32"
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	To        domain.MapCoordinates
	HasMoved  bool
	Contained bool // Сущность внутри контейнера и сама не ходит
	IsWall    bool // Если врезались в стену или непроходимое тело
}

// CalculateMove вычисляет новую позицию. Не меняет состояние мира!
func CalculateMove(s *Systems, id types.EntityID, delta mgl32.Vec2) (MovementResult, error) {
	if _, _, inside := s.Containers.ContainerOf(id); inside {
		return MovementResult{Contained: true}, nil
	}

	from, err := s.Transform.WorldPosition(id)
	if err != nil {
		return MovementResult{}, fmt.Errorf("move %s: %w", id, err)
	}
	to := from.Offset(delta)
	res := MovementResult{To: to}

	exempt := map[types.EntityID]struct{}{id: {}}

	// 1. Точка назначения занята
	if s.Physics.IsBlockedAt(to.MapID, to.Position, exempt) {
		res.IsWall = true
		return res, nil
	}

	// 2. Стены и непроходимые тела по пути
	if s.Physics.IsObstructed(from.MapID, from.Position, to.Position, exempt) {
		res.IsWall = true
		return res, nil
	}

	res.HasMoved = true
	return res, nil
}
