package actions

import (
	"station-core/internal/engine/handlers"
	"station-core/internal/systems"
	"station-core/pkg/api"

	"github.com/go-gl/mathgl/mgl32"
)

func HandleMove(ctx handlers.Context, p api.DirectionPayload) (handlers.Result, error) {
	res, err := systems.CalculateMove(ctx.Sys, ctx.Actor, mgl32.Vec2{p.Dx, p.Dy})
	if err != nil {
		return handlers.Deny("Вы не можете двигаться."), nil
	}

	if res.Contained {
		return handlers.Deny("Вы внутри контейнера."), nil
	}
	if res.IsWall {
		return handlers.Deny("Путь прегражден."), nil
	}

	if res.HasMoved {
		if err := ctx.Sys.Transform.SetWorldPosition(ctx.Actor, res.To); err != nil {
			return handlers.Result{}, err
		}
	}
	return handlers.EmptyResult(), nil
}
