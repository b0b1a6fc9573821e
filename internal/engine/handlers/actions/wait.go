package actions

import (
	"fmt"

	"station-core/internal/engine/handlers"
)

func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	return info(fmt.Sprintf("%s пропускает ход.", nameOf(ctx.Sys, ctx.Actor))), nil
}
