package actions

import (
	"fmt"

	"station-core/internal/domain"
	"station-core/internal/engine/handlers"
	"station-core/pkg/api"
)

func HandleInteract(ctx handlers.Context, p api.EntityPayload) (handlers.Result, error) {
	// 1. Дистанция, преграды, свободные руки
	v := ctx.Sys.Targeting.ValidateInteraction(ctx.Actor, p.TargetID, 0, true)
	if !v.Valid {
		return handlers.Deny(v.Message), nil
	}
	target := v.Target

	// 2. Что видно при осмотре
	if target.Cuffable != nil {
		switch ctx.Sys.Cuffable.State(p.TargetID) {
		case domain.FullyRestrained:
			return info(fmt.Sprintf("%s полностью скован.", target.Name)), nil
		case domain.PartiallyRestrained:
			return info(fmt.Sprintf("%s частично скован: свободно рук %d из %d.",
				target.Name, ctx.Sys.Cuffable.UsableHandCount(p.TargetID), ctx.Sys.Hands.HandCount(p.TargetID))), nil
		}
	}
	if target.Containers != nil {
		total := 0
		for _, c := range target.Containers.Containers {
			total += len(c.Contents)
		}
		return info(fmt.Sprintf("Вы открываете %s. Внутри предметов: %d.", target.Name, total)), nil
	}

	return info(fmt.Sprintf("Ничего не происходит при взаимодействии с %s.", target.Name)), nil
}

func info(msg string) handlers.Result {
	return handlers.Result{Msg: msg, MsgType: domain.MsgTypeInfo}
}
