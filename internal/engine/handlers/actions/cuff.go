package actions

import (
	"errors"
	"fmt"

	"station-core/internal/core/types"
	"station-core/internal/domain"
	"station-core/internal/engine/handlers"
	"station-core/pkg/api"
)

func HandleCuff(ctx handlers.Context, p api.CuffPayload) (handlers.Result, error) {
	sys := ctx.Sys

	// 1. Наручники
	cuffs := sys.World.Get(p.CuffsID)
	if cuffs == nil || cuffs.Handcuff == nil {
		return handlers.Deny("Это не наручники."), nil
	}
	if cuffs.Handcuff.IsApplied() {
		return handlers.Deny("Эти наручники уже на ком-то надеты."), nil
	}
	if !canReach(ctx, p.CuffsID) {
		return handlers.Deny("Наручники слишком далеко."), nil
	}

	// 2. Цель
	target := sys.World.Get(p.TargetID)
	if target == nil || target.Cuffable == nil {
		return handlers.Deny("Это нельзя сковать."), nil
	}
	if sys.Cuffable.State(p.TargetID) == domain.FullyRestrained {
		return handlers.Deny(fmt.Sprintf("%s уже скован.", target.Name)), nil
	}

	// 3. Дистанция и руки
	v := sys.Targeting.ValidateInteraction(ctx.Actor, p.TargetID, 0, true)
	if !v.Valid {
		return handlers.Deny(v.Message), nil
	}

	complete := func() (handlers.Result, error) {
		return applyCuffs(ctx, p.TargetID, p.CuffsID)
	}

	delay := cuffs.Handcuff.CuffDelay
	if delay <= 0 || ctx.Scheduler == nil {
		return complete()
	}

	ctx.Scheduler.Schedule(handlers.DoAfter{
		User:      ctx.Actor,
		Target:    p.TargetID,
		Used:      p.CuffsID,
		Delay:     delay,
		NeedHands: true,
		Complete:  complete,
	})
	return handlers.Result{
		Msg:     fmt.Sprintf("%s начинает надевать %s на %s.", nameOf(sys, ctx.Actor), cuffs.Name, target.Name),
		MsgType: domain.MsgTypeAction,
	}, nil
}

func applyCuffs(ctx handlers.Context, target, cuffs types.EntityID) (handlers.Result, error) {
	sys := ctx.Sys
	claimed, err := sys.Cuffable.TryAddNewCuffs(target, ctx.Actor, cuffs)
	if err != nil {
		// За время действия наручники могли надеть на другого или убрать из мира.
		if errors.Is(err, domain.ErrInvalidDevice) || errors.Is(err, domain.ErrEntityNotFound) {
			return handlers.Deny("Не удалось надеть наручники."), nil
		}
		return handlers.Result{}, err
	}

	if !claimed {
		return handlers.Result{
			Msg:     fmt.Sprintf("%s надевает наручники на %s, но им нечего сковать.", nameOf(sys, ctx.Actor), nameOf(sys, target)),
			MsgType: domain.MsgTypeInfo,
		}, nil
	}
	return handlers.Result{
		Msg: fmt.Sprintf("%s сковывает %s (%d из %d рук).",
			nameOf(sys, ctx.Actor), nameOf(sys, target),
			sys.Cuffable.CuffedHandCount(target), sys.Hands.HandCount(target)),
		MsgType: domain.MsgTypeAction,
	}, nil
}

// canReach: предмет у актора (в любом его контейнере) или лежит в пределах досягаемости.
func canReach(ctx handlers.Context, item types.EntityID) bool {
	for _, owner := range ctx.Sys.Containers.Owners(item) {
		if owner == ctx.Actor {
			return true
		}
	}
	return ctx.Sys.Targeting.ValidateInteraction(ctx.Actor, item, 0, false).Valid
}
