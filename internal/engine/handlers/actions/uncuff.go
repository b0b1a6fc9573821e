package actions

import (
	"errors"
	"fmt"
	"slices"

	"station-core/internal/domain"
	"station-core/internal/engine/handlers"
	"station-core/pkg/api"
)

// HandleUncuff снимает наручники. Снять их с себя можно и без свободных рук, но вдвое дольше.
func HandleUncuff(ctx handlers.Context, p api.UncuffPayload) (handlers.Result, error) {
	sys := ctx.Sys

	target := sys.World.Get(p.TargetID)
	if target == nil || target.Cuffable == nil {
		return handlers.Deny("Цель не найдена."), nil
	}

	applied := sys.Cuffable.AppliedCuffs(p.TargetID)
	if len(applied) == 0 {
		return handlers.Deny(fmt.Sprintf("На %s нет наручников.", target.Name)), nil
	}
	cuffsID := p.CuffsID
	if cuffsID.IsNil() {
		cuffsID = applied[len(applied)-1]
	}
	if !slices.Contains(applied, cuffsID) {
		return handlers.Deny("Эти наручники не надеты на цель."), nil
	}

	self := ctx.Actor == p.TargetID
	if !self {
		v := sys.Targeting.ValidateInteraction(ctx.Actor, p.TargetID, 0, true)
		if !v.Valid {
			return handlers.Deny(v.Message), nil
		}
	}

	complete := func() (handlers.Result, error) {
		if err := sys.Cuffable.Uncuff(p.TargetID, ctx.Actor, cuffsID); err != nil {
			if errors.Is(err, domain.ErrDeviceNotApplied) || errors.Is(err, domain.ErrEntityNotFound) {
				return handlers.Deny("Наручники уже сняты."), nil
			}
			return handlers.Result{}, err
		}
		return handlers.Result{
			Msg:     fmt.Sprintf("%s снимает наручники с %s.", nameOf(sys, ctx.Actor), nameOf(sys, p.TargetID)),
			MsgType: domain.MsgTypeAction,
		}, nil
	}

	delay := 0
	if device := sys.World.Get(cuffsID); device != nil && device.Handcuff != nil {
		delay = device.Handcuff.UncuffDelay
	}
	if self {
		delay *= 2
	}
	if delay <= 0 || ctx.Scheduler == nil {
		return complete()
	}

	ctx.Scheduler.Schedule(handlers.DoAfter{
		User:      ctx.Actor,
		Target:    p.TargetID,
		Used:      cuffsID,
		Delay:     delay,
		NeedHands: !self,
		Complete:  complete,
	})
	return handlers.Result{
		Msg:     fmt.Sprintf("%s пытается снять наручники с %s.", nameOf(sys, ctx.Actor), target.Name),
		MsgType: domain.MsgTypeAction,
	}, nil
}
