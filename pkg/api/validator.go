package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

// MaxStep - самый длинный шаг MOVE по каждой оси.
const MaxStep float32 = 1

func (p DirectionPayload) Validate() error {
	if p.Dx == 0 && p.Dy == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Dx < -MaxStep || p.Dx > MaxStep || p.Dy < -MaxStep || p.Dy > MaxStep {
		return errors.New("movement step too large")
	}
	return nil
}

func (p EntityPayload) Validate() error {
	if p.TargetID.IsNil() {
		return errors.New("targetId is required")
	}
	return nil
}

func (p CuffPayload) Validate() error {
	if p.TargetID.IsNil() {
		return errors.New("targetId is required")
	}
	if p.CuffsID.IsNil() {
		return errors.New("cuffsId is required")
	}
	return nil
}

func (p UncuffPayload) Validate() error {
	if p.TargetID.IsNil() {
		return errors.New("targetId is required")
	}
	return nil
}
