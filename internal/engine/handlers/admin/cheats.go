package admin

import (
	"errors"
	"fmt"

	"station-core/internal/core/types"
	"station-core/internal/domain"
	"station-core/internal/engine/handlers"

	"github.com/go-gl/mathgl/mgl32"
)

// AddHandPayload: { "targetId": "42", "name": "left hand", "location": "left" }
type AddHandPayload struct {
	TargetID types.EntityID `json:"targetId"`
	Name     string         `json:"name,omitempty"`
	Location string         `json:"location,omitempty"`
}

func (p AddHandPayload) Validate() error {
	if p.TargetID.IsNil() {
		return errors.New("targetId is required")
	}
	return nil
}

func HandleAddHand(ctx handlers.Context, p AddHandPayload) (handlers.Result, error) {
	hand, err := ctx.Sys.Hands.AddHand(p.TargetID, p.Name, domain.ParseHandLocation(p.Location))
	if err != nil {
		return handlers.Deny(fmt.Sprintf("Add hand failed: %v", err)), nil
	}
	return handlers.Result{
		Msg:     fmt.Sprintf("Added hand %d to %s (%d total)", hand, p.TargetID, ctx.Sys.Hands.HandCount(p.TargetID)),
		MsgType: domain.MsgTypeInfo,
	}, nil
}

// RemoveHandPayload: { "targetId": "42", "hand": 1 }. Без hand удаляется последняя рука.
type RemoveHandPayload struct {
	TargetID types.EntityID `json:"targetId"`
	Hand     *domain.HandID `json:"hand,omitempty"`
}

func (p RemoveHandPayload) Validate() error {
	if p.TargetID.IsNil() {
		return errors.New("targetId is required")
	}
	return nil
}

func HandleRemoveHand(ctx handlers.Context, p RemoveHandPayload) (handlers.Result, error) {
	var hand domain.HandID
	if p.Hand != nil {
		hand = *p.Hand
	} else {
		last, err := ctx.Sys.Hands.LastHand(p.TargetID)
		if err != nil {
			return handlers.Deny(fmt.Sprintf("Remove hand failed: %v", err)), nil
		}
		hand = last
	}

	if err := ctx.Sys.Hands.RemoveHand(p.TargetID, hand); err != nil {
		return handlers.Deny(fmt.Sprintf("Remove hand failed: %v", err)), nil
	}
	return handlers.Result{
		Msg:     fmt.Sprintf("Removed hand %d from %s (%d left)", hand, p.TargetID, ctx.Sys.Hands.HandCount(p.TargetID)),
		MsgType: domain.MsgTypeInfo,
	}, nil
}

// SpawnPayload: { "prototype": "Handcuffs", "mapId": 1, "x": 2.5, "y": 3 }
type SpawnPayload struct {
	Prototype string       `json:"prototype"`
	MapID     domain.MapID `json:"mapId"`
	X         float32      `json:"x"`
	Y         float32      `json:"y"`
}

func (p SpawnPayload) Validate() error {
	if p.Prototype == "" {
		return errors.New("prototype is required")
	}
	return nil
}

func HandleSpawn(ctx handlers.Context, p SpawnPayload) (handlers.Result, error) {
	id, err := ctx.Sys.World.Spawn(p.Prototype, domain.NewMapCoordinates(p.MapID, p.X, p.Y))
	if err != nil {
		return handlers.Deny(fmt.Sprintf("Spawn failed: %v", err)), nil
	}
	return handlers.Result{
		Msg:     fmt.Sprintf("Spawned %s as %d", p.Prototype, uint64(id)),
		MsgType: domain.MsgTypeInfo,
	}, nil
}

// TeleportPayload: { "targetId": "42", "mapId": 1, "x": 10, "y": 10 }
// Сущность из контейнера сначала вынимается.
type TeleportPayload struct {
	TargetID types.EntityID `json:"targetId"`
	MapID    domain.MapID   `json:"mapId"`
	X        float32        `json:"x"`
	Y        float32        `json:"y"`
}

func (p TeleportPayload) Validate() error {
	if p.TargetID.IsNil() {
		return errors.New("targetId is required")
	}
	return nil
}

func HandleTeleport(ctx handlers.Context, p TeleportPayload) (handlers.Result, error) {
	if _, _, inside := ctx.Sys.Containers.ContainerOf(p.TargetID); inside {
		if err := ctx.Sys.Containers.Remove(p.TargetID); err != nil {
			return handlers.Deny(fmt.Sprintf("Teleport failed: %v", err)), nil
		}
	}

	coords := domain.MapCoordinates{MapID: p.MapID, Position: mgl32.Vec2{p.X, p.Y}}
	if err := ctx.Sys.Transform.AttachToMap(p.TargetID, coords); err != nil {
		return handlers.Deny(fmt.Sprintf("Teleport failed: %v", err)), nil
	}
	return handlers.Result{Msg: fmt.Sprintf("Teleported %s to %s", p.TargetID, coords), MsgType: domain.MsgTypeInfo}, nil
}

func HandleCreateMap(ctx handlers.Context) (handlers.Result, error) {
	id := ctx.Sys.World.CreateMap()
	return handlers.Result{Msg: fmt.Sprintf("Created map %d", id), MsgType: domain.MsgTypeInfo}, nil
}

// WallPayload: { "mapId": 1, "x": 3, "y": 0, "wall": true }
type WallPayload struct {
	MapID domain.MapID `json:"mapId"`
	X     int          `json:"x"`
	Y     int          `json:"y"`
	Wall  bool         `json:"wall"`
}

func HandleSetWall(ctx handlers.Context, p WallPayload) (handlers.Result, error) {
	if err := ctx.Sys.World.SetWall(p.MapID, domain.TilePos{X: p.X, Y: p.Y}, p.Wall); err != nil {
		return handlers.Deny(fmt.Sprintf("Set wall failed: %v", err)), nil
	}
	return handlers.EmptyResult(), nil
}
