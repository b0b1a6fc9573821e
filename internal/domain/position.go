package domain

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MapID - идентификатор карты (независимой системы координат).
type MapID uint32

// NullSpace - "нулевое пространство": сущность существует, но не находится ни на одной карте.
const NullSpace MapID = 0

// MapCoordinates - точка в мировых координатах конкретной карты.
type MapCoordinates struct {
	MapID    MapID      `json:"mapId"`
	Position mgl32.Vec2 `json:"position"`
}

// NewMapCoordinates создаёт точку на карте.
func NewMapCoordinates(mapID MapID, x, y float32) MapCoordinates {
	return MapCoordinates{MapID: mapID, Position: mgl32.Vec2{x, y}}
}

// Offset возвращает точку, сдвинутую на delta в пределах той же карты.
func (c MapCoordinates) Offset(delta mgl32.Vec2) MapCoordinates {
	return MapCoordinates{MapID: c.MapID, Position: c.Position.Add(delta)}
}

// DistanceTo возвращает расстояние до другой точки.
// ok == false, если точки лежат на разных картах и расстояние не определено.
func (c MapCoordinates) DistanceTo(other MapCoordinates) (dist float32, ok bool) {
	if c.MapID != other.MapID || c.MapID == NullSpace {
		return 0, false
	}
	return Distance(c.Position, other.Position), true
}

func (c MapCoordinates) String() string {
	return fmt.Sprintf("map%d(%.3f, %.3f)", c.MapID, c.Position.X(), c.Position.Y())
}

// Distance - евклидово расстояние между двумя точками.
func Distance(a, b mgl32.Vec2) float32 {
	return math32.Hypot(a.X()-b.X(), a.Y()-b.Y())
}

// TilePos - целочисленная клетка сетки карты. Клетка (x, y) занимает [x, x+1) × [y, y+1).
type TilePos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TileAt возвращает клетку, в которой лежит точка.
func TileAt(p mgl32.Vec2) TilePos {
	return TilePos{X: int(math32.Floor(p.X())), Y: int(math32.Floor(p.Y()))}
}

// Shift возвращает соседнюю клетку со смещением.
func (t TilePos) Shift(dx, dy int) TilePos {
	return TilePos{X: t.X + dx, Y: t.Y + dy}
}

// Origin возвращает левый нижний угол клетки.
func (t TilePos) Origin() mgl32.Vec2 {
	return mgl32.Vec2{float32(t.X), float32(t.Y)}
}
