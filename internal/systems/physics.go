package systems

import (
	"station-core/internal/core/types"
	"station-core/internal/domain"
	"station-core/pkg/logger"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// Коробки плоские по смыслу, но трассировка трёхмерная: отрезок идёт по z = 0,
// а все коробки занимают z в [-boxHalfHeight, boxHalfHeight].
const boxHalfHeight = 0.5

// PhysicsSystem отвечает на вопросы о геометрии: радиусы тел и перекрытие отрезков.
type PhysicsSystem struct {
	world *domain.GameWorld
	log   *logrus.Entry
}

func NewPhysicsSystem(world *domain.GameWorld) *PhysicsSystem {
	return &PhysicsSystem{
		world: world,
		log:   logger.Log.WithField("component", "physics_system"),
	}
}

// Radius возвращает радиус тела. ok == false, если у сущности нет физики.
func (s *PhysicsSystem) Radius(id types.EntityID) (float32, bool) {
	e := s.world.Get(id)
	if e == nil || e.Physics == nil {
		return 0, false
	}
	return e.Physics.Radius, true
}

// IsObstructed проверяет, перекрыт ли отрезок a -> b стеной или непроходимым телом.
// Сущности из exempt не учитываются. Коробки, внутри которых лежит один из концов, тоже:
// это место, где стоит сам участник взаимодействия.
func (s *PhysicsSystem) IsObstructed(mapID domain.MapID, a, b mgl32.Vec2, exempt map[types.EntityID]struct{}) bool {
	losLogger := s.log.WithFields(logrus.Fields{
		"function":  "IsObstructed",
		"map":       mapID,
		"start_pos": a,
		"end_pos":   b,
	})

	grid := s.world.GetMap(mapID)
	if grid == nil {
		losLogger.Debug("Check finished: Map does not exist. Result: true")
		return true
	}
	if a == b {
		return false
	}

	start := mgl32.Vec3{a.X(), a.Y(), 0}
	end := mgl32.Vec3{b.X(), b.Y(), 0}

	blocks := func(bb cube.BBox) bool {
		if boxContains(bb, a) || boxContains(bb, b) {
			return false
		}
		_, ok := trace.BBoxIntercept(bb, start, end)
		return ok
	}

	// 1. Стены
	for tile := range TilesBetween(a, b) {
		if !grid.IsWall(tile) {
			continue
		}
		if blocks(tileBox(tile)) {
			losLogger.WithField("blocking_point", tile).
				Debug("Check finished: Line is blocked by WALL. Result: true")
			return true
		}
	}

	// 2. Непроходимые тела
	for _, id := range s.candidates(grid, a, b) {
		if _, ok := exempt[id]; ok {
			continue
		}
		e := s.world.Get(id)
		if e == nil || e.Physics == nil || !e.Physics.Impassable || !e.OnMap() {
			continue
		}
		if blocks(entityBox(e)) {
			losLogger.WithField("blocking_entity", id).
				Debug("Check finished: Line is blocked by FIXTURE. Result: true")
			return true
		}
	}

	losLogger.Debug("Check finished: No obstructions found. Result: false")
	return false
}

// candidates - широкая фаза: сущности из клеток, покрывающих bbox отрезка,
// расширенный на самое большое тело карты.
func (s *PhysicsSystem) candidates(grid *domain.MapGrid, a, b mgl32.Vec2) []types.EntityID {
	grow := grid.MaxExtent
	lo := domain.TileAt(mgl32.Vec2{math32.Min(a.X(), b.X()) - grow, math32.Min(a.Y(), b.Y()) - grow})
	hi := domain.TileAt(mgl32.Vec2{math32.Max(a.X(), b.X()) + grow, math32.Max(a.Y(), b.Y()) + grow})

	var out []types.EntityID

	// На длинных отрезках дешевле пройти по занятым клеткам, чем по прямоугольнику.
	area := (hi.X - lo.X + 1) * (hi.Y - lo.Y + 1)
	if area > len(grid.SpatialHash) {
		for pos, ids := range grid.SpatialHash {
			if pos.X >= lo.X && pos.X <= hi.X && pos.Y >= lo.Y && pos.Y <= hi.Y {
				out = append(out, ids...)
			}
		}
		return out
	}

	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			out = append(out, grid.GetEntitiesAt(domain.TilePos{X: x, Y: y})...)
		}
	}
	return out
}

func tileBox(t domain.TilePos) cube.BBox {
	o := t.Origin()
	return cube.Box(o.X(), o.Y(), -boxHalfHeight, o.X()+1, o.Y()+1, boxHalfHeight)
}

func entityBox(e *domain.Entity) cube.BBox {
	half := e.Physics.HalfSize()
	c := e.Transform.LocalPos
	return cube.Box(c.X()-half.X(), c.Y()-half.Y(), -boxHalfHeight, c.X()+half.X(), c.Y()+half.Y(), boxHalfHeight)
}

// boxContains проверяет точку плоскости (z = 0) на попадание в коробку, включая границу.
func boxContains(bb cube.BBox, p mgl32.Vec2) bool {
	minV, maxV := bb.Min(), bb.Max()
	return p.X() >= minV.X() && p.X() <= maxV.X() && p.Y() >= minV.Y() && p.Y() <= maxV.Y()
}

// IsBlockedAt проверяет, занята ли точка стеной или непроходимым телом.
func (s *PhysicsSystem) IsBlockedAt(mapID domain.MapID, p mgl32.Vec2, exempt map[types.EntityID]struct{}) bool {
	grid := s.world.GetMap(mapID)
	if grid == nil {
		return true
	}
	if grid.IsWall(domain.TileAt(p)) {
		return true
	}
	for _, id := range s.candidates(grid, p, p) {
		if _, ok := exempt[id]; ok {
			continue
		}
		e := s.world.Get(id)
		if e == nil || e.Physics == nil || !e.Physics.Impassable || !e.OnMap() {
			continue
		}
		if boxContains(entityBox(e), p) {
			return true
		}
	}
	return false
}
