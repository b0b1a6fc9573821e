package systems

import (
	"iter"

	"station-core/internal/domain"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// TilesBetween перечисляет клетки сетки, через которые проходит отрезок start -> end,
// начиная с клетки start (2D-вариант voxel traversal). Если отрезок проходит
// точно через угол, выдаются обе соседние по углу клетки, так что набор клеток
// не зависит от направления. Для нечисловых координат выдаётся только start.
func TilesBetween(start, end mgl32.Vec2) iter.Seq[domain.TilePos] {
	return func(yield func(domain.TilePos) bool) {
		current := domain.TileAt(start)
		if !yield(current) {
			return
		}

		delta := end.Sub(start)
		length := delta.Len()
		if !finite(start) || !finite(end) || !(length > 0) || math32.IsInf(length, 0) {
			return
		}
		dir := delta.Mul(1 / length)

		stepX := sign(dir.X())
		stepY := sign(dir.Y())

		tMaxX := distanceToBoundary(start.X(), dir.X())
		tMaxY := distanceToBoundary(start.Y(), dir.Y())

		var tDeltaX float32 = math32.MaxFloat32
		if dir.X() != 0 {
			tDeltaX = float32(stepX) / dir.X()
		}
		var tDeltaY float32 = math32.MaxFloat32
		if dir.Y() != 0 {
			tDeltaY = float32(stepY) / dir.Y()
		}

		for {
			switch {
			case tMaxX < tMaxY:
				if tMaxX > length {
					return
				}
				current = current.Shift(stepX, 0)
				tMaxX += tDeltaX
			case tMaxY < tMaxX:
				if tMaxY > length {
					return
				}
				current = current.Shift(0, stepY)
				tMaxY += tDeltaY
			default:
				if tMaxX > length {
					return
				}
				if !yield(current.Shift(stepX, 0)) || !yield(current.Shift(0, stepY)) {
					return
				}
				current = current.Shift(stepX, stepY)
				tMaxX += tDeltaX
				tMaxY += tDeltaY
			}

			if !yield(current) {
				return
			}
		}
	}
}

func finite(v mgl32.Vec2) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func sign(v float32) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// distanceToBoundary - параметр t, при котором луч из s со скоростью ds пересечёт ближайшую границу клетки.
func distanceToBoundary(s, ds float32) float32 {
	if ds == 0 {
		return math32.MaxFloat32
	}

	if ds < 0 {
		s = -s
		ds = -ds

		if math32.Floor(s) == s {
			return 0
		}
	}

	return (1 - (s - math32.Floor(s))) / ds
}
