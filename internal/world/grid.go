package world

import "github.com/l1jgo/horde/internal/vmath"

// Grid is a uniform spatial hash over the XZ plane, rebuilt each frame from
// the active enemies. Buckets are keyed by a 32-bit hash of the cell
// coordinates, so distinct cells can share a bucket; callers always filter
// candidates by real distance.
//
// Insert and Reset run on the frame loop goroutine only. ForEachNear is safe
// for concurrent readers once inserts are done.
type Grid struct {
	cellSize float64
	buckets  map[uint32][]uint32 // hash → enemy slot indices
	used     []uint32            // hashes filled since the last Reset
	seen     map[uint32]struct{}
}

// maxIdleBuckets bounds how many empty buckets are kept for reuse.
const maxIdleBuckets = 4096

func NewGrid() *Grid {
	return &Grid{
		cellSize: vmath.MinCellSize,
		buckets:  make(map[uint32][]uint32),
		seen:     make(map[uint32]struct{}),
	}
}

// HashCell mixes integer cell coordinates into a bucket key.
func HashCell(cx, cz int32) uint32 {
	return uint32(cx)*73856093 ^ uint32(cz)*19349663
}

func (g *Grid) CellSize() float64 { return g.cellSize }

// Reset empties every bucket, keeping storage, and sets the cell size.
func (g *Grid) Reset(cellSize float64) {
	g.cellSize = vmath.AtLeast(cellSize, vmath.MinCellSize)
	if len(g.buckets) > maxIdleBuckets {
		clear(g.buckets)
	} else {
		for _, k := range g.used {
			g.buckets[k] = g.buckets[k][:0]
		}
	}
	g.used = g.used[:0]
}

func (g *Grid) cell(pos vmath.Vec3) (int32, int32) {
	return vmath.CellCoord(pos.X, g.cellSize), vmath.CellCoord(pos.Z, g.cellSize)
}

// Insert places an enemy slot into the bucket of the cell containing pos.
func (g *Grid) Insert(idx uint32, pos vmath.Vec3) {
	cx, cz := g.cell(pos)
	k := HashCell(cx, cz)
	b := g.buckets[k]
	if len(b) == 0 {
		g.used = append(g.used, k)
	}
	g.buckets[k] = append(b, idx)
}

// ForEachNear visits every slot in the 3x3 cell neighbourhood around pos.
// A bucket shared by two neighbouring cells is visited once.
func (g *Grid) ForEachNear(pos vmath.Vec3, fn func(idx uint32)) {
	cx, cz := g.cell(pos)
	var visited [9]uint32
	n := 0
	for dx := int32(-1); dx <= 1; dx++ {
		for dz := int32(-1); dz <= 1; dz++ {
			k := HashCell(cx+dx, cz+dz)
			dup := false
			for i := 0; i < n; i++ {
				if visited[i] == k {
					dup = true
					break
				}
			}
			if dup {
				continue
			}
			visited[n] = k
			n++
			for _, idx := range g.buckets[k] {
				fn(idx)
			}
		}
	}
}

// ForEachInRange visits every slot whose cell overlaps the square of
// half-width radius around pos, each bucket once. It may also visit slots
// outside that square. Frame loop goroutine only.
func (g *Grid) ForEachInRange(pos vmath.Vec3, radius float64, fn func(idx uint32)) {
	if radius < 0 {
		radius = 0
	}
	minX := vmath.CellCoord(pos.X-radius, g.cellSize)
	maxX := vmath.CellCoord(pos.X+radius, g.cellSize)
	minZ := vmath.CellCoord(pos.Z-radius, g.cellSize)
	maxZ := vmath.CellCoord(pos.Z+radius, g.cellSize)
	cells := (float64(maxX) - float64(minX) + 1) * (float64(maxZ) - float64(minZ) + 1)
	if cells > float64(len(g.used)) {
		// Fewer filled buckets than covered cells: visit the buckets directly.
		for _, k := range g.used {
			for _, idx := range g.buckets[k] {
				fn(idx)
			}
		}
		return
	}
	clear(g.seen)
	for cx := minX; cx <= maxX; cx++ {
		for cz := minZ; cz <= maxZ; cz++ {
			k := HashCell(cx, cz)
			if _, ok := g.seen[k]; ok {
				continue
			}
			g.seen[k] = struct{}{}
			for _, idx := range g.buckets[k] {
				fn(idx)
			}
		}
	}
}

// Len is the number of slots inserted since the last Reset.
func (g *Grid) Len() int {
	n := 0
	for _, k := range g.used {
		n += len(g.buckets[k])
	}
	return n
}
