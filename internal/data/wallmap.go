package data

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/l1jgo/horde/internal/vmath"
	"gopkg.in/yaml.v3"
)

// WallMapInfo is the metadata for a wall map, loaded from YAML. Tiles are
// square, laid out on the XZ plane starting at (OriginX, OriginZ).
type WallMapInfo struct {
	Name     string  `yaml:"name"`
	TileFile string  `yaml:"tile_file"` // relative to the YAML file
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	TileSize float64 `yaml:"tile_size"`
	OriginX  float64 `yaml:"origin_x"`
	OriginZ  float64 `yaml:"origin_z"`
}

// WallMap answers segment sweeps against solid tiles. Anything outside the
// map is open.
type WallMap struct {
	info  WallMapInfo
	tiles []byte // flat array [x * height + z]
}

// LoadWallMap loads wall metadata from YAML and tile data from the CSV file
// it names: one row per Z line, one comma-separated value per X column,
// nonzero = solid.
func LoadWallMap(yamlPath string) (*WallMap, error) {
	raw, err := os.ReadFile(yamlPath)
	if err != nil {
		return nil, fmt.Errorf("read wall map %s: %w", yamlPath, err)
	}
	var info WallMapInfo
	if err := yaml.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("parse wall map: %w", err)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("wall map %q: invalid size %dx%d", info.Name, info.Width, info.Height)
	}
	info.TileSize = vmath.AtLeast(info.TileSize, vmath.MinCellSize)

	tiles, err := loadWallTiles(filepath.Join(filepath.Dir(yamlPath), info.TileFile), info.Width, info.Height)
	if err != nil {
		return nil, fmt.Errorf("wall map %q tiles: %w", info.Name, err)
	}
	return &WallMap{info: info, tiles: tiles}, nil
}

func loadWallTiles(path string, width, height int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tiles := make([]byte, width*height)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024)

	z := 0
	for scanner.Scan() && z < height {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		x := 0
		for _, tok := range strings.Split(line, ",") {
			if x >= width {
				break
			}
			val, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 16)
			if err != nil {
				val = 0
			}
			tiles[x*height+z] = byte(val)
			x++
		}
		z++
	}
	return tiles, scanner.Err()
}

// NewWallMap builds a map from rows of '#' (solid) and '.' (open), row 0
// being the lowest Z. Short rows are padded open.
func NewWallMap(info WallMapInfo, rows []string) *WallMap {
	info.Height = len(rows)
	for _, r := range rows {
		info.Width = max(info.Width, len(r))
	}
	info.TileSize = vmath.AtLeast(info.TileSize, vmath.MinCellSize)
	m := &WallMap{info: info, tiles: make([]byte, info.Width*info.Height)}
	for z, r := range rows {
		for x := 0; x < len(r); x++ {
			if r[x] == '#' {
				m.tiles[x*info.Height+z] = 1
			}
		}
	}
	return m
}

func (m *WallMap) Info() WallMapInfo { return m.info }

// Solid reports whether the tile at tile coordinates (tx, tz) blocks.
func (m *WallMap) Solid(tx, tz int32) bool {
	if tx < 0 || tz < 0 || int(tx) >= m.info.Width || int(tz) >= m.info.Height {
		return false
	}
	return m.tiles[int(tx)*m.info.Height+int(tz)] != 0
}

// SolidCount returns the number of blocking tiles.
func (m *WallMap) SolidCount() int {
	n := 0
	for _, t := range m.tiles {
		if t != 0 {
			n++
		}
	}
	return n
}

// Sweep reports whether a circle of the given radius moving from -> to
// touches a solid tile. The path is sampled at half the smaller of the tile
// size and the radius; each sample tests the tiles under its bounding box.
func (m *WallMap) Sweep(from, to vmath.Vec3, radius float64) bool {
	radius = math.Max(radius, 0)
	step := math.Max(math.Min(m.info.TileSize, math.Max(radius, vmath.MinRadius))/2, 1e-3)
	delta := to.Sub(from)
	dist := delta.PlanarLen()
	if math.IsNaN(dist) || math.IsInf(dist, 0) {
		return false
	}
	n := int(math.Ceil(dist / step))
	for i := 0; i <= n; i++ {
		t := 1.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		p := from.Add(delta.Scale(t))
		if m.blocked(p.X, p.Z, radius) {
			return true
		}
	}
	return false
}

func (m *WallMap) blocked(x, z, radius float64) bool {
	size := m.info.TileSize
	x0 := vmath.CellCoord(x-radius-m.info.OriginX, size)
	x1 := vmath.CellCoord(x+radius-m.info.OriginX, size)
	z0 := vmath.CellCoord(z-radius-m.info.OriginZ, size)
	z1 := vmath.CellCoord(z+radius-m.info.OriginZ, size)
	for tx := x0; tx <= x1; tx++ {
		for tz := z0; tz <= z1; tz++ {
			if m.Solid(tx, tz) {
				return true
			}
		}
	}
	return false
}
