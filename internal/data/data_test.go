package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/l1jgo/horde/internal/elemental"
	"github.com/l1jgo/horde/internal/vmath"
)

func TestParseEnemyTable(t *testing.T) {
	tbl, err := ParseEnemyTable([]byte(`
enemies:
  - id: grunt
    max_health: 30
    body_radius: 0.5
`))
	if err != nil {
		t.Fatalf("ParseEnemyTable: %v", err)
	}
	g := tbl.Get("grunt")
	if g == nil {
		t.Fatal("grunt missing")
	}
	if g.MaxHealth != 30 || g.BodyRadius != 0.5 {
		t.Errorf("grunt = %+v", *g)
	}
	if tbl.Get("nope") != nil {
		t.Error("unknown id should be nil")
	}
	var nilTable *EnemyTable
	if nilTable.Get("grunt") != nil {
		t.Error("nil table lookup should be nil")
	}
}

func TestParseEnemyTable_MissingID(t *testing.T) {
	if _, err := ParseEnemyTable([]byte("enemies:\n  - max_health: 3\n")); err == nil {
		t.Error("expected error for missing id")
	}
}

func TestParseProjectileTable_ResolvesPayload(t *testing.T) {
	tbl, err := ParseProjectileTable([]byte(`
projectiles:
  - id: ember
    damage: 6
    elemental:
      element: fire
      effect: dot
      stacks_per_hit: 2
      max_stacks: 10
      proc_threshold: 5
  - id: plain
    damage: 1
`))
	if err != nil {
		t.Fatalf("ParseProjectileTable: %v", err)
	}
	p, ok := tbl.Get("ember").ElementalPayload()
	if !ok {
		t.Fatal("ember payload missing")
	}
	if p.Element != elemental.ElementFire || p.Effect != elemental.DamageOverTime {
		t.Errorf("payload = %+v", p)
	}
	if _, ok := tbl.Get("plain").ElementalPayload(); ok {
		t.Error("plain projectile should carry no payload")
	}
	if tbl.Get("plain").Scale != 1 {
		t.Errorf("default scale = %f, want 1", tbl.Get("plain").Scale)
	}
}

func TestParseProjectileTable_BadElement(t *testing.T) {
	_, err := ParseProjectileTable([]byte(`
projectiles:
  - id: odd
    elemental:
      element: plasma
`))
	if err == nil {
		t.Error("expected error for unknown element")
	}
}

func TestLoadPresets_Shipped(t *testing.T) {
	p, err := LoadPresets("../../data/yaml")
	if err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}
	if p.Enemies.Count() == 0 || p.Projectiles.Count() == 0 {
		t.Errorf("empty tables: %d enemies, %d projectiles", p.Enemies.Count(), p.Projectiles.Count())
	}
	for _, s := range p.Spawners.Spawners {
		if p.Enemies.Get(s.EnemyID) == nil {
			t.Errorf("spawner %s references unknown enemy %s", s.ID, s.EnemyID)
		}
	}
	for _, s := range p.Spawners.Shooters {
		if p.Projectiles.Get(s.ProjectileID) == nil {
			t.Errorf("shooter %s references unknown projectile %s", s.ID, s.ProjectileID)
		}
	}
}

func TestWallMap_Sweep(t *testing.T) {
	// 4x3 tiles of size 1 starting at the origin; one pillar at tile (2,1).
	m := NewWallMap(WallMapInfo{Name: "t", TileSize: 1}, []string{
		"....",
		"..#.",
		"....",
	})
	if got := m.SolidCount(); got != 1 {
		t.Fatalf("SolidCount = %d, want 1", got)
	}
	if !m.Solid(2, 1) || m.Solid(1, 1) {
		t.Fatal("pillar tile mismatch")
	}

	across := m.Sweep(vmath.Vec3{X: 0.5, Z: 1.5}, vmath.Vec3{X: 3.5, Z: 1.5}, 0.1)
	if !across {
		t.Error("sweep through the pillar should hit")
	}
	below := m.Sweep(vmath.Vec3{X: 0.5, Z: 0.4}, vmath.Vec3{X: 3.5, Z: 0.4}, 0.1)
	if below {
		t.Error("sweep below the pillar should miss")
	}
	fat := m.Sweep(vmath.Vec3{X: 0.5, Z: 0.4}, vmath.Vec3{X: 3.5, Z: 0.4}, 0.7)
	if !fat {
		t.Error("a wide circle grazing the pillar should hit")
	}
	outside := m.Sweep(vmath.Vec3{X: -10, Z: -10}, vmath.Vec3{X: -20, Z: -10}, 0.5)
	if outside {
		t.Error("outside the map is open")
	}
}

func TestLoadWallMap_Shipped(t *testing.T) {
	m, err := LoadWallMap("../../data/yaml/wall_map.yaml")
	if err != nil {
		t.Fatalf("LoadWallMap: %v", err)
	}
	info := m.Info()
	if info.Width != 20 || info.Height != 20 || info.TileSize != 4 {
		t.Errorf("info = %+v", info)
	}
	if m.SolidCount() == 0 {
		t.Error("expected solid tiles")
	}
	// the player spawns at the origin, which must be open
	if m.Sweep(vmath.Vec3{}, vmath.Vec3{X: 1}, 0.2) {
		t.Error("origin should be open")
	}
}

func TestLoadWallMap_InvalidSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "w.yaml")
	if err := os.WriteFile(path, []byte("name: bad\nwidth: 0\nheight: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWallMap(path); err == nil {
		t.Error("expected size error")
	}
}
