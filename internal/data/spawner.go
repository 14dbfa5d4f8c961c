package data

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SpawnerEntry configures one enemy spawner and its pool.
type SpawnerEntry struct {
	ID                  string  `yaml:"id"`
	EnemyID             string  `yaml:"enemy_id"`
	SpawnPerTick        int     `yaml:"spawn_per_tick"`
	Interval            float64 `yaml:"interval"` // seconds
	ExpandBatch         int     `yaml:"expand_batch"`
	InitialPoolCapacity int     `yaml:"initial_pool_capacity"`
	MaxAlive            int     `yaml:"max_alive"`
	SpawnRadius         float64 `yaml:"spawn_radius"`
	HeightOffset        float64 `yaml:"height_offset"`
	DespawnDistance     float64 `yaml:"despawn_distance"` // 0 disables distance despawn
	FirstSpawnTime      float64 `yaml:"first_spawn_time"`
	Seed                uint32  `yaml:"seed"`
	FollowPlayer        bool    `yaml:"follow_player"`
	X                   float64 `yaml:"x"`
	Y                   float64 `yaml:"y"`
	Z                   float64 `yaml:"z"`
}

// ShooterEntry configures one projectile owner and its pool.
type ShooterEntry struct {
	ID                  string  `yaml:"id"`
	ProjectileID        string  `yaml:"projectile_id"`
	InitialPoolCapacity int     `yaml:"initial_pool_capacity"`
	ExpandBatch         int     `yaml:"expand_batch"`
	FollowPlayer        bool    `yaml:"follow_player"`
	X                   float64 `yaml:"x"`
	Y                   float64 `yaml:"y"`
	Z                   float64 `yaml:"z"`
}

// SpawnerList is the content of spawner_list.yaml.
type SpawnerList struct {
	Spawners []SpawnerEntry `yaml:"spawners"`
	Shooters []ShooterEntry `yaml:"shooters"`
}

// LoadSpawnerList loads spawner and shooter entries from a YAML file.
func LoadSpawnerList(path string) (*SpawnerList, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawner_list: %w", err)
	}
	var l SpawnerList
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("parse spawner_list: %w", err)
	}
	return &l, nil
}

// Presets bundles every table the simulation is built from.
type Presets struct {
	Enemies     *EnemyTable
	Projectiles *ProjectileTable
	Spawners    *SpawnerList
}

// LoadPresets loads enemy_list.yaml, projectile_list.yaml and
// spawner_list.yaml from dir.
func LoadPresets(dir string) (*Presets, error) {
	enemies, err := LoadEnemyTable(filepath.Join(dir, "enemy_list.yaml"))
	if err != nil {
		return nil, err
	}
	projectiles, err := LoadProjectileTable(filepath.Join(dir, "projectile_list.yaml"))
	if err != nil {
		return nil, err
	}
	spawners, err := LoadSpawnerList(filepath.Join(dir, "spawner_list.yaml"))
	if err != nil {
		return nil, err
	}
	return &Presets{Enemies: enemies, Projectiles: projectiles, Spawners: spawners}, nil
}
