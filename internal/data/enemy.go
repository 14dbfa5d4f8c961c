package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnemyPrefab holds the static tuning for an enemy type loaded from YAML.
type EnemyPrefab struct {
	ID               string  `yaml:"id"`
	Name             string  `yaml:"name"`
	MaxHealth        float64 `yaml:"max_health"`
	BodyRadius       float64 `yaml:"body_radius"`
	ContactDamage    float64 `yaml:"contact_damage"`
	ContactRadius    float64 `yaml:"contact_radius"`
	ContactCooldown  float64 `yaml:"contact_cooldown"` // seconds
	MoveSpeed        float64 `yaml:"move_speed"`
	Acceleration     float64 `yaml:"acceleration"`
	SeparationRadius float64 `yaml:"separation_radius"`
	SeparationWeight float64 `yaml:"separation_weight"`
}

type enemyListFile struct {
	Enemies []EnemyPrefab `yaml:"enemies"`
}

// EnemyTable holds all enemy prefabs indexed by ID.
type EnemyTable struct {
	prefabs map[string]*EnemyPrefab
}

// LoadEnemyTable loads enemy prefabs from a YAML file.
func LoadEnemyTable(path string) (*EnemyTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read enemy_list: %w", err)
	}
	t, err := ParseEnemyTable(raw)
	if err != nil {
		return nil, fmt.Errorf("parse enemy_list: %w", err)
	}
	return t, nil
}

func ParseEnemyTable(raw []byte) (*EnemyTable, error) {
	var f enemyListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	t := &EnemyTable{prefabs: make(map[string]*EnemyPrefab, len(f.Enemies))}
	for i := range f.Enemies {
		e := &f.Enemies[i]
		if e.ID == "" {
			return nil, fmt.Errorf("enemy #%d: missing id", i)
		}
		t.prefabs[e.ID] = e
	}
	return t, nil
}

// Get returns an enemy prefab by ID, or nil if not found.
func (t *EnemyTable) Get(id string) *EnemyPrefab {
	if t == nil {
		return nil
	}
	return t.prefabs[id]
}

// Count returns the number of loaded prefabs.
func (t *EnemyTable) Count() int {
	return len(t.prefabs)
}
