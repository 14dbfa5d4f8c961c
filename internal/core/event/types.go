package event

import "github.com/l1jgo/horde/internal/core/ecs"

// EnemyKilled is emitted once per Killed despawn observed in a frame.
type EnemyKilled struct {
	Enemy   ecs.Handle
	Spawner int32
	X, Z    float64
	Frame   uint64
}

// ElementalProc is emitted when an enemy's stacks cross a proc threshold.
type ElementalProc struct {
	Enemy   ecs.Handle
	Element uint8
	Effect  uint8
	Frame   uint64
}

// PoolExhausted is emitted when an owner could not grow its pool and had to
// cap a spawn or fire batch.
type PoolExhausted struct {
	Owner     string
	Requested int
	Available int
	Frame     uint64
}
