package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/l1jgo/horde/internal/system"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

const (
	fnProjectileDamage = "calc_projectile_damage"
	fnExplosionDamage  = "calc_explosion_damage"
)

// Engine wraps a single gopher-lua VM holding the damage hooks.
// Single-goroutine access only (sequential resolution step of the frame).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger

	warned map[string]bool // hooks whose first failure was already reported
}

var _ system.DamageModifier = (*Engine)(nil)

// NewEngine creates a Lua engine and loads all scripts from the given
// directory: core/ first, then combat/. Missing directories are skipped.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log, warned: make(map[string]bool)}

	for _, sub := range []string{"core", "combat"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	for _, name := range []string{fnProjectileDamage, fnExplosionDamage} {
		if vm.GetGlobal(name) == lua.LNil {
			log.Info("lua damage hook not defined, using base damage", zap.String("func", name))
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// ProjectileDamage calls the Lua calc_projectile_damage function.
func (e *Engine) ProjectileDamage(hit system.ProjectileHit) float64 {
	t := e.vm.NewTable()
	t.RawSetString("projectile", lua.LString(hit.Projectile))
	t.RawSetString("enemy", lua.LString(hit.Enemy))
	t.RawSetString("damage", lua.LNumber(hit.Damage))
	t.RawSetString("distance", lua.LNumber(hit.Distance))
	t.RawSetString("enemy_health", lua.LNumber(hit.EnemyHealth))
	t.RawSetString("element", lua.LString(hit.Element))
	t.RawSetString("split_child", lua.LBool(hit.SplitChild))
	return e.callDamage(fnProjectileDamage, hit.Damage, t)
}

// ExplosionDamage calls the Lua calc_explosion_damage function.
func (e *Engine) ExplosionDamage(hit system.ExplosionHit) float64 {
	t := e.vm.NewTable()
	t.RawSetString("source", lua.LString(hit.Source))
	t.RawSetString("enemy", lua.LString(hit.Enemy))
	t.RawSetString("damage", lua.LNumber(hit.Damage))
	t.RawSetString("distance", lua.LNumber(hit.Distance))
	t.RawSetString("radius", lua.LNumber(hit.Radius))
	t.RawSetString("enemy_health", lua.LNumber(hit.EnemyHealth))
	return e.callDamage(fnExplosionDamage, hit.Damage, t)
}

// callDamage calls a damage hook with a context table. A missing hook, a Lua
// error or a non-number result yields base.
func (e *Engine) callDamage(name string, base float64, ctx *lua.LTable) float64 {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return base
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, ctx); err != nil {
		e.hookFailed(name, "lua call error", zap.Error(err))
		return base
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok {
		e.hookFailed(name, "lua damage hook returned non-number",
			zap.String("type", result.Type().String()),
		)
		return base
	}
	return float64(n)
}

// hookFailed warns on a hook's first failure and logs the rest at debug, so a
// broken hook does not flood the log once per hit.
func (e *Engine) hookFailed(name, msg string, fields ...zap.Field) {
	fields = append(fields, zap.String("func", name))
	if e.warned[name] {
		e.log.Debug(msg, fields...)
		return
	}
	e.warned[name] = true
	e.log.Warn(msg+", falling back to base damage", fields...)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
