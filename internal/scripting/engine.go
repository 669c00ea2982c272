package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Formulas are the tunable numeric rules the tick systems consult.
type Formulas interface {
	MoveSpeed(ctx MoveContext) float64
	DropPieces(ctx DropContext) int
}

// Engine wraps a single gopher-lua VM for tunable game formulas.
// Single-goroutine access only (game loop).
// Every call falls back to the Go formula when the Lua global is missing or errors.
type Engine struct {
	vm       *lua.LState
	log      *zap.Logger
	fallback Defaults
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Load core scripts first, then optional tuning overrides
	for _, sub := range []string{"core", "tuning"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
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

// MoveContext holds everything the speed formula may use.
type MoveContext struct {
	Mass       float64
	BaseSpeed  float64
	Decay      float64
	Multiplier float64 // speed effect and boost combined
}

// DropContext describes a player that was shot down.
type DropContext struct {
	Radius    float64
	Divisor   float64
	MinPieces int
	MaxPieces int
}

// MoveSpeed calls the Lua calc_move_speed function.
func (e *Engine) MoveSpeed(ctx MoveContext) float64 {
	fn := e.vm.GetGlobal("calc_move_speed")
	if fn == lua.LNil {
		return e.fallback.MoveSpeed(ctx)
	}

	t := e.vm.NewTable()
	t.RawSetString("mass", lua.LNumber(ctx.Mass))
	t.RawSetString("base_speed", lua.LNumber(ctx.BaseSpeed))
	t.RawSetString("decay", lua.LNumber(ctx.Decay))
	t.RawSetString("multiplier", lua.LNumber(ctx.Multiplier))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_move_speed error", zap.Error(err))
		return e.fallback.MoveSpeed(ctx)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok || float64(n) < 0 {
		e.log.Error("lua calc_move_speed returned bad value", zap.String("value", result.String()))
		return e.fallback.MoveSpeed(ctx)
	}
	return float64(n)
}

// DropPieces calls the Lua calc_drop_pieces function. The result is always
// clamped to [MinPieces, MaxPieces].
func (e *Engine) DropPieces(ctx DropContext) int {
	fn := e.vm.GetGlobal("calc_drop_pieces")
	if fn == lua.LNil {
		return e.fallback.DropPieces(ctx)
	}

	t := e.vm.NewTable()
	t.RawSetString("radius", lua.LNumber(ctx.Radius))
	t.RawSetString("divisor", lua.LNumber(ctx.Divisor))
	t.RawSetString("min_pieces", lua.LNumber(ctx.MinPieces))
	t.RawSetString("max_pieces", lua.LNumber(ctx.MaxPieces))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_drop_pieces error", zap.Error(err))
		return e.fallback.DropPieces(ctx)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return clampInt(int(lua.LVAsNumber(result)), ctx.MinPieces, ctx.MaxPieces)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
