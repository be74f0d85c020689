package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cesgo/ces/internal/core/ecs"
	coresys "github.com/cesgo/ces/internal/core/system"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM whose scripts declare systems.
// Single-goroutine access only (game loop).
type Engine struct {
	vm      *lua.LState
	log     *zap.Logger
	systems []*ScriptSystem
}

// ScriptSystem is a system whose hooks are Lua functions.
type ScriptSystem struct {
	*coresys.Base
	name string
}

func (s *ScriptSystem) Name() string { return s.name }

// NewEngine creates a Lua engine and loads every .lua file in scriptsDir in
// name order. A missing directory loads nothing.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	registerEntityType(vm)
	vm.SetGlobal("system", vm.NewFunction(e.luaSystem))
	vm.SetGlobal("log", vm.NewFunction(e.luaLog))

	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
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

// DoString runs a chunk of Lua source, e.g. an inline system declaration.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// Systems returns the systems declared so far, in declaration order.
func (e *Engine) Systems() []*ScriptSystem {
	out := make([]*ScriptSystem, len(e.systems))
	copy(out, e.systems)
	return out
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// luaSystem implements system{ name=..., on_update=..., on_added=..., on_removed=... }.
// Each hook is a table { names = {...}, fn = function }.
func (e *Engine) luaSystem(L *lua.LState) int {
	decl := L.CheckTable(1)
	name := lua.LVAsString(decl.RawGetString("name"))
	if name == "" {
		L.ArgError(1, "system needs a name")
		return 0
	}

	s := &ScriptSystem{Base: coresys.NewBase(), name: name}
	declared := 0

	if names, fn, ok := e.hook(L, name, decl, "on_update"); ok {
		s.OnUpdate(names, func(dt time.Duration, es []*ecs.Entity) {
			list := e.vm.NewTable()
			for _, ent := range es {
				list.Append(pushEntity(e.vm, ent))
			}
			e.call(name, "on_update", fn, lua.LNumber(dt.Seconds()), list)
		})
		declared++
	}
	if names, fn, ok := e.hook(L, name, decl, "on_added"); ok {
		s.On(names, func(ent *ecs.Entity) {
			e.call(name, "on_added", fn, pushEntity(e.vm, ent))
		})
		declared++
	}
	if names, fn, ok := e.hook(L, name, decl, "on_removed"); ok {
		s.OnRemove(names, func(ent *ecs.Entity) {
			e.call(name, "on_removed", fn, pushEntity(e.vm, ent))
		})
		declared++
	}
	if declared == 0 {
		L.ArgError(1, fmt.Sprintf("system %s declares no hooks", name))
		return 0
	}

	e.systems = append(e.systems, s)
	e.log.Debug("lua system declared", zap.String("system", name), zap.Int("hooks", declared))
	return 0
}

func (e *Engine) hook(L *lua.LState, system string, decl *lua.LTable, key string) ([]string, *lua.LFunction, bool) {
	v := decl.RawGetString(key)
	if v == lua.LNil {
		return nil, nil, false
	}
	ht, ok := v.(*lua.LTable)
	if !ok {
		L.RaiseError("system %s: %s must be a table", system, key)
		return nil, nil, false
	}
	fn, ok := ht.RawGetString("fn").(*lua.LFunction)
	if !ok {
		L.RaiseError("system %s: %s.fn must be a function", system, key)
		return nil, nil, false
	}
	var names []string
	switch nv := ht.RawGetString("names").(type) {
	case *lua.LNilType:
	case lua.LString:
		names = []string{string(nv)}
	case *lua.LTable:
		for i := 1; i <= nv.Len(); i++ {
			s, ok := nv.RawGetInt(i).(lua.LString)
			if !ok {
				L.RaiseError("system %s: %s.names[%d] must be a string", system, key, i)
				return nil, nil, false
			}
			names = append(names, string(s))
		}
	default:
		L.RaiseError("system %s: %s.names must be a string or list", system, key)
		return nil, nil, false
	}
	return names, fn, true
}

// call invokes a Lua hook. Script errors are logged and never stop the loop.
func (e *Engine) call(system, hook string, fn *lua.LFunction, args ...lua.LValue) {
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua hook error", zap.String("system", system), zap.String("hook", hook), zap.Error(err))
	}
}

func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}
