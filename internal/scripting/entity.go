package scripting

import (
	"github.com/cesgo/ces/internal/component"
	"github.com/cesgo/ces/internal/core/ecs"
	lua "github.com/yuin/gopher-lua"
)

const entityTypeName = "ces.entity"

var entityMethods = map[string]lua.LGFunction{
	"id":      entityID,
	"has":     entityHas,
	"get":     entityGet,
	"set":     entitySet,
	"add":     entityAdd,
	"tag":     entityTag,
	"remove":  entityRemove,
	"removed": entityRemoved,
}

func registerEntityType(L *lua.LState) {
	mt := L.NewTypeMetatable(entityTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), entityMethods))
}

func pushEntity(L *lua.LState, e *ecs.Entity) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = e
	L.SetMetatable(ud, L.GetTypeMetatable(entityTypeName))
	return ud
}

func checkEntity(L *lua.LState) *ecs.Entity {
	ud := L.CheckUserData(1)
	if e, ok := ud.Value.(*ecs.Entity); ok {
		return e
	}
	L.ArgError(1, "entity expected")
	return nil
}

func entityID(L *lua.LState) int {
	L.Push(lua.LNumber(checkEntity(L).ID()))
	return 1
}

func entityHas(L *lua.LState) int {
	e := checkEntity(L)
	L.Push(lua.LBool(e.HasComponent(L.CheckString(2))))
	return 1
}

func entityRemoved(L *lua.LState) int {
	L.Push(lua.LBool(checkEntity(L).Removed()))
	return 1
}

// entityGet returns a table of the component's fields, true for a component
// without fields, or nil when the component is not held.
func entityGet(L *lua.LState) int {
	e := checkEntity(L)
	c, ok := e.GetComponent(L.CheckString(2))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	switch v := c.(type) {
	case component.Fielder:
		t := L.NewTable()
		for k, f := range v.Fields() {
			t.RawSetString(k, lua.LNumber(f))
		}
		L.Push(t)
	case *ecs.Record:
		t := L.NewTable()
		for k, f := range v.Fields {
			t.RawSetString(k, toLua(f))
		}
		L.Push(t)
	default:
		L.Push(lua.LTrue)
	}
	return 1
}

// entitySet writes one field of a held component and reports success.
func entitySet(L *lua.LState) int {
	e := checkEntity(L)
	c, ok := e.GetComponent(L.CheckString(2))
	if !ok {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(setField(c, L.CheckString(3), L.CheckAny(4))))
	return 1
}

// entityAdd attaches a new component, optionally initialised from a table
// of fields.
func entityAdd(L *lua.LState) int {
	e := checkEntity(L)
	c := component.New(L.CheckString(2))
	if fields := L.OptTable(3, nil); fields != nil {
		fields.ForEach(func(k, v lua.LValue) {
			if name, ok := k.(lua.LString); ok {
				setField(c, string(name), v)
			}
		})
	}
	e.AddComponent(c)
	return 0
}

func entityTag(L *lua.LState) int {
	e := checkEntity(L)
	e.AddComponent(ecs.Tag(L.CheckString(2)))
	return 0
}

func entityRemove(L *lua.LState) int {
	e := checkEntity(L)
	e.RemoveComponent(L.CheckString(2))
	return 0
}

func setField(c ecs.Component, field string, v lua.LValue) bool {
	switch t := c.(type) {
	case component.Fielder:
		n, ok := v.(lua.LNumber)
		if !ok {
			return false
		}
		return t.SetField(field, float64(n))
	case *ecs.Record:
		t.Fields[field] = fromLua(v)
		return true
	}
	return false
}

func toLua(v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(x)
	case int:
		return lua.LNumber(x)
	case int64:
		return lua.LNumber(x)
	case float64:
		return lua.LNumber(x)
	case string:
		return lua.LString(x)
	}
	return lua.LNil
}

func fromLua(v lua.LValue) any {
	switch x := v.(type) {
	case lua.LBool:
		return bool(x)
	case lua.LNumber:
		return float64(x)
	case lua.LString:
		return string(x)
	}
	return nil
}
