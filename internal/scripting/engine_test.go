package scripting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cesgo/ces/internal/component"
	"github.com/cesgo/ces/internal/core/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const driftScript = `
system {
  name = "drift",
  on_update = { names = {"Position", "Velocity"}, fn = function(dt, entities)
    for _, e in ipairs(entities) do
      local p = e:get("Position")
      local v = e:get("Velocity")
      e:set("Position", "x", p.x + v.dx * dt)
    end
  end },
  on_added = { names = "Position", fn = function(e)
    e:tag("Seen")
  end },
  on_removed = { names = {"Position"}, fn = function(e)
    e:add("Ghost", { reason = "left", at = e:id() })
  end },
}
`

func writeScript(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
}

func TestScriptSystemHooks(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "drift.lua", driftScript)
	writeScript(t, dir, "notes.txt", "not lua")

	eng, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer eng.Close()

	systems := eng.Systems()
	require.Len(t, systems, 1)
	assert.Equal(t, "drift", systems[0].Name())

	w := ecs.NewWorld()
	w.AddSystem(systems[0])

	e := w.NewEntity()
	pos := &component.Position{X: 1}
	e.AddComponent(pos)
	e.AddComponent(&component.Velocity{DX: 4})
	require.NoError(t, w.AddEntity(e))
	assert.True(t, e.HasComponent("Seen"), "joining a watched family announces the entity")

	w.Update(250 * time.Millisecond)
	assert.InDelta(t, 2.0, pos.X, 1e-9)

	late := w.NewEntity()
	require.NoError(t, w.AddEntity(late))
	late.AddComponent(&component.Position{})
	assert.True(t, late.HasComponent("Seen"))

	late.RemoveComponent(component.NamePosition)
	c, ok := late.GetComponent("Ghost")
	require.True(t, ok)
	ghost := c.(*ecs.Record)
	assert.Equal(t, "left", ghost.Fields["reason"])
	assert.Equal(t, float64(late.ID()), ghost.Fields["at"])
}

func TestScriptEntityAccessors(t *testing.T) {
	eng, err := NewEngine(t.TempDir(), nil)
	require.NoError(t, err)
	defer eng.Close()

	require.NoError(t, eng.DoString(`
results = {}
system {
  name = "probe",
  on_update = { names = {"Health"}, fn = function(dt, es)
    local e = es[1]
    results.has_health = e:has("Health")
    results.has_mana = e:has("Mana")
    results.hp = e:get("Health").hp
    results.missing = e:get("Mana") == nil
    results.tag = e:get("Boss")
    results.bad_field = e:set("Health", "armor", 1)
    results.set_missing = e:set("Mana", "mp", 1)
    results.removed = e:removed()
    e:set("Health", "hp", 42)
    e:add("Velocity", { dx = 2 })
    e:remove("Boss")
  end },
}
`))
	sys := eng.Systems()[0]

	w := ecs.NewWorld()
	w.AddSystem(sys)
	e := w.NewEntity()
	hp := &component.Health{HP: 7, Max: 50}
	e.AddComponent(hp)
	e.AddComponent(ecs.Tag("Boss"))
	require.NoError(t, w.AddEntity(e))

	w.Update(time.Second)

	res := eng.vm.GetGlobal("results")
	get := func(k string) string { return eng.vm.GetField(res, k).String() }
	assert.Equal(t, "true", get("has_health"))
	assert.Equal(t, "false", get("has_mana"))
	assert.Equal(t, "7", get("hp"))
	assert.Equal(t, "true", get("missing"))
	assert.Equal(t, "true", get("tag"))
	assert.Equal(t, "false", get("bad_field"))
	assert.Equal(t, "false", get("set_missing"))
	assert.Equal(t, "false", get("removed"))

	assert.Equal(t, 42.0, hp.HP)
	assert.False(t, e.HasComponent("Boss"))
	vc, ok := e.GetComponent(component.NameVelocity)
	require.True(t, ok)
	assert.Equal(t, &component.Velocity{DX: 2}, vc)
}

func TestScriptErrorsAreLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	eng, err := NewEngine(t.TempDir(), zap.New(core))
	require.NoError(t, err)
	defer eng.Close()

	require.NoError(t, eng.DoString(`
system { name = "boom", on_update = { fn = function() error("kaboom") end } }
`))
	w := ecs.NewWorld()
	w.AddSystem(eng.Systems()[0])
	w.Update(time.Millisecond)
	w.Update(time.Millisecond)

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "lua hook error", entry.Message)
	assert.Equal(t, "boom", entry.ContextMap()["system"])
}

func TestBadDeclarations(t *testing.T) {
	for name, src := range map[string]string{
		"no name":   `system { on_update = { fn = function() end } }`,
		"no hooks":  `system { name = "idle" }`,
		"bad hook":  `system { name = "x", on_update = 5 }`,
		"bad fn":    `system { name = "x", on_added = { names = {"A"} } }`,
		"bad names": `system { name = "x", on_added = { names = {1}, fn = function() end } }`,
	} {
		eng, err := NewEngine(t.TempDir(), nil)
		require.NoError(t, err)
		assert.Error(t, eng.DoString(src), name)
		assert.Empty(t, eng.Systems(), name)
		eng.Close()
	}

	dir := t.TempDir()
	writeScript(t, dir, "broken.lua", `system {`)
	_, err := NewEngine(dir, nil)
	assert.ErrorContains(t, err, "load scripts")
}

func TestMissingScriptDir(t *testing.T) {
	eng, err := NewEngine(filepath.Join(t.TempDir(), "nope"), nil)
	require.NoError(t, err)
	defer eng.Close()
	assert.Empty(t, eng.Systems())
}
