package loader

import (
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"
)

// LuaLoader runs an init script. The script configures the editor through
// a global modal table:
//
//	modal.set("shift_width", 2)
//	modal.map("n", "<Space>w", "edit.deleteChar")
//
// Only the base, table, string and math libraries are opened.
type LuaLoader struct {
	fs   FileSystem
	path string
}

// NewLuaLoader creates a new Lua loader for the given path.
func NewLuaLoader(path string) *LuaLoader {
	return NewLuaLoaderWithFS(DefaultFS(), path)
}

// NewLuaLoaderWithFS creates a Lua loader with a custom file system.
func NewLuaLoaderWithFS(fs FileSystem, path string) *LuaLoader {
	return &LuaLoader{fs: fs, path: path}
}

// Load runs the script and returns the settings it made.
func (l *LuaLoader) Load() (map[string]any, error) {
	data, err := readFile(l.fs, l.path)
	if err != nil || data == nil {
		return nil, err
	}
	return RunLua(l.path, string(data))
}

// RunLua runs script and collects the settings and mappings it made.
func RunLua(source, script string) (map[string]any, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	config := make(map[string]any)
	var mappings []any

	modal := L.NewTable()
	L.SetField(modal, "set", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		config[name] = fromLua(L.CheckAny(2))
		return 0
	}))
	L.SetField(modal, "map", L.NewFunction(func(L *lua.LState) int {
		mappings = append(mappings, map[string]any{
			"mode":    L.CheckString(1),
			"keys":    L.CheckString(2),
			"command": L.CheckString(3),
		})
		return 0
	}))
	L.SetGlobal("modal", modal)

	if err := L.DoString(script); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		if ae, ok := err.(*lua.ApiError); ok && ae.Object != nil {
			pe.Message = ae.Object.String()
		}
		return nil, pe
	}
	if len(mappings) > 0 {
		config["mappings"] = mappings
	}
	return config, nil
}

// fromLua converts a Lua value to the types the other loaders produce.
func fromLua(lv lua.LValue) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LString:
		return string(v)
	case lua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
			return int64(f)
		}
		return f
	case *lua.LTable:
		if v.MaxN() > 0 {
			out := make([]any, 0, v.MaxN())
			for i := 1; i <= v.MaxN(); i++ {
				out = append(out, fromLua(v.RawGetInt(i)))
			}
			return out
		}
		out := make(map[string]any)
		v.ForEach(func(k, val lua.LValue) {
			out[k.String()] = fromLua(val)
		})
		return out
	case *lua.LNilType:
		return nil
	}
	return fmt.Sprint(lv)
}
