package script

import (
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// removedGlobals are base library functions a script must not reach.
var removedGlobals = []string{
	"dofile",     // executes a file
	"loadfile",   // loads a file as a function
	"load",       // loads a chunk from a function
	"loadstring", // loads a chunk from a string
	"module",     // needs the package library
	"getfenv",    // exposes other functions' environments
	"setfenv",
	"_printregs", // writes VM registers to stdout
	"newproxy",
}

// safeModules can be loaded with require. They are opened up front, so
// require just returns the global.
var safeModules = map[string]bool{
	"string": true,
	"table":  true,
	"math":   true,
}

// Sandbox restricts what a Lua state can reach.
type Sandbox struct {
	L      *lua.LState
	output io.Writer
}

// NewSandbox creates a sandbox for L. print writes to output.
func NewSandbox(L *lua.LState, output io.Writer) *Sandbox {
	if output == nil {
		output = io.Discard
	}
	return &Sandbox{L: L, output: output}
}

// Install removes unsafe globals and replaces print and require.
func (s *Sandbox) Install() {
	for _, name := range removedGlobals {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.installPrint()
	s.installRequire()
}

// installPrint replaces print so output goes to the sandbox writer
// instead of the process stdout.
func (s *Sandbox) installPrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		_, _ = io.WriteString(s.output, strings.Join(parts, "\t")+"\n")
		return 0
	}))
}

// installRequire replaces require with one that only resolves the opened
// standard modules.
func (s *Sandbox) installRequire() {
	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !safeModules[name] {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(L.GetGlobal(name))
		return 1
	}))
}
