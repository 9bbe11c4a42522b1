package solo

import (
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/sandbox"
	"source.quilibrium.com/quilibrium/monorepo/wasmlib/wasmtypes"
)

// InitFunc is the entry point run once when a contract is deployed.
const InitFunc = "init"

type FuncHandler func(ctx sandbox.ScSandboxFunc) error

type ViewHandler func(ctx sandbox.ScSandboxView) error

// Program is contract code that can be deployed under any number of names.
type Program struct {
	Name  string
	Funcs map[string]FuncHandler
	Views map[string]ViewHandler
}

// Hash identifies the program in deploy requests.
func (p *Program) Hash() wasmtypes.ScHash {
	return hashBlake2b([]byte(p.Name))
}

type entryPoint struct {
	name string
	fn   FuncHandler
	view ViewHandler
}

func (p *Program) entryPoints() map[wasmtypes.ScHname]entryPoint {
	eps := make(map[wasmtypes.ScHname]entryPoint, len(p.Funcs)+len(p.Views))
	for name, fn := range p.Funcs {
		eps[HashName(name)] = entryPoint{name: name, fn: fn}
	}
	for name, view := range p.Views {
		eps[HashName(name)] = entryPoint{name: name, view: view}
	}
	return eps
}

type program struct {
	*Program
	eps map[wasmtypes.ScHname]entryPoint
}
