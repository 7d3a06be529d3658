package fixtures

import (
	"github.com/cwbudde/qjscore/builtins"
	"github.com/cwbudde/qjscore/engine"
	"github.com/cwbudde/qjscore/ir"
)

// Demo names one of spec.md §8.4's end-to-end scenarios: Setup wires
// any builtins/globals the scenario's Entry function depends on before
// cmd/qjsc compiles and runs it.
type Demo struct {
	Name  string
	Setup func(*engine.Engine)
	Entry func() *ir.Function
}

// Demos lists every §8.4 scenario in order, the set cmd/qjsc's `demo`
// subcommand selects from by name.
var Demos = []Demo{
	{Name: "integer-add", Setup: func(*engine.Engine) {}, Entry: IntegerAdd},
	{Name: "enumerate-after-delete-reinsert", Setup: builtins.InstallObjectConstructor, Entry: EnumerateAfterDeleteAndReinsert},
	{Name: "prototype-lookup", Setup: InstallPrototypeConstructor, Entry: PrototypeLookup},
	{Name: "try-catch", Setup: func(*engine.Engine) {}, Entry: TryCatch},
	{Name: "closure-counter", Setup: func(*engine.Engine) {}, Entry: Counter},
	{Name: "arguments-alias", Setup: func(*engine.Engine) {}, Entry: ArgumentsAlias},
}
