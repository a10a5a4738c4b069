package checker

import (
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/types"
)

// builtinSig describes a built-in function the checker validates
// positionally. print and emit_signal have irregular signatures and are
// special-cased in checkCall.
type builtinSig struct {
	Params []types.Type
	Return types.Type
}

var builtins = map[string]builtinSig{
	"abs":   {[]types.Type{types.F32}, types.F32},
	"sqrt":  {[]types.Type{types.F32}, types.F32},
	"floor": {[]types.Type{types.F32}, types.F32},
	"min":   {[]types.Type{types.F32, types.F32}, types.F32},
	"max":   {[]types.Type{types.F32, types.F32}, types.F32},
	"clamp": {[]types.Type{types.F32, types.F32, types.F32}, types.F32},
	"lerp":  {[]types.Type{types.F32, types.F32, types.F32}, types.F32},
}

// builtinNames lists every callable built-in, for suggestion hints.
func builtinNames() []string {
	names := []string{"print", "emit_signal"}
	for name := range builtins {
		names = append(names, name)
	}
	return names
}
