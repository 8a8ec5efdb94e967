package analyzer

import (
	"github.com/funvibe/funxy-check/internal/typesystem"
)

// Seed registers the builtin-scope bootstrap into ctx's global scope:
// the handful of always-available names (print, len, range, isinstance,
// str, abs) every checker run starts with. Seeded per run rather than shared
// process-wide, since this checker's Context is rebuilt fresh for
// every file.
func Seed(ctx interface{ Add(typesystem.Symbol) }) {
	add := func(name string, t typesystem.Type) {
		ctx.Add(typesystem.NewSymbol(name, t, typesystem.UnknownValue{}, nil))
	}

	add("print", typesystem.Function{
		Arguments: typesystem.Arguments{VarArgName: "args"},
		ReturnSpec: typesystem.NoneType{},
	})
	add("len", typesystem.Function{
		Arguments:  typesystem.Arguments{Names: []string{"value"}, ExplicitTypes: []typesystem.Type{typesystem.Unknown{}}, DefaultTypes: []typesystem.Type{typesystem.Unknown{}}, MinCount: 1},
		ReturnSpec: typesystem.Num{},
	})
	add("range", typesystem.Function{
		Arguments: typesystem.Arguments{
			Names:         []string{"start", "stop", "step"},
			ExplicitTypes: []typesystem.Type{typesystem.Num{}, typesystem.Num{}, typesystem.Num{}},
			DefaultTypes:  []typesystem.Type{typesystem.Unknown{}, typesystem.Unknown{}, typesystem.Unknown{}},
			MinCount:      1,
		},
		ReturnSpec: typesystem.List{Item: typesystem.Num{}},
	})
	add("isinstance", typesystem.Function{
		Arguments:  typesystem.Arguments{Names: []string{"value", "type"}, ExplicitTypes: []typesystem.Type{typesystem.Unknown{}, typesystem.Unknown{}}, DefaultTypes: []typesystem.Type{typesystem.Unknown{}, typesystem.Unknown{}}, MinCount: 2},
		ReturnSpec: typesystem.Bool{},
	})
	add("str", typesystem.Function{
		Arguments:  typesystem.Arguments{Names: []string{"value"}, ExplicitTypes: []typesystem.Type{typesystem.Unknown{}}, DefaultTypes: []typesystem.Type{typesystem.Unknown{}}, MinCount: 0},
		ReturnSpec: typesystem.Str{},
	})
	add("abs", typesystem.Function{
		Arguments:  typesystem.Arguments{Names: []string{"value"}, ExplicitTypes: []typesystem.Type{typesystem.Num{}}, DefaultTypes: []typesystem.Type{typesystem.Unknown{}}, MinCount: 1},
		ReturnSpec: typesystem.Num{},
	})
}
