package reader

import (
	"strings"

	"github.com/google/cel-go/cel"
	"google.golang.org/protobuf/types/known/structpb"
)

// celFilter wraps a compiled CEL program used to skip records during
// display. When disabled, Eval always returns true.
type celFilter struct {
	prog    cel.Program
	enabled bool
}

func newCELFilter(expr string) (celFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return celFilter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("ts_us", cel.IntType),
		cel.Variable("size", cel.IntType),
		cel.Variable("keys", cel.ListType(cel.StringType)),
		// the record's key/value state as plain maps and lists
		cel.Variable("state", cel.DynType),
	)
	if err != nil {
		return celFilter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return celFilter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return celFilter{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return celFilter{}, err
	}
	return celFilter{prog: prog, enabled: true}, nil
}

// Eval evaluates the compiled expression against one record. When
// disabled, returns true; evaluation errors drop the record.
func (f celFilter) Eval(tsMicros uint64, fields map[string]*structpb.Value) bool {
	if !f.enabled {
		return true
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	out, _, err := f.prog.Eval(map[string]any{
		"ts_us": int64(tsMicros),
		"size":  int64(len(fields)),
		"keys":  keys,
		"state": (&structpb.Struct{Fields: fields}).AsMap(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
