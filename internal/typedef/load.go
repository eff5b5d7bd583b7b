package typedef

import (
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

// CompileAll compiles every type under the top-level "type" struct of v, in
// declaration order. Every failing type is reported; the types that did
// compile are returned alongside the joined error.
func CompileAll(v cue.Value) ([]*Definition, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	typesVal := v.LookupPath(cue.ParsePath("type"))
	if !typesVal.Exists() {
		return nil, &CompileError{Field: "type", Message: "no types defined", Pos: v.Pos()}
	}
	iter, err := typesVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var (
		defs []*Definition
		errs []error
	)
	for iter.Next() {
		def, err := Compile(iter.Value())
		if err != nil {
			errs = append(errs, fmt.Errorf("type %s: %w", iter.Selector().Unquoted(), err))
			continue
		}
		defs = append(defs, def)
	}
	return defs, errors.Join(errs...)
}

// LoadDir loads the CUE package in dir and compiles its types.
func LoadDir(dir string) ([]*Definition, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("type directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("type directory: %s is not a directory", dir)
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances in %s", dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, fmt.Errorf("loading CUE files: %w", inst.Err)
	}
	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return CompileAll(value)
}
