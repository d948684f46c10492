package domain

import (
	"context"
	"fmt"
	"regexp"

	"github.com/geosiss/borehole/geoerr"
	"github.com/google/cel-go/cel"
)

// celIdentPattern matches property names usable as CEL identifiers.
// Properties with other names are not visible to selection expressions.
var celIdentPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// selectBinding ties a CEL variable to the property it reads from.
type selectBinding struct {
	p       *Property
	numeric bool
}

func selectBindings(props []*Property) []selectBinding {
	bindings := make([]selectBinding, 0, len(props))
	for _, p := range props {
		if !celIdentPattern.MatchString(p.Name) {
			continue
		}
		bindings = append(bindings, selectBinding{p: p, numeric: p.IsNumeric()})
	}
	return bindings
}

func (b selectBinding) declare() cel.EnvOption {
	if b.numeric {
		return cel.Variable(b.p.Name, cel.DoubleType)
	}
	return cel.Variable(b.p.Name, cel.StringType)
}

func (b selectBinding) assign(vars map[string]any, i int) {
	if b.numeric {
		vars[b.p.Name] = b.p.Values[i]
	} else {
		vars[b.p.Name] = b.p.Categories[i]
	}
}

// compileSelect builds a CEL program for a boolean selection expression over
// the given variable declarations. Compilation and type errors are reported
// as geoerr.KindQuery errors carrying the expression.
func compileSelect(op, expr string, decls []cel.EnvOption) (cel.Program, error) {
	env, err := cel.NewEnv(decls...)
	if err != nil {
		return nil, geoerr.NewQueryError(op, err)
	}
	ast, iss := env.Compile(expr)
	if iss.Err() != nil {
		return nil, geoerr.NewQueryError(op, iss.Err()).
			WithContext(map[string]any{"expression": expr})
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, geoerr.NewQueryError(op,
			fmt.Errorf("expression must evaluate to a boolean, got %s", ast.OutputType())).
			WithContext(map[string]any{"expression": expr})
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, geoerr.NewQueryError(op, err)
	}
	return prg, nil
}

func evalSelect(ctx context.Context, op string, prg cel.Program, vars map[string]any) (bool, error) {
	out, _, err := prg.ContextEval(ctx, vars)
	if err != nil {
		return false, geoerr.NewQueryError(op, err)
	}
	keep, ok := out.Value().(bool)
	if !ok {
		return false, geoerr.NewQueryError(op,
			fmt.Errorf("expression returned %T, want bool", out.Value()))
	}
	return keep, nil
}

// Select returns the intervals for which the CEL expression evaluates true,
// as a new IntervalDomain with all properties subset by the same mask.
//
// The expression sees each interval's from_depth and to_depth plus every
// attached property whose name is a legal CEL identifier: numeric properties
// as doubles, categorical properties as strings. The expression must
// evaluate to a boolean; compile and evaluation failures are reported as
// geoerr.KindQuery errors.
//
//	sub, err := dom.Select(ctx, `gamma > 80.0 && to_depth <= 150.0`)
func (d *IntervalDomain) Select(ctx context.Context, expr string, opts ...DeriveOption) (*IntervalDomain, error) {
	const op = "IntervalDomain.Select"

	o := applyDeriveOptions(fmt.Sprintf("%s: select %s", d.name, expr), opts)

	bindings := selectBindings(d.props.list())
	decls := make([]cel.EnvOption, 0, len(bindings)+2)
	decls = append(decls,
		cel.Variable("from_depth", cel.DoubleType),
		cel.Variable("to_depth", cel.DoubleType),
	)
	for _, b := range bindings {
		decls = append(decls, b.declare())
	}

	prg, err := compileSelect(op, expr, decls)
	if err != nil {
		return nil, err
	}

	indices := make([]int, 0, d.Size())
	vars := make(map[string]any, len(bindings)+2)
	for i := range d.fromDepths {
		vars["from_depth"] = d.fromDepths[i]
		vars["to_depth"] = d.toDepths[i]
		for _, b := range bindings {
			b.assign(vars, i)
		}
		keep, err := evalSelect(ctx, op, prg, vars)
		if err != nil {
			return nil, err
		}
		if keep {
			indices = append(indices, i)
		}
	}
	return d.subsetByIndices(o.name, indices)
}

// Select returns the samples for which the CEL expression evaluates true,
// as a new SamplingDomain with all properties subset by the same mask.
//
// The expression sees each sample's depth plus every attached property whose
// name is a legal CEL identifier: numeric properties as doubles, categorical
// properties as strings. The expression must evaluate to a boolean; compile
// and evaluation failures are reported as geoerr.KindQuery errors.
func (d *SamplingDomain) Select(ctx context.Context, expr string, opts ...DeriveOption) (*SamplingDomain, error) {
	const op = "SamplingDomain.Select"

	o := applyDeriveOptions(fmt.Sprintf("%s: select %s", d.name, expr), opts)

	bindings := selectBindings(d.props.list())
	decls := make([]cel.EnvOption, 0, len(bindings)+1)
	decls = append(decls, cel.Variable("depth", cel.DoubleType))
	for _, b := range bindings {
		decls = append(decls, b.declare())
	}

	prg, err := compileSelect(op, expr, decls)
	if err != nil {
		return nil, err
	}

	indices := make([]int, 0, d.Size())
	vars := make(map[string]any, len(bindings)+1)
	for i, depth := range d.depths {
		vars["depth"] = depth
		for _, b := range bindings {
			b.assign(vars, i)
		}
		keep, err := evalSelect(ctx, op, prg, vars)
		if err != nil {
			return nil, err
		}
		if keep {
			indices = append(indices, i)
		}
	}
	return d.subsetByIndices(o.name, indices)
}
