package gate

import (
	"fmt"
	"sort"
	"strings"
)

// Expr is a symbolic linear combination of named parameters plus a
// constant offset: value = offset + sum(Coeffs[name] * binding[name]).
// This is deliberately restricted to the linear case: every gradient this
// engine computes is w.r.t. a single scalar parameter, and the chain rule
// for a linear combination is just the coefficient itself, which lets
// the gradient walks skip a general symbolic-differentiation pass entirely.
type Expr struct {
	Offset float64
	Coeffs map[string]float64
}

// Combination collapses e against a binding into a single concrete linear
// form; for this package's purposes (no nested expressions) it is the
// identity, kept as a named step so the dispatcher's resolution pipeline
// reads the same whether the angle is a bare Expr or, in a richer future
// resolver, a tree of them.
func (e Expr) Combination(b Binding) Expr {
	return e
}

// Eval evaluates e against a binding, substituting zero for any named
// coefficient missing from the binding.
func (e Expr) Eval(b Binding) float64 {
	v := e.Offset
	for name, coeff := range e.Coeffs {
		v += coeff * b.Value(name)
	}
	return v
}

// Negate returns -e.
func (e Expr) Negate() Expr {
	out := Expr{Offset: -e.Offset, Coeffs: make(map[string]float64, len(e.Coeffs))}
	for name, coeff := range e.Coeffs {
		out.Coeffs[name] = -coeff
	}
	return out
}

// DiffCoeff returns the partial derivative of e with respect to name:
// since e is linear, this is just the stored coefficient (0 if name does
// not appear).
func (e Expr) DiffCoeff(name string) float64 {
	return e.Coeffs[name]
}

// Const returns an Expr with no parameter dependence.
func Const(v float64) Expr {
	return Expr{Offset: v}
}

// Param returns an Expr equal to a single named parameter.
func Param(name string) Expr {
	return Expr{Coeffs: map[string]float64{name: 1}}
}

// Binding is an immutable name -> value map together with a side-table of
// which names are gradient targets. Binding values are read-only after
// construction: WithGrad and WithValue return fresh copies rather than
// mutating in place, so concurrent batch workers never share mutable
// state.
type Binding struct {
	values      map[string]float64
	requiresGrad map[string]bool
}

// NewBinding builds a Binding from a plain name->value map. None of the
// names require gradients unless marked via WithGrad.
func NewBinding(values map[string]float64) Binding {
	cp := make(map[string]float64, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return Binding{values: cp}
}

// WithGrad returns a copy of b with the given names marked as gradient
// targets.
func (b Binding) WithGrad(names ...string) Binding {
	out := Binding{
		values:       b.values,
		requiresGrad: make(map[string]bool, len(b.requiresGrad)+len(names)),
	}
	for k, v := range b.requiresGrad {
		out.requiresGrad[k] = v
	}
	for _, n := range names {
		out.requiresGrad[n] = true
	}
	return out
}

// Value returns the bound value for name, or 0 if unbound.
func (b Binding) Value(name string) float64 {
	return b.values[name]
}

// RequiresGrad reports whether name is marked as a gradient target.
func (b Binding) RequiresGrad(name string) bool {
	return b.requiresGrad[name]
}

// GradNames returns the sorted set of names requiring gradients.
func (b Binding) GradNames() []string {
	names := make([]string, 0, len(b.requiresGrad))
	for n, req := range b.requiresGrad {
		if req {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// WithValue returns a copy of b with name set to v, leaving grad markers
// untouched. Used by callers constructing a family of nearby bindings
// (e.g. parameter-shift evaluation points) from a base binding.
func (b Binding) WithValue(name string, v float64) Binding {
	cp := make(map[string]float64, len(b.values)+1)
	for k, vv := range b.values {
		cp[k] = vv
	}
	cp[name] = v
	return Binding{values: cp, requiresGrad: b.requiresGrad}
}

func (b Binding) String() string {
	names := make([]string, 0, len(b.values))
	for n := range b.values {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, n := range names {
		entry := fmt.Sprintf("%s=%s", n, FormatAngle(b.values[n]))
		if b.requiresGrad[n] {
			entry += "*"
		}
		parts = append(parts, entry)
	}
	return fmt.Sprintf("Binding(%s)", strings.Join(parts, ", "))
}
