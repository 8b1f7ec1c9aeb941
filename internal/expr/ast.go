package expr

import (
	"math/big"
	"sort"
	"strings"
)

// Node is a syntax tree node.
type Node interface {
	String() string
	node()
}

// Num is an exact numeric literal.
type Num struct {
	Value *big.Rat
}

// Var is a variable or a named constant (pi, e).
type Var struct {
	Name string
}

// Neg is unary minus.
type Neg struct {
	X Node
}

// Binary is an infix operation: one of + - * / ^.
type Binary struct {
	Op   byte
	L, R Node
}

// Call applies a function from the function table.
type Call struct {
	Fn  string
	Arg Node
}

func (*Num) node()    {}
func (*Var) node()    {}
func (*Neg) node()    {}
func (*Binary) node() {}
func (*Call) node()   {}

func (n *Num) String() string {
	if n.Value.IsInt() {
		return n.Value.Num().String()
	}
	return n.Value.RatString()
}

func (v *Var) String() string { return v.Name }

func (n *Neg) String() string { return "-" + wrap(n.X) }

func (b *Binary) String() string {
	return wrap(b.L) + " " + string(b.Op) + " " + wrap(b.R)
}

func (c *Call) String() string { return c.Fn + "(" + c.Arg.String() + ")" }

func wrap(n Node) string {
	switch n.(type) {
	case *Binary, *Neg:
		return "(" + n.String() + ")"
	default:
		return n.String()
	}
}

// Variables returns the sorted distinct variable names in n, including
// named constants.
func Variables(n Node) []string {
	seen := map[string]bool{}
	Walk(n, func(m Node) {
		if v, ok := m.(*Var); ok {
			seen[v.Name] = true
		}
	})
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// FreeVariables is Variables without the named constants.
func FreeVariables(n Node) []string {
	var out []string
	for _, v := range Variables(n) {
		if _, ok := Constants[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

// UsesFunc reports whether n calls any of the named functions.
func UsesFunc(n Node, fns ...string) bool {
	found := false
	Walk(n, func(m Node) {
		if c, ok := m.(*Call); ok {
			for _, f := range fns {
				if strings.EqualFold(c.Fn, f) {
					found = true
				}
			}
		}
	})
	return found
}

// Walk calls fn for n and every descendant, parents first.
func Walk(n Node, fn func(Node)) {
	fn(n)
	switch t := n.(type) {
	case *Neg:
		Walk(t.X, fn)
	case *Binary:
		Walk(t.L, fn)
		Walk(t.R, fn)
	case *Call:
		Walk(t.Arg, fn)
	}
}
