// SPDX-License-Identifier: MIT

package program

import "fmt"

// Kind distinguishes the three shapes a static arity inference can take.
type Kind int

const (
	// Fixed means the program, given at least In items, always leaves
	// exactly Out - In net change on success.
	Fixed Kind = iota
	// Failing means the program always fails after observing In items.
	Failing
	// Dynamic means no static arity could be determined.
	Dynamic
)

// Arity is the statically inferred stack effect of a program.
type Arity struct {
	Kind Kind
	In   int
	Out  int // meaningful only when Kind == Fixed
}

// FixedArity builds an Arity(i,o).
func FixedArity(i, o int) Arity { return Arity{Kind: Fixed, In: i, Out: o} }

// FailArity builds an ArityFail(i).
func FailArity(i int) Arity { return Arity{Kind: Failing, In: i} }

// DynArity is the unique dynamic arity value.
var DynArity = Arity{Kind: Dynamic}

// Net returns Out-In. Only meaningful for Kind == Fixed.
func (a Arity) Net() int { return a.Out - a.In }

// String renders a as the CLI's "--arity" output format.
func (a Arity) String() string {
	switch a.Kind {
	case Fixed:
		return fmt.Sprintf("%d--%d", a.In, a.Out)
	case Failing:
		return fmt.Sprintf("%d--FAIL", a.In)
	default:
		return "dynamic"
	}
}
