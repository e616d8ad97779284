package expr

import (
	"github.com/san-kum/physical/internal/units"
)

// Node is a parsed expression.
type Node interface {
	// Pos is the byte offset of the node in the source.
	Pos() int
	eval(env Env) (units.Quantity, error)
}

type numberNode struct {
	pos int
	val float64
}

type nameNode struct {
	pos  int
	name string
}

type unaryNode struct {
	pos int
	op  tokenKind
	x   Node
}

type binaryNode struct {
	pos  int
	op   tokenKind
	l, r Node
}

type callNode struct {
	pos  int
	name string
	args []Node
}

type componentNode struct {
	pos  int
	x    Node
	axis string
}

func (n *numberNode) Pos() int    { return n.pos }
func (n *nameNode) Pos() int      { return n.pos }
func (n *unaryNode) Pos() int     { return n.pos }
func (n *binaryNode) Pos() int    { return n.pos }
func (n *callNode) Pos() int      { return n.pos }
func (n *componentNode) Pos() int { return n.pos }
