package calc

import (
	"strconv"
	"strings"
)

// node is a node in the expression tree. Every node exclusively owns its
// children, and nodes are never modified after Build creates them.
type node struct {
	kind nodeKind

	// num is the value of a nodeNum or nodeConst.
	num float64
	// name is the symbol, constant, or function name.
	name string

	// left is the only child of unary nodes and the left child of binary
	// nodes. right is the right child of binary nodes.
	left  *node
	right *node
	// args are the children of a nodeCall.
	args []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum   // num
	nodeName  // lookup(name)
	nodeConst // num, named by name

	nodePos  // left
	nodeNeg  // -left
	nodeFact // left!
	nodeSqrt // sqrt(left)
	nodeFunc // name(left)

	nodeAdd // left + right
	nodeSub // left - right
	nodeMul // left * right
	nodeDiv // left / right, right != 0
	nodeMod // left % right, right != 0
	nodePow // left ^ right

	nodeCall // name(args...)
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeName:
		return "Name"
	case nodeConst:
		return "Const"
	case nodePos:
		return "Pos"
	case nodeNeg:
		return "Neg"
	case nodeFact:
		return "Fact"
	case nodeSqrt:
		return "Sqrt"
	case nodeFunc:
		return "Func"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	case nodeMod:
		return "Mod"
	case nodePow:
		return "Pow"
	case nodeCall:
		return "Call"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

// fmt writes the node fully bracketed, alternating between round and square
// brackets at each level.
func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNum:
		b.WriteString(strconv.FormatFloat(n.num, 'g', -1, 64))
	case nodeName, nodeConst:
		b.WriteString(n.name)
	case nodePos:
		b.WriteByte('+')
		n.left.fmt(b, !square)
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, !square)
	case nodeFact:
		n.left.fmt(b, !square)
		b.WriteByte('!')
	case nodeSqrt:
		b.WriteString("sqrt")
		n.left.fmt(b, !square)
	case nodeFunc:
		b.WriteString(n.name)
		n.left.fmt(b, !square)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		n.left.fmt(b, !square)
		b.WriteString(binaryOps[n.kind])
		n.right.fmt(b, !square)
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte(l)
		for i, arg := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			arg.fmt(b, !square)
		}
		b.WriteByte(r)
	default:
		panic("calc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

var binaryOps = [...]string{
	nodeAdd: " + ",
	nodeSub: " - ",
	nodeMul: " * ",
	nodeDiv: " / ",
	nodeMod: " % ",
	nodePow: " ^ ",
}
