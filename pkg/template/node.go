package template

// Node is one element of a parsed template. The concrete types are TextNode,
// PlaceholderNode, ForNode and IfNode.
type Node interface {
	// StartLine is the 1-based source line the node begins on.
	StartLine() int
	node()
}

// TextNode is literal output, copied verbatim.
type TextNode struct {
	Text string
	Line int
}

// PlaceholderNode substitutes the scalar bound to Name.
type PlaceholderNode struct {
	Name string
	Line int
}

// ForNode repeats Body once per element of the sequence bound to Seq, with
// Var bound to the element.
type ForNode struct {
	Var  string
	Seq  string
	Body []Node
	Line int
}

// IfNode renders Then when the value bound to Cond is truthy and Else
// otherwise.
type IfNode struct {
	Cond string
	Then []Node
	Else []Node
	Line int
}

func (n *TextNode) StartLine() int        { return n.Line }
func (n *PlaceholderNode) StartLine() int { return n.Line }
func (n *ForNode) StartLine() int         { return n.Line }
func (n *IfNode) StartLine() int          { return n.Line }

func (*TextNode) node()        {}
func (*PlaceholderNode) node() {}
func (*ForNode) node()         {}
func (*IfNode) node()          {}
