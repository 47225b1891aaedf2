package tree

// Tree is either a Leaf or a Node.
type Tree interface {
	isTree()
	String() string
}

// Leaf is a terminal node carrying only a name.
type Leaf struct {
	Name string
}

// Node is an internal node. Children order is significant; an empty
// Node renders as "()".
type Node struct {
	Children []Tree
}

func (Leaf) isTree() {}
func (Node) isTree() {}

func (l Leaf) String() string { return Render(l) }
func (n Node) String() string { return Render(n) }

// NewLeaf returns a leaf named name.
func NewLeaf(name string) Leaf { return Leaf{Name: name} }

// NewNode returns a node owning children in the given order.
func NewNode(children ...Tree) Node {
	if children == nil {
		children = []Tree{}
	}
	return Node{Children: children}
}
