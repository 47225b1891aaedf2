package tree

import "fmt"

// Wire is the serialized shape of a tree shared by the JSON output and
// the msgpack parse cache. Kind is "leaf" or "node".
type Wire struct {
	Kind     string `json:"kind" msgpack:"k"`
	Name     string `json:"name,omitempty" msgpack:"n,omitempty"`
	Children []Wire `json:"children,omitempty" msgpack:"c,omitempty"`
}

const (
	wireLeaf = "leaf"
	wireNode = "node"
)

// ToWire converts t. A nil tree gives the zero Wire.
func ToWire(t Tree) Wire {
	switch v := deref(t).(type) {
	case nil:
		return Wire{}
	case Leaf:
		return Wire{Kind: wireLeaf, Name: v.Name}
	case Node:
		children := make([]Wire, len(v.Children))
		for i, child := range v.Children {
			children[i] = ToWire(child)
		}
		return Wire{Kind: wireNode, Children: children}
	default:
		panic(fmt.Sprintf("tree: unexpected variant %T", t))
	}
}

// FromWire rebuilds a tree. The zero Wire gives nil.
func FromWire(w Wire) (Tree, error) {
	switch w.Kind {
	case "":
		return nil, nil
	case wireLeaf:
		if len(w.Children) != 0 {
			return nil, fmt.Errorf("tree: leaf %q has children", w.Name)
		}
		return Leaf{Name: w.Name}, nil
	case wireNode:
		children := make([]Tree, len(w.Children))
		for i, cw := range w.Children {
			child, err := FromWire(cw)
			if err != nil {
				return nil, err
			}
			if child == nil {
				return nil, fmt.Errorf("tree: empty child at index %d", i)
			}
			children[i] = child
		}
		return Node{Children: children}, nil
	}
	return nil, fmt.Errorf("tree: unknown wire kind %q", w.Kind)
}
