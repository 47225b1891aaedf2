package parser

import (
	"slices"

	"newick/internal/source"
	"newick/internal/tree"
)

type itemKind uint8

const (
	itemMarker itemKind = iota + 1 // '(' ещё не закрыта
	itemTree                       // готовое поддерево
)

// stackItem is either a marker for an open '(' or a finished subtree.
type stackItem struct {
	kind itemKind
	span source.Span // '(' for markers, whole subtree for trees
	tree tree.Tree
}

type stack struct {
	items   []stackItem
	markers int // сколько маркеров сейчас в стеке
}

func (s *stack) pushMarker(sp source.Span) {
	s.items = append(s.items, stackItem{kind: itemMarker, span: sp})
	s.markers++
}

func (s *stack) pushTree(t tree.Tree, sp source.Span) {
	s.items = append(s.items, stackItem{kind: itemTree, span: sp, tree: t})
}

// reduce pops trees until the nearest marker, discards the marker and
// returns the trees in source order together with the marker span.
// ok is false when the stack runs out before a marker is found.
func (s *stack) reduce() (children []tree.Tree, open source.Span, ok bool) {
	if s.markers == 0 {
		return nil, source.Span{}, false
	}
	i := len(s.items) - 1
	for s.items[i].kind != itemMarker {
		children = append(children, s.items[i].tree)
		i--
	}
	open = s.items[i].span
	s.items = s.items[:i]
	s.markers--
	slices.Reverse(children)
	if children == nil {
		children = []tree.Tree{}
	}
	return children, open, true
}

// innermostMarker returns the span of the last unclosed '('.
func (s *stack) innermostMarker() source.Span {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].kind == itemMarker {
			return s.items[i].span
		}
	}
	return source.Span{}
}
