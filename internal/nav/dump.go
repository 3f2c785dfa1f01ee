package nav

import (
	"fmt"
	"io"
	"strings"

	"github.com/morozRed/cratemap/internal/graph"
	"github.com/morozRed/cratemap/internal/rustdoc"
)

type Marker string

const (
	// MarkerCycle flags a node already on the current path.
	MarkerCycle Marker = "cycle"
	// MarkerSeen flags a node whose subtree was rendered earlier in the dump.
	MarkerSeen Marker = "seen"
	// MarkerTruncated flags a node at the depth limit that has children.
	MarkerTruncated Marker = "truncated"
)

type TreeNode struct {
	ID       rustdoc.Id  `json:"id"`
	Label    string      `json:"label,omitempty"`
	Marker   Marker      `json:"marker,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}

// Namer renders an id in text dumps.
type Namer func(rustdoc.Id) string

type treeWalker struct {
	graph    *graph.Graph
	maxDepth int
	visited  rustdoc.IdSet
	onPath   rustdoc.IdSet
}

// BuildTree walks g depth first from each root in ascending id order. Each
// node's subtree is expanded once across the whole tree; later occurrences
// are marked seen, and occurrences on the active path are marked cycle.
// maxDepth <= 0 means unlimited. Roots absent from g are skipped.
func BuildTree(g *graph.Graph, roots []rustdoc.Id, maxDepth int) []*TreeNode {
	w := &treeWalker{
		graph:    g,
		maxDepth: maxDepth,
		visited:  make(rustdoc.IdSet),
		onPath:   make(rustdoc.IdSet),
	}

	out := make([]*TreeNode, 0, len(roots))
	for _, root := range rustdoc.NewIdSet(roots...).Sorted() {
		if !g.HasNode(root) {
			continue
		}
		out = append(out, w.walk(root, "", 0))
	}
	return out
}

func (w *treeWalker) walk(id rustdoc.Id, label string, depth int) *TreeNode {
	node := &TreeNode{ID: id, Label: label}
	children := w.graph.SortedChildren(id)

	switch {
	case w.onPath.Has(id):
		node.Marker = MarkerCycle
		return node
	case w.visited.Has(id):
		if len(children) > 0 {
			node.Marker = MarkerSeen
		}
		return node
	case w.maxDepth > 0 && depth >= w.maxDepth && len(children) > 0:
		node.Marker = MarkerTruncated
		return node
	}

	w.visited.Add(id)
	w.onPath.Add(id)
	for _, child := range children {
		node.Children = append(node.Children, w.walk(child.ID, child.Label.String(), depth+1))
	}
	delete(w.onPath, id)
	return node
}

// Dump writes the tree for roots to w, one node per line. A nil name prints
// bare ids.
func Dump(w io.Writer, g *graph.Graph, roots []rustdoc.Id, maxDepth int, name Namer) error {
	return WriteTree(w, BuildTree(g, roots, maxDepth), name)
}

func WriteTree(w io.Writer, trees []*TreeNode, name Namer) error {
	for _, tree := range trees {
		if err := writeNode(w, tree, name, 0); err != nil {
			return err
		}
	}
	return nil
}

func writeNode(w io.Writer, node *TreeNode, name Namer, depth int) error {
	var line strings.Builder
	line.WriteString(strings.Repeat("  ", depth))
	if node.Label != "" {
		line.WriteString(node.Label)
		line.WriteString(" -> ")
	}
	if name != nil {
		fmt.Fprintf(&line, "%s (#%d)", name(node.ID), node.ID)
	} else {
		fmt.Fprintf(&line, "#%d", node.ID)
	}
	if node.Marker != "" {
		fmt.Fprintf(&line, " [%s]", node.Marker)
	}
	if _, err := fmt.Fprintln(w, line.String()); err != nil {
		return err
	}
	for _, child := range node.Children {
		if err := writeNode(w, child, name, depth+1); err != nil {
			return err
		}
	}
	return nil
}
