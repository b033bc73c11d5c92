package outline

import (
	"fmt"
	"strings"
)

// Node is an outline entry with the entries nested beneath it.
type Node struct {
	Entry
	Children []*Node `json:"nodes,omitempty"`
}

// Nest arranges a flat outline into a tree. Each entry becomes a child of
// the closest preceding entry with a smaller depth; entries with no such
// predecessor are roots. The input order is preserved.
func Nest(entries []Entry) []*Node {
	if len(entries) == 0 {
		return nil
	}

	type stackEntry struct {
		node  *Node
		depth int
	}

	var stack []stackEntry
	var roots []*Node

	for _, e := range entries {
		depth := e.Level.Depth()
		if depth == 0 {
			depth = 1
		}
		node := &Node{Entry: e}

		// Pop until the top of the stack is shallower than this entry
		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, node)
		}

		stack = append(stack, stackEntry{node: node, depth: depth})
	}

	return roots
}

// Walk traverses the tree in depth-first order, calling fn with each node
// and its nesting depth starting at 0.
func (n *Node) Walk(fn func(node *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int), depth int) {
	if n == nil {
		return
	}
	fn(n, depth)
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

// Markdown renders the result as a Markdown table of contents. Page numbers
// are shown 1-based.
func (r Result) Markdown() string {
	var sb strings.Builder

	title := r.Title
	if title == "" {
		title = "Untitled"
	}
	fmt.Fprintf(&sb, "# %s\n", title)

	roots := Nest(r.Outline)
	if len(roots) == 0 {
		return sb.String()
	}

	sb.WriteString("\n")
	for _, root := range roots {
		root.Walk(func(n *Node, depth int) {
			fmt.Fprintf(&sb, "%s- %s (p. %d)\n", strings.Repeat("  ", depth), n.Text, n.Page+1)
		})
	}
	return sb.String()
}
