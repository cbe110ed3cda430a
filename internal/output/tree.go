package output

import (
	"strings"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// descriptionColumn is where node descriptions start.
	descriptionColumn = 32
)

// TreeNode is one node of a rendered tree.
type TreeNode struct {
	// Name is the node label.
	Name string

	// Tag is an optional styled marker printed right after the name, e.g. "[api]".
	Tag string

	// Description is printed dimmed at descriptionColumn.
	Description string

	Children []*TreeNode
}

// RenderTree renders root and its children with box-drawing connectors.
// Children are rendered in the given order.
func RenderTree(root *TreeNode) string {
	if root == nil {
		return ""
	}
	var sb strings.Builder
	renderNode(&sb, root, "", true, true)
	return sb.String()
}

// renderNode recursively renders a tree node with indentation and styling.
func renderNode(sb *strings.Builder, node *TreeNode, prefix string, isRoot, isLast bool) {
	if isRoot {
		sb.WriteString(StyleSummary.Render(node.Name))
		if node.Description != "" {
			sb.WriteString("  ")
			sb.WriteString(StyleDim.Render(node.Description))
		}
		sb.WriteString("\n")
	} else {
		connector := treeEdge
		if isLast {
			connector = treeLast
		}

		line := prefix + connector + node.Name
		width := len([]rune(line))
		if node.Tag != "" {
			line += " " + node.Tag
			width += 1 + len([]rune(node.Tag))
		}

		if node.Description != "" {
			padding := descriptionColumn - width
			if padding < 2 {
				padding = 2
			}
			line += strings.Repeat(" ", padding) + StyleDim.Render(node.Description)
		}

		sb.WriteString(line)
		sb.WriteString("\n")
	}

	for i, child := range node.Children {
		childIsLast := i == len(node.Children)-1

		childPrefix := ""
		if !isRoot {
			if isLast {
				childPrefix = prefix + treeSpace
			} else {
				childPrefix = prefix + treeVert
			}
		}

		renderNode(sb, child, childPrefix, false, childIsLast)
	}
}
