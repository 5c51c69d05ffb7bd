package templates

import (
	"fmt"
	"path"
	"strings"
)

// Data is the input of every file template.
type Data struct {
	Kind          string      // Layout kind, e.g. "flutter"
	ProjectName   string      // Display name as typed by the user, trimmed
	SanitizedName string      // Directory name and package identifier
	Description   string      // One-line project description
	Tree          []TreeEntry // Directory listing for the README
}

// TreeEntry is one README line describing a directory.
type TreeEntry struct {
	Path        string // Full project-relative path
	Label       string // Path relative to the nearest listed ancestor
	Description string
	Depth       int
	Indent      string
}

// NewData builds template data for layout.
func NewData(layout *Layout, projectName, sanitizedName string) Data {
	return Data{
		Kind:          layout.Kind,
		ProjectName:   projectName,
		SanitizedName: sanitizedName,
		Description:   fmt.Sprintf("A new %s project.", layout.DisplayName),
		Tree:          BuildTree(layout.Directories),
	}
}

type treeNode struct {
	dir      Directory
	label    string
	children []*treeNode
}

// BuildTree nests directories under their nearest listed ancestor and
// flattens the result depth-first, keeping table order among siblings.
func BuildTree(dirs []Directory) []TreeEntry {
	nodes := make(map[string]*treeNode, len(dirs))
	var roots []*treeNode

	for _, d := range dirs {
		if _, seen := nodes[d.Path]; seen {
			continue
		}
		node := &treeNode{dir: d, label: d.Path}
		nodes[d.Path] = node

		parent := nearestAncestor(d.Path, nodes)
		if parent == nil {
			roots = append(roots, node)
			continue
		}
		node.label = strings.TrimPrefix(d.Path, parent.dir.Path+"/")
		parent.children = append(parent.children, node)
	}

	var entries []TreeEntry
	var visit func(n *treeNode, depth int)
	visit = func(n *treeNode, depth int) {
		entries = append(entries, TreeEntry{
			Path:        n.dir.Path,
			Label:       n.label,
			Description: n.dir.Description,
			Depth:       depth,
			Indent:      strings.Repeat("  ", depth),
		})
		for _, c := range n.children {
			visit(c, depth+1)
		}
	}
	for _, r := range roots {
		visit(r, 0)
	}
	return entries
}

func nearestAncestor(p string, nodes map[string]*treeNode) *treeNode {
	for dir := path.Dir(p); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if n, ok := nodes[dir]; ok {
			return n
		}
	}
	return nil
}
