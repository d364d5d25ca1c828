// Package output renders the scanned tree for non-interactive commands.
package output

import (
	"github.com/disiqueira/gotree/v3"

	"github.com/temirov/claudius/internal/model"
	"github.com/temirov/claudius/internal/projection"
)

const (
	includedMarker    = "[x] "
	notIncludedMarker = "[ ] "
	folderSuffix      = "/"
	defaultRootLabel  = "."
)

// TreeOptions controls tree rendering.
type TreeOptions struct {
	// RootLabel replaces "." as the first line.
	RootLabel string
	// CollapseIncluded stops descending into folders that are in the manifest.
	CollapseIncluded bool
}

// RenderTree draws the whole tree with an inclusion marker in front of every
// entry. Folders carry a trailing slash.
func RenderTree(edges model.EdgeMap, folders model.PathSet, included model.PathSet, options TreeOptions) string {
	rootLabel := options.RootLabel
	if rootLabel == "" {
		rootLabel = defaultRootLabel
	}
	rootNode := gotree.New(rootLabel)
	addChildren(rootNode, model.RootPath, edges, folders, included, options)
	return rootNode.Print()
}

func addChildren(parentNode gotree.Tree, parentPath string, edges model.EdgeMap, folders model.PathSet, included model.PathSet, options TreeOptions) {
	for _, childPath := range edges.Children(parentPath) {
		childNode := parentNode.Add(entryLabel(childPath, folders.Has(childPath), included.Has(childPath)))
		if !folders.Has(childPath) {
			continue
		}
		if options.CollapseIncluded && included.Has(childPath) {
			continue
		}
		addChildren(childNode, childPath, edges, folders, included, options)
	}
}

func entryLabel(path string, isFolder bool, isIncluded bool) string {
	marker := notIncludedMarker
	if isIncluded {
		marker = includedMarker
	}
	label := marker + projection.DisplayName(path)
	if isFolder {
		label += folderSuffix
	}
	return label
}
