// Package projection derives views of the path tree: the visible item sequence,
// descendant sets and display helpers. Every function is pure.
package projection

import (
	"iter"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/temirov/claudius/internal/model"
)

// rootDisplayName is shown in place of the empty root path.
const rootDisplayName = "."

// Visible yields the visible paths in depth-first pre-order starting with the
// root. The root is always expanded; any other folder is descended into only
// when it belongs to expanded. The sequence is recomputed on every iteration.
func Visible(edges model.EdgeMap, folders model.PathSet, expanded model.PathSet) iter.Seq[string] {
	return func(yield func(string) bool) {
		var traverse func(node string) bool
		traverse = func(node string) bool {
			if !yield(node) {
				return false
			}
			if node != model.RootPath && !(folders.Has(node) && expanded.Has(node)) {
				return true
			}
			for _, child := range edges[node] {
				if !traverse(child) {
					return false
				}
			}
			return true
		}
		traverse(model.RootPath)
	}
}

// VisibleItems collects Visible into a slice.
func VisibleItems(edges model.EdgeMap, folders model.PathSet, expanded model.PathSet) []string {
	return slices.Collect(Visible(edges, folders, expanded))
}

// Descendants returns every path reachable from node, excluding node itself.
func Descendants(edges model.EdgeMap, node string) model.PathSet {
	result := make(model.PathSet)
	pending := append([]string(nil), edges[node]...)
	for len(pending) > 0 {
		lastIndex := len(pending) - 1
		current := pending[lastIndex]
		pending = pending[:lastIndex]
		if result.Has(current) {
			continue
		}
		result[current] = struct{}{}
		pending = append(pending, edges[current]...)
	}
	return result
}

// RootItems returns the sorted paths that never appear as a child of another path.
func RootItems(edges model.EdgeMap) []string {
	children := make(model.PathSet)
	allItems := make(model.PathSet)
	for parent, childPaths := range edges {
		allItems[parent] = struct{}{}
		for _, child := range childPaths {
			children[child] = struct{}{}
			allItems[child] = struct{}{}
		}
	}
	return allItems.Difference(children).Sorted()
}

// DisplayName returns the last path segment, or "." for the root.
func DisplayName(pathValue string) string {
	if pathValue == model.RootPath {
		return rootDisplayName
	}
	return path.Base(pathValue)
}

// IndentationLevel returns the depth of pathValue below the root.
func IndentationLevel(pathValue string) int {
	if pathValue == model.RootPath {
		return 0
	}
	return len(strings.Split(pathValue, model.PathSeparator))
}

// AbsolutePath converts a root-relative path into an absolute forward-slash
// path under rootDirectory. Absolute inputs are returned normalized.
func AbsolutePath(pathValue string, rootDirectory string) string {
	normalized := strings.ReplaceAll(pathValue, "\\", model.PathSeparator)
	if filepath.IsAbs(normalized) || path.IsAbs(normalized) {
		return normalized
	}
	return filepath.ToSlash(filepath.Join(rootDirectory, filepath.FromSlash(normalized)))
}

// AbsolutePaths converts every included path with AbsolutePath, sorted.
func AbsolutePaths(included model.PathSet, rootDirectory string) []string {
	result := make([]string, 0, len(included))
	for _, pathValue := range included.Sorted() {
		result = append(result, AbsolutePath(pathValue, rootDirectory))
	}
	sort.Strings(result)
	return result
}
