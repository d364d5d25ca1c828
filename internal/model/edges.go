package model

// RootPath identifies the scan root inside an EdgeMap.
const RootPath = ""

// PathSeparator joins path segments inside an EdgeMap regardless of platform.
const PathSeparator = "/"

// EdgeMap maps a parent path to its ordered immediate children.
type EdgeMap map[string][]string

// Contains reports whether pathValue is a node of the tree, either as a parent
// key or as a child of some parent.
func (edges EdgeMap) Contains(pathValue string) bool {
	if _, isParent := edges[pathValue]; isParent {
		return true
	}
	for _, children := range edges {
		for _, child := range children {
			if child == pathValue {
				return true
			}
		}
	}
	return false
}

// Children returns the ordered children of parent. The slice is shared and must not be modified.
func (edges EdgeMap) Children(parent string) []string {
	return edges[parent]
}
