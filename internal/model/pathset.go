// Package model defines the path collections shared by the tree, projection and state packages.
package model

import "sort"

// PathSet is a set of root-relative paths. A PathSet held by a state snapshot is
// shared between snapshots and must not be modified; the helpers below always
// return a fresh set.
type PathSet map[string]struct{}

// NewPathSet builds a set containing the provided paths.
func NewPathSet(paths ...string) PathSet {
	result := make(PathSet, len(paths))
	for _, pathValue := range paths {
		result[pathValue] = struct{}{}
	}
	return result
}

// Has reports whether pathValue is a member of the set.
func (set PathSet) Has(pathValue string) bool {
	_, exists := set[pathValue]
	return exists
}

// Clone returns a copy of the set. Cloning a nil set yields an empty set.
func (set PathSet) Clone() PathSet {
	result := make(PathSet, len(set))
	for pathValue := range set {
		result[pathValue] = struct{}{}
	}
	return result
}

// With returns a copy of the set with pathValue added.
func (set PathSet) With(pathValue string) PathSet {
	result := set.Clone()
	result[pathValue] = struct{}{}
	return result
}

// Without returns a copy of the set with pathValue removed.
func (set PathSet) Without(pathValue string) PathSet {
	result := set.Clone()
	delete(result, pathValue)
	return result
}

// Union returns a new set holding members of both sets.
func (set PathSet) Union(other PathSet) PathSet {
	result := set.Clone()
	for pathValue := range other {
		result[pathValue] = struct{}{}
	}
	return result
}

// Difference returns a new set holding members of set absent from other.
func (set PathSet) Difference(other PathSet) PathSet {
	result := make(PathSet, len(set))
	for pathValue := range set {
		if _, excluded := other[pathValue]; !excluded {
			result[pathValue] = struct{}{}
		}
	}
	return result
}

// Sorted returns the members in lexicographic order.
func (set PathSet) Sorted() []string {
	result := make([]string, 0, len(set))
	for pathValue := range set {
		result = append(result, pathValue)
	}
	sort.Strings(result)
	return result
}
