package state

import "github.com/temirov/claudius/internal/model"

// Merge combines a scanned tree, the manifest selection and persisted UI state
// into the LoadData action applied at startup. Persisted folders that no longer
// exist are dropped and a stale selection falls back to the root.
func Merge(edges model.EdgeMap, folders model.PathSet, included model.PathSet, persistedExpanded []string, persistedSelected *string) LoadData {
	expanded := model.NewPathSet()
	for _, folderPath := range persistedExpanded {
		if folders.Has(folderPath) {
			expanded[folderPath] = struct{}{}
		}
	}
	selected := model.RootPath
	if persistedSelected != nil && edges.Contains(*persistedSelected) {
		selected = *persistedSelected
	}
	if included == nil {
		included = model.NewPathSet()
	}
	return LoadData{
		Edges:        edges,
		Folders:      folders,
		Included:     included,
		Selected:     selected,
		HasSelection: true,
		Expanded:     expanded,
	}
}
