// Package state holds the immutable application snapshot and the reducer that
// produces a new snapshot for every action.
package state

import (
	"github.com/temirov/claudius/internal/model"
	"github.com/temirov/claudius/internal/projection"
)

// AppState is a complete snapshot of the editor. Snapshots are replaced, never
// modified: maps reachable from an AppState are shared with earlier snapshots.
type AppState struct {
	Included     model.PathSet
	Edges        model.EdgeMap
	Folders      model.PathSet
	Selected     string
	HasSelection bool
	Expanded     model.PathSet
	Notification string
}

// NewAppState returns the empty snapshot used before any data is loaded.
func NewAppState() AppState {
	return AppState{
		Included: model.NewPathSet(),
		Edges:    model.EdgeMap{},
		Folders:  model.NewPathSet(),
		Expanded: model.NewPathSet(),
	}
}

// VisibleItems returns the visible projection of the snapshot.
func (appState AppState) VisibleItems() []string {
	return projection.VisibleItems(appState.Edges, appState.Folders, appState.Expanded)
}

// SelectedItem returns the selected path and whether a selection exists.
func (appState AppState) SelectedItem() (string, bool) {
	return appState.Selected, appState.HasSelection
}

// IsIncluded reports whether pathValue is listed in the manifest selection.
func (appState AppState) IsIncluded(pathValue string) bool {
	return appState.Included.Has(pathValue)
}

// IsFolder reports whether pathValue denotes a directory.
func (appState AppState) IsFolder(pathValue string) bool {
	return appState.Folders.Has(pathValue)
}

// IsExpanded reports whether pathValue is an expanded folder.
func (appState AppState) IsExpanded(pathValue string) bool {
	return appState.Expanded.Has(pathValue)
}
