package state

import (
	"github.com/temirov/claudius/internal/model"
	"github.com/temirov/claudius/internal/projection"
)

// Reduce applies action to current and returns the resulting snapshot.
// Invalid actions (empty path, unknown path, non-folder expansion) and
// unrecognized actions return current unchanged.
func Reduce(current AppState, action Action) AppState {
	switch typedAction := action.(type) {
	case ToggleInclude:
		return reduceToggleInclude(current, typedAction.Path)
	case MoveSelection:
		return reduceMoveSelection(current, typedAction.Direction)
	case ToggleExpand:
		return reduceToggleExpand(current, typedAction.Path)
	case ExpandAll:
		next := current
		next.Expanded = current.Folders.Clone()
		return next
	case CollapseAll:
		next := current
		next.Expanded = model.NewPathSet()
		return next
	case SetNotification:
		next := current
		next.Notification = typedAction.Message
		return next
	case ClearNotification:
		next := current
		next.Notification = ""
		return next
	case Select:
		if typedAction.Path != model.RootPath && !current.Edges.Contains(typedAction.Path) {
			return current
		}
		next := current
		next.Selected = typedAction.Path
		next.HasSelection = true
		return next
	case LoadData:
		next := current
		next.Edges = typedAction.Edges
		next.Folders = typedAction.Folders
		next.Included = typedAction.Included
		next.Selected = typedAction.Selected
		next.HasSelection = typedAction.HasSelection
		next.Expanded = typedAction.Expanded
		return next
	default:
		return current
	}
}

func reduceToggleInclude(current AppState, pathValue string) AppState {
	if pathValue == model.RootPath || !current.Edges.Contains(pathValue) {
		return current
	}
	affected := model.NewPathSet(pathValue)
	if current.Folders.Has(pathValue) {
		affected = affected.Union(projection.Descendants(current.Edges, pathValue))
	}
	next := current
	if current.Included.Has(pathValue) {
		next.Included = current.Included.Difference(affected)
	} else {
		next.Included = current.Included.Union(affected)
	}
	return next
}

func reduceMoveSelection(current AppState, direction Direction) AppState {
	visibleItems := current.VisibleItems()
	if len(visibleItems) == 0 {
		return current
	}
	currentIndex := -1
	if current.HasSelection {
		for itemIndex, visiblePath := range visibleItems {
			if visiblePath == current.Selected {
				currentIndex = itemIndex
				break
			}
		}
	}
	next := current
	next.HasSelection = true
	if currentIndex < 0 {
		next.Selected = visibleItems[0]
		return next
	}
	itemCount := len(visibleItems)
	step := 1
	if direction == DirectionUp {
		step = -1
	}
	next.Selected = visibleItems[(currentIndex+step+itemCount)%itemCount]
	return next
}

func reduceToggleExpand(current AppState, pathValue string) AppState {
	if pathValue == model.RootPath || !current.Folders.Has(pathValue) {
		return current
	}
	next := current
	if current.Expanded.Has(pathValue) {
		next.Expanded = current.Expanded.Without(pathValue)
	} else {
		next.Expanded = current.Expanded.With(pathValue)
	}
	return next
}
