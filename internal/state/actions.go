package state

import "github.com/temirov/claudius/internal/model"

// Direction selects the neighbour used by MoveSelection.
type Direction int

const (
	// DirectionDown moves to the next visible item.
	DirectionDown Direction = iota
	// DirectionUp moves to the previous visible item.
	DirectionUp
)

// String returns the lower-case direction name.
func (direction Direction) String() string {
	if direction == DirectionUp {
		return "up"
	}
	return "down"
}

// Action is a request to transition from one snapshot to the next.
type Action interface {
	actionName() string
}

// ToggleInclude flips manifest inclusion of Path, cascading to descendants of folders.
type ToggleInclude struct {
	Path string
}

// MoveSelection moves the selection through the visible items with wraparound.
type MoveSelection struct {
	Direction Direction
}

// ToggleExpand flips the expansion of the folder at Path.
type ToggleExpand struct {
	Path string
}

// ExpandAll expands every folder.
type ExpandAll struct{}

// CollapseAll collapses every folder.
type CollapseAll struct{}

// SetNotification replaces the notification message.
type SetNotification struct {
	Message string
}

// ClearNotification removes the notification message.
type ClearNotification struct{}

// Select moves the selection to Path, which must be the root or a tree node.
type Select struct {
	Path string
}

// LoadData installs a new tree together with inclusion, selection and expansion.
type LoadData struct {
	Edges        model.EdgeMap
	Folders      model.PathSet
	Included     model.PathSet
	Selected     string
	HasSelection bool
	Expanded     model.PathSet
}

func (ToggleInclude) actionName() string     { return "toggle_include" }
func (MoveSelection) actionName() string     { return "move_selection" }
func (ToggleExpand) actionName() string      { return "toggle_expand" }
func (ExpandAll) actionName() string         { return "expand_all" }
func (CollapseAll) actionName() string       { return "collapse_all" }
func (SetNotification) actionName() string   { return "set_notification" }
func (ClearNotification) actionName() string { return "clear_notification" }
func (Select) actionName() string            { return "select" }
func (LoadData) actionName() string          { return "load_data" }

// ActionName returns a stable identifier for logging.
func ActionName(action Action) string {
	if action == nil {
		return "none"
	}
	return action.actionName()
}
