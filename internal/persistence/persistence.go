// Package persistence stores the editor's UI state between sessions.
package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/temirov/claudius/internal/model"
)

const (
	stateDirectoryPermissions = 0o755
	stateFilePermissions      = 0o600

	errorReadStateFormat    = "reading ui state %s: %w"
	errorDecodeStateFormat  = "decoding ui state %s: %w"
	errorEncodeStateFormat  = "encoding ui state: %w"
	errorCreateDirectoryFmt = "creating ui state directory %s: %w"
	errorWriteStateFormat   = "writing ui state %s: %w"
)

// UIState is the persisted part of the editor state. The manifest itself is
// the durable form of the inclusion set, so it is not stored here.
type UIState struct {
	ExpandedFolders []string `json:"expanded_folders"`
	SelectedItem    *string  `json:"selected_item"`
}

// NewUIState captures the expansion and selection of a snapshot.
func NewUIState(expanded model.PathSet, selected string, hasSelection bool) UIState {
	expandedFolders := expanded.Sorted()
	uiState := UIState{ExpandedFolders: expandedFolders}
	if hasSelection {
		selectedCopy := selected
		uiState.SelectedItem = &selectedCopy
	}
	return uiState
}

// Store reads and writes a UIState at a fixed path.
type Store struct {
	Path string
}

// NewStore returns a Store rooted at statePath.
func NewStore(statePath string) *Store {
	return &Store{Path: statePath}
}

// Load returns the stored UI state. A missing file yields the zero value.
//
// #nosec G304
func (store *Store) Load() (UIState, error) {
	content, readError := os.ReadFile(store.Path)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return UIState{}, nil
		}
		return UIState{}, fmt.Errorf(errorReadStateFormat, store.Path, readError)
	}
	var uiState UIState
	if decodeError := json.Unmarshal(content, &uiState); decodeError != nil {
		return UIState{}, fmt.Errorf(errorDecodeStateFormat, store.Path, decodeError)
	}
	sort.Strings(uiState.ExpandedFolders)
	return uiState, nil
}

// Save writes uiState, creating the parent directory when needed.
func (store *Store) Save(uiState UIState) error {
	if uiState.ExpandedFolders == nil {
		uiState.ExpandedFolders = []string{}
	}
	content, encodeError := json.Marshal(uiState)
	if encodeError != nil {
		return fmt.Errorf(errorEncodeStateFormat, encodeError)
	}
	stateDirectory := filepath.Dir(store.Path)
	if makeDirError := os.MkdirAll(stateDirectory, stateDirectoryPermissions); makeDirError != nil {
		return fmt.Errorf(errorCreateDirectoryFmt, stateDirectory, makeDirError)
	}
	if writeError := os.WriteFile(store.Path, content, stateFilePermissions); writeError != nil {
		return fmt.Errorf(errorWriteStateFormat, store.Path, writeError)
	}
	return nil
}
