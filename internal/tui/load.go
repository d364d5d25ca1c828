package tui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/claudius/internal/manifest"
	"github.com/temirov/claudius/internal/pathtree"
	"github.com/temirov/claudius/internal/persistence"
	"github.com/temirov/claudius/internal/state"
)

const (
	scanProblemsNotificationFormat = "%d entries could not be read"
	manifestReadFailedFormat       = "Failed to read %s: %v"
	notificationSeparator          = "; "
	logScanProblem                 = "scan problem"
	logManifestReadFailed          = "manifest read failed"
	logStateLoadFailed             = "ui state load failed"
	logFieldPath                   = "path"
	logFieldReason                 = "reason"
)

// StateStore persists the expanded folders and selection between sessions.
type StateStore interface {
	Load() (persistence.UIState, error)
	Save(uiState persistence.UIState) error
}

// LoadOptions describes the project opened by the editor.
type LoadOptions struct {
	RootDirectory    string
	ManifestFileName string
	Scan             pathtree.Options
}

// LoadSnapshot scans the project, reads the manifest and the persisted UI
// state, and returns the first snapshot of the session. Only an unusable root
// is an error; manifest and UI state failures degrade to empty values and a
// notification.
func LoadSnapshot(options LoadOptions, store StateStore, logger *zap.Logger) (state.AppState, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	scanOptions := options.Scan
	scanOptions.ManifestFileName = options.ManifestFileName
	scanResult, scanError := pathtree.Scan(options.RootDirectory, scanOptions)
	if scanError != nil {
		return state.AppState{}, scanError
	}
	var notifications []string
	for _, problem := range scanResult.Problems {
		logger.Warn(logScanProblem, zap.String(logFieldPath, problem.Path), zap.String(logFieldReason, problem.Reason))
	}
	if len(scanResult.Problems) > 0 {
		notifications = append(notifications, fmt.Sprintf(scanProblemsNotificationFormat, len(scanResult.Problems)))
	}

	included, readError := manifest.Read(scanResult.Root, options.ManifestFileName)
	if readError != nil {
		logger.Error(logManifestReadFailed, zap.Error(readError))
		notifications = append(notifications, fmt.Sprintf(manifestReadFailedFormat, options.ManifestFileName, readError))
	}
	notification := strings.Join(notifications, notificationSeparator)

	var persisted persistence.UIState
	if store != nil {
		loaded, loadError := store.Load()
		if loadError != nil {
			logger.Warn(logStateLoadFailed, zap.Error(loadError))
		} else {
			persisted = loaded
		}
	}

	loadData := state.Merge(scanResult.Edges, scanResult.Folders, included, persisted.ExpandedFolders, persisted.SelectedItem)
	snapshot := state.Reduce(state.NewAppState(), loadData)
	if notification != "" {
		snapshot = state.Reduce(snapshot, state.SetNotification{Message: notification})
	}
	return snapshot, nil
}
