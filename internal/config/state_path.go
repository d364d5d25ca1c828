package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/claudius/internal/utils"
)

// StateLocation selects where the UI state file lives.
type StateLocation string

const (
	// StateLocationGlobal keeps UI state in the per-user configuration directory.
	StateLocationGlobal StateLocation = "global"
	// StateLocationLocal keeps UI state in the working directory.
	StateLocationLocal StateLocation = "local"
)

// userConfigDirectory is replaced in tests.
var userConfigDirectory = os.UserConfigDir

// ResolveStatePath returns the UI state file path. An explicit file wins; a
// relative explicit file is resolved against workingDirectory.
func ResolveStatePath(location StateLocation, explicitFile string, workingDirectory string) (string, error) {
	if explicitFile != "" {
		if filepath.IsAbs(explicitFile) {
			return explicitFile, nil
		}
		return filepath.Join(workingDirectory, explicitFile), nil
	}
	switch location {
	case StateLocationLocal:
		return filepath.Join(workingDirectory, utils.LocalStateFileName), nil
	case StateLocationGlobal, "":
		configurationDirectory, err := userConfigDirectory()
		if err != nil {
			return "", fmt.Errorf("resolve user configuration directory: %w", err)
		}
		return filepath.Join(configurationDirectory, utils.ApplicationName, utils.GlobalStateFileName), nil
	default:
		return "", fmt.Errorf("unsupported state location %q", location)
	}
}

// StatePath resolves the state path configured in the receiver.
func (config ApplicationConfiguration) StatePath(workingDirectory string) (string, error) {
	return ResolveStatePath(StateLocation(config.State.Location), config.State.File, workingDirectory)
}
