package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/temirov/claudius/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	errorWorkingDirectoryFormat  = "determine working directory for configuration: %w"
	errorHomeDirectoryFormat     = "resolve home directory for configuration: %w"
	errorCreateDirectoryFormat   = "create configuration directory %s: %w"
	errorUnsupportedTargetFormat = "unsupported init target %q"
	errorConfigurationExists     = "configuration file already exists at %s"
	errorInspectPathFormat       = "inspect configuration path %s: %w"
	errorWriteConfigFormat       = "write configuration to %s: %w"
	configurationFilePermissions = 0o600
	configurationDirPermissions  = 0o755

	defaultConfigurationTemplate = `manifest:
  file_name: .claudeignore
  absolute_paths: false
state:
  location: global
  file: ""
scan:
  skip: []
logging:
  file: ""
summary:
  tokens: false
  model: gpt-4o
`
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// InitializeConfiguration writes the default configuration to the requested
// target and returns its path. An existing file is replaced only with Force.
func InitializeConfiguration(options InitOptions) (string, error) {
	destinationPath, destinationError := initDestination(options)
	if destinationError != nil {
		return "", destinationError
	}

	_, statError := os.Stat(destinationPath)
	switch {
	case statError == nil && !options.Force:
		return "", fmt.Errorf(errorConfigurationExists, destinationPath)
	case statError != nil && !errors.Is(statError, fs.ErrNotExist):
		return "", fmt.Errorf(errorInspectPathFormat, destinationPath, statError)
	}

	if writeError := os.WriteFile(destinationPath, []byte(defaultConfigurationTemplate), configurationFilePermissions); writeError != nil {
		return "", fmt.Errorf(errorWriteConfigFormat, destinationPath, writeError)
	}
	return destinationPath, nil
}

// initDestination resolves the configuration file path for the target,
// creating the global configuration directory when needed.
func initDestination(options InitOptions) (string, error) {
	switch options.Target {
	case InitTargetLocal, "":
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			currentDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return "", fmt.Errorf(errorWorkingDirectoryFormat, workingDirectoryError)
			}
			workingDirectory = currentDirectory
		}
		return filepath.Join(workingDirectory, utils.ConfigFileName), nil
	case InitTargetGlobal:
		homeDirectory, homeError := os.UserHomeDir()
		if homeError != nil {
			return "", fmt.Errorf(errorHomeDirectoryFormat, homeError)
		}
		configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
		if makeDirError := os.MkdirAll(configurationDirectory, configurationDirPermissions); makeDirError != nil {
			return "", fmt.Errorf(errorCreateDirectoryFormat, configurationDirectory, makeDirError)
		}
		return filepath.Join(configurationDirectory, utils.ConfigFileName), nil
	default:
		return "", fmt.Errorf(errorUnsupportedTargetFormat, options.Target)
	}
}
