package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/temirov/claudius/internal/config"
	"github.com/temirov/claudius/internal/manifest"
	"github.com/temirov/claudius/internal/utils"
)

const (
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	errorAbsolutePathFormat     = "abs failed for '%s': %w"
	errorPathMissingFormat      = "path '%s' does not exist"
	errorStatFormat             = "stat failed for '%s': %w"
	errorNotDirectoryFormat     = "path '%s' is not a directory"
	errorStatePathFormat        = "resolve UI state path: %w"
)

// commandSettings is the merged result of configuration files and flags.
type commandSettings struct {
	rootDirectory    string
	manifestFileName string
	writeOptions     manifest.WriteOptions
	skipPatterns     []string
	statePath        string
	logFile          string
	tokensEnabled    bool
	tokenModel       string
}

// resolveSettings loads the configuration and applies flag overrides. The
// optional argument names the project root.
func resolveSettings(command *cobra.Command, flags rootFlags, arguments []string) (commandSettings, error) {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return commandSettings{}, fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: flags.configPath,
	})
	if loadError != nil {
		return commandSettings{}, loadError
	}

	rootArgument := defaultPath
	if len(arguments) > 0 {
		rootArgument = arguments[0]
	}
	rootDirectory, rootError := resolveRootDirectory(rootArgument)
	if rootError != nil {
		return commandSettings{}, rootError
	}

	settings := commandSettings{
		rootDirectory:    rootDirectory,
		manifestFileName: applicationConfiguration.ManifestFileName(),
		writeOptions:     manifest.WriteOptions{AbsolutePaths: applicationConfiguration.AbsoluteManifestPaths()},
		skipPatterns:     utils.DeduplicatePatterns(append(append([]string{}, applicationConfiguration.Scan.Skip...), flags.skipPatterns...)),
		logFile:          applicationConfiguration.Logging.File,
		tokensEnabled:    applicationConfiguration.TokensEnabled(),
		tokenModel:       applicationConfiguration.TokenModel(),
	}
	if flags.manifestName != "" {
		settings.manifestFileName = flags.manifestName
	}
	if command.Flags().Changed(absoluteFlagName) {
		settings.writeOptions.AbsolutePaths = flags.absolute
	}
	if flags.logFile != "" {
		settings.logFile = flags.logFile
	}

	statePath, stateError := applicationConfiguration.StatePath(workingDirectory)
	if flags.statePath != "" {
		statePath, stateError = config.ResolveStatePath(config.StateLocationLocal, flags.statePath, workingDirectory)
	}
	if stateError != nil {
		return commandSettings{}, fmt.Errorf(errorStatePathFormat, stateError)
	}
	settings.statePath = statePath
	return settings, nil
}

// resolveRootDirectory converts the input path to absolute form and validates it is a directory.
func resolveRootDirectory(inputPath string) (string, error) {
	absolutePath, absolutePathError := filepath.Abs(inputPath)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	info, fileStatusError := os.Stat(cleanPath)
	if fileStatusError != nil {
		if os.IsNotExist(fileStatusError) {
			return "", fmt.Errorf(errorPathMissingFormat, inputPath)
		}
		return "", fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
	}
	if !info.IsDir() {
		return "", fmt.Errorf(errorNotDirectoryFormat, inputPath)
	}
	return cleanPath, nil
}
