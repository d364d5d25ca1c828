// Package config loads application configuration and resolves where the
// editor keeps its persisted UI state.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/claudius/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds configuration defaults for every command.
type ApplicationConfiguration struct {
	Manifest ManifestConfiguration `mapstructure:"manifest"`
	State    StateConfiguration    `mapstructure:"state"`
	Scan     ScanConfiguration     `mapstructure:"scan"`
	Logging  LoggingConfiguration  `mapstructure:"logging"`
	Summary  SummaryConfiguration  `mapstructure:"summary"`
}

// ManifestConfiguration describes the manifest file.
type ManifestConfiguration struct {
	FileName      string `mapstructure:"file_name"`
	AbsolutePaths *bool  `mapstructure:"absolute_paths"`
}

// StateConfiguration selects where UI state is persisted.
type StateConfiguration struct {
	Location string `mapstructure:"location"`
	File     string `mapstructure:"file"`
}

// ScanConfiguration tunes the directory scan.
type ScanConfiguration struct {
	Skip []string `mapstructure:"skip"`
}

// LoggingConfiguration selects the log destination.
type LoggingConfiguration struct {
	File string `mapstructure:"file"`
}

// SummaryConfiguration controls the summary command defaults.
type SummaryConfiguration struct {
	Tokens *bool  `mapstructure:"tokens"`
	Model  string `mapstructure:"model"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	if localPath != "" {
		localConfig, loadErr := loadConfigurationFromPath(localPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(localConfig)
	}

	merged.Scan.Skip = utils.DeduplicatePatterns(merged.Scan.Skip)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, err := filepath.Abs(explicitPath)
			if err != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Manifest = result.Manifest.merge(override.Manifest)
	result.State = result.State.merge(override.State)
	result.Scan = result.Scan.merge(override.Scan)
	if override.Logging.File != "" {
		result.Logging.File = override.Logging.File
	}
	result.Summary = result.Summary.merge(override.Summary)
	return result
}

func (config ManifestConfiguration) merge(override ManifestConfiguration) ManifestConfiguration {
	result := config
	if override.FileName != "" {
		result.FileName = override.FileName
	}
	if override.AbsolutePaths != nil {
		result.AbsolutePaths = cloneBool(override.AbsolutePaths)
	}
	return result
}

func (config StateConfiguration) merge(override StateConfiguration) StateConfiguration {
	result := config
	if override.Location != "" {
		result.Location = override.Location
	}
	if override.File != "" {
		result.File = override.File
	}
	return result
}

func (config ScanConfiguration) merge(override ScanConfiguration) ScanConfiguration {
	result := config
	if len(override.Skip) > 0 {
		result.Skip = append([]string{}, utils.DeduplicatePatterns(override.Skip)...)
	}
	return result
}

func (config SummaryConfiguration) merge(override SummaryConfiguration) SummaryConfiguration {
	result := config
	if override.Tokens != nil {
		result.Tokens = cloneBool(override.Tokens)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

// ManifestFileName returns the configured manifest name or the default.
func (config ApplicationConfiguration) ManifestFileName() string {
	if config.Manifest.FileName == "" {
		return utils.DefaultManifestFileName
	}
	return config.Manifest.FileName
}

// AbsoluteManifestPaths reports whether the manifest is written with absolute entries.
func (config ApplicationConfiguration) AbsoluteManifestPaths() bool {
	return boolValue(config.Manifest.AbsolutePaths, false)
}

// TokensEnabled reports whether the summary command counts tokens by default.
func (config ApplicationConfiguration) TokensEnabled() bool {
	return boolValue(config.Summary.Tokens, false)
}

// TokenModel returns the configured tokenizer model or the default.
func (config ApplicationConfiguration) TokenModel() string {
	if config.Summary.Model == "" {
		return utils.DefaultTokenizerModel
	}
	return config.Summary.Model
}

func boolValue(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
