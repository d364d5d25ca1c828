// Package utils contains constants and helpers shared across the editor and its commands.
package utils

import (
	"path/filepath"
	"strings"
)

// Application-wide names.
const (
	// ApplicationName names the binary and the per-user state directory.
	ApplicationName = "claudius"
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = ".claudius.yaml"
	// GlobalConfigDirectoryName is the directory under the home directory holding the global configuration.
	GlobalConfigDirectoryName = ".claudius"
	// DefaultManifestFileName is the manifest written at the project root.
	DefaultManifestFileName = ".claudeignore"
	// LocalStateFileName stores UI state next to the project.
	LocalStateFileName = ".claudius_state.json"
	// GlobalStateFileName stores UI state in the per-user configuration directory.
	GlobalStateFileName = "state.json"
	// DefaultTokenizerModel selects the tiktoken encoding used by the summary command.
	DefaultTokenizerModel = "gpt-4o"
)

const directoryPatternSuffix = "/"

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// MatchesSkipPattern reports whether an entry name matches any skip pattern.
// Patterns use filepath.Match semantics against the base name; a pattern ending
// with a slash only matches directories.
func MatchesSkipPattern(entryName string, isDirectory bool, skipPatterns []string) bool {
	for _, patternValue := range skipPatterns {
		if strings.HasSuffix(patternValue, directoryPatternSuffix) {
			if !isDirectory {
				continue
			}
			patternValue = strings.TrimSuffix(patternValue, directoryPatternSuffix)
		}
		isMatched, matchError := filepath.Match(patternValue, entryName)
		if matchError == nil && isMatched {
			return true
		}
	}
	return false
}
