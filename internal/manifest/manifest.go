// Package manifest reads and writes the ignore manifest: one literal path per line.
package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/claudius/internal/model"
	"github.com/temirov/claudius/internal/projection"
	"github.com/temirov/claudius/internal/utils"
)

const (
	// DefaultFileName is the manifest name used when none is configured.
	DefaultFileName = utils.DefaultManifestFileName

	commentPrefix        = "#"
	rootEntry            = "."
	temporaryFilePattern = ".manifest-*.tmp"
	manifestPermissions  = 0o644
	initialLineBuffer    = 64 * 1024
	maximumLineLength    = 16 * 1024 * 1024

	errorOpenManifestFormat    = "opening manifest %s: %w"
	errorReadManifestFormat    = "reading manifest %s: %w"
	errorCreateTemporaryFormat = "creating temporary manifest in %s: %w"
	errorWriteManifestFormat   = "writing manifest %s: %w"
	errorReplaceManifestFormat = "replacing manifest %s: %w"
)

// WriteOptions controls manifest serialization.
type WriteOptions struct {
	// AbsolutePaths emits entries joined with the root instead of root-relative entries.
	AbsolutePaths bool
}

// FilePath returns the manifest location inside rootDirectory.
func FilePath(rootDirectory string, fileName string) string {
	if fileName == "" {
		fileName = DefaultFileName
	}
	return filepath.Join(rootDirectory, fileName)
}

// Read parses the manifest in rootDirectory. A missing manifest yields an empty set.
// Absolute entries located inside rootDirectory are rewritten relative to it.
//
// #nosec G304
func Read(rootDirectory string, fileName string) (model.PathSet, error) {
	manifestPath := FilePath(rootDirectory, fileName)
	included := model.NewPathSet()

	fileHandle, openError := os.Open(manifestPath)
	if openError != nil {
		if errors.Is(openError, fs.ErrNotExist) {
			return included, nil
		}
		return nil, fmt.Errorf(errorOpenManifestFormat, manifestPath, openError)
	}
	defer fileHandle.Close()

	absoluteRoot, absoluteError := filepath.Abs(rootDirectory)
	if absoluteError != nil {
		absoluteRoot = filepath.Clean(rootDirectory)
	}

	scanner := bufio.NewScanner(fileHandle)
	scanner.Buffer(make([]byte, 0, initialLineBuffer), maximumLineLength)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		included[NormalizeEntry(trimmedLine, absoluteRoot)] = struct{}{}
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf(errorReadManifestFormat, manifestPath, scanError)
	}
	return included, nil
}

// NormalizeEntry rewrites an absolute entry inside absoluteRoot to its
// root-relative forward-slash form. The root itself becomes ".". Any other
// entry is returned unchanged.
func NormalizeEntry(entry string, absoluteRoot string) string {
	if !filepath.IsAbs(entry) {
		return entry
	}
	relativePath, relativeError := filepath.Rel(absoluteRoot, filepath.Clean(entry))
	if relativeError != nil {
		return entry
	}
	if relativePath == ".." || strings.HasPrefix(relativePath, ".."+string(filepath.Separator)) {
		return entry
	}
	if relativePath == "." {
		return rootEntry
	}
	return filepath.ToSlash(relativePath)
}

// Lines returns the serialized manifest entries in write order. The empty
// root path has no line form and is left out.
func Lines(rootDirectory string, included model.PathSet, options WriteOptions) []string {
	writable := included.Without(model.RootPath)
	if options.AbsolutePaths {
		return projection.AbsolutePaths(writable, rootDirectory)
	}
	lines := writable.Sorted()
	for lineIndex, entry := range lines {
		lines[lineIndex] = strings.ReplaceAll(entry, "\\", model.PathSeparator)
	}
	return lines
}

// Content joins lines into manifest file content, one entry per line.
func Content(lines []string) string {
	var builder strings.Builder
	for _, line := range lines {
		builder.WriteString(line)
		builder.WriteString("\n")
	}
	return builder.String()
}

// Write replaces the manifest in rootDirectory with the included paths, one per
// line and sorted. The content goes to a temporary file that is renamed over the
// manifest, so a failed write leaves the previous manifest intact.
func Write(rootDirectory string, fileName string, included model.PathSet, options WriteOptions) error {
	manifestPath := FilePath(rootDirectory, fileName)

	content := Content(Lines(rootDirectory, included, options))

	temporaryFile, createError := os.CreateTemp(filepath.Dir(manifestPath), temporaryFilePattern)
	if createError != nil {
		return fmt.Errorf(errorCreateTemporaryFormat, filepath.Dir(manifestPath), createError)
	}
	temporaryPath := temporaryFile.Name()
	cleanup := func() { _ = os.Remove(temporaryPath) }

	if _, writeError := temporaryFile.WriteString(content); writeError != nil {
		_ = temporaryFile.Close()
		cleanup()
		return fmt.Errorf(errorWriteManifestFormat, manifestPath, writeError)
	}
	if closeError := temporaryFile.Close(); closeError != nil {
		cleanup()
		return fmt.Errorf(errorWriteManifestFormat, manifestPath, closeError)
	}
	if chmodError := os.Chmod(temporaryPath, manifestPermissions); chmodError != nil {
		cleanup()
		return fmt.Errorf(errorWriteManifestFormat, manifestPath, chmodError)
	}
	if renameError := os.Rename(temporaryPath, manifestPath); renameError != nil {
		cleanup()
		return fmt.Errorf(errorReplaceManifestFormat, manifestPath, renameError)
	}
	return nil
}
