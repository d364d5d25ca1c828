// Package pathtree scans a directory into the parent→children adjacency map
// used by the editor.
package pathtree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/temirov/claudius/internal/model"
	"github.com/temirov/claudius/internal/utils"
)

const (
	// errorAbsolutePathFormat is used when the root cannot be made absolute.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	// errorStatRootFormat is used when the root cannot be inspected.
	errorStatRootFormat = "inspecting scan root %s: %w"
	// errorRootNotDirectoryFormat is used when the root is a regular file.
	errorRootNotDirectoryFormat = "scan root %s is not a directory"

	reasonReadDirectoryFormat = "reading directory: %v"
	reasonBrokenSymlinkFormat = "broken symbolic link: %v"
	reasonEntryInfoFormat     = "reading entry information: %v"
)

// Options controls a scan.
type Options struct {
	// ManifestFileName is excluded from the root listing.
	ManifestFileName string
	// SkipNames lists base-name glob patterns left out of the tree entirely.
	// A trailing slash restricts a pattern to directories.
	SkipNames []string
}

// Problem describes an entry that could not be scanned completely.
type Problem struct {
	Path   string
	Reason string
}

// Result is the outcome of a scan. Problems are reported alongside the partial tree.
type Result struct {
	Root     string
	Edges    model.EdgeMap
	Folders  model.PathSet
	Problems []Problem
}

// Scan enumerates rootDirectory recursively. Subdirectories are listed before
// files, each group sorted by name. Only a missing or non-directory root
// produces an error; per-entry failures end up in Result.Problems.
func Scan(rootDirectory string, options Options) (Result, error) {
	absoluteRoot, absoluteError := filepath.Abs(rootDirectory)
	if absoluteError != nil {
		return Result{}, fmt.Errorf(errorAbsolutePathFormat, rootDirectory, absoluteError)
	}
	rootInfo, statError := os.Stat(absoluteRoot)
	if statError != nil {
		return Result{}, fmt.Errorf(errorStatRootFormat, absoluteRoot, statError)
	}
	if !rootInfo.IsDir() {
		return Result{}, fmt.Errorf(errorRootNotDirectoryFormat, absoluteRoot)
	}

	scanner := &treeScanner{
		root:         absoluteRoot,
		manifestName: options.ManifestFileName,
		skipPatterns: utils.DeduplicatePatterns(options.SkipNames),
		result: Result{
			Root:    absoluteRoot,
			Edges:   model.EdgeMap{},
			Folders: model.NewPathSet(),
		},
	}
	scanner.scanDirectory(absoluteRoot, model.RootPath)
	return scanner.result, nil
}

type treeScanner struct {
	root         string
	manifestName string
	skipPatterns []string
	result       Result
}

func (scanner *treeScanner) recordProblem(relativePath string, reasonFormat string, cause error) {
	scanner.result.Problems = append(scanner.result.Problems, Problem{
		Path:   relativePath,
		Reason: fmt.Sprintf(reasonFormat, cause),
	})
}

// scanDirectory lists one directory and recurses into its subdirectories.
func (scanner *treeScanner) scanDirectory(absoluteDirectory string, relativeDirectory string) {
	scanner.result.Edges[relativeDirectory] = []string{}
	if relativeDirectory != model.RootPath {
		scanner.result.Folders[relativeDirectory] = struct{}{}
	}

	directoryEntries, readDirectoryError := os.ReadDir(absoluteDirectory)
	if readDirectoryError != nil {
		scanner.recordProblem(relativeDirectory, reasonReadDirectoryFormat, readDirectoryError)
		if len(directoryEntries) == 0 {
			return
		}
	}

	var directoryNames []string
	var fileNames []string
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if utils.MatchesSkipPattern(entryName, directoryEntry.IsDir(), scanner.skipPatterns) {
			continue
		}
		if relativeDirectory == model.RootPath && entryName == scanner.manifestName && !directoryEntry.IsDir() {
			continue
		}
		if directoryEntry.IsDir() {
			directoryNames = append(directoryNames, entryName)
			continue
		}
		if directoryEntry.Type()&fs.ModeSymlink != 0 {
			if _, targetError := os.Stat(filepath.Join(absoluteDirectory, entryName)); targetError != nil {
				if errors.Is(targetError, fs.ErrNotExist) {
					scanner.recordProblem(joinRelative(relativeDirectory, entryName), reasonBrokenSymlinkFormat, targetError)
				} else {
					scanner.recordProblem(joinRelative(relativeDirectory, entryName), reasonEntryInfoFormat, targetError)
				}
			}
		}
		fileNames = append(fileNames, entryName)
	}
	sort.Strings(directoryNames)
	sort.Strings(fileNames)

	children := make([]string, 0, len(directoryNames)+len(fileNames))
	for _, directoryName := range directoryNames {
		children = append(children, joinRelative(relativeDirectory, directoryName))
	}
	for _, fileName := range fileNames {
		children = append(children, joinRelative(relativeDirectory, fileName))
	}
	scanner.result.Edges[relativeDirectory] = children

	for _, directoryName := range directoryNames {
		scanner.scanDirectory(filepath.Join(absoluteDirectory, directoryName), joinRelative(relativeDirectory, directoryName))
	}
}

// joinRelative joins a root-relative directory and a name with forward slashes.
func joinRelative(relativeDirectory string, name string) string {
	if relativeDirectory == model.RootPath {
		return name
	}
	return path.Join(relativeDirectory, name)
}
