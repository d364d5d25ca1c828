// Package summary measures how much of a project the manifest leaves visible.
package summary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/claudius/internal/model"
	"github.com/temirov/claudius/internal/tokenizer"
	"github.com/temirov/claudius/internal/utils"
)

const (
	remainingLineFormat  = "Visible:  %d files, %s"
	listedLineFormat     = "Excluded: %d files, %s (listed in %s)"
	tokensSuffixFormat   = ", %d tokens (%s)"
	skippedSuffixFormat  = ", %d binary files skipped"
	unreadableLineFormat = "Unreadable: %d files left out"
	warningUnreadable    = "skipping unreadable file"
	logFieldPath         = "path"
)

// Totals aggregates one side of the report.
type Totals struct {
	Files  int
	Bytes  int64
	Tokens int
	// Uncounted holds files whose tokens were not counted because they are binary.
	Uncounted int
}

// Report compares files left visible with files excluded by the manifest.
type Report struct {
	Remaining Totals
	Listed    Totals
	// Unreadable counts files that could not be inspected or read.
	Unreadable int
	// TokenModel is empty when tokens were not counted.
	TokenModel string
}

// Options controls a summary run.
type Options struct {
	// Counter enables token counting of remaining files when non-nil.
	Counter tokenizer.Counter
	// TokenModel labels the counter in the report.
	TokenModel string
	// Concurrency bounds parallel file reads; zero means runtime.NumCPU().
	Concurrency int
	// Logger receives a warning per unreadable file.
	Logger *zap.Logger
}

type fileEntry struct {
	relativePath string
	excluded     bool
}

type fileMeasurement struct {
	size       int64
	tokens     int
	uncounted  bool
	vanished   bool
	unreadable bool
}

// Summarize walks the tree and measures every file. A file counts as excluded
// when it or one of its ancestors is in the manifest. Files removed since the
// scan are left out; files that cannot be inspected or read are counted as
// unreadable. Only context cancellation returns an error.
func Summarize(ctx context.Context, rootDirectory string, edges model.EdgeMap, folders model.PathSet, included model.PathSet, options Options) (Report, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	files := collectFiles(edges, folders, included)
	measurements := make([]fileMeasurement, len(files))

	concurrency := options.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	group, groupContext := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)
	for index, entry := range files {
		group.Go(func() error {
			if contextError := groupContext.Err(); contextError != nil {
				return contextError
			}
			countTokens := options.Counter != nil && !entry.excluded
			absolutePath := filepath.Join(rootDirectory, filepath.FromSlash(entry.relativePath))
			measurement, measureError := measureFile(absolutePath, options.Counter, countTokens)
			if measureError != nil {
				logger.Warn(warningUnreadable, zap.String(logFieldPath, entry.relativePath), zap.Error(measureError))
				measurement = fileMeasurement{unreadable: true}
			}
			measurements[index] = measurement
			return nil
		})
	}
	if waitError := group.Wait(); waitError != nil {
		return Report{}, waitError
	}

	var report Report
	if options.Counter != nil {
		report.TokenModel = options.TokenModel
	}
	for index, entry := range files {
		if measurements[index].vanished {
			continue
		}
		if measurements[index].unreadable {
			report.Unreadable++
			continue
		}
		totals := &report.Remaining
		if entry.excluded {
			totals = &report.Listed
		}
		totals.Files++
		totals.Bytes += measurements[index].size
		totals.Tokens += measurements[index].tokens
		if measurements[index].uncounted {
			totals.Uncounted++
		}
	}
	return report, nil
}

func collectFiles(edges model.EdgeMap, folders model.PathSet, included model.PathSet) []fileEntry {
	var files []fileEntry
	var walk func(parentPath string, excluded bool)
	walk = func(parentPath string, excluded bool) {
		for _, childPath := range edges.Children(parentPath) {
			childExcluded := excluded || included.Has(childPath)
			if folders.Has(childPath) {
				walk(childPath, childExcluded)
				continue
			}
			files = append(files, fileEntry{relativePath: childPath, excluded: childExcluded})
		}
	}
	walk(model.RootPath, false)
	return files
}

func measureFile(absolutePath string, counter tokenizer.Counter, countTokens bool) (fileMeasurement, error) {
	fileInfo, statError := os.Stat(absolutePath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return fileMeasurement{vanished: true}, nil
		}
		return fileMeasurement{}, statError
	}
	measurement := fileMeasurement{size: fileInfo.Size()}
	if !countTokens || !fileInfo.Mode().IsRegular() {
		return measurement, nil
	}
	countResult, countError := tokenizer.CountFile(counter, absolutePath)
	if countError != nil {
		return fileMeasurement{}, countError
	}
	measurement.tokens = countResult.Tokens
	measurement.uncounted = !countResult.Counted
	return measurement, nil
}

// Render formats the report as two lines of text.
func Render(report Report, manifestFileName string) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(remainingLineFormat, report.Remaining.Files, utils.FormatFileSize(report.Remaining.Bytes)))
	if report.TokenModel != "" {
		builder.WriteString(fmt.Sprintf(tokensSuffixFormat, report.Remaining.Tokens, report.TokenModel))
		if report.Remaining.Uncounted > 0 {
			builder.WriteString(fmt.Sprintf(skippedSuffixFormat, report.Remaining.Uncounted))
		}
	}
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf(listedLineFormat, report.Listed.Files, utils.FormatFileSize(report.Listed.Bytes), manifestFileName))
	builder.WriteString("\n")
	if report.Unreadable > 0 {
		builder.WriteString(fmt.Sprintf(unreadableLineFormat, report.Unreadable))
		builder.WriteString("\n")
	}
	return builder.String()
}
