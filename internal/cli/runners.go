package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/claudius/internal/config"
	"github.com/temirov/claudius/internal/manifest"
	"github.com/temirov/claudius/internal/output"
	"github.com/temirov/claudius/internal/pathtree"
	"github.com/temirov/claudius/internal/persistence"
	"github.com/temirov/claudius/internal/summary"
	"github.com/temirov/claudius/internal/tokenizer"
	"github.com/temirov/claudius/internal/tui"
	"github.com/temirov/claudius/internal/utils"
)

const (
	errorNotTerminal         = "the editor needs an interactive terminal; use the tree or summary command instead"
	errorOpenScreenFormat    = "open terminal screen: %w"
	errorInitScreenFormat    = "initialize terminal screen: %w"
	errorSessionLoggerFormat = "open log file %s: %w"
	errorReadManifestFormat  = "read manifest: %w"
	errorCopyTreeFormat      = "copy tree to clipboard: %w"
	errorTokenizerFormat     = "initialize tokenizer: %w"
	warningScanProblem       = "skipping unreadable entry"
	logFieldPath             = "path"
	logFieldReason           = "reason"
	logFieldStatePath        = "state"
	logFieldRoot             = "root"
	logEditorStarted         = "editor started"
	logEditorStopped         = "editor stopped"
)

type treeRequest struct {
	copy             bool
	collapseIncluded bool
}

// runEditor opens the interactive session. Without a configured log file the
// session logs nowhere so the screen stays intact.
func runEditor(ctx context.Context, settings commandSettings, dependencies Dependencies) error {
	if dependencies.IsTerminal != nil && !dependencies.IsTerminal() {
		return errors.New(errorNotTerminal)
	}

	sessionLogger := zap.NewNop()
	if settings.logFile != "" {
		fileLogger, loggerError := utils.NewApplicationLogger(settings.logFile)
		if loggerError != nil {
			return fmt.Errorf(errorSessionLoggerFormat, settings.logFile, loggerError)
		}
		defer func() { _ = fileLogger.Sync() }()
		sessionLogger = fileLogger
	}

	store := persistence.NewStore(settings.statePath)
	snapshot, loadError := tui.LoadSnapshot(tui.LoadOptions{
		RootDirectory:    settings.rootDirectory,
		ManifestFileName: settings.manifestFileName,
		Scan:             pathtree.Options{SkipNames: settings.skipPatterns},
	}, store, sessionLogger)
	if loadError != nil {
		return loadError
	}

	terminalScreen, openError := dependencies.OpenScreen()
	if openError != nil {
		return fmt.Errorf(errorOpenScreenFormat, openError)
	}
	if initError := terminalScreen.Init(); initError != nil {
		return fmt.Errorf(errorInitScreenFormat, initError)
	}

	sessionLogger.Info(logEditorStarted, zap.String(logFieldRoot, settings.rootDirectory), zap.String(logFieldStatePath, settings.statePath))
	session := tui.NewSession(terminalScreen, snapshot, store, dependencies.Copier, sessionLogger, tui.SessionOptions{
		RootDirectory:    settings.rootDirectory,
		ManifestFileName: settings.manifestFileName,
		Write:            settings.writeOptions,
	})
	runError := session.Run(ctx)
	sessionLogger.Info(logEditorStopped)
	return runError
}

// scanProject scans the root and reads its manifest. Scan problems are logged
// as warnings.
func scanProject(settings commandSettings, logger *zap.Logger) (pathtree.Result, error) {
	scanResult, scanError := pathtree.Scan(settings.rootDirectory, pathtree.Options{
		ManifestFileName: settings.manifestFileName,
		SkipNames:        settings.skipPatterns,
	})
	if scanError != nil {
		return pathtree.Result{}, scanError
	}
	for _, problem := range scanResult.Problems {
		logger.Warn(warningScanProblem, zap.String(logFieldPath, problem.Path), zap.String(logFieldReason, problem.Reason))
	}
	return scanResult, nil
}

func runTree(writer io.Writer, settings commandSettings, request treeRequest, dependencies Dependencies) error {
	scanResult, scanError := scanProject(settings, dependencies.Logger)
	if scanError != nil {
		return scanError
	}
	included, readError := manifest.Read(settings.rootDirectory, settings.manifestFileName)
	if readError != nil {
		return fmt.Errorf(errorReadManifestFormat, readError)
	}
	rendered := output.RenderTree(scanResult.Edges, scanResult.Folders, included, output.TreeOptions{
		RootLabel:        filepath.Base(settings.rootDirectory),
		CollapseIncluded: request.collapseIncluded,
	})
	writeLine(writer, "%s", rendered)
	if request.copy {
		if dependencies.Copier == nil {
			return fmt.Errorf(errorCopyTreeFormat, errors.New("no clipboard"))
		}
		if copyError := dependencies.Copier.Copy(rendered); copyError != nil {
			return fmt.Errorf(errorCopyTreeFormat, copyError)
		}
	}
	return nil
}

func runSummary(ctx context.Context, writer io.Writer, settings commandSettings, dependencies Dependencies) error {
	scanResult, scanError := scanProject(settings, dependencies.Logger)
	if scanError != nil {
		return scanError
	}
	included, readError := manifest.Read(settings.rootDirectory, settings.manifestFileName)
	if readError != nil {
		return fmt.Errorf(errorReadManifestFormat, readError)
	}

	options := summary.Options{Logger: dependencies.Logger}
	if settings.tokensEnabled {
		counter, modelName, counterError := tokenizer.NewCounter(tokenizer.Config{Model: settings.tokenModel})
		if counterError != nil {
			return fmt.Errorf(errorTokenizerFormat, counterError)
		}
		options.Counter = counter
		options.TokenModel = modelName
	}
	report, summarizeError := summary.Summarize(ctx, settings.rootDirectory, scanResult.Edges, scanResult.Folders, included, options)
	if summarizeError != nil {
		return summarizeError
	}
	writeLine(writer, "%s", summary.Render(report, settings.manifestFileName))
	return nil
}

func runInit(writer io.Writer, globalTarget bool, forceOverwrite bool) error {
	target := config.InitTargetLocal
	if globalTarget {
		target = config.InitTargetGlobal
	}
	destinationPath, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: forceOverwrite})
	if initError != nil {
		return initError
	}
	writeLine(writer, configurationWrittenFormat, destinationPath)
	return nil
}
