// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/temirov/claudius/internal/services/clipboard"
	"github.com/temirov/claudius/internal/utils"
)

const (
	configFlagName       = "config"
	manifestFlagName     = "manifest"
	absoluteFlagName     = "absolute"
	skipFlagName         = "skip"
	stateFlagName        = "state"
	logFileFlagName      = "log-file"
	versionFlagName      = "version"
	copyFlagName         = "copy"
	collapseFlagName     = "collapse"
	tokensFlagName       = "tokens"
	modelFlagName        = "model"
	globalFlagName       = "global"
	forceFlagName        = "force"
	defaultPath          = "."
	versionTemplate      = utils.ApplicationName + " version: %s\n"
	rootUse              = utils.ApplicationName + " [path]"
	rootShortDescription = "curate the .claudeignore manifest of a project"
	rootLongDescription  = `claudius opens an interactive tree of the project directory.
Mark files and folders to list them in the manifest, then press w to write it.
Use the tree and summary commands for non-interactive output and init to create a configuration file.`
	rootUsageExample = `  # Edit the manifest of the current directory
  claudius

  # Keep UI state next to the project and skip node_modules
  claudius --state .claudius_state.json --skip node_modules ./web`

	treeUse              = "tree [path]"
	treeAlias            = "t"
	treeShortDescription = "print the project tree with manifest markers (" + treeAlias + ")"
	treeLongDescription  = `Print the project tree. Entries listed in the manifest are marked [x].
Use --copy to place the output on the clipboard.`
	treeUsageExample = `  # Print the tree and copy it
  claudius tree --copy .`

	summaryUse              = "summary [path]"
	summaryAlias            = "s"
	summaryShortDescription = "count files left visible by the manifest (" + summaryAlias + ")"
	summaryLongDescription  = `Compare the files the manifest leaves visible with the files it excludes.
Use --tokens to count tokens of the visible text files.`
	summaryUsageExample = `  # Count visible tokens with the default model
  claudius summary --tokens`

	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write a default configuration file into the working directory, or into ~/.claudius with --global.`

	configFlagDescription   = "configuration file path"
	manifestFlagDescription = "manifest file name"
	absoluteFlagDescription = "write absolute paths to the manifest"
	skipFlagDescription     = "skip entries matching a base-name pattern (repeatable, trailing / for directories only)"
	stateFlagDescription    = "UI state file path"
	logFileFlagDescription  = "write logs to this file"
	versionFlagDescription  = "display application version"
	copyFlagDescription     = "copy the output to the clipboard"
	collapseFlagDescription = "do not descend into folders listed in the manifest"
	tokensFlagDescription   = "count tokens of visible files"
	modelFlagDescription    = "tokenizer model to use for token counting"
	globalFlagDescription   = "write the global configuration"
	forceFlagDescription    = "overwrite an existing configuration"

	configurationWrittenFormat = "Configuration written to %s\n"
)

// Dependencies carries the collaborators the commands need.
type Dependencies struct {
	Logger     *zap.Logger
	Copier     clipboard.Copier
	OpenScreen func() (tcell.Screen, error)
	IsTerminal func() bool
}

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	configPath   string
	manifestName string
	absolute     bool
	skipPatterns []string
	statePath    string
	logFile      string
}

// Execute runs the claudius application.
func Execute(ctx context.Context, logger *zap.Logger) error {
	rootCommand := createRootCommand(Dependencies{
		Logger:     logger,
		Copier:     clipboard.NewService(),
		OpenScreen: tcell.NewScreen,
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
	})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(ctx)
}

// createRootCommand builds the root Cobra command.
func createRootCommand(dependencies Dependencies) *cobra.Command {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	var showVersion bool
	var flags rootFlags

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, settingsError := resolveSettings(command, flags, arguments)
			if settingsError != nil {
				return settingsError
			}
			return runEditor(command.Context(), settings, dependencies)
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}

	persistentFlags := rootCommand.PersistentFlags()
	persistentFlags.BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	persistentFlags.StringVar(&flags.configPath, configFlagName, "", configFlagDescription)
	persistentFlags.StringVar(&flags.manifestName, manifestFlagName, "", manifestFlagDescription)
	registerBooleanFlag(persistentFlags, &flags.absolute, absoluteFlagName, false, absoluteFlagDescription)
	persistentFlags.StringArrayVar(&flags.skipPatterns, skipFlagName, nil, skipFlagDescription)
	persistentFlags.StringVar(&flags.statePath, stateFlagName, "", stateFlagDescription)
	persistentFlags.StringVar(&flags.logFile, logFileFlagName, "", logFileFlagDescription)

	rootCommand.AddCommand(
		createTreeCommand(&flags, dependencies),
		createSummaryCommand(&flags, dependencies),
		createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand(flags *rootFlags, dependencies Dependencies) *cobra.Command {
	var copyEnabled bool
	var collapseIncluded bool

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, settingsError := resolveSettings(command, *flags, arguments)
			if settingsError != nil {
				return settingsError
			}
			return runTree(command.OutOrStdout(), settings, treeRequest{copy: copyEnabled, collapseIncluded: collapseIncluded}, dependencies)
		},
	}
	registerBooleanFlag(treeCommand.Flags(), &copyEnabled, copyFlagName, false, copyFlagDescription)
	registerBooleanFlag(treeCommand.Flags(), &collapseIncluded, collapseFlagName, false, collapseFlagDescription)
	return treeCommand
}

// createSummaryCommand returns the summary subcommand.
func createSummaryCommand(flags *rootFlags, dependencies Dependencies) *cobra.Command {
	var tokensEnabled bool
	var modelName string

	summaryCommand := &cobra.Command{
		Use:     summaryUse,
		Aliases: []string{summaryAlias},
		Short:   summaryShortDescription,
		Long:    summaryLongDescription,
		Example: summaryUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, settingsError := resolveSettings(command, *flags, arguments)
			if settingsError != nil {
				return settingsError
			}
			if command.Flags().Changed(tokensFlagName) {
				settings.tokensEnabled = tokensEnabled
			}
			if command.Flags().Changed(modelFlagName) {
				settings.tokenModel = modelName
			}
			return runSummary(command.Context(), command.OutOrStdout(), settings, dependencies)
		},
	}
	registerBooleanFlag(summaryCommand.Flags(), &tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	summaryCommand.Flags().StringVar(&modelName, modelFlagName, utils.DefaultTokenizerModel, modelFlagDescription)
	return summaryCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var globalTarget bool
	var forceOverwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runInit(command.OutOrStdout(), globalTarget, forceOverwrite)
		},
	}
	registerBooleanFlag(initCommand.Flags(), &globalTarget, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &forceOverwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}

func writeLine(output io.Writer, format string, arguments ...any) {
	_, _ = fmt.Fprintf(output, format, arguments...)
}
