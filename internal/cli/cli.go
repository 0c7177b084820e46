// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/tree/internal/config"
	"github.com/temirov/tree/internal/output"
	"github.com/temirov/tree/internal/services/clipboard"
	"github.com/temirov/tree/internal/tree"
	"github.com/temirov/tree/internal/utils"
)

const (
	dirOnlyFlagName      = "dir-only"
	dirOnlyFlagShorthand = "d"
	outputFileFlagName   = "output-file"
	outputFileShorthand  = "o"
	versionFlagName      = "version"
	versionFlagShorthand = "v"
	clipboardFlagName    = "clipboard"
	configFlagName       = "config"
	verboseFlagName      = "verbose"

	defaultPath     = "."
	versionTemplate = "Tree v%s\n"

	rootUse              = utils.ApplicationName + " [ROOT_DIR]"
	rootShortDescription = "Tree, a directory tree generator"
	rootLongDescription  = `Generate a full directory tree starting at ROOT_DIR (default: current directory).
Use --dir-only to list directories only and --output-file to save the tree to a file wrapped in a Markdown code block.`
	rootUsageExample = `  # Print the tree of the current directory
  tree

  # Save a directory-only tree of ./src to a file
  tree -d -o tree.md ./src`

	dirOnlyFlagDescription    = "generate a directory-only tree"
	outputFileFlagDescription = "save the tree to OUTPUT_FILE instead of printing it"
	versionFlagDescription    = "display application version"
	clipboardFlagDescription  = "also copy the tree to the clipboard"
	configFlagDescription     = "path to a configuration file (default: ./" + utils.ConfigFileName + ")"
	verboseFlagDescription    = "log traversal details"

	// rootMissingMessage is printed when the root argument is not a directory.
	rootMissingMessage = "The specified root directory doesn't exist"

	errorRootNotDirectoryFormat  = "%w: %s"
	errorLoadConfigurationFormat = "loading configuration: %w"
	errorCopyClipboardFormat     = "copying tree to clipboard: %w"

	logMessageSettingsResolved = "settings resolved"
	logFieldRoot               = "root"
	logFieldDirOnly            = "dir_only"
	logFieldDestination        = "destination"
	logFieldClipboard          = "clipboard"
)

// ErrRootNotDirectory reports a root argument that does not name a directory.
var ErrRootNotDirectory = errors.New("root is not a directory")

// Dependencies carries the collaborators of the root command.
// Zero values select the operating system and the process environment.
type Dependencies struct {
	Logger           *zap.Logger
	LogLevel         *zap.AtomicLevel
	FileSystem       afero.Fs
	Copier           clipboard.Copier
	Stdout           io.Writer
	Stderr           io.Writer
	WorkingDirectory string
	HomeDirectory    string
}

// commandOptions stores the values bound to command line flags.
type commandOptions struct {
	dirOnly        bool
	outputFile     string
	showVersion    bool
	clipboard      bool
	configFilePath string
	verbose        bool
}

// runSettings is the outcome of merging flags with configuration.
type runSettings struct {
	root        string
	dirOnly     bool
	destination output.Destination
	clipboard   bool
	fence       string
}

// Execute runs the tree application.
func Execute(logger *zap.Logger, logLevel zap.AtomicLevel) error {
	return NewRootCommand(Dependencies{Logger: logger, LogLevel: &logLevel}).Execute()
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	dependencies = dependencies.withDefaults()
	var options commandOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, printError := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return printError
			}
			if options.verbose && dependencies.LogLevel != nil {
				dependencies.LogLevel.SetLevel(zapcore.DebugLevel)
			}
			settings, settingsError := resolveSettings(command, dependencies, options, arguments)
			if settingsError != nil {
				return settingsError
			}
			return runTree(command, dependencies, settings)
		},
	}
	rootCommand.SetOut(dependencies.Stdout)
	rootCommand.SetErr(dependencies.Stderr)

	flagSet := rootCommand.Flags()
	registerBooleanFlag(flagSet, &options.dirOnly, dirOnlyFlagName, dirOnlyFlagShorthand, false, dirOnlyFlagDescription)
	flagSet.StringVarP(&options.outputFile, outputFileFlagName, outputFileShorthand, "", outputFileFlagDescription)
	flagSet.BoolVarP(&options.showVersion, versionFlagName, versionFlagShorthand, false, versionFlagDescription)
	registerBooleanFlag(flagSet, &options.clipboard, clipboardFlagName, "", false, clipboardFlagDescription)
	flagSet.StringVar(&options.configFilePath, configFlagName, "", configFlagDescription)
	flagSet.BoolVar(&options.verbose, verboseFlagName, false, verboseFlagDescription)
	return rootCommand
}

func (dependencies Dependencies) withDefaults() Dependencies {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.FileSystem == nil {
		dependencies.FileSystem = afero.NewOsFs()
	}
	if dependencies.Copier == nil {
		dependencies.Copier = clipboard.NewService()
	}
	if dependencies.Stdout == nil {
		dependencies.Stdout = os.Stdout
	}
	if dependencies.Stderr == nil {
		dependencies.Stderr = os.Stderr
	}
	return dependencies
}

// resolveSettings merges explicit flags over configuration over defaults.
func resolveSettings(command *cobra.Command, dependencies Dependencies, options commandOptions, arguments []string) (runSettings, error) {
	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: dependencies.WorkingDirectory,
		HomeDirectory:    dependencies.HomeDirectory,
		ExplicitFilePath: options.configFilePath,
		FileSystem:       dependencies.FileSystem,
	})
	if configurationError != nil {
		return runSettings{}, fmt.Errorf(errorLoadConfigurationFormat, configurationError)
	}

	flagSet := command.Flags()
	settings := runSettings{
		root:      defaultPath,
		dirOnly:   configuration.DirOnlyOrDefault(false),
		clipboard: configuration.ClipboardOrDefault(false),
		fence:     configuration.Fence,
	}
	if len(arguments) > 0 {
		settings.root = arguments[0]
	}
	if flagSet.Changed(dirOnlyFlagName) {
		settings.dirOnly = options.dirOnly
	}
	if flagSet.Changed(clipboardFlagName) {
		settings.clipboard = options.clipboard
	}
	outputFile := configuration.OutputFile
	if flagSet.Changed(outputFileFlagName) {
		outputFile = options.outputFile
	}
	settings.destination = output.DestinationFor(outputFile)

	dependencies.Logger.Debug(
		logMessageSettingsResolved,
		zap.String(logFieldRoot, settings.root),
		zap.Bool(logFieldDirOnly, settings.dirOnly),
		zap.Stringer(logFieldDestination, settings.destination),
		zap.Bool(logFieldClipboard, settings.clipboard),
	)
	return settings, nil
}

// runTree validates the root, builds the tree and writes it.
func runTree(command *cobra.Command, dependencies Dependencies, settings runSettings) error {
	if !isDirectory(dependencies.FileSystem, settings.root) {
		fmt.Fprintln(command.OutOrStdout(), rootMissingMessage)
		return fmt.Errorf(errorRootNotDirectoryFormat, ErrRootNotDirectory, settings.root)
	}

	builder := tree.NewTreeBuilder(dependencies.FileSystem, dependencies.Logger, settings.dirOnly)
	lines, buildError := builder.Build(settings.root)
	if buildError != nil {
		return buildError
	}

	writer := output.NewTreeWriter(dependencies.FileSystem, command.OutOrStdout(), dependencies.Logger)
	if settings.fence != "" {
		writer.Fence = settings.fence
	}
	if writeError := writer.Write(lines, settings.destination); writeError != nil {
		return writeError
	}

	if settings.clipboard {
		if copyError := clipboard.CopyLines(dependencies.Copier, lines); copyError != nil {
			return fmt.Errorf(errorCopyClipboardFormat, copyError)
		}
	}
	return nil
}

func isDirectory(fileSystem afero.Fs, path string) bool {
	directory, statError := afero.IsDir(fileSystem, path)
	return statError == nil && directory
}
