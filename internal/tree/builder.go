// Package tree renders a directory hierarchy as an ordered list of display lines.
package tree

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Rendering glyphs. Output compatibility depends on these exact values.
const (
	PipeGlyph         = "│"
	BranchConnector   = "├── "
	TerminalConnector = "└── "
	PipePrefix        = "│   "
	SpacePrefix       = "    "
)

// PathSeparator is appended to the root and to every directory label.
const PathSeparator = string(filepath.Separator)

const (
	// errorBuildTreeFormat is used when building the tree fails.
	errorBuildTreeFormat = "building tree for %s: %w"

	logMessageVisitDirectory = "visiting directory"
	logMessageTreeBuilt      = "tree built"
	logFieldPath             = "path"
	logFieldPrefix           = "prefix"
	logFieldEntries          = "entries"
	logFieldLines            = "lines"
)

// TreeBuilder walks a directory depth-first and produces its rendered lines.
// A zero FileSystem reads the operating system filesystem and a nil Logger discards logs.
type TreeBuilder struct {
	FileSystem      afero.Fs
	Logger          *zap.Logger
	DirectoriesOnly bool
}

// NewTreeBuilder constructs a TreeBuilder over the provided filesystem.
func NewTreeBuilder(fileSystem afero.Fs, logger *zap.Logger, directoriesOnly bool) *TreeBuilder {
	return &TreeBuilder{
		FileSystem:      fileSystem,
		Logger:          logger,
		DirectoriesOnly: directoriesOnly,
	}
}

// treeGeneration holds the append-only output of a single Build call.
type treeGeneration struct {
	builder *TreeBuilder
	fs      afero.Fs
	logger  *zap.Logger
	lines   []string
}

// Build returns the header followed by the tree body for rootDirectoryPath.
// Any directory that cannot be read aborts the whole build.
func (treeBuilder *TreeBuilder) Build(rootDirectoryPath string) ([]string, error) {
	generation := &treeGeneration{
		builder: treeBuilder,
		fs:      treeBuilder.FileSystem,
		logger:  treeBuilder.Logger,
	}
	if generation.fs == nil {
		generation.fs = afero.NewOsFs()
	}
	if generation.logger == nil {
		generation.logger = zap.NewNop()
	}

	cleanRootPath := filepath.Clean(rootDirectoryPath)
	generation.appendHeader(cleanRootPath)
	if bodyError := generation.appendBody(cleanRootPath, ""); bodyError != nil {
		return nil, fmt.Errorf(errorBuildTreeFormat, rootDirectoryPath, bodyError)
	}

	generation.logger.Debug(logMessageTreeBuilt, zap.String(logFieldPath, cleanRootPath), zap.Int(logFieldLines, len(generation.lines)))
	return generation.lines, nil
}

func (generation *treeGeneration) appendHeader(rootDirectoryPath string) {
	generation.lines = append(generation.lines, directoryLabel(rootDirectoryPath), PipeGlyph)
}

func (generation *treeGeneration) appendBody(directoryPath string, prefix string) error {
	entries, listError := listEntries(generation.fs, directoryPath)
	if listError != nil {
		return listError
	}
	entries = selectEntries(entries, generation.builder.DirectoriesOnly)
	generation.logger.Debug(
		logMessageVisitDirectory,
		zap.String(logFieldPath, directoryPath),
		zap.String(logFieldPrefix, prefix),
		zap.Int(logFieldEntries, len(entries)),
	)

	for entryIndex, entry := range entries {
		isLast := entryIndex == len(entries)-1
		connector := BranchConnector
		if isLast {
			connector = TerminalConnector
		}
		if !entry.IsDir {
			generation.lines = append(generation.lines, prefix+connector+entry.Name)
			continue
		}
		if directoryError := generation.appendDirectory(entry, prefix, connector, isLast); directoryError != nil {
			return directoryError
		}
	}
	return nil
}

func (generation *treeGeneration) appendDirectory(entry Entry, prefix string, connector string, isLast bool) error {
	generation.lines = append(generation.lines, prefix+connector+directoryLabel(entry.Name))
	childPrefix := prefix + PipePrefix
	if isLast {
		childPrefix = prefix + SpacePrefix
	}
	if bodyError := generation.appendBody(entry.Path, childPrefix); bodyError != nil {
		return bodyError
	}
	generation.lines = append(generation.lines, childPrefix)
	return nil
}

func directoryLabel(name string) string {
	return name + PathSeparator
}
