// Package output writes rendered tree lines to the console or to a file.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	// DefaultFence is the Markdown code fence wrapping file output.
	DefaultFence = "```"

	outputFilePermissions = 0o644
	lineTerminator        = "\n"

	// errorOpenOutputFormat is used when the output file cannot be opened.
	errorOpenOutputFormat = "opening output file %s: %w"
	// errorWriteOutputFormat is used when writing lines fails.
	errorWriteOutputFormat = "writing tree to %s: %w"
	// errorCloseOutputFormat is used when the output file cannot be closed.
	errorCloseOutputFormat = "closing output file %s: %w"

	logMessageTreeWritten = "tree written"
	logFieldDestination   = "destination"
	logFieldLines         = "lines"
)

// TreeWriter emits rendered lines to a Destination.
// A nil FileSystem uses the operating system, a nil Console uses standard output,
// an empty Fence uses DefaultFence and a nil Logger discards logs.
type TreeWriter struct {
	FileSystem afero.Fs
	Console    io.Writer
	Logger     *zap.Logger
	Fence      string
}

// NewTreeWriter constructs a TreeWriter.
func NewTreeWriter(fileSystem afero.Fs, console io.Writer, logger *zap.Logger) *TreeWriter {
	return &TreeWriter{
		FileSystem: fileSystem,
		Console:    console,
		Logger:     logger,
		Fence:      DefaultFence,
	}
}

// Write emits lines to destination. File destinations are created or truncated and
// the lines are wrapped in fences; the file is closed even when a write fails.
func (treeWriter *TreeWriter) Write(lines []string, destination Destination) error {
	filePath, isFile := destination.FilePath()
	var writeError error
	if isFile {
		writeError = treeWriter.writeFile(Wrap(lines, treeWriter.fence()), filePath)
	} else {
		writeError = writeLines(treeWriter.console(), lines)
		if writeError != nil {
			writeError = fmt.Errorf(errorWriteOutputFormat, destination, writeError)
		}
	}
	if writeError != nil {
		return writeError
	}
	treeWriter.logger().Debug(logMessageTreeWritten, zap.Stringer(logFieldDestination, destination), zap.Int(logFieldLines, len(lines)))
	return nil
}

func (treeWriter *TreeWriter) writeFile(lines []string, filePath string) (err error) {
	// #nosec G304
	fileHandle, openError := treeWriter.fileSystem().OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, outputFilePermissions)
	if openError != nil {
		return fmt.Errorf(errorOpenOutputFormat, filePath, openError)
	}
	defer func() {
		if closeError := fileHandle.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(errorCloseOutputFormat, filePath, closeError)
		}
	}()
	if writeError := writeLines(fileHandle, lines); writeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, filePath, writeError)
	}
	return nil
}

func writeLines(writer io.Writer, lines []string) error {
	bufferedWriter := bufio.NewWriter(writer)
	for _, line := range lines {
		if _, writeError := bufferedWriter.WriteString(line + lineTerminator); writeError != nil {
			return writeError
		}
	}
	return bufferedWriter.Flush()
}

// Wrap returns a copy of lines surrounded by fence lines.
func Wrap(lines []string, fence string) []string {
	wrapped := make([]string, 0, len(lines)+2)
	wrapped = append(wrapped, fence)
	wrapped = append(wrapped, lines...)
	return append(wrapped, fence)
}

// Unwrap strips the fence lines added by Wrap. It reports false when lines are not fenced.
func Unwrap(lines []string, fence string) ([]string, bool) {
	if len(lines) < 2 || lines[0] != fence || lines[len(lines)-1] != fence {
		return nil, false
	}
	return append([]string{}, lines[1:len(lines)-1]...), true
}

func (treeWriter *TreeWriter) fileSystem() afero.Fs {
	if treeWriter.FileSystem == nil {
		return afero.NewOsFs()
	}
	return treeWriter.FileSystem
}

func (treeWriter *TreeWriter) console() io.Writer {
	if treeWriter.Console == nil {
		return os.Stdout
	}
	return treeWriter.Console
}

func (treeWriter *TreeWriter) fence() string {
	if treeWriter.Fence == "" {
		return DefaultFence
	}
	return treeWriter.Fence
}

func (treeWriter *TreeWriter) logger() *zap.Logger {
	if treeWriter.Logger == nil {
		return zap.NewNop()
	}
	return treeWriter.Logger
}
