package output_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/temirov/tree/internal/output"
)

const outputFilePath = "/out/tree.md"

var sampleLines = []string{"a/", "│", "├── b/", "│   ", "└── x.txt"}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

// failingWriteFile rejects every write and records whether it was closed.
type failingWriteFile struct {
	afero.File
	closed *bool
}

func (file failingWriteFile) Write([]byte) (int, error) {
	return 0, errors.New("device disconnected")
}

func (file failingWriteFile) WriteString(string) (int, error) {
	return 0, errors.New("device disconnected")
}

func (file failingWriteFile) Close() error {
	*file.closed = true
	return file.File.Close()
}

// failingWriteFs opens real files whose writes fail.
type failingWriteFs struct {
	afero.Fs
	closed bool
}

func (fileSystem *failingWriteFs) OpenFile(name string, flag int, permissions os.FileMode) (afero.File, error) {
	file, openError := fileSystem.Fs.OpenFile(name, flag, permissions)
	if openError != nil {
		return nil, openError
	}
	return failingWriteFile{File: file, closed: &fileSystem.closed}, nil
}

func TestTreeWriterConsoleWritesLinesWithoutFences(t *testing.T) {
	var console bytes.Buffer
	writer := output.NewTreeWriter(afero.NewMemMapFs(), &console, zaptest.NewLogger(t))

	require.NoError(t, writer.Write(sampleLines, output.Console()))

	assert.Equal(t, strings.Join(sampleLines, "\n")+"\n", console.String())
}

func TestTreeWriterFileWrapsLinesInFences(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.NoError(t, fileSystem.MkdirAll("/out", 0o755))
	var console bytes.Buffer
	writer := output.NewTreeWriter(fileSystem, &console, nil)

	require.NoError(t, writer.Write(sampleLines, output.File(outputFilePath)))

	written, readError := afero.ReadFile(fileSystem, outputFilePath)
	require.NoError(t, readError)
	expected := "```\n" + strings.Join(sampleLines, "\n") + "\n```\n"
	assert.Equal(t, expected, string(written))
	assert.Empty(t, console.String())
}

func TestTreeWriterFileTruncatesExistingContent(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fileSystem, outputFilePath, []byte(strings.Repeat("stale\n", 100)), 0o644))
	writer := output.NewTreeWriter(fileSystem, nil, nil)

	require.NoError(t, writer.Write([]string{"a/", "│"}, output.File(outputFilePath)))

	written, readError := afero.ReadFile(fileSystem, outputFilePath)
	require.NoError(t, readError)
	assert.Equal(t, "```\na/\n│\n```\n", string(written))
}

func TestTreeWriterCustomFence(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	writer := &output.TreeWriter{FileSystem: fileSystem, Fence: "~~~"}

	require.NoError(t, writer.Write([]string{"a/"}, output.File(outputFilePath)))

	written, readError := afero.ReadFile(fileSystem, outputFilePath)
	require.NoError(t, readError)
	assert.Equal(t, "~~~\na/\n~~~\n", string(written))
}

func TestTreeWriterFileOpenFailure(t *testing.T) {
	writer := output.NewTreeWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()), nil, nil)

	writeError := writer.Write(sampleLines, output.File(outputFilePath))

	require.Error(t, writeError)
	assert.Contains(t, writeError.Error(), outputFilePath)
}

func TestTreeWriterFileWriteFailureStillCloses(t *testing.T) {
	memoryFileSystem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memoryFileSystem, outputFilePath, []byte("stale\n"), 0o644))
	fileSystem := &failingWriteFs{Fs: memoryFileSystem}
	writer := output.NewTreeWriter(fileSystem, nil, nil)

	writeError := writer.Write(sampleLines, output.File(outputFilePath))

	require.Error(t, writeError)
	assert.Contains(t, writeError.Error(), outputFilePath)
	assert.Contains(t, writeError.Error(), "device disconnected")
	assert.True(t, fileSystem.closed)
	written, readError := afero.ReadFile(memoryFileSystem, outputFilePath)
	require.NoError(t, readError)
	assert.Empty(t, written)
}

func TestTreeWriterConsoleWriteFailure(t *testing.T) {
	writer := output.NewTreeWriter(nil, failingWriter{}, nil)

	writeError := writer.Write(sampleLines, output.Console())

	require.Error(t, writeError)
	assert.Contains(t, writeError.Error(), "disk full")
}

func TestWrapUnwrapRoundTrip(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	var console bytes.Buffer
	writer := output.NewTreeWriter(fileSystem, &console, nil)

	require.NoError(t, writer.Write(sampleLines, output.Console()))
	require.NoError(t, writer.Write(sampleLines, output.File(outputFilePath)))

	written, readError := afero.ReadFile(fileSystem, outputFilePath)
	require.NoError(t, readError)
	fileLines := strings.Split(strings.TrimSuffix(string(written), "\n"), "\n")
	unwrapped, fenced := output.Unwrap(fileLines, output.DefaultFence)
	require.True(t, fenced)

	consoleLines := strings.Split(strings.TrimSuffix(console.String(), "\n"), "\n")
	assert.Equal(t, consoleLines, unwrapped)
}

func TestUnwrapRejectsUnfencedLines(t *testing.T) {
	testCases := []struct {
		name  string
		lines []string
	}{
		{name: "empty", lines: nil},
		{name: "single_fence", lines: []string{output.DefaultFence}},
		{name: "missing_closing_fence", lines: []string{output.DefaultFence, "a/"}},
		{name: "plain_lines", lines: sampleLines},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			unwrapped, fenced := output.Unwrap(testCase.lines, output.DefaultFence)
			assert.False(t, fenced)
			assert.Nil(t, unwrapped)
		})
	}
}

func TestDestinationFor(t *testing.T) {
	consoleDestination := output.DestinationFor("")
	assert.Equal(t, output.DestinationConsole, consoleDestination.Kind())
	_, isFile := consoleDestination.FilePath()
	assert.False(t, isFile)
	assert.Equal(t, "console", consoleDestination.String())

	fileDestination := output.DestinationFor(outputFilePath)
	assert.Equal(t, output.DestinationFile, fileDestination.Kind())
	filePath, isFile := fileDestination.FilePath()
	assert.True(t, isFile)
	assert.Equal(t, outputFilePath, filePath)
}
