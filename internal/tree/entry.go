package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// errorReadDirectoryFormat is used when a directory cannot be listed.
const errorReadDirectoryFormat = "reading directory %s: %w"

// Entry is one child returned by listing a directory.
// IsFile is true only for regular files, so FIFOs, sockets, devices and
// dangling links are neither directories nor files.
type Entry struct {
	Name   string
	Path   string
	IsDir  bool
	IsFile bool
}

// listEntries returns the immediate children of directoryPath in listing order.
// Symbolic links are classified by their target.
func listEntries(fileSystem afero.Fs, directoryPath string) ([]Entry, error) {
	fileInformations, readDirectoryError := afero.ReadDir(fileSystem, directoryPath)
	if readDirectoryError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, directoryPath, readDirectoryError)
	}

	entries := make([]Entry, 0, len(fileInformations))
	for _, fileInformation := range fileInformations {
		entryPath := filepath.Join(directoryPath, fileInformation.Name())
		entryMode := resolveMode(fileSystem, entryPath, fileInformation)
		entries = append(entries, Entry{
			Name:   fileInformation.Name(),
			Path:   entryPath,
			IsDir:  entryMode.IsDir(),
			IsFile: entryMode.IsRegular(),
		})
	}
	return entries, nil
}

// resolveMode returns the mode of the entry, following symbolic links.
// A dangling link keeps its link mode.
func resolveMode(fileSystem afero.Fs, entryPath string, fileInformation os.FileInfo) os.FileMode {
	if fileInformation.Mode()&os.ModeSymlink == 0 {
		return fileInformation.Mode()
	}
	targetInformation, statError := fileSystem.Stat(entryPath)
	if statError != nil {
		return fileInformation.Mode()
	}
	return targetInformation.Mode()
}

// selectEntries applies dir-only filtering or the stable ordering that moves
// regular files after every other entry.
func selectEntries(entries []Entry, directoriesOnly bool) []Entry {
	if directoriesOnly {
		directories := make([]Entry, 0, len(entries))
		for _, entry := range entries {
			if entry.IsDir {
				directories = append(directories, entry)
			}
		}
		return directories
	}
	sort.SliceStable(entries, func(leftIndex, rightIndex int) bool {
		return !entries[leftIndex].IsFile && entries[rightIndex].IsFile
	})
	return entries
}
