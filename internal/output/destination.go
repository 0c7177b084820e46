package output

// DestinationKind identifies where a rendered tree is written.
type DestinationKind int

const (
	// DestinationConsole writes to the console writer without fences.
	DestinationConsole DestinationKind = iota
	// DestinationFile writes a fenced tree to a file.
	DestinationFile
)

const consoleDestinationName = "console"

// Destination is either the console or a file path.
type Destination struct {
	kind     DestinationKind
	filePath string
}

// Console returns the console destination.
func Console() Destination {
	return Destination{kind: DestinationConsole}
}

// File returns a destination writing to filePath.
func File(filePath string) Destination {
	return Destination{kind: DestinationFile, filePath: filePath}
}

// DestinationFor maps an optional output path to a destination; an empty path selects the console.
func DestinationFor(filePath string) Destination {
	if filePath == "" {
		return Console()
	}
	return File(filePath)
}

// Kind reports the destination kind.
func (destination Destination) Kind() DestinationKind {
	return destination.kind
}

// FilePath returns the file path and whether the destination is a file.
func (destination Destination) FilePath() (string, bool) {
	return destination.filePath, destination.kind == DestinationFile
}

func (destination Destination) String() string {
	if destination.kind == DestinationFile {
		return destination.filePath
	}
	return consoleDestinationName
}
