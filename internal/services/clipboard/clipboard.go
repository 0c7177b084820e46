// Package clipboard provides access to the system clipboard.
package clipboard

import (
	"strings"

	"github.com/atotto/clipboard"
)

const lineSeparator = "\n"

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a clipboard service.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// CopyLines joins lines with newlines, terminating the last one, and copies the result.
func CopyLines(copier Copier, lines []string) error {
	return copier.Copy(strings.Join(lines, lineSeparator) + lineSeparator)
}

var _ Copier = (*Service)(nil)
