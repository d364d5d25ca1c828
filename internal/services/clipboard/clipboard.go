// Package clipboard copies manifest text to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard utility is installed.
var ErrUnavailable = errors.New("system clipboard is unavailable")

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
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if writeError := clipboard.WriteAll(text); writeError != nil {
		return fmt.Errorf("copy to clipboard: %w", writeError)
	}
	return nil
}

var _ Copier = (*Service)(nil)
