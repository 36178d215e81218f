package host

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Local implements Host for the CLI: files land in a configured directory,
// clipboard content is written to an io.Writer (stdout by default), and
// notifications go to the logger.
type Local struct {
	// Dir is the directory artifacts are saved into. Empty means the
	// current working directory.
	Dir       string
	Clipboard io.Writer
	Logger    *slog.Logger
}

var _ Host = (*Local)(nil)

// NewLocal creates a Local host writing clipboard content to stdout.
func NewLocal(dir string, logger *slog.Logger) *Local {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Local{Dir: dir, Clipboard: os.Stdout, Logger: logger}
}

// SaveFile writes the artifact into Dir, creating the directory if needed.
func (l *Local) SaveFile(_ context.Context, suggestedName string, content []byte) error {
	dir := l.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, suggestedName)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	l.Logger.Info("artifact saved", "path", path, "bytes", len(content))
	return nil
}

// CopyToClipboard writes the content to the configured writer. The CLI has
// no real clipboard; stdout lets the operator pipe the report anywhere.
func (l *Local) CopyToClipboard(_ context.Context, content string) error {
	if _, err := io.WriteString(l.Clipboard, content); err != nil {
		return fmt.Errorf("write clipboard content: %w", err)
	}
	return nil
}

// ShowNotification logs the notification at a level matching its type.
func (l *Local) ShowNotification(_ context.Context, n Notification) error {
	if n.Type == NotifyError {
		l.Logger.Error(n.Title, "detail", n.Body)
	} else {
		l.Logger.Info(n.Title, "detail", n.Body)
	}
	return nil
}
