package logging

import (
	"os"
	"path/filepath"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
)

// DefaultLogDir returns ~/.hanzi/logs, or a temp directory when the home
// directory is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".hanzi", "logs")
	}
	return filepath.Join(home, ".hanzi", "logs")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "hanzi.log")
}

// FindLogFile returns explicit when it exists, otherwise the default log.
func FindLogFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", herrors.New(herrors.ErrCodeNotFound, "log file not found: "+explicit, err)
		}
		return explicit, nil
	}

	path := DefaultLogPath()
	if _, err := os.Stat(path); err != nil {
		return "", herrors.New(herrors.ErrCodeNotFound, "no log file found at "+path, err).
			WithSuggestion("run a command with --debug first, e.g. `hanzi --debug stats`")
	}
	return path, nil
}
