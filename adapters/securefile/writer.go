package securefile

import (
	"fmt"
	"os"
)

// DefaultMode grants read and write to the owner only
const DefaultMode os.FileMode = 0o600

// WriteFile writes content to path, replacing any previous file content, and
// leaves the file with exactly the given mode. The explicit chmod covers
// files that already existed with wider permissions and the process umask.
func WriteFile(path string, content []byte, mode os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if err := f.Chmod(mode); err != nil {
		f.Close()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync %s: %w", path, err)
	}
	return f.Close()
}

// WritePassword stores a password followed by a newline
func WritePassword(path, password string, mode os.FileMode) error {
	return WriteFile(path, []byte(password+"\n"), mode)
}
