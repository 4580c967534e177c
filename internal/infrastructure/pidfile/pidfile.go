package pidfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// AlreadyRunningError reports the process that holds the lock
type AlreadyRunningError struct {
	PID int
}

func (e *AlreadyRunningError) Error() string {
	return fmt.Sprintf("another tracker is already watching the journal (PID %d)", e.PID)
}

// PIDFile keeps a single watcher per data directory, so only one process
// ever writes the facility store and carrier ledger.
type PIDFile struct {
	path string
}

// New creates a PID file manager for path
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Path returns the lock file location
func (p *PIDFile) Path() string {
	return p.path
}

// Acquire records this process as the owner. A file left behind by a dead
// process, or one that does not hold a PID, is replaced.
func (p *PIDFile) Acquire() error {
	if pid, ok := p.Owner(); ok && pid != os.Getpid() && isProcessRunning(pid) {
		return &AlreadyRunningError{PID: pid}
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create PID file directory: %w", err)
	}
	if err := os.WriteFile(p.path, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0o644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Owner returns the PID recorded in the file, if any
func (p *PIDFile) Owner() (int, bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// Release removes the PID file if this process owns it
func (p *PIDFile) Release() error {
	if pid, ok := p.Owner(); ok && pid != os.Getpid() {
		return nil
	}
	if err := os.Remove(p.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// isProcessRunning probes pid with signal 0. Platforms that cannot deliver
// it report the process as gone.
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	// EPERM: exists, owned by someone else
	return errors.Is(err, syscall.EPERM)
}
