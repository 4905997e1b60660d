package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/zapswap/zapdeploy/internal/domain"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// LocksDir is where lock files live under the data directory
const LocksDir = "locks"

// FileLocker guards sessions on one machine with an advisory lock held on
// the lock file for the whole session. The kernel drops it when the holding
// process exits, so a crashed session never blocks the next run.
type FileLocker struct {
	dir string
}

// NewFileLocker creates a locker storing lock files under dataDir/locks
func NewFileLocker(dataDir string) *FileLocker {
	return &FileLocker{dir: filepath.Join(dataDir, LocksDir)}
}

// Describe returns the lock directory
func (l *FileLocker) Describe() string {
	return l.dir
}

// Acquire takes the lock for key without waiting, failing if another session holds it
func (l *FileLocker) Acquire(ctx context.Context, key, owner string) (usecase.SessionLease, error) {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create locks directory: %w", err)
	}

	path := filepath.Join(l.dir, lockFileName(key))
	fl := flock.New(path, flock.SetPermissions(0644))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}
	if !locked {
		holder, _ := os.ReadFile(path)
		return nil, fmt.Errorf("%w: %s held by %s", domain.ErrSessionLocked, key, describeHolder(holder))
	}

	// The lock file outlives sessions; only its content says who holds it
	if err := os.WriteFile(path, fmt.Appendf(nil, "pid=%d session=%s\n", os.Getpid(), owner), 0644); err != nil {
		_ = fl.Unlock()
		return nil, fmt.Errorf("failed to write lock file: %w", err)
	}

	return &fileLease{lock: fl}, nil
}

type fileLease struct {
	lock *flock.Flock
}

func (l *fileLease) Release(ctx context.Context) error {
	if !l.lock.Locked() {
		return nil
	}
	if err := os.Truncate(l.lock.Path(), 0); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear lock file: %w", err)
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock %s: %w", l.lock.Path(), err)
	}
	return nil
}

func describeHolder(content []byte) string {
	if holder := strings.TrimSpace(string(content)); holder != "" {
		return holder
	}
	return "another session"
}

func lockFileName(key string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_")
	return replacer.Replace(key) + ".lock"
}

// NoopLocker grants every lock; used when the lock backend is "none"
type NoopLocker struct{}

func (NoopLocker) Acquire(context.Context, string, string) (usecase.SessionLease, error) {
	return noopLease{}, nil
}

func (NoopLocker) Describe() string { return "disabled" }

type noopLease struct{}

func (noopLease) Release(context.Context) error { return nil }

var (
	_ usecase.SessionLocker = (*FileLocker)(nil)
	_ usecase.SessionLocker = NoopLocker{}
	_ usecase.Describer     = (*FileLocker)(nil)
	_ usecase.Describer     = NoopLocker{}
)
