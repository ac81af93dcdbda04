package core

// workspace.go holds the per-session state: a display name, the uploaded
// files in upload order, and each file's options. Nothing here is written
// to disk; idle workspaces are evicted by the janitor.

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FileState is a snapshot of one uploaded file and its options.
type FileState struct {
	File    UploadedFile
	Options FileOptions
}

// Workspace is one session's set of uploaded files.
type Workspace struct {
	ID string

	mu       sync.Mutex
	name     string
	files    []FileState
	maxFiles int
	lastSeen time.Time
}

// Name returns the display name.
func (w *Workspace) Name() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.name
}

// SetName sets the display name.
func (w *Workspace) SetName(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.name = name
}

// Add appends files with default options. Either every file is added or,
// when the workspace would exceed its limit, none is.
func (w *Workspace) Add(files ...UploadedFile) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.maxFiles > 0 && len(w.files)+len(files) > w.maxFiles {
		return fmt.Errorf("%w: limit is %d", ErrTooManyFiles, w.maxFiles)
	}
	for _, f := range files {
		w.files = append(w.files, FileState{File: f, Options: DefaultOptions()})
	}
	return nil
}

// Remove drops a file.
func (w *Workspace) Remove(fileID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.indexLocked(fileID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrFileNotFound, fileID)
	}
	w.files = slices.Delete(w.files, i, i+1)
	return nil
}

// Files returns a snapshot of every file in upload order.
func (w *Workspace) Files() []FileState {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]FileState, len(w.files))
	for i, fs := range w.files {
		out[i] = fs
		out[i].Options.Columns = slices.Clone(fs.Options.Columns)
	}
	return out
}

// File returns a snapshot of one file.
func (w *Workspace) File(fileID string) (FileState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.indexLocked(fileID)
	if i < 0 {
		return FileState{}, fmt.Errorf("%w: %s", ErrFileNotFound, fileID)
	}
	fs := w.files[i]
	fs.Options.Columns = slices.Clone(fs.Options.Columns)
	return fs, nil
}

// Update applies fn to a file's options under the workspace lock.
func (w *Workspace) Update(fileID string, fn func(*FileOptions)) (FileOptions, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.indexLocked(fileID)
	if i < 0 {
		return FileOptions{}, fmt.Errorf("%w: %s", ErrFileNotFound, fileID)
	}
	fn(&w.files[i].Options)
	return w.files[i].Options, nil
}

// Len returns the number of files.
func (w *Workspace) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.files)
}

func (w *Workspace) indexLocked(fileID string) int {
	return slices.IndexFunc(w.files, func(fs FileState) bool {
		return fs.File.ID == fileID
	})
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

func (w *Workspace) idleSince(now time.Time) time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return now.Sub(w.lastSeen)
}

// Store keeps every live workspace in memory.
type Store struct {
	ttl      time.Duration
	maxFiles int
	now      func() time.Time

	mu         sync.RWMutex
	workspaces map[string]*Workspace
}

// NewStore creates a store whose workspaces expire after ttl without use
// and hold at most maxFiles files (no limit when maxFiles <= 0).
func NewStore(ttl time.Duration, maxFiles int) *Store {
	return &Store{
		ttl:        ttl,
		maxFiles:   maxFiles,
		now:        time.Now,
		workspaces: make(map[string]*Workspace),
	}
}

// Create starts a new, empty workspace.
func (s *Store) Create() *Workspace {
	w := &Workspace{
		ID:       uuid.NewString(),
		maxFiles: s.maxFiles,
		lastSeen: s.now(),
	}

	s.mu.Lock()
	s.workspaces[w.ID] = w
	s.mu.Unlock()
	return w
}

// Get returns a live workspace and marks it used.
func (s *Store) Get(id string) (*Workspace, error) {
	s.mu.RLock()
	w, ok := s.workspaces[id]
	s.mu.RUnlock()

	now := s.now()
	if !ok || s.expired(w, now) {
		return nil, fmt.Errorf("%w: %s", ErrWorkspaceNotFound, id)
	}
	w.touch(now)
	return w, nil
}

// GetOrCreate returns the workspace for id, or a new one when id is
// unknown or expired. created reports which happened.
func (s *Store) GetOrCreate(id string) (w *Workspace, created bool) {
	if id != "" {
		if w, err := s.Get(id); err == nil {
			return w, false
		}
	}
	return s.Create(), true
}

// Delete drops a workspace.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.workspaces, id)
	s.mu.Unlock()
}

// Len returns the number of workspaces held, expired ones included until
// the next Sweep.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workspaces)
}

// Sweep evicts expired workspaces and returns how many were removed.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, w := range s.workspaces {
		if s.expired(w, now) {
			delete(s.workspaces, id)
			removed++
		}
	}
	return removed
}

func (s *Store) expired(w *Workspace, now time.Time) bool {
	return s.ttl > 0 && w.idleSince(now) > s.ttl
}

// StartJanitor sweeps expired workspaces every interval until ctx is
// cancelled. onSweep, when non-nil, receives the number of live workspaces
// after each sweep.
func (s *Store) StartJanitor(ctx context.Context, interval time.Duration, onSweep func(live int)) {
	slog.Info("workspace janitor started", "interval", interval, "ttl", s.ttl)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("workspace janitor stopped")
			return
		case <-ticker.C:
			start := time.Now()
			removed := s.Sweep()
			live := s.Len()
			if removed > 0 {
				slog.Info("evicted idle workspaces",
					"removed", removed,
					"live", live,
					"duration_ms", time.Since(start).Milliseconds(),
				)
			}
			if onSweep != nil {
				onSweep(live)
			}
		}
	}
}
