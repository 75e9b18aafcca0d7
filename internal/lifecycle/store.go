package lifecycle

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrNoSnapshot is returned when no snapshot exists for a cluster.
// Resume treats this as fatal: no snapshot means no resume path.
var ErrNoSnapshot = errors.New("no snapshot found")

// Store persists snapshots as one JSON document per cluster name.
// A file lock serializes concurrent invocations touching the same cluster.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created lazily
// on first save.
func NewStore(dir string) *Store {
	return &Store{dir: filepath.Join(dir, "snapshots")}
}

// Path returns the snapshot file path for a cluster.
func (s *Store) Path(cluster string) string {
	return filepath.Join(s.dir, cluster+".json")
}

func (s *Store) lockPath(cluster string) string {
	return filepath.Join(s.dir, cluster+".lock")
}

// Save writes the snapshot for its cluster, replacing any previous one.
// The write goes through a temp file and rename so a crashed invocation
// cannot leave a torn snapshot behind.
func (s *Store) Save(snap *Snapshot) error {
	if snap.Cluster == "" {
		return fmt.Errorf("snapshot has no cluster name")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	lock := flock.New(s.lockPath(snap.Cluster))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock snapshot for %s: %w", snap.Cluster, err)
	}
	defer lock.Unlock() //nolint:errcheck

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp := s.Path(snap.Cluster) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.Path(snap.Cluster)); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot for a cluster. Returns ErrNoSnapshot if none
// exists.
func (s *Store) Load(cluster string) (*Snapshot, error) {
	lock := flock.New(s.lockPath(cluster))
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("failed to lock snapshot for %s: %w", cluster, err)
	}
	defer lock.Unlock() //nolint:errcheck

	data, err := os.ReadFile(s.Path(cluster))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w for cluster %s", ErrNoSnapshot, cluster)
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Cluster != cluster {
		return nil, fmt.Errorf("snapshot at %s belongs to cluster %q, not %q", s.Path(cluster), snap.Cluster, cluster)
	}
	return &snap, nil
}

// Exists reports whether a snapshot is present for the cluster.
func (s *Store) Exists(cluster string) bool {
	_, err := os.Stat(s.Path(cluster))
	return err == nil
}

// Delete removes the snapshot for a cluster. Missing snapshots are not an
// error; teardown calls this unconditionally.
func (s *Store) Delete(cluster string) error {
	err := os.Remove(s.Path(cluster))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	_ = os.Remove(s.lockPath(cluster))
	return nil
}
