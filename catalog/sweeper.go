package catalog

import (
	"context"
	"time"

	"productconsole/logger"
)

// DefaultSweepGrace keeps fresh blobs whose metadata may still be in flight.
const DefaultSweepGrace = 10 * time.Minute

// Sweeper removes stored blobs that no file metadata references.
type Sweeper struct {
	store *Store
	blobs *BlobStore
	grace time.Duration
	now   func() time.Time
}

// NewSweeper builds a Sweeper. A non-positive grace selects DefaultSweepGrace.
func NewSweeper(store *Store, blobs *BlobStore, grace time.Duration) *Sweeper {
	if grace <= 0 {
		grace = DefaultSweepGrace
	}
	return &Sweeper{store: store, blobs: blobs, grace: grace, now: time.Now}
}

// Run performs one sweep and reports how many blobs were removed.
func (s *Sweeper) Run(ctx context.Context) (int, error) {
	referenced, err := s.store.StoragePaths(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-s.grace)
	removed := 0
	err = s.blobs.Walk(func(storagePath string, modTime time.Time) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := referenced[storagePath]; ok || modTime.After(cutoff) {
			return nil
		}
		if err := s.blobs.Remove(storagePath); err != nil {
			logger.WithFields(map[string]interface{}{
				"path":  storagePath,
				"error": err.Error(),
			}).Warn("Failed to remove orphan blob")
			return nil
		}
		removed++
		return nil
	})

	if removed > 0 {
		logger.WithFields(map[string]interface{}{"removed": removed}).Info("Orphan blobs swept")
	}
	return removed, err
}

// Job adapts Run to the scheduler's job signature.
func (s *Sweeper) Job(ctx context.Context) error {
	_, err := s.Run(ctx)
	return err
}
