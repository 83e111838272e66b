// Package backup writes a point-in-time JSON snapshot of every collection to
// object storage.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/studyhub/studyhub/backend/go-services/internal/doubt"
	"github.com/studyhub/studyhub/backend/go-services/internal/note"
	"github.com/studyhub/studyhub/backend/go-services/internal/timetable"
	"github.com/studyhub/studyhub/backend/go-services/pkg/logger"
)

const (
	SnapshotVersion = 1
	KeyPrefix       = "snapshots/"
)

// ObjectStore is the part of the storage layer a backup needs.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

type NoteSource interface {
	List(ctx context.Context) ([]*note.Note, error)
}

type DoubtSource interface {
	List(ctx context.Context) ([]*doubt.Doubt, error)
}

type TimetableSource interface {
	ListAll(ctx context.Context) ([]*timetable.Timetable, error)
}

// Snapshot is the document written to storage.
type Snapshot struct {
	Version    int                    `json:"version"`
	CreatedAt  time.Time              `json:"createdAt"`
	Notes      []*note.Note           `json:"notes"`
	Doubts     []*doubt.Doubt         `json:"doubts"`
	Timetables []*timetable.Timetable `json:"timetables"`
}

// Result describes a written snapshot.
type Result struct {
	Key        string
	Size       int64
	URL        string
	Notes      int
	Doubts     int
	Timetables int
}

type Runner struct {
	Store      ObjectStore
	Notes      NoteSource
	Doubts     DoubtSource
	Timetables TimetableSource
	// URLExpiry is how long the returned download link stays valid. Zero
	// skips presigning.
	URLExpiry time.Duration
	now       func() time.Time
}

// Run collects all entities, uploads them as one JSON object and returns
// where it went.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	now := time.Now().UTC()
	if r.now != nil {
		now = r.now()
	}

	snap := Snapshot{Version: SnapshotVersion, CreatedAt: now}
	var err error
	if snap.Notes, err = r.Notes.List(ctx); err != nil {
		return nil, fmt.Errorf("snapshot notes: %w", err)
	}
	if snap.Doubts, err = r.Doubts.List(ctx); err != nil {
		return nil, fmt.Errorf("snapshot doubts: %w", err)
	}
	if snap.Timetables, err = r.Timetables.ListAll(ctx); err != nil {
		return nil, fmt.Errorf("snapshot timetables: %w", err)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	key := ObjectKey(now)
	if err := r.Store.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), "application/json"); err != nil {
		return nil, err
	}
	res := &Result{
		Key:        key,
		Size:       int64(len(data)),
		Notes:      len(snap.Notes),
		Doubts:     len(snap.Doubts),
		Timetables: len(snap.Timetables),
	}
	if r.URLExpiry > 0 {
		if res.URL, err = r.Store.PresignedURL(ctx, key, r.URLExpiry); err != nil {
			return nil, err
		}
	}
	logger.L().Info().Str("key", key).Int64("bytes", res.Size).
		Int("notes", res.Notes).Int("doubts", res.Doubts).Int("timetables", res.Timetables).
		Msg("snapshot written")
	return res, nil
}

// ObjectKey names a snapshot taken at t. Keys sort by time; the random
// suffix keeps two snapshots in the same second apart.
func ObjectKey(t time.Time) string {
	return fmt.Sprintf("%sstudyhub-%s-%s.json", KeyPrefix, t.UTC().Format("20060102T150405Z"), uuid.NewString()[:8])
}
