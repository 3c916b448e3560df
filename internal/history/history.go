// ABOUTME: Conversion of push outcomes into history records.
// ABOUTME: Keeps credentials out of persisted rows and logs attempts.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/harper/gitpush/internal/db"
	"github.com/harper/gitpush/internal/pusher"
)

// RecordFromOutcome converts a Push outcome into a database record.
// Only the tool, destination, and captured output are kept.
func RecordFromOutcome(r *pusher.Runner, res *pusher.Result, pushErr error) db.RunRecord {
	rec := db.RunRecord{
		Remote: pusher.Remote,
		Branch: pusher.Branch,
	}
	if r != nil {
		rec.Tool = r.Tool
		rec.Dir = r.Dir
	}

	if pushErr != nil || res == nil {
		rec.RunID = uuid.New().String()
		rec.StartedAt = time.Now()
		if pushErr != nil {
			rec.LaunchError = pushErr.Error()
		} else {
			rec.LaunchError = "no result"
		}
		return rec
	}

	code := res.ExitCode
	rec.RunID = res.RunID
	if rec.RunID == "" {
		rec.RunID = uuid.New().String()
	}
	rec.ExitCode = &code
	rec.Stdout = res.Stdout
	rec.Stderr = res.Stderr
	rec.StartedAt = res.StartedAt
	rec.DurationMS = res.Duration.Milliseconds()
	return rec
}

// Log converts and saves a single push outcome.
func Log(ctx context.Context, store *db.Store, r *pusher.Runner, res *pusher.Result, pushErr error) (db.RunRecord, error) {
	if store == nil {
		return db.RunRecord{}, errors.New("history store is nil")
	}
	rec := RecordFromOutcome(r, res, pushErr)
	return rec, store.LogRun(ctx, rec)
}
