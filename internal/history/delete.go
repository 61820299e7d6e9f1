package history

import (
	"context"

	"github.com/recallhq/recall/internal/errors"
	"github.com/recallhq/recall/internal/logger"
)

// Snapshots is the side cache of rendered conversation snapshots. Removal is
// best-effort everywhere it appears in the deletion workflow: a failure is
// logged and never blocks the store delete.
type Snapshots interface {
	Remove(id string) error
}

// DeleteResult reports the outcome of a bulk deletion.
type DeleteResult struct {
	Requested    int
	Deleted      int
	Failed       []string
	NavigateHome bool
}

// Partial reports whether some but not all requested deletions failed.
func (r DeleteResult) Partial() bool {
	return len(r.Failed) > 0 && r.Requested > 0
}

// Deleter runs the deletion workflow against an injected store and snapshot
// cache. activeID reports the currently open conversation so results can
// flag when the caller must navigate away from a deleted entry.
type Deleter struct {
	store     Store
	snapshots Snapshots
	activeID  func() string
}

// NewDeleter wires a Deleter. snapshots and activeID may be nil; a nil
// snapshot cache skips cache cleanup and a nil activeID disables the
// navigation flag.
func NewDeleter(store Store, snapshots Snapshots, activeID func() string) *Deleter {
	return &Deleter{
		store:     store,
		snapshots: snapshots,
		activeID:  activeID,
	}
}

// DeleteMany deletes the given conversations one at a time, in order. Each
// step first drops the conversation's snapshot from the side cache, then
// deletes from the store; a store failure is recorded and the loop moves on.
// With no store or an empty list the result is zero-valued and nothing is
// attempted.
func (d *Deleter) DeleteMany(ctx context.Context, convs []Conversation) DeleteResult {
	if d.store == nil || len(convs) == 0 {
		return DeleteResult{}
	}

	result := DeleteResult{Requested: len(convs)}
	active := d.currentID()

	for _, c := range convs {
		d.removeSnapshot(c.ID)

		if err := d.store.Delete(ctx, c.ID); err != nil {
			logger.Warn("delete failed for conversation %s: %v", c.ID, err)
			result.Failed = append(result.Failed, c.ID)
			continue
		}

		result.Deleted++
		if active != "" && c.ID == active {
			result.NavigateHome = true
		}
	}

	return result
}

// DeleteOne deletes a single conversation. It returns whether the caller
// should navigate away (the deleted conversation was the active one) and the
// store error, if any. Unlike DeleteMany, a missing store is an error here:
// the caller asked for exactly one deletion and has to hear that it did not
// happen. The snapshot cache is cleaned up first either way.
func (d *Deleter) DeleteOne(ctx context.Context, conv Conversation) (navigate bool, err error) {
	if d.store == nil {
		return false, errors.StoreUnavailable(errors.Op("history.DeleteOne"), nil)
	}

	d.removeSnapshot(conv.ID)

	if err := d.store.Delete(ctx, conv.ID); err != nil {
		return false, err
	}
	return conv.ID == d.currentID() && conv.ID != "", nil
}

// removeSnapshot is the try-log-continue step of the workflow. It never
// reports failure to the caller.
func (d *Deleter) removeSnapshot(id string) {
	if d.snapshots == nil {
		return
	}
	if err := d.snapshots.Remove(id); err != nil {
		logger.Warn("snapshot removal failed for conversation %s: %v", id, err)
	}
}

func (d *Deleter) currentID() string {
	if d.activeID == nil {
		return ""
	}
	return d.activeID()
}
