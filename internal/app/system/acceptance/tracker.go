// Package acceptance tracks which of a mentor's accepted events are new
// since the viewer last looked.
//
// The tracker holds no server-side state. On every recomputation it loads
// the viewer's persisted snapshot, diffs it against the current accepted
// set, overwrites the snapshot with the current set, and hands the delta
// to the caller. Clearing the snapshot externally resets the tracker:
// the next recomputation treats everything currently accepted as new.
package acceptance

import (
	"net/http"

	"github.com/dalemusser/mentorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Tracker computes per-viewer newly-accepted event deltas.
type Tracker struct {
	snapshots *SnapshotStore
	logger    *zap.Logger
}

// NewTracker constructs a Tracker over the given snapshot store.
func NewTracker(snapshots *SnapshotStore, logger *zap.Logger) *Tracker {
	return &Tracker{snapshots: snapshots, logger: logger}
}

// Result holds the newly-accepted event IDs from one recomputation.
// Clear removes entries from the in-memory result only; the persisted
// snapshot already reflects the full current accepted set.
type Result struct {
	newlyAccepted map[primitive.ObjectID]struct{}
}

// IsNew reports whether eventID became accepted since the viewer's last
// observation.
func (res *Result) IsNew(eventID primitive.ObjectID) bool {
	if res == nil {
		return false
	}
	_, ok := res.newlyAccepted[eventID]
	return ok
}

// Clear removes a single event from the result. It does not rewrite the
// persisted snapshot.
func (res *Result) Clear(eventID primitive.ObjectID) {
	if res == nil {
		return
	}
	delete(res.newlyAccepted, eventID)
}

// Len returns how many events are currently marked new.
func (res *Result) Len() int {
	if res == nil {
		return 0
	}
	return len(res.newlyAccepted)
}

// Recompute diffs the viewer's current accepted set against the persisted
// snapshot and overwrites the snapshot with the current set.
//
// Only mentors get notifications; for any other role Recompute is a no-op
// returning an empty result and leaves the snapshot untouched. A viewer
// with no snapshot (cold start) sees every currently accepted event as
// new.
func (t *Tracker) Recompute(w http.ResponseWriter, r *http.Request, role string, viewerID primitive.ObjectID, currentAccepted []primitive.ObjectID) *Result {
	if role != models.RoleMentor {
		return &Result{newlyAccepted: map[primitive.ObjectID]struct{}{}}
	}

	previous, _ := t.snapshots.Load(r, viewerID)
	seen := make(map[primitive.ObjectID]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}

	newly := make(map[primitive.ObjectID]struct{})
	for _, id := range currentAccepted {
		if _, ok := seen[id]; !ok {
			newly[id] = struct{}{}
		}
	}

	if err := t.snapshots.Save(w, viewerID, currentAccepted); err != nil {
		// The delta is still correct for this render; the viewer may see
		// the same highlight again next time.
		t.logger.Warn("persist acceptance snapshot failed",
			zap.String("viewer_id", viewerID.Hex()),
			zap.Error(err))
	}

	return &Result{newlyAccepted: newly}
}
