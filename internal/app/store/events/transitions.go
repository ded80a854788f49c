// internal/app/store/events/transitions.go
package eventstore

// Membership transitions. Every operation here is a single UpdateOne whose
// filter encodes the precondition and whose update moves the mentor between
// the embedded membership arrays. MongoDB applies each document update
// atomically, so concurrent transitions for the same event interleave at
// the operation level without lost updates, and the exclusivity invariant
// (a mentor in at most one array) holds in every committed document.

import (
	"context"
	"errors"

	"github.com/dalemusser/mentorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Decision is a staff verdict on a pending mentor request.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionDecline Decision = "decline"
)

var (
	// ErrAlreadyDecided is returned when a mentor requests membership in an
	// event that already lists them as accepted or declined. Re-requesting
	// after a decision is not a supported transition.
	ErrAlreadyDecided = errors.New("mentor has already been accepted or declined for this event")

	// ErrNoPendingRequest is returned when a decision targets a mentor who
	// is not in the requesting set, e.g. because another staff member
	// decided first and the caller's request list is stale.
	ErrNoPendingRequest = errors.New("mentor has no pending request for this event")

	errBadDecision = errors.New(`decision must be "approve" or "decline"`)
)

// RequestMembership adds the mentor to the event's requesting set.
// It is idempotent when the mentor is already requesting, returns
// ErrAlreadyDecided when the mentor is in the accepted or declined set, and
// mongo.ErrNoDocuments when the event does not exist.
// Returns the event as committed after the call.
func (s *Store) RequestMembership(ctx context.Context, eventID, mentorID primitive.ObjectID) (models.Event, error) {
	filter := bson.M{
		"_id":              eventID,
		"accepted_mentors": bson.M{"$ne": mentorID},
		"declined_mentors": bson.M{"$ne": mentorID},
	}
	// $addToSet keeps the second of two racing requests from duplicating
	// the entry and makes a repeat request a no-op.
	update := bson.M{"$addToSet": bson.M{"requesting_mentors": mentorID}}

	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return models.Event{}, err
	}
	if res.MatchedCount == 0 {
		// Either the event is gone or the mentor already has a decision.
		// One extra read distinguishes the two for the caller.
		if _, err := s.GetByID(ctx, eventID); err != nil {
			return models.Event{}, err
		}
		return models.Event{}, ErrAlreadyDecided
	}

	s.InvalidateListCache()
	return s.GetByID(ctx, eventID)
}

// DecideMembership moves the mentor from the requesting set into accepted
// (approve) or declined (decline) as one atomic step. It returns
// ErrNoPendingRequest when the mentor is not currently requesting — a stale
// request list must surface as a failure, not a false success — and
// mongo.ErrNoDocuments when the event does not exist.
// Returns the event as committed after the call.
func (s *Store) DecideMembership(ctx context.Context, eventID, mentorID primitive.ObjectID, decision Decision) (models.Event, error) {
	var target string
	switch decision {
	case DecisionApprove:
		target = "accepted_mentors"
	case DecisionDecline:
		target = "declined_mentors"
	default:
		return models.Event{}, errBadDecision
	}

	filter := bson.M{
		"_id":                eventID,
		"requesting_mentors": mentorID,
	}
	update := bson.M{
		"$pull":     bson.M{"requesting_mentors": mentorID},
		"$addToSet": bson.M{target: mentorID},
	}

	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return models.Event{}, err
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetByID(ctx, eventID); err != nil {
			return models.Event{}, err
		}
		return models.Event{}, ErrNoPendingRequest
	}

	s.InvalidateListCache()
	return s.GetByID(ctx, eventID)
}

// Assign is the staff-only direct grant: it adds the mentor to the accepted
// set and removes them from requesting and declined in the same atomic
// update. Removing from declined as well is what keeps the exclusivity
// invariant when staff assign a mentor who was previously declined.
// Assigning an already-accepted mentor is a no-op.
func (s *Store) Assign(ctx context.Context, eventID, mentorID primitive.ObjectID) (models.Event, error) {
	update := bson.M{
		"$addToSet": bson.M{"accepted_mentors": mentorID},
		"$pull": bson.M{
			"requesting_mentors": mentorID,
			"declined_mentors":   mentorID,
		},
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": eventID}, update)
	if err != nil {
		return models.Event{}, err
	}
	if res.MatchedCount == 0 {
		return models.Event{}, mongo.ErrNoDocuments
	}

	s.InvalidateListCache()
	return s.GetByID(ctx, eventID)
}

// Unassign removes the mentor from the accepted set only. The mentor does
// not return to requesting or move to declined; they are simply no longer
// assigned.
func (s *Store) Unassign(ctx context.Context, eventID, mentorID primitive.ObjectID) (models.Event, error) {
	update := bson.M{"$pull": bson.M{"accepted_mentors": mentorID}}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": eventID}, update)
	if err != nil {
		return models.Event{}, err
	}
	if res.MatchedCount == 0 {
		return models.Event{}, mongo.ErrNoDocuments
	}

	s.InvalidateListCache()
	return s.GetByID(ctx, eventID)
}
