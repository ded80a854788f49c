// internal/app/policy/eventpolicy.go
package eventpolicy

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/mentorhub/internal/app/system/authz"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// IsActive reports whether the event exists and is active. Deciding
// requests and assigning mentors are only allowed while the event is
// active; archived events are read-only.
func IsActive(ctx context.Context, db *mongo.Database, eventID primitive.ObjectID) (bool, error) {
	c := db.Collection("events")
	n, err := c.CountDocuments(ctx, bson.M{
		"_id":    eventID,
		"status": models.EventStatusActive,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CanStaffEvent reports whether the current request user may decide mentor
// requests or change assignments for the event:
// - The user must hold a staffing capability (admin or staff role)
// - The event must exist and be active
// Returns an error if the database check fails, allowing callers to
// distinguish between "not authorized" (false, nil) and "database error"
// (false, err).
func CanStaffEvent(ctx context.Context, db *mongo.Database, r *http.Request, eventID primitive.ObjectID) (bool, error) {
	caps := authz.CapabilitiesFor(r)
	if !caps.CanDecideMentorRequests && !caps.CanAssignMentors {
		return false, nil
	}
	active, err := IsActive(ctx, db, eventID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return active, nil
}

// CanRequestEvent reports whether the current request user may submit a
// mentor request for the event: mentors only, and only while the event is
// active.
func CanRequestEvent(ctx context.Context, db *mongo.Database, r *http.Request, eventID primitive.ObjectID) (bool, error) {
	if !authz.CapabilitiesFor(r).CanRequestToMentor {
		return false, nil
	}
	return IsActive(ctx, db, eventID)
}
