// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event represents a staffed event with its three mentor membership sets.
//
// NOTE:
//   - The membership sets are embedded on the event document so every
//     transition (request/decide/assign/unassign) is a single-document
//     update. A mentor ID appears in at most one of the three arrays in
//     any committed document; the store's transition operations are the
//     only code paths that mutate them.
//   - Array order is insertion order (request order for RequestingMentors).
type Event struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"title_ci"`
	Description string             `bson:"description" json:"description"` // sanitized HTML
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	StartsAt    time.Time          `bson:"starts_at" json:"starts_at"`
	EndsAt      time.Time          `bson:"ends_at" json:"ends_at"`

	Status string `bson:"status" json:"status"` // active | archived

	RequestingMentors []primitive.ObjectID `bson:"requesting_mentors" json:"requesting_mentors"`
	AcceptedMentors   []primitive.ObjectID `bson:"accepted_mentors" json:"accepted_mentors"`
	DeclinedMentors   []primitive.ObjectID `bson:"declined_mentors" json:"declined_mentors"`

	CreatedBy primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Event status values.
const (
	EventStatusActive   = "active"
	EventStatusArchived = "archived"
)

// MentorStatus is a mentor's relationship to an event, derived from the
// membership sets.
type MentorStatus string

const (
	MentorStatusNone       MentorStatus = "none"
	MentorStatusRequesting MentorStatus = "requesting"
	MentorStatusAccepted   MentorStatus = "accepted"
	MentorStatusDeclined   MentorStatus = "declined"
)

// MentorStatus projects the given mentor's status from the membership sets.
// Under the exclusivity invariant exactly one branch applies; if a corrupt
// document ever lists a mentor in more than one set, accepted wins, then
// requesting, then declined. That precedence is a defensive tie-break, not
// a supported state.
func (e *Event) MentorStatus(mentorID primitive.ObjectID) MentorStatus {
	if containsID(e.AcceptedMentors, mentorID) {
		return MentorStatusAccepted
	}
	if containsID(e.RequestingMentors, mentorID) {
		return MentorStatusRequesting
	}
	if containsID(e.DeclinedMentors, mentorID) {
		return MentorStatusDeclined
	}
	return MentorStatusNone
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
