// internal/app/features/events/types.go
package events

import (
	"html/template"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Table row for the events list. MentorStatus is only populated for mentor
// viewers; the count fields only for staff/admin viewers.
type eventRow struct {
	ID       primitive.ObjectID
	Title    string
	Location string
	StartsAt time.Time
	EndsAt   time.Time

	// mentor view
	MentorStatus string
	IsNew        bool // newly accepted since the viewer's last look

	// staff view
	AcceptedCount   int
	RequestingCount int
}

// List page VM
type listData struct {
	Title, Role, UserName string
	IsLoggedIn            bool

	IsMentor bool
	IsStaff  bool
	CanAdd   bool

	SearchQuery string
	Rows        []eventRow

	// staff badge: pending requests across all active events
	TotalPending int64

	BackURL     string
	CurrentPath string
}

// Row for a membership list on the detail page.
type mentorRow struct {
	ID       primitive.ObjectID
	FullName string
	Email    string
}

// Detail page VM
type detailData struct {
	Title, Role, UserName string
	IsLoggedIn            bool

	EventID     primitive.ObjectID
	EventTitle  string
	Description template.HTML
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
	Status      string
	IsArchived  bool

	Requesting []mentorRow
	Accepted   []mentorRow
	Declined   []mentorRow

	// mentor view
	MentorStatus string
	CanRequest   bool

	// staff view
	CanDecide bool
	CanAssign bool
	CanEdit   bool

	// assign picker (staff, active events only)
	AssignableMentors []mentorRow
	MentorQuery       string

	BackURL     string
	CurrentPath string
}

// Create/edit form VM. StartsAt/EndsAt are datetime-local strings so the
// form round-trips what the user typed on validation failure.
type formData struct {
	Title, Role, UserName string
	IsLoggedIn            bool

	IsEdit  bool
	EventID primitive.ObjectID

	EventTitle  string
	Description string
	Location    string
	StartsAt    string
	EndsAt      string

	Error string

	BackURL     string
	CurrentPath string
}

// datetime-local input format
const formTimeLayout = "2006-01-02T15:04"
