// internal/app/features/events/view.go
package events

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/system/authz"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeView renders a single event. Staff and admins see all three
// membership lists with decision buttons and the assign picker; mentors see
// the accepted roster, their own status, and (on active events) a request
// button.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	role, uname, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	caps := authz.CapabilitiesForRole(role)

	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderForbidden(w, r, "That event link is not valid.", "/events")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ev, err := h.Events.GetByID(ctx, eventID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.RenderForbidden(w, r, "That event no longer exists.", "/events")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load event failed", err,
			"Could not load the event. Please try again.", "/events")
		return
	}

	status := ev.MentorStatus(uid)
	data := detailData{
		Title:        ev.Title,
		Role:         role,
		UserName:     uname,
		IsLoggedIn:   true,
		EventID:      ev.ID,
		EventTitle:   ev.Title,
		Description:  template.HTML(ev.Description), // sanitized on write
		Location:     ev.Location,
		StartsAt:     ev.StartsAt,
		EndsAt:       ev.EndsAt,
		Status:       ev.Status,
		IsArchived:   ev.Status == models.EventStatusArchived,
		MentorStatus: string(status),
		CanRequest: caps.CanRequestToMentor &&
			ev.Status == models.EventStatusActive &&
			status == models.MentorStatusNone,
		CanDecide:   caps.CanDecideMentorRequests && ev.Status == models.EventStatusActive,
		CanAssign:   caps.CanAssignMentors && ev.Status == models.EventStatusActive,
		CanEdit:     caps.CanViewAdminData,
		BackURL:     httpnav.ResolveBackURL(r, "/events"),
		CurrentPath: r.URL.Path,
	}

	data.Accepted, err = h.mentorRows(ctx, ev.AcceptedMentors)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load accepted mentors failed", err,
			"Could not load the event. Please try again.", "/events")
		return
	}

	if caps.CanViewAdminData {
		data.Requesting, err = h.mentorRows(ctx, ev.RequestingMentors)
		if err == nil {
			data.Declined, err = h.mentorRows(ctx, ev.DeclinedMentors)
		}
		if err != nil {
			h.ErrLog.LogServerError(w, r, "load membership lists failed", err,
				"Could not load the event. Please try again.", "/events")
			return
		}
	}

	if data.CanAssign {
		data.MentorQuery = strings.TrimSpace(r.URL.Query().Get("mentor_q"))
		mentors, err := h.Users.ListMentors(ctx, data.MentorQuery)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "list mentors failed", err,
				"Could not load the event. Please try again.", "/events")
			return
		}
		for _, m := range mentors {
			// the picker only offers mentors not already accepted
			if ev.MentorStatus(m.ID) == models.MentorStatusAccepted {
				continue
			}
			data.AssignableMentors = append(data.AssignableMentors, mentorRow{
				ID: m.ID, FullName: m.FullName, Email: m.Email,
			})
		}
	}

	templates.Render(w, r, "event_view", data)
}

// mentorRows resolves a membership set to display rows, preserving the
// set's insertion order. IDs whose user record has been removed are
// skipped rather than shown as blanks.
func (h *Handler) mentorRows(ctx context.Context, ids []primitive.ObjectID) ([]mentorRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	users, err := h.Users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	rows := make([]mentorRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, mentorRow{ID: u.ID, FullName: u.FullName, Email: u.Email})
	}
	return rows, nil
}
