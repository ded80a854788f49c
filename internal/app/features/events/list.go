// internal/app/features/events/list.go
package events

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/system/authz"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeList renders the events screen. Mentors see their own status badge
// per event plus a "new" highlight on events whose acceptance they have not
// seen yet; staff and admins see membership counts and a pending-requests
// badge. `?dismiss=<eventID>` drops one highlight for this render without
// touching the persisted acceptance snapshot.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	role, uname, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	caps := authz.CapabilitiesForRole(role)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	searchQuery := strings.TrimSpace(r.URL.Query().Get("search"))

	var evs []models.Event
	var err error
	if searchQuery == "" {
		evs, err = h.Events.ListActiveCached(ctx)
	} else {
		evs, err = h.Events.List(ctx, models.EventStatusActive, searchQuery)
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list events failed", err,
			"Could not load events. Please try again.", "/")
		return
	}

	data := listData{
		Title:       "Events",
		Role:        role,
		UserName:    uname,
		IsLoggedIn:  true,
		IsMentor:    role == models.RoleMentor,
		IsStaff:     caps.CanViewAdminData,
		CanAdd:      caps.CanViewAdminData,
		SearchQuery: searchQuery,
		BackURL:     httpnav.ResolveBackURL(r, "/"),
		CurrentPath: r.URL.Path,
	}

	if data.IsMentor {
		accepted, err := h.Events.ListAcceptedFor(ctx, uid)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "list accepted events failed", err,
				"Could not load events. Please try again.", "/")
			return
		}
		res := h.Tracker.Recompute(w, r, role, uid, accepted)
		if dismiss := strings.TrimSpace(r.URL.Query().Get("dismiss")); dismiss != "" {
			if id, err := primitive.ObjectIDFromHex(dismiss); err == nil {
				res.Clear(id)
			}
		}
		for _, e := range evs {
			data.Rows = append(data.Rows, eventRow{
				ID:           e.ID,
				Title:        e.Title,
				Location:     e.Location,
				StartsAt:     e.StartsAt,
				EndsAt:       e.EndsAt,
				MentorStatus: string(e.MentorStatus(uid)),
				IsNew:        res.IsNew(e.ID),
			})
		}
	} else {
		pending, err := h.Events.CountPendingRequests(ctx)
		if err != nil {
			// badge only; the list still renders
			h.Log.Warn("count pending requests failed", zap.Error(err))
		}
		data.TotalPending = pending
		for _, e := range evs {
			data.Rows = append(data.Rows, eventRow{
				ID:              e.ID,
				Title:           e.Title,
				Location:        e.Location,
				StartsAt:        e.StartsAt,
				EndsAt:          e.EndsAt,
				AcceptedCount:   len(e.AcceptedMentors),
				RequestingCount: len(e.RequestingMentors),
			})
		}
	}

	templates.Render(w, r, "events_list", data)
}
