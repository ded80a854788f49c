// internal/app/features/events/actions.go
//
// Membership transition handlers. Each one re-checks the acting user's
// capability server-side via the policy layer, then performs a single
// atomic store transition and redirects back to the event page.
package events

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/eventpolicy"
	eventstore "github.com/dalemusser/mentorhub/internal/app/store/events"
	"github.com/dalemusser/mentorhub/internal/app/system/authz"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleRequest records the signed-in mentor's request to mentor the event.
// Requesting twice is a no-op success; requesting after a decision fails.
func (h *Handler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderForbidden(w, r, "That event link is not valid.", "/events")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	allowed, err := eventpolicy.CanRequestEvent(ctx, h.DB, r, eventID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "request policy check failed", err,
			"Could not submit your request. Please try again.", "/events")
		return
	}
	if !allowed {
		uierrors.RenderForbidden(w, r,
			"You can't request to mentor this event.", "/events")
		return
	}

	_, err = h.Events.RequestMembership(ctx, eventID, uid)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		uierrors.RenderForbidden(w, r, "That event no longer exists.", "/events")
		return
	case errors.Is(err, eventstore.ErrAlreadyDecided):
		uierrors.RenderForbidden(w, r,
			"A decision has already been made on your request for this event.",
			"/events/"+eventID.Hex())
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "request membership failed", err,
			"Could not submit your request. Please try again.", "/events")
		return
	}

	http.Redirect(w, r, "/events/"+eventID.Hex(), http.StatusSeeOther)
}

// HandleApprove accepts a pending mentor request.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, eventstore.DecisionApprove)
}

// HandleDecline rejects a pending mentor request.
func (h *Handler) HandleDecline(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, eventstore.DecisionDecline)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, decision eventstore.Decision) {
	role, _, actorID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderForbidden(w, r, "That event link is not valid.", "/events")
		return
	}
	mentorID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "mentorID"))
	if err != nil {
		uierrors.RenderForbidden(w, r, "That mentor link is not valid.", "/events/"+eventID.Hex())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	allowed, err := eventpolicy.CanStaffEvent(ctx, h.DB, r, eventID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "decision policy check failed", err,
			"Could not record the decision. Please try again.", "/events")
		return
	}
	if !allowed {
		uierrors.RenderForbidden(w, r,
			"You can't decide mentor requests for this event.", "/events")
		return
	}

	_, err = h.Events.DecideMembership(ctx, eventID, mentorID, decision)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		uierrors.RenderForbidden(w, r, "That event no longer exists.", "/events")
		return
	case errors.Is(err, eventstore.ErrNoPendingRequest):
		// someone else decided first, or the request was withdrawn
		uierrors.RenderForbidden(w, r,
			"That mentor no longer has a pending request for this event.",
			"/events/"+eventID.Hex())
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "decide membership failed", err,
			"Could not record the decision. Please try again.", "/events")
		return
	}

	h.Audit.MentorRequestDecided(ctx, r, actorID, mentorID, eventID, role,
		decision == eventstore.DecisionApprove)
	http.Redirect(w, r, "/events/"+eventID.Hex(), http.StatusSeeOther)
}

// HandleAssign puts the chosen mentor directly into the accepted set,
// regardless of any prior request or decline.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	role, _, actorID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderForbidden(w, r, "That event link is not valid.", "/events")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "assign mentor: bad form", err,
			"The form could not be read. Please try again.", "/events/"+eventID.Hex())
		return
	}
	mentorID, err := primitive.ObjectIDFromHex(r.FormValue("mentor_id"))
	if err != nil {
		uierrors.RenderForbidden(w, r, "Choose a mentor to assign.", "/events/"+eventID.Hex())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	allowed, err := eventpolicy.CanStaffEvent(ctx, h.DB, r, eventID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "assign policy check failed", err,
			"Could not assign the mentor. Please try again.", "/events")
		return
	}
	if !allowed {
		uierrors.RenderForbidden(w, r,
			"You can't assign mentors to this event.", "/events")
		return
	}

	// only active mentors can be assigned
	if _, err := h.Users.GetMentorByID(ctx, mentorID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderForbidden(w, r,
				"That user is not an available mentor.", "/events/"+eventID.Hex())
			return
		}
		h.ErrLog.LogServerError(w, r, "load mentor for assign failed", err,
			"Could not assign the mentor. Please try again.", "/events/"+eventID.Hex())
		return
	}

	_, err = h.Events.Assign(ctx, eventID, mentorID)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		uierrors.RenderForbidden(w, r, "That event no longer exists.", "/events")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "assign mentor failed", err,
			"Could not assign the mentor. Please try again.", "/events/"+eventID.Hex())
		return
	}

	h.Audit.MentorAssigned(ctx, r, actorID, mentorID, eventID, role)
	http.Redirect(w, r, "/events/"+eventID.Hex(), http.StatusSeeOther)
}

// HandleUnassign removes a mentor from the accepted set. The mentor's
// earlier request, if any, is not reinstated.
func (h *Handler) HandleUnassign(w http.ResponseWriter, r *http.Request) {
	role, _, actorID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderForbidden(w, r, "That event link is not valid.", "/events")
		return
	}
	mentorID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "mentorID"))
	if err != nil {
		uierrors.RenderForbidden(w, r, "That mentor link is not valid.", "/events/"+eventID.Hex())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	allowed, err := eventpolicy.CanStaffEvent(ctx, h.DB, r, eventID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "unassign policy check failed", err,
			"Could not remove the mentor. Please try again.", "/events")
		return
	}
	if !allowed {
		uierrors.RenderForbidden(w, r,
			"You can't remove mentors from this event.", "/events")
		return
	}

	_, err = h.Events.Unassign(ctx, eventID, mentorID)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		uierrors.RenderForbidden(w, r, "That event no longer exists.", "/events")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "unassign mentor failed", err,
			"Could not remove the mentor. Please try again.", "/events/"+eventID.Hex())
		return
	}

	h.Audit.MentorUnassigned(ctx, r, actorID, mentorID, eventID, role)
	http.Redirect(w, r, "/events/"+eventID.Hex(), http.StatusSeeOther)
}
