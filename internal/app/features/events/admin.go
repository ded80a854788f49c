// internal/app/features/events/admin.go
package events

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	eventstore "github.com/dalemusser/mentorhub/internal/app/store/events"
	"github.com/dalemusser/mentorhub/internal/app/system/gates"
	"github.com/dalemusser/mentorhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// eventForm is the parsed + validated create/edit form.
type eventForm struct {
	Title       string
	Description string // sanitized
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
}

// parseEventForm reads and validates the event form. On failure the second
// return is a user-facing message and the raw (unsanitized) field values are
// echoed back via the returned formData so the user doesn't lose their work.
func parseEventForm(r *http.Request) (eventForm, string) {
	title := strings.TrimSpace(r.FormValue("title"))
	desc := strings.TrimSpace(r.FormValue("description"))
	loc := strings.TrimSpace(r.FormValue("location"))
	startsRaw := strings.TrimSpace(r.FormValue("starts_at"))
	endsRaw := strings.TrimSpace(r.FormValue("ends_at"))

	if title == "" {
		return eventForm{}, "Title is required."
	}
	if len(title) > 200 {
		return eventForm{}, "Title must be 200 characters or fewer."
	}
	starts, err := time.ParseInLocation(formTimeLayout, startsRaw, time.Local)
	if err != nil {
		return eventForm{}, "Start time is required."
	}
	ends, err := time.ParseInLocation(formTimeLayout, endsRaw, time.Local)
	if err != nil {
		return eventForm{}, "End time is required."
	}
	if !ends.After(starts) {
		return eventForm{}, "End time must be after the start time."
	}

	return eventForm{
		Title:       title,
		Description: htmlsanitize.Sanitize(desc),
		Location:    loc,
		StartsAt:    starts,
		EndsAt:      ends,
	}, ""
}

// echoForm rebuilds the form VM from the submitted values for re-display
// after a validation or duplicate-title failure.
func echoForm(r *http.Request, g gates.Result, errMsg string) formData {
	return formData{
		Role:        g.Role,
		UserName:    g.Name,
		IsLoggedIn:  true,
		EventTitle:  strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Location:    strings.TrimSpace(r.FormValue("location")),
		StartsAt:    strings.TrimSpace(r.FormValue("starts_at")),
		EndsAt:      strings.TrimSpace(r.FormValue("ends_at")),
		Error:       errMsg,
		BackURL:     "/events",
		CurrentPath: r.URL.Path,
	}
}

// ServeNew renders the blank create-event form (staff and admin only).
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireStaff(w, r, "Only staff can create events.", "/events")
	if !g.OK {
		return
	}
	templates.Render(w, r, "event_form", formData{
		Title:       "New Event",
		Role:        g.Role,
		UserName:    g.Name,
		IsLoggedIn:  true,
		BackURL:     httpnav.ResolveBackURL(r, "/events"),
		CurrentPath: r.URL.Path,
	})
}

// HandleCreate creates an event from the submitted form.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireStaff(w, r, "Only staff can create events.", "/events")
	if !g.OK {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "create event: bad form", err,
			"The form could not be read. Please try again.", "/events")
		return
	}

	form, errMsg := parseEventForm(r)
	if errMsg != "" {
		vm := echoForm(r, g, errMsg)
		vm.Title = "New Event"
		templates.Render(w, r, "event_form", vm)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ev, err := h.Events.Create(ctx, models.Event{
		Title:       form.Title,
		Description: form.Description,
		Location:    form.Location,
		StartsAt:    form.StartsAt,
		EndsAt:      form.EndsAt,
		CreatedBy:   g.UserID,
	})
	if errors.Is(err, eventstore.ErrDuplicateEventTitle) {
		vm := echoForm(r, g, "An event with this title already exists.")
		vm.Title = "New Event"
		templates.Render(w, r, "event_form", vm)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create event failed", err,
			"Could not create the event. Please try again.", "/events")
		return
	}

	h.Audit.EventCreated(ctx, r, g.UserID, ev.ID, g.Role, ev.Title)
	http.Redirect(w, r, "/events/"+ev.ID.Hex(), http.StatusSeeOther)
}

// ServeEdit renders the edit form pre-filled from the stored event.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireStaff(w, r, "Only staff can edit events.", "/events")
	if !g.OK {
		return
	}
	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderForbidden(w, r, "That event link is not valid.", "/events")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ev, err := h.Events.GetByID(ctx, eventID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.RenderForbidden(w, r, "That event no longer exists.", "/events")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load event for edit failed", err,
			"Could not load the event. Please try again.", "/events")
		return
	}

	templates.Render(w, r, "event_form", formData{
		Title:       "Edit Event",
		Role:        g.Role,
		UserName:    g.Name,
		IsLoggedIn:  true,
		IsEdit:      true,
		EventID:     ev.ID,
		EventTitle:  ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		StartsAt:    ev.StartsAt.Local().Format(formTimeLayout),
		EndsAt:      ev.EndsAt.Local().Format(formTimeLayout),
		BackURL:     httpnav.ResolveBackURL(r, "/events/"+ev.ID.Hex()),
		CurrentPath: r.URL.Path,
	})
}

// HandleEdit updates an event's descriptive fields. Membership sets are
// never touched here; only the transition operations mutate them.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireStaff(w, r, "Only staff can edit events.", "/events")
	if !g.OK {
		return
	}
	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderForbidden(w, r, "That event link is not valid.", "/events")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "edit event: bad form", err,
			"The form could not be read. Please try again.", "/events")
		return
	}

	form, errMsg := parseEventForm(r)
	if errMsg != "" {
		vm := echoForm(r, g, errMsg)
		vm.Title = "Edit Event"
		vm.IsEdit = true
		vm.EventID = eventID
		templates.Render(w, r, "event_form", vm)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Events.UpdateInfo(ctx, eventID, form.Title, form.Description, form.Location, form.StartsAt, form.EndsAt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.RenderForbidden(w, r, "That event no longer exists.", "/events")
		return
	}
	if errors.Is(err, eventstore.ErrDuplicateEventTitle) {
		vm := echoForm(r, g, "An event with this title already exists.")
		vm.Title = "Edit Event"
		vm.IsEdit = true
		vm.EventID = eventID
		templates.Render(w, r, "event_form", vm)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update event failed", err,
			"Could not save the event. Please try again.", "/events")
		return
	}

	h.Audit.EventUpdated(ctx, r, g.UserID, eventID, g.Role, "title,description,location,times")
	http.Redirect(w, r, "/events/"+eventID.Hex(), http.StatusSeeOther)
}

// HandleArchive marks an event archived. Archived events keep their
// membership sets but accept no further transitions.
func (h *Handler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireStaff(w, r, "Only staff can archive events.", "/events")
	if !g.OK {
		return
	}
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
		h.ErrLog.LogServerError(w, r, "load event for archive failed", err,
			"Could not archive the event. Please try again.", "/events")
		return
	}

	if err := h.Events.SetStatus(ctx, eventID, models.EventStatusArchived); err != nil {
		h.ErrLog.LogServerError(w, r, "archive event failed", err,
			"Could not archive the event. Please try again.", "/events")
		return
	}

	h.Audit.EventArchived(ctx, r, g.UserID, eventID, g.Role, ev.Title)
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}

// HandleDelete removes an event and, with it, all of its membership state.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireStaff(w, r, "Only staff can delete events.", "/events")
	if !g.OK {
		return
	}
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
		h.ErrLog.LogServerError(w, r, "load event for delete failed", err,
			"Could not delete the event. Please try again.", "/events")
		return
	}

	if _, err := h.Events.Delete(ctx, eventID); err != nil {
		h.ErrLog.LogServerError(w, r, "delete event failed", err,
			"Could not delete the event. Please try again.", "/events")
		return
	}

	h.Audit.EventDeleted(ctx, r, g.UserID, eventID, g.Role, ev.Title)
	http.Redirect(w, r, "/events", http.StatusSeeOther)
}
