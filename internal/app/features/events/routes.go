// internal/app/features/events/routes.go
package events

import (
	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the event workflow routes under whatever base path the
// caller chooses (typically "/events" from bootstrap).
//
// All routes require a signed-in user. Role and capability checks are
// done per handler because the list and detail pages are shared by
// mentors and staff while the mutating routes are not.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		// LIST (role-aware: mentor badges + new-acceptance highlights,
		// staff counts + pending badges)
		pr.Get("/", h.ServeList)

		// CREATE (staff)
		pr.Get("/new", h.ServeNew)
		pr.Post("/new", h.HandleCreate)

		// VIEW
		pr.Get("/{id}", h.ServeView)

		// EDIT / ARCHIVE / DELETE (staff)
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)
		pr.Post("/{id}/archive", h.HandleArchive)
		pr.Post("/{id}/delete", h.HandleDelete)

		// Mentor self-service request
		pr.Post("/{id}/request", h.HandleRequest)

		// Staff decisions on pending requests
		pr.Post("/{id}/requests/{mentorID}/approve", h.HandleApprove)
		pr.Post("/{id}/requests/{mentorID}/decline", h.HandleDecline)

		// Staff direct assignment
		pr.Post("/{id}/mentors/assign", h.HandleAssign)
		pr.Post("/{id}/mentors/{mentorID}/unassign", h.HandleUnassign)
	})

	return r
}
