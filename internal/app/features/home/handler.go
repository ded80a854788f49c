// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"github.com/dalemusser/mentorhub/internal/app/system/auth"
)

// Handler serves the root path.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Serve redirects signed-in users to the events list and everyone else to
// the login form.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/events", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
