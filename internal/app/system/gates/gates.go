// Package gates provides authorization gate functions for HTTP handlers.
// Gates check authentication and authorization, rendering appropriate error
// pages when checks fail.
//
// MentorHub authorizes in three tiers:
//
//  1. Route-level middleware (auth.RequireSignedIn, auth.RequireRole)
//     applied in routes.go files for coarse-grained access control.
//
//  2. Handler-level gates (this package), for handlers that need a
//     capability or role check narrower than the route group's.
//     Gates render error pages and return user context (role, name, userID).
//
//  3. Policy layer (internal/app/policy/*), for resource-specific checks
//     that need database lookups. Policies return (bool, error) and leave
//     error rendering to the caller.
//
// Don't use gates in handlers already behind equivalent role middleware;
// use authz.UserCtx(r) there to read the user context without re-checking.
package gates

import (
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Result contains the result of an authorization gate check.
type Result struct {
	Role   string
	Name   string
	UserID primitive.ObjectID
	OK     bool
}

// RequireAuth ensures a user is authenticated.
// If not authenticated, it renders an unauthorized error and returns OK=false.
// The loginURL parameter specifies where to redirect for login.
func RequireAuth(w http.ResponseWriter, r *http.Request, loginURL string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, loginURL)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// RequireStaff ensures the user is authenticated and is an admin or staff
// member. If not authenticated, renders unauthorized error. If authenticated
// but not staff, renders forbidden error with the provided message and
// fallback URL.
func RequireStaff(w http.ResponseWriter, r *http.Request, forbiddenMsg, fallbackURL string) Result {
	return RequireAnyRole(w, r, forbiddenMsg, fallbackURL, "admin", "staff")
}

// RequireMentor ensures the user is authenticated and has the mentor role.
func RequireMentor(w http.ResponseWriter, r *http.Request, forbiddenMsg, fallbackURL string) Result {
	return RequireAnyRole(w, r, forbiddenMsg, fallbackURL, "mentor")
}

// RequireAnyRole ensures the user is authenticated and has one of the
// specified roles. If not authenticated, renders unauthorized error. If
// authenticated but the role is not in the allowed list, renders forbidden
// error.
func RequireAnyRole(w http.ResponseWriter, r *http.Request, forbiddenMsg, fallbackURL string, allowedRoles ...string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return Result{OK: false}
	}

	for _, allowed := range allowedRoles {
		if role == allowed {
			return Result{Role: role, Name: name, UserID: uid, OK: true}
		}
	}

	uierrors.RenderForbidden(w, r, forbiddenMsg, fallbackURL)
	return Result{OK: false}
}

// RequireCapability ensures the user is authenticated and that the given
// capability predicate holds for their role. Handlers pass a selector over
// authz.Capabilities, e.g.
//
//	res := gates.RequireCapability(w, r, func(c authz.Capabilities) bool {
//		return c.CanAssignMentors
//	}, "You can't assign mentors.", "/events")
func RequireCapability(w http.ResponseWriter, r *http.Request, has func(authz.Capabilities) bool, forbiddenMsg, fallbackURL string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return Result{OK: false}
	}
	if !has(authz.CapabilitiesForRole(role)) {
		uierrors.RenderForbidden(w, r, forbiddenMsg, fallbackURL)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}
