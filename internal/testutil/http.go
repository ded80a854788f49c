package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionFor builds a SessionUser for a fixture user.
func SessionFor(u models.User) *auth.SessionUser {
	return &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	}
}

// AdminSession returns a SessionUser with the admin role and a fresh ID.
func AdminSession() *auth.SessionUser {
	return &auth.SessionUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Admin",
		Email: "admin@test.com",
		Role:  models.RoleAdmin,
	}
}

// StaffSession returns a SessionUser with the staff role and a fresh ID.
func StaffSession() *auth.SessionUser {
	return &auth.SessionUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Staff",
		Email: "staff@test.com",
		Role:  models.RoleStaff,
	}
}

// MentorSession returns a SessionUser with the mentor role and a fresh ID.
func MentorSession() *auth.SessionUser {
	return &auth.SessionUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Mentor",
		Email: "mentor@test.com",
		Role:  models.RoleMentor,
	}
}

// NewAuthenticatedRequest creates an HTTP request with a user in context,
// bypassing the session middleware.
func NewAuthenticatedRequest(method, target string, user *auth.SessionUser) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return auth.WithTestUser(req, user)
}

// NewFormRequest creates a POST request carrying url-encoded form values.
func NewFormRequest(target, form string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
