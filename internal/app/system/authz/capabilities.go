// internal/app/system/authz/capabilities.go
package authz

import (
	"net/http"

	"github.com/dalemusser/mentorhub/internal/domain/models"
)

// Capabilities is the boolean capability set handlers branch on. The flags
// are computed here, outside the workflow core; stores and handlers never
// inspect roles directly for mentor-workflow actions, only these flags, and
// every mutating handler re-checks its flag server-side even when the UI
// already hid the control (fail closed).
type Capabilities struct {
	CanRequestToMentor      bool
	CanAssignMentors        bool
	CanDecideMentorRequests bool
	CanViewAdminData        bool
}

// CapabilitiesFor derives the capability set for the current request's user.
// Anonymous users get the zero set.
func CapabilitiesFor(r *http.Request) Capabilities {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return Capabilities{}
	}
	return CapabilitiesForRole(role)
}

// CapabilitiesForRole maps a role to its capability set.
func CapabilitiesForRole(role string) Capabilities {
	switch role {
	case models.RoleAdmin, models.RoleStaff:
		return Capabilities{
			CanAssignMentors:        true,
			CanDecideMentorRequests: true,
			CanViewAdminData:        true,
		}
	case models.RoleMentor:
		return Capabilities{
			CanRequestToMentor: true,
		}
	default:
		return Capabilities{}
	}
}
