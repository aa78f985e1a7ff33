package entity

import "github.com/mbeoliero/realty/pkg/constant"

// Actor is the authenticated principal of a request
type Actor struct {
	UserId   string `json:"user_id"`
	Role     string `json:"role"`
	AgencyId string `json:"agency_id,omitempty"`
}

// IsAdmin reports whether the actor holds the platform admin role
func (a Actor) IsAdmin() bool {
	return a.Role == constant.RoleAdmin
}

// ScopeAgency returns the agency a list query must be restricted to.
// Admins may pick any agency (or none); everybody else is pinned to their own.
func (a Actor) ScopeAgency(requested string) string {
	if a.IsAdmin() {
		return requested
	}
	return a.AgencyId
}

// CanAccessAgency reports whether the actor may read or write data of agencyId
func (a Actor) CanAccessAgency(agencyId string) bool {
	return a.IsAdmin() || (a.AgencyId != "" && a.AgencyId == agencyId)
}
