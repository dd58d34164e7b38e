// Package guard decides whether a session may see a role's view.
//
// The check is a flat equality: an admin does not inherit the user or
// waiter views.
package guard

import "qrmenu/internal/model"

// Fallback is the public page denied requests are sent to.
const Fallback = "/"

var views = map[model.Role]string{
	model.RoleAdmin:  "/admin",
	model.RoleUser:   "/user",
	model.RoleWaiter: "/waiter",
}

func CanAccess(required model.Role, sess model.Session) bool {
	return sess.Authenticated && sess.Role != "" && sess.Role == required
}

// ViewFor returns the top-level view of role, or Fallback for an unknown role.
func ViewFor(role model.Role) string {
	if v, ok := views[role]; ok {
		return v
	}
	return Fallback
}
