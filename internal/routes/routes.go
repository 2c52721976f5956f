// Package routes decides renderability from session state: which screen a
// navigation target resolves to while the session is initializing, anonymous,
// or authenticated with a given role.
package routes

import (
	"github.com/smartclinic/clinic-client/internal/api"
	"github.com/smartclinic/clinic-client/internal/session"
)

// Navigation targets.
const (
	PathHome             = "/"
	PathLogin            = "/login"
	PathRegister         = "/register"
	PathDashboard        = "/dashboard"
	PathDoctorDashboard  = "/dashboard/doctor"
	PathPatientDashboard = "/dashboard/patient"
)

// Kind classifies a guard decision.
type Kind int

const (
	// Pending means the session is still initializing; render nothing yet.
	Pending Kind = iota
	// Render means the requested screen may be shown.
	Render
	// Redirect means navigation should continue at Target instead.
	Redirect
	// Forbidden means the user is authenticated but the route's role
	// whitelist excludes them: show the access-restricted screen, keep the
	// session.
	Forbidden
)

// Decision is the outcome of guarding one navigation.
type Decision struct {
	Kind   Kind
	Target string
	// From preserves the originally attempted location on a login redirect
	// so it can be returned to after authentication.
	From string
}

// SessionView is the read-only slice of the session store the guards need.
type SessionView interface {
	State() session.State
	Authenticated() bool
	Role() api.Role
}

// Protected guards a route reachable only with a session, optionally
// restricted to a role whitelist. An empty whitelist admits any
// authenticated role. Role mismatch yields Forbidden, not a redirect.
func Protected(view SessionView, path string, requiredRoles ...api.Role) Decision {
	if initializing(view) {
		return Decision{Kind: Pending}
	}
	if !view.Authenticated() {
		return Decision{Kind: Redirect, Target: PathLogin, From: path}
	}
	if len(requiredRoles) > 0 && !roleAllowed(view.Role(), requiredRoles) {
		return Decision{Kind: Forbidden}
	}
	return Decision{Kind: Render}
}

// Public guards login/register style routes: an already-authenticated user
// is sent to their role's dashboard instead.
func Public(view SessionView) Decision {
	if initializing(view) {
		return Decision{Kind: Pending}
	}
	if view.Authenticated() {
		return Decision{Kind: Redirect, Target: dashboardFor(view.Role())}
	}
	return Decision{Kind: Render}
}

// Resolve runs the full route table for a navigation target.
func Resolve(view SessionView, path string) Decision {
	if initializing(view) {
		return Decision{Kind: Pending}
	}
	switch path {
	case PathHome:
		return Decision{Kind: Render}
	case PathLogin, PathRegister:
		return Public(view)
	case PathDashboard:
		d := Protected(view, path)
		if d.Kind != Render {
			return d
		}
		// The dashboard root is a dispatcher: it resolves the role to its
		// specific dashboard, falling back to login for an unknown role.
		target := dashboardFor(view.Role())
		if target == PathDashboard {
			target = PathLogin
		}
		return Decision{Kind: Redirect, Target: target}
	case PathDoctorDashboard:
		return Protected(view, path, api.RoleDoctor)
	case PathPatientDashboard:
		return Protected(view, path, api.RolePatient)
	default:
		if view.Authenticated() {
			return Decision{Kind: Redirect, Target: PathDashboard}
		}
		return Decision{Kind: Redirect, Target: PathLogin}
	}
}

// dashboardFor maps a role to its dashboard path, with the generic dashboard
// root as fallback for anything unrecognized.
func dashboardFor(role api.Role) string {
	switch role {
	case api.RoleDoctor:
		return PathDoctorDashboard
	case api.RolePatient:
		return PathPatientDashboard
	default:
		return PathDashboard
	}
}

func initializing(view SessionView) bool {
	switch view.State() {
	case session.StateUninitialized, session.StateInitializing:
		return true
	default:
		return false
	}
}

func roleAllowed(role api.Role, allowed []api.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
