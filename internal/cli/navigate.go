package cli

import (
	"errors"

	"github.com/smartclinic/clinic-client/internal/routes"
)

var (
	errNotAuthenticated = errors.New("not authenticated")
	errAccessRestricted = errors.New("access restricted")
)

// resolveScreen follows guard decisions from path until a screen renders.
// Login redirects and forbidden views terminate navigation with an error so
// the process exits non-zero.
func resolveScreen(path string) (string, error) {
	for hops := 0; hops < 5; hops++ {
		d := routes.Resolve(store, path)
		switch d.Kind {
		case routes.Render:
			return path, nil
		case routes.Forbidden:
			renderForbidden()
			return "", errAccessRestricted
		case routes.Redirect:
			if d.Target == routes.PathLogin {
				if d.From != "" {
					printer.Warn("Please log in to continue to %s.", d.From)
				} else {
					printer.Warn("Please log in first.")
				}
				return "", errNotAuthenticated
			}
			path = d.Target
		case routes.Pending:
			return "", errors.New("session is still initializing")
		}
	}
	return "", errors.New("navigation did not settle")
}

// renderForbidden is the fixed access-restricted view: the session is kept,
// the user is pointed back at their own dashboard.
func renderForbidden() {
	printer.Error("Access restricted: this screen is not available for your role.")
	printer.Warn("Run 'clinic dashboard' to return to your own dashboard.")
}

// guardRole guards an action command the way its owning dashboard screen is
// guarded.
func guardRole(screen string) error {
	resolved, err := resolveScreen(screen)
	if err != nil {
		return err
	}
	if resolved != screen {
		renderForbidden()
		return errAccessRestricted
	}
	return nil
}
