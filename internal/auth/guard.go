package auth

// LoginRoute is the redirect target for every denied authorization.
// Unauthorized roles are deliberately sent to login rather than a
// "forbidden" page, matching the server's treatment of the two cases.
const LoginRoute = "/login"

// Decision is the outcome of a route authorization check.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Allow is the decision granting access.
var Allow = Decision{Allowed: true}

// RedirectTo returns a decision redirecting to the given route.
func RedirectTo(route string) Decision {
	return Decision{Redirect: route}
}

// Authorize evaluates whether a credential may enter a view requiring the
// given roles. It is a pure function: safe to call repeatedly on every
// protected-view entry.
func Authorize(cred *Credential, requiredRoles []Role) Decision {
	if cred == nil || cred.Token == "" {
		return RedirectTo(LoginRoute)
	}
	if len(requiredRoles) == 0 {
		return Allow
	}
	for _, r := range requiredRoles {
		if cred.Role == r {
			return Allow
		}
	}
	return RedirectTo(LoginRoute)
}
