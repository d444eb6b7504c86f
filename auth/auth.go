// Package auth checks credentials against the Users reference collection.
//
// Passwords are stored and compared in clear text: the user list lives in
// the same human-editable workbook as the rest of the reference data, and
// hardening it is explicitly out of scope for this system.
package auth

import "github.com/geantfroid/sav-engine/catalog"

// Authenticator validates logins against one snapshot's user list.
type Authenticator struct {
	snap *catalog.Snapshot
}

func New(snap *catalog.Snapshot) *Authenticator {
	return &Authenticator{snap: snap}
}

// Authenticate returns the matching user, or false when no user carries
// exactly this username and password.
func (a *Authenticator) Authenticate(username, password string) (catalog.User, bool) {
	for _, u := range a.snap.Users {
		if u.Username == username && u.Password == password {
			return u, true
		}
	}
	return catalog.User{}, false
}

// IsAdmin reports whether the user holds the admin role.
func IsAdmin(u catalog.User) bool { return u.Role == catalog.RoleAdmin }

// IsInserter reports whether the user holds the inserter role.
func IsInserter(u catalog.User) bool { return u.Role == catalog.RoleInserter }
