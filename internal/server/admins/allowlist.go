// Package admins decides administrative privilege. Admin status is a pure
// function of a fixed allowlist built once at startup; it is never read from
// a field stored on a member record.
package admins

import "github.com/ronin-designs/studiokeeper/internal/validation"

// Allowlist is the set of administrator emails in normalized form.
type Allowlist struct {
	emails map[string]struct{}
}

// NewAllowlist builds an Allowlist from configured email strings. Entries
// are trimmed and lowercased; empty entries are dropped.
func NewAllowlist(emails []string) *Allowlist {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		n := validation.NormalizeEmail(e)
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return &Allowlist{emails: set}
}

// IsAdmin reports whether the normalized email belongs to an administrator.
func (a *Allowlist) IsAdmin(normalizedEmail string) bool {
	_, ok := a.emails[normalizedEmail]
	return ok
}

// Emails returns the normalized allowlist entries.
func (a *Allowlist) Emails() []string {
	out := make([]string, 0, len(a.emails))
	for e := range a.emails {
		out = append(out, e)
	}
	return out
}
