package models

import "time"

// Member is a stored member record. Password holds the credential in one of
// two historical forms: a bcrypt digest (recognized by its "$2" prefix) or a
// legacy plaintext value from the pre-hashing era. The plaintext form is
// upgraded in place on the first successful login and never reappears.
type Member struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Phone     string
	CreatedAt time.Time
}

// SafeMember is the externally visible shape of a member: the credential
// field is stripped before a record crosses the service boundary.
type SafeMember struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Safe returns the member without its credential.
func (m *Member) Safe() SafeMember {
	return SafeMember{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		CreatedAt: m.CreatedAt,
	}
}

// MemberPatch is a partial update applied to a stored member. Nil fields are
// left untouched.
type MemberPatch struct {
	Name     *string
	Password *string
	Phone    *string
}
