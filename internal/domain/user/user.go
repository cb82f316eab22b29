package user

import "time"

// Role is a member's permission level.
type Role string

// Roles.
const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
	RoleGuest  Role = "GUEST"
)

// Roles lists every role in display order.
func Roles() []string { return []string{string(RoleAdmin), string(RoleMember), string(RoleGuest)} }

// User is a platform account.
type User struct {
	id          string
	username    string
	email       string
	displayName string
	role        Role
	active      bool
	createdAt   time.Time
}

// Reconstruct creates a User from storage without validation.
func Reconstruct(
	id, username, email, displayName string,
	role Role, active bool, createdAt time.Time,
) User {
	return User{
		id: id, username: username, email: email, displayName: displayName,
		role: role, active: active, createdAt: createdAt,
	}
}

// ID returns the user identifier.
func (u User) ID() string { return u.id }

// Username returns the unique login name.
func (u User) Username() string { return u.username }

// Email returns the contact address.
func (u User) Email() string { return u.email }

// DisplayName returns the human-readable name.
func (u User) DisplayName() string { return u.displayName }

// Role returns the permission level.
func (u User) Role() Role { return u.role }

// Active reports whether the account can sign in.
func (u User) Active() bool { return u.active }

// CreatedAt returns the creation time.
func (u User) CreatedAt() time.Time { return u.createdAt }
