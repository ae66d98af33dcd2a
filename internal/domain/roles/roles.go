package roles

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownRole       = errors.New("unknown role")
	ErrRoleNotToggleable = errors.New("role cannot be toggled to or from fake admin")
)

// Role is the access level of a user. The zero value is not a valid role.
type Role uint8

const (
	Unknown Role = iota
	User
	FakeAdmin
	Admin
)

var names = map[Role]string{
	User:      "USER",
	FakeAdmin: "FAKE_ADMIN",
	Admin:     "ADMIN",
}

func (r Role) String() string {
	if n, ok := names[r]; ok {
		return n
	}
	return "UNKNOWN"
}

func (r Role) Valid() bool {
	_, ok := names[r]
	return ok
}

// Parse accepts the stored names case-insensitively.
func Parse(s string) (Role, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for r, n := range names {
		if n == s {
			return r, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// CanViewDashboard reports whether the admin dashboard may be opened.
// Fake admins can look but not touch.
func (r Role) CanViewDashboard() bool {
	return r == FakeAdmin || r == Admin
}

// CanManageCatalog reports whether catalog mutations are allowed.
func (r Role) CanManageCatalog() bool {
	return r == Admin
}

// Satisfies reports whether r grants at least the access of required.
func (r Role) Satisfies(required Role) bool {
	if !r.Valid() || !required.Valid() {
		return false
	}
	return r >= required
}

// ToggleFakeAdmin returns the role after the self-service fake admin switch.
// Admin (and anything unknown) is left alone.
func ToggleFakeAdmin(current Role) (Role, error) {
	switch current {
	case User:
		return FakeAdmin, nil
	case FakeAdmin:
		return User, nil
	default:
		return current, fmt.Errorf("%w: %s", ErrRoleNotToggleable, current)
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, uint8(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Scan implements sql.Scanner for the user_role column.
func (r *Role) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return r.UnmarshalText([]byte(v))
	case []byte:
		return r.UnmarshalText(v)
	case nil:
		*r = Unknown
		return nil
	default:
		return fmt.Errorf("roles: cannot scan %T", src)
	}
}

// Value implements driver.Valuer.
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, uint8(r))
	}
	return r.String(), nil
}
