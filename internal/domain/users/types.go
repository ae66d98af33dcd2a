package users

import (
	"errors"
	"time"

	"storefront/internal/domain/roles"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrRoleChanged       = errors.New("user role changed concurrently")
	QueryTimeoutDuration = time.Second * 5
)

const MaxDisplayNameLength = 50

type User struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	DisplayName *string    `json:"displayName,omitempty"`
	Email       string     `json:"email"`
	Image       *string    `json:"image,omitempty"`
	Role        roles.Role `json:"role"`
	Password    password   `json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ShownName is the display name override when present, otherwise the
// account name.
func (u *User) ShownName() string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	return u.Name
}

// Password struct to store plain text and hash
type password struct {
	text *string
	hash []byte
}

func (p *password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.text = &text
	p.hash = hash

	return nil
}

func (p *password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}

// Hash exposes the stored hash for persistence.
func (p *password) Hash() []byte {
	return p.hash
}
