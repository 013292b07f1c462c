package domain

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUserIDEmpty   = errors.New("user id cannot be empty")
	ErrUserNameEmpty = errors.New("user name cannot be empty")
	ErrUserNameTaken = errors.New("user name already exists")
	ErrSelfFollow    = errors.New("cannot follow yourself")
)

// User is an immutable profile record. Identity is the ID: two users with
// the same ID are the same user regardless of the other fields.
type User struct {
	ID    string  `json:"id" db:"id"`
	Name  string  `json:"name" db:"name"`
	Color *Color  `json:"color,omitempty"`
	Bio   *string `json:"bio,omitempty" db:"bio"`
}

func NewUser(id, name string, color *Color, bio string) (*User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrUserIDEmpty
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrUserNameEmpty
	}

	if color != nil {
		if err := color.Validate(); err != nil {
			return nil, err
		}
	}

	var bioPtr *string
	if cleaned := strings.TrimSpace(bio); cleaned != "" {
		bioPtr = &cleaned
	}

	return &User{
		ID:    id,
		Name:  name,
		Color: color,
		Bio:   bioPtr,
	}, nil
}

func (u User) Equal(other User) bool {
	return u.ID == other.ID
}

// Less orders users by display name; ID breaks exact name collisions so
// sorted listings stay deterministic.
func (u User) Less(other User) bool {
	if u.Name != other.Name {
		return u.Name < other.Name
	}
	return u.ID < other.ID
}
