// Package models holds the persisted entity types for the Forevo server.
// The JSON tags define the on-disk layout of the collection files, so they
// must stay stable.
package models

import "time"

// DefaultAvatarColor is assigned when registration does not provide one.
const DefaultAvatarColor = "#8b5cf6"

// User is a stored account record. Password holds the bcrypt hash of the
// user's password; the JSON key is kept as "password" for compatibility with
// the existing users.json layout.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	DisplayName string    `json:"displayName"`
	UserName    string    `json:"username"`
	AvatarColor string    `json:"avatarColor"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PublicUser is the outward projection of User. It has no password field at
// all, so the hash cannot leak through serialization.
type PublicUser struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	UserName    string    `json:"username"`
	AvatarColor string    `json:"avatarColor"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Public returns the projection of u safe to return over the API.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		UserName:    u.UserName,
		AvatarColor: u.AvatarColor,
		CreatedAt:   u.CreatedAt,
	}
}
