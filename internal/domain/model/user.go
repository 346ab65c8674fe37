package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const DefaultUserImage = "https://api.dicebear.com/9.x/big-ears-neutral/svg?seed=Alexander"

type User struct {
	ID             string `json:"id"`
	PersonalID     string `json:"personal_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	HashedPassword string `json:"-"` // Not exposed
	Role           string `json:"role"`
	Address        string `json:"address"`
	PhoneNumber    string `json:"phone_number"`
	Bio            string `json:"bio"`
	UserImage      string `json:"user_image"`

	Verified            bool       `json:"verified"`
	VerificationCode    *string    `json:"-"` // plaintext at rest, cleared on use
	VerificationExpires *time.Time `json:"-"`

	JoinedAt  time.Time `json:"joinedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicUser is the trimmed identity subset returned by signup, signin
// and refresh responses.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}
