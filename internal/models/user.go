package models

import "time"

// DefaultAvatarID is assigned to every newly registered user.
const DefaultAvatarID = 1

// Avatar ids are a closed range chosen by the client UI.
const (
	MinAvatarID = 1
	MaxAvatarID = 10
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarID     int       `json:"avatarId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
