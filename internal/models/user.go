package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        *string    `json:"email"`
	PasswordHash string     `json:"-"`
	DisplayName  string     `json:"display_name"`
	IsGuest      bool       `json:"is_guest"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at"`
}

type RegisterRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	// Optional guest account to promote into this registration.
	GuestID *uuid.UUID `json:"guest_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Optional guest account whose decks and stamina move to the
	// authenticated user on successful login.
	GuestID *uuid.UUID `json:"guest_id"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
