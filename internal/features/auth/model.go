package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account can hold.
const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// User represents a registered account. The password hash never serializes
// to JSON.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Phone     string             `bson:"phone" json:"phone"`
	Address   string             `bson:"address" json:"address"`
	Gender    string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
	PhotoID   string             `bson:"photoId,omitempty" json:"-"`
	Role      string             `bson:"role" json:"role"`
	IsBanned  bool               `bson:"isBanned" json:"isBanned"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RegisterRequest carries the pending-registration payload. It lives inside
// the registration token until the email is verified, no user row exists
// before that.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Address  string `json:"address" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Gender   string `json:"gender"`
}

// ActivateRequest carries the registration token back from the mail link.
type ActivateRequest struct {
	Token string `json:"token" binding:"required"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest asks for a reset link by email.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPasswordRequest carries the reset token from the mail link and the
// replacement password.
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}
