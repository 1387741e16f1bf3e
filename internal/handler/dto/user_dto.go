// Package dto defines the response shapes of the HTTP API.
package dto

import (
	"time"

	"github.com/yourusername/identity-api/internal/domain/entity"
)

// UserResponse is the full representation returned to the account owner.
type UserResponse struct {
	ID         uint       `json:"id"`
	Email      string     `json:"email"`
	Username   string     `json:"username"`
	Slug       string     `json:"slug"`
	IsVerified bool       `json:"is_verified"`
	IsActive   bool       `json:"is_active"`
	FirstName  string     `json:"first_name,omitempty"`
	LastName   string     `json:"last_name,omitempty"`
	Bio        string     `json:"bio,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Location   string     `json:"location,omitempty"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// PublicProfileResponse is the representation served for slug lookups.
// It omits email, phone and account state.
type PublicProfileResponse struct {
	Username  string `json:"username"`
	Slug      string `json:"slug"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Location  string `json:"location,omitempty"`
}

func NewUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Username:   user.Username,
		Slug:       user.Slug,
		IsVerified: user.IsVerified,
		IsActive:   user.IsActive,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Bio:        user.Bio,
		Phone:      user.Phone,
		Location:   user.Location,
		BirthDate:  user.BirthDate,
		CreatedAt:  user.CreatedAt,
	}
}

func NewPublicProfileResponse(user *entity.User) *PublicProfileResponse {
	return &PublicProfileResponse{
		Username:  user.Username,
		Slug:      user.Slug,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		Location:  user.Location,
	}
}
