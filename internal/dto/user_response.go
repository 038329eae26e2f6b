package dto

import (
	"time"

	"github.com/arkival/article_archiver_app/internal/core/domain"
)

// UserResponse is the outward representation of a user. The password hash
// and auxiliary tokens are never included.
type UserResponse struct {
	UserID      string                 `json:"id"`
	Username    string                 `json:"username"`
	Email       string                 `json:"email"`
	Role        domain.UserRole        `json:"role"`
	Profile     domain.UserProfile     `json:"profile"`
	Preferences domain.UserPreferences `json:"preferences"`
	Stats       domain.UserStats       `json:"stats"`
	IsActive    bool                   `json:"isActive"`
	IsVerified  bool                   `json:"isVerified"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its outward representation.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:      user.UserID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		Profile:     user.Profile,
		Preferences: user.Preferences,
		Stats:       user.Stats,
		IsActive:    user.IsActive,
		IsVerified:  user.IsVerified,
		CreatedAt:   user.CreatedAt,
	}
}
