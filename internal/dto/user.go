package dto

import (
	"time"

	"github.com/autofix-digital/template-base/internal/model"
)

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"omitempty,max=50"`
	Role     string `json:"role" binding:"omitempty,oneof=ADMIN CLIENT"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Photo    *string `json:"photo" binding:"omitempty,max=512"`
	Role     *string `json:"role" binding:"omitempty,oneof=ADMIN CLIENT"`
}

type UserResponse struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Photo     string     `json:"photo,omitempty"`
	Role      model.Role `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Photo:     u.Photo,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUserResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return out
}
