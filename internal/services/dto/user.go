package dto

import (
	"time"

	"jobhub_backend/internal/models"
)

type UpdateUserRequest struct {
	FirstName   *string `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName    *string `json:"last_name,omitempty" validate:"omitempty,min=1"`
	Age         *int    `json:"age,omitempty" validate:"omitempty,gte=14,lte=120"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// UserResponse is the public view of a user, password hash excluded.
type UserResponse struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Age          int       `json:"age,omitempty"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Description  string    `json:"description,omitempty"`
	Image        string    `json:"image"`
	Role         string    `json:"role"`
	CustomerID   string    `json:"customer_id,omitempty"`
	FreelancerID string    `json:"freelancer_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewUserResponse(u *models.User) *UserResponse {
	resp := &UserResponse{
		ID:          u.ID.Hex(),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Age:         u.Age,
		Email:       u.Email,
		Username:    u.Username,
		PhoneNumber: u.PhoneNumber,
		Description: u.Description,
		Image:       u.Image,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt,
	}
	if u.CustomerID != nil {
		resp.CustomerID = u.CustomerID.Hex()
	}
	if u.FreelancerID != nil {
		resp.FreelancerID = u.FreelancerID.Hex()
	}
	return resp
}
