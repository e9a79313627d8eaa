package dto

import "yamdb/internal/microservices/http-api/models"

// CreateUserRequest used for POST /api/v1/users (admin)
type CreateUserRequest struct {
	Username  string      `json:"username" binding:"required,max=150,username"`
	Email     string      `json:"email" binding:"required,max=254,email"`
	FirstName string      `json:"first_name" binding:"max=150"`
	LastName  string      `json:"last_name" binding:"max=150"`
	Bio       string      `json:"bio"`
	Role      models.Role `json:"role" binding:"omitempty,oneof=user moderator admin"`
}

// UpdateUserRequest used for PATCH /api/v1/users/:username (admin)
type UpdateUserRequest struct {
	Username  *string      `json:"username" binding:"omitempty,max=150,username"`
	Email     *string      `json:"email" binding:"omitempty,max=254,email"`
	FirstName *string      `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string      `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string      `json:"bio"`
	Role      *models.Role `json:"role" binding:"omitempty,oneof=user moderator admin"`
}

// UpdateProfileRequest used for PATCH /api/v1/users/me. There is no role
// field, so a role sent by the client is dropped while decoding.
type UpdateProfileRequest struct {
	Username  *string `json:"username" binding:"omitempty,max=150,username"`
	Email     *string `json:"email" binding:"omitempty,max=254,email"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
}

// AsAdminUpdate lifts a self-update into the admin shape with Role unset.
func (r UpdateProfileRequest) AsAdminUpdate() UpdateUserRequest {
	return UpdateUserRequest{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
	}
}

// ApplyTo copies the supplied fields onto u.
func (r UpdateUserRequest) ApplyTo(u *models.User) {
	if r.Username != nil {
		u.Username = *r.Username
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.FirstName != nil {
		u.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		u.LastName = *r.LastName
	}
	if r.Bio != nil {
		u.Bio = *r.Bio
	}
	if r.Role != nil {
		u.Role = *r.Role
	}
}

type UserResponse struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Bio       string      `json:"bio"`
	Role      models.Role `json:"role"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role,
	}
}

func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
