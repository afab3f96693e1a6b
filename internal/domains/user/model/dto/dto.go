package dto

import (
	"hotelier/internal/domains/user/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/timezone"
	"strings"
)

type CreateUserRequest struct {
	Email    string `json:"email"     validate:"required,email,max=150"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,max=150"`
	Role     string `json:"role"      validate:"omitempty,oneof=admin staff"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleStaff
	}

	user := model.User{
		Email:        strings.ToLower(strings.TrimSpace(r.Email)),
		PasswordHash: hashedPassword,
		FullName:     r.FullName,
		Role:         role,
		Active:       true,
	}
	user.Stamp(timezone.Now(), username)

	return user
}

type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"     validate:"omitempty,email,max=150"`
	Password *string `json:"password,omitempty"  validate:"omitempty,min=8,max=72"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=1,max=150"`
	Role     *string `json:"role,omitempty"      validate:"omitempty,oneof=admin staff"`
	Active   *bool   `json:"active,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.FullName = model.FullName
	r.Role = model.Role
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
