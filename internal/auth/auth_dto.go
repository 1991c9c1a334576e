package auth

import (
	"hris-account/internal/employee"
	"hris-account/internal/user"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string            `json:"token"`
	User  user.UserResponse `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type ForgotPasswordResponse struct {
	Message string `json:"message"`
	// Token is only filled when the deployment exposes reset tokens in
	// responses.
	Token string `json:"token,omitempty"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// CreateEmployeeRequest is bound from a multipart form. The optional image
// file is read separately.
type CreateEmployeeRequest struct {
	Name         string `form:"name" binding:"required"`
	Email        string `form:"email" binding:"required,email"`
	Password     string `form:"password" binding:"required,min=6,max=72"`
	DepartmentID string `form:"departmentId" binding:"required,uuid"`
	DOB          string `form:"dob" binding:"required"`
	Position     string `form:"position" binding:"required"`
}

type CreateEmployeeResponse struct {
	Message  string                    `json:"message"`
	User     user.UserResponse         `json:"user"`
	Employee employee.EmployeeResponse `json:"employee"`
}
