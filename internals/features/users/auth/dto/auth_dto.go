package dto

import (
	"tvdigital_backend/internals/features/users/auth/model"
)

type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=30,username"`
	Name     string `json:"name" form:"name" validate:"required,max=100"`
	Email    string `json:"email" form:"email" validate:"required,email,max=150"`
	Password string `json:"password" form:"password" validate:"required,min=8,max=72,alphanum_mix"`
}

type VerifyOTPRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=30"`
	OTP      string `json:"otp" form:"otp" validate:"required,len=6,numeric"`
}

type ResendOTPRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=30"`
}

// LoginRequest: identifier boleh username atau email.
type LoginRequest struct {
	Identifier string `json:"identifier" form:"identifier" validate:"required,max=150"`
	Password   string `json:"password" form:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" form:"email" validate:"required,email"`
	OTP         string `json:"otp" form:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" form:"new_password" validate:"required,min=8,max=72,alphanum_mix"`
}

// UserResponse tidak pernah membawa password_hash.
type UserResponse struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Points    int    `json:"points"`
	CreatedAt string `json:"created_at,omitempty"`
}

func NewUserResponse(u *model.UserAccount) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Points:    u.Points,
		CreatedAt: u.CreatedAt,
	}
}

type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   int64        `json:"expires_at"`
}
