package model

// UserAccount disimpan di users/<username>. Username adalah key, bukan field.
type UserAccount struct {
	Username     string `json:"-"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Points       int    `json:"points"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// PendingRegistration disimpan di pending_users/<username> sampai OTP dikonfirmasi.
type PendingRegistration struct {
	UserAccount
	OTP          string `json:"otp"`
	OTPExpiresAt int64  `json:"otp_expires_at"`
}

// PasswordResetTicket disimpan di otp/<username> sampai password diganti.
type PasswordResetTicket struct {
	Email     string `json:"email"`
	OTP       string `json:"otp"`
	ExpiresAt int64  `json:"expires_at"`
}
