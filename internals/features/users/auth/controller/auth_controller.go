package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"tvdigital_backend/internals/features/users/auth/dto"
	"tvdigital_backend/internals/features/users/auth/service"
	helper "tvdigital_backend/internals/helpers"
	helperAuth "tvdigital_backend/internals/helpers/auth"
)

type AuthController struct {
	Svc *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Svc: svc}
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := ac.Svc.Register(c.UserContext(), req); err != nil {
		return writeAuthError(c, err)
	}
	return helper.JsonCreated(c, "Pendaftaran diterima, cek email untuk kode OTP", fiber.Map{
		"username": req.Username,
	})
}

// POST /api/auth/register/verify
func (ac *AuthController) VerifyRegistration(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	user, err := ac.Svc.ConfirmRegistration(c.UserContext(), req)
	if err != nil {
		return writeAuthError(c, err)
	}
	log.Printf("[INFO] akun baru terverifikasi: %s", user.Username)
	return helper.JsonCreated(c, "Akun berhasil dibuat, silakan login", dto.NewUserResponse(user))
}

// POST /api/auth/register/resend
func (ac *AuthController) ResendOTP(c *fiber.Ctx) error {
	var req dto.ResendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := ac.Svc.ResendOTP(c.UserContext(), req); err != nil {
		return writeAuthError(c, err)
	}
	return helper.JsonOK(c, "Kode OTP baru sudah dikirim", nil)
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	res, err := ac.Svc.Login(c.UserContext(), req)
	if err != nil {
		return writeAuthError(c, err)
	}

	setAccessCookie(c, res.AccessToken, res.ExpiresAt)
	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		User:        dto.NewUserResponse(res.User),
		AccessToken: res.AccessToken,
		ExpiresAt:   res.ExpiresAt.Unix(),
	})
}

// POST /api/auth/logout (idempotent)
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Svc.Logout(c.UserContext(), helper.GetRawAccessToken(c)); err != nil {
		return helper.JsonStoreError(c, err)
	}
	clearAccessCookie(c)
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// POST /api/auth/forgot-password
func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := ac.Svc.ForgotPassword(c.UserContext(), req); err != nil {
		return writeAuthError(c, err)
	}
	return helper.JsonOK(c, "Kalau email terdaftar, kode OTP sudah dikirim", nil)
}

// POST /api/auth/forgot-password/reset
func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := ac.Svc.ResetPassword(c.UserContext(), req); err != nil {
		return writeAuthError(c, err)
	}
	return helper.JsonUpdated(c, "Password berhasil diganti, silakan login", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	actor := helperAuth.GetActingUser(c)
	if !actor.IsAuthenticated() {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Silakan login terlebih dahulu")
	}
	user, err := ac.Svc.Profile(c.UserContext(), actor.Username)
	if err != nil {
		return writeAuthError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.NewUserResponse(user))
}

/* ==========================
   Helpers
========================== */

func setAccessCookie(c *fiber.Ctx, token string, exp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  exp,
	})
}

func clearAccessCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
	})
}

func writeAuthError(c *fiber.Ctx, err error) error {
	if fields, ok := helper.ValidationMessages(err); ok {
		return helper.JsonValidationError(c, "Input tidak valid", fields, nil)
	}
	switch {
	case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrEmailTaken):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidOTP):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrOTPExpired):
		return helper.JsonError(c, fiber.StatusGone, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenRevoked):
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrPendingNotFound), errors.Is(err, service.ErrUserNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrMailDelivery):
		return helper.JsonError(c, fiber.StatusBadGateway, err.Error())
	case errors.Is(err, service.ErrMissingSecret):
		log.Printf("[ERROR] %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Konfigurasi server belum lengkap")
	default:
		return helper.JsonStoreError(c, err)
	}
}
