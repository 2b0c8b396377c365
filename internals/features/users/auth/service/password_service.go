package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"tvdigital_backend/internals/features/mailer"
	"tvdigital_backend/internals/features/users/auth/dto"
	authHelper "tvdigital_backend/internals/features/users/auth/helper"
	"tvdigital_backend/internals/features/users/auth/model"
	authRepo "tvdigital_backend/internals/features/users/auth/repository"
	helper "tvdigital_backend/internals/helpers"
)

/* ==========================
   FORGOT / RESET PASSWORD
========================== */

// ForgotPassword membuat tiket OTP. Email yang tidak dikenal tetap dijawab sukses.
func (s *AuthService) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) error {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := helper.Validate.Struct(req); err != nil {
		return err
	}

	user, err := authRepo.FindUserByEmail(ctx, s.Store, req.Email)
	if errors.Is(err, authRepo.ErrNotFound) {
		log.Printf("[INFO] forgot-password untuk email tidak terdaftar")
		return nil
	}
	if err != nil {
		return fmt.Errorf("baca user: %w", err)
	}

	otp, err := s.newOTP()
	if err != nil {
		return fmt.Errorf("buat OTP: %w", err)
	}
	ticket := &model.PasswordResetTicket{
		Email:     user.Email,
		OTP:       otp,
		ExpiresAt: s.now().Add(s.otpTTL()).Unix(),
	}
	if err := authRepo.SaveResetTicket(ctx, s.Store, user.Username, ticket); err != nil {
		return fmt.Errorf("simpan tiket reset: %w", err)
	}
	return s.send(ctx, mailer.OTPResetMessage(user.Email, user.Name, otp, int(s.otpTTL().Minutes())))
}

func (s *AuthService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.OTP = strings.TrimSpace(req.OTP)
	if err := helper.Validate.Struct(req); err != nil {
		return err
	}

	user, err := authRepo.FindUserByEmail(ctx, s.Store, req.Email)
	if errors.Is(err, authRepo.ErrNotFound) {
		return ErrInvalidOTP
	}
	if err != nil {
		return fmt.Errorf("baca user: %w", err)
	}
	ticket, err := authRepo.FindResetTicket(ctx, s.Store, user.Username)
	if errors.Is(err, authRepo.ErrNotFound) {
		return ErrInvalidOTP
	}
	if err != nil {
		return fmt.Errorf("baca tiket reset: %w", err)
	}
	if s.now().Unix() > ticket.ExpiresAt {
		return ErrOTPExpired
	}
	if !authHelper.SameOTP(ticket.OTP, req.OTP) || !strings.EqualFold(ticket.Email, user.Email) {
		return ErrInvalidOTP
	}

	hash, err := authHelper.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := authRepo.ResetPasswordWithTicket(ctx, s.Store, user.Username, hash); err != nil {
		return fmt.Errorf("simpan password: %w", err)
	}
	return nil
}
