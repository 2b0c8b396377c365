package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"tvdigital_backend/internals/configs"
	"tvdigital_backend/internals/databases/store"
	"tvdigital_backend/internals/features/mailer"
	"tvdigital_backend/internals/features/users/auth/dto"
	authHelper "tvdigital_backend/internals/features/users/auth/helper"
	"tvdigital_backend/internals/features/users/auth/model"
	authRepo "tvdigital_backend/internals/features/users/auth/repository"
	helper "tvdigital_backend/internals/helpers"
	"tvdigital_backend/internals/helpers/breaker"
)

/* ==========================
   Const & Types
========================== */

const (
	accessTTLDefault = 24 * time.Hour
	otpTTLDefault    = 10 * time.Minute
	mailTimeout      = 20 * time.Second
)

var (
	ErrUsernameTaken      = errors.New("username sudah dipakai")
	ErrEmailTaken         = errors.New("email sudah terdaftar")
	ErrPendingNotFound    = errors.New("pendaftaran tidak ditemukan atau sudah dikonfirmasi")
	ErrInvalidOTP         = errors.New("kode OTP salah")
	ErrOTPExpired         = errors.New("kode OTP sudah kedaluwarsa")
	ErrInvalidCredentials = errors.New("username/email atau password salah")
	ErrUserNotFound       = errors.New("user tidak ditemukan")
	ErrInvalidToken       = errors.New("token tidak valid")
	ErrTokenRevoked       = errors.New("sesi sudah keluar, silakan login lagi")
	ErrMissingSecret      = errors.New("JWT_SECRET belum diset")
	ErrMailDelivery       = errors.New("gagal mengirim email OTP")
)

type AuthService struct {
	Store     store.Store
	Mailer    mailer.Sender
	JWTSecret string
	AccessTTL time.Duration
	OTPTTL    time.Duration
	Now       func() time.Time
	NewOTP    func() (string, error)
}

func NewAuthService(s store.Store, m mailer.Sender) *AuthService {
	return &AuthService{
		Store:     s,
		Mailer:    m,
		JWTSecret: configs.JWTSecret,
		AccessTTL: configs.AccessTokenTTL,
		OTPTTL:    configs.OTPTTL,
		Now:       time.Now,
		NewOTP:    authHelper.GenerateOTP,
	}
}

type LoginResult struct {
	User        *model.UserAccount
	AccessToken string
	ExpiresAt   time.Time
}

/* ==========================
   Small Helpers
========================== */

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *AuthService) otpTTL() time.Duration {
	if s.OTPTTL > 0 {
		return s.OTPTTL
	}
	return otpTTLDefault
}

func (s *AuthService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return accessTTLDefault
}

func (s *AuthService) secret() (string, error) {
	secret := strings.TrimSpace(s.JWTSecret)
	if secret == "" {
		return "", ErrMissingSecret
	}
	return secret, nil
}

func (s *AuthService) newOTP() (string, error) {
	if s.NewOTP != nil {
		return s.NewOTP()
	}
	return authHelper.GenerateOTP()
}

func (s *AuthService) send(ctx context.Context, msg mailer.Message) error {
	if s.Mailer == nil {
		return nil
	}
	ctx, cancel := breaker.Detach(ctx, mailTimeout)
	defer cancel()
	if err := s.Mailer.Send(ctx, msg); err != nil {
		log.Printf("[ERROR] kirim email ke %s: %v", msg.To, err)
		return ErrMailDelivery
	}
	return nil
}

// emailTaken memindai seluruh users; skala kecil, tidak ada indeks email.
func (s *AuthService) emailTaken(ctx context.Context, email string) (bool, error) {
	_, err := authRepo.FindUserByEmail(ctx, s.Store, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, authRepo.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *AuthService) usernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := authRepo.FindUserByUsername(ctx, s.Store, username)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, authRepo.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

/* ==========================
   REGISTER + OTP
========================== */

// Register menyimpan pendaftaran di pending_users dan mengirim OTP. Akun baru
// dibuat di ConfirmRegistration.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := helper.Validate.Struct(req); err != nil {
		return err
	}

	taken, err := s.usernameTaken(ctx, req.Username)
	if err != nil {
		return fmt.Errorf("cek username: %w", err)
	}
	if taken {
		return ErrUsernameTaken
	}
	taken, err = s.emailTaken(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("cek email: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}

	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	otp, err := s.newOTP()
	if err != nil {
		return fmt.Errorf("buat OTP: %w", err)
	}

	pending := &model.PendingRegistration{
		UserAccount: model.UserAccount{
			Username:     req.Username,
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
		},
		OTP:          otp,
		OTPExpiresAt: s.now().Add(s.otpTTL()).Unix(),
	}
	if err := authRepo.SavePending(ctx, s.Store, pending); err != nil {
		return fmt.Errorf("simpan pendaftaran: %w", err)
	}

	return s.send(ctx, mailer.OTPRegistrationMessage(req.Email, req.Name, otp, int(s.otpTTL().Minutes())))
}

// ConfirmRegistration memindahkan pending_users/<u> ke users/<u> dalam satu tulis.
func (s *AuthService) ConfirmRegistration(ctx context.Context, req dto.VerifyOTPRequest) (*model.UserAccount, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.OTP = strings.TrimSpace(req.OTP)
	if err := helper.Validate.Struct(req); err != nil {
		return nil, err
	}

	pending, err := authRepo.FindPending(ctx, s.Store, req.Username)
	if errors.Is(err, authRepo.ErrNotFound) {
		return nil, ErrPendingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("baca pendaftaran: %w", err)
	}
	if s.now().Unix() > pending.OTPExpiresAt {
		return nil, ErrOTPExpired
	}
	if !authHelper.SameOTP(pending.OTP, req.OTP) {
		return nil, ErrInvalidOTP
	}

	// akun lain bisa saja selesai lebih dulu dengan username/email yang sama
	if taken, err := s.usernameTaken(ctx, pending.Username); err != nil {
		return nil, fmt.Errorf("cek username: %w", err)
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := s.emailTaken(ctx, pending.Email); err != nil {
		return nil, fmt.Errorf("cek email: %w", err)
	} else if taken {
		return nil, ErrEmailTaken
	}

	account := pending.UserAccount
	account.Points = 0
	account.CreatedAt = s.now().Format(time.RFC3339)
	if err := authRepo.ConfirmPending(ctx, s.Store, &account); err != nil {
		return nil, fmt.Errorf("buat akun: %w", err)
	}
	return &account, nil
}

func (s *AuthService) ResendOTP(ctx context.Context, req dto.ResendOTPRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	if err := helper.Validate.Struct(req); err != nil {
		return err
	}

	pending, err := authRepo.FindPending(ctx, s.Store, req.Username)
	if errors.Is(err, authRepo.ErrNotFound) {
		return ErrPendingNotFound
	}
	if err != nil {
		return fmt.Errorf("baca pendaftaran: %w", err)
	}

	otp, err := s.newOTP()
	if err != nil {
		return fmt.Errorf("buat OTP: %w", err)
	}
	if err := authRepo.UpdatePendingOTP(ctx, s.Store, pending.Username, otp, s.now().Add(s.otpTTL()).Unix()); err != nil {
		return fmt.Errorf("simpan OTP: %w", err)
	}
	return s.send(ctx, mailer.OTPRegistrationMessage(pending.Email, pending.Name, otp, int(s.otpTTL().Minutes())))
}

/* ==========================
   LOGIN
========================== */

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*LoginResult, error) {
	req.Identifier = strings.TrimSpace(req.Identifier)
	if err := helper.Validate.Struct(req); err != nil {
		return nil, err
	}

	user, err := authRepo.FindUserByEmailOrUsername(ctx, s.Store, req.Identifier)
	if errors.Is(err, authRepo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("baca user: %w", err)
	}
	if err := authHelper.CheckPasswordHash(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.issueAccessToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, AccessToken: token, ExpiresAt: exp}, nil
}

/* ==========================
   PROFILE
========================== */

func (s *AuthService) Profile(ctx context.Context, username string) (*model.UserAccount, error) {
	user, err := authRepo.FindUserByUsername(ctx, s.Store, strings.TrimSpace(username))
	if errors.Is(err, authRepo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("baca user: %w", err)
	}
	return user, nil
}

// ListAccounts dipakai export.
func (s *AuthService) ListAccounts(ctx context.Context) ([]model.UserAccount, error) {
	users, err := authRepo.ListUsers(ctx, s.Store)
	if err != nil {
		return nil, fmt.Errorf("baca users: %w", err)
	}
	return users, nil
}
