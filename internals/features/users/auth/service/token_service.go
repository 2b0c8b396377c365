package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"tvdigital_backend/internals/features/users/auth/model"
	helperAuth "tvdigital_backend/internals/helpers/auth"
)

/* ==========================
   ACCESS TOKEN / LOGOUT
========================== */

func (s *AuthService) issueAccessToken(user *model.UserAccount) (string, time.Time, error) {
	secret, err := s.secret()
	if err != nil {
		return "", time.Time{}, err
	}
	now := s.now()
	exp := now.Add(s.accessTTL())
	claims := jwt.MapClaims{
		"id":        user.Username,
		"user_name": user.Username,
		"full_name": user.Name,
		"jti":       uuid.NewString(),
		"iat":       now.Unix(),
		"exp":       exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("tanda tangan token: %w", err)
	}
	return token, exp, nil
}

// parseToken memverifikasi tanda tangan dan exp terhadap jam service.
func (s *AuthService) parseToken(raw string) (jwt.MapClaims, error) {
	secret, err := s.secret()
	if err != nil {
		return nil, err
	}
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}); err != nil {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyExpiresAt(s.now().Unix(), true) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyAccessToken dipakai middleware: token valid, belum logout, menghasilkan ActingUser.
func (s *AuthService) VerifyAccessToken(ctx context.Context, raw string) (*model.ActingUser, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidToken
	}
	claims, err := s.parseToken(raw)
	if err != nil {
		return nil, err
	}

	revoked, err := helperAuth.IsBlacklisted(ctx, s.Store, raw, s.JWTSecret, s.now())
	if err != nil {
		return nil, fmt.Errorf("cek blacklist: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	username, _ := claims["user_name"].(string)
	fullName, _ := claims["full_name"].(string)
	u := &model.ActingUser{Username: strings.TrimSpace(username), DisplayName: fullName}
	if !u.IsAuthenticated() {
		return nil, ErrInvalidToken
	}
	return u, nil
}

// Logout mem-blacklist token sampai exp. Token yang sudah tidak valid diabaikan.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	claims, err := s.parseToken(raw)
	if err != nil {
		log.Printf("[INFO] logout dengan token tidak valid, tidak perlu blacklist")
		return nil
	}
	exp := s.now().Add(s.accessTTL())
	if v, ok := claims["exp"].(float64); ok {
		exp = time.Unix(int64(v), 0)
	}
	if err := helperAuth.Add(ctx, s.Store, raw, s.JWTSecret, exp); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}
