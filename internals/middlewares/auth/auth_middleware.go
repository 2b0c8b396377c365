// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"tvdigital_backend/internals/databases/store"
	authModel "tvdigital_backend/internals/features/users/auth/model"
	helper "tvdigital_backend/internals/helpers"
	helperAuth "tvdigital_backend/internals/helpers/auth"
)

// TokenVerifier dipenuhi oleh service auth.
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, raw string) (*authModel.ActingUser, error)
}

// RequireLogin menolak request tanpa token valid sebelum handler berjalan.
func RequireLogin(v TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Silakan login terlebih dahulu")
		}

		user, err := v.VerifyAccessToken(c.UserContext(), tokenString)
		if err != nil {
			if isStoreFailure(err) {
				return helper.JsonStoreError(c, err)
			}
			log.Printf("[WARN] token ditolak %s %s: %v", c.Method(), c.Path(), err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "Sesi tidak valid, silakan login lagi")
		}

		helper.SetRawAccessToken(c, tokenString)
		helperAuth.SetActingUser(c, user)
		return c.Next()
	}
}

// OptionalLogin mengisi ActingUser kalau token valid, tapi tidak pernah menolak.
func OptionalLogin(v TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return c.Next()
		}
		if user, err := v.VerifyAccessToken(c.UserContext(), tokenString); err == nil {
			helper.SetRawAccessToken(c, tokenString)
			helperAuth.SetActingUser(c, user)
		}
		return c.Next()
	}
}

func isStoreFailure(err error) bool {
	return errors.Is(err, store.ErrUnavailable) || errors.Is(err, context.DeadlineExceeded)
}
