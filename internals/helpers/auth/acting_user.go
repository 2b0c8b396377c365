package helper

import (
	"github.com/gofiber/fiber/v2"

	authModel "tvdigital_backend/internals/features/users/auth/model"
)

const LocActingUser = "acting_user"

// SetActingUser dipanggil middleware auth setelah token valid.
func SetActingUser(c *fiber.Ctx, u *authModel.ActingUser) {
	if u == nil {
		return
	}
	c.Locals(LocActingUser, u)
}

// GetActingUser mengembalikan nil kalau request tidak melewati middleware auth.
func GetActingUser(c *fiber.Ctx) *authModel.ActingUser {
	if u, ok := c.Locals(LocActingUser).(*authModel.ActingUser); ok {
		return u
	}
	return nil
}
