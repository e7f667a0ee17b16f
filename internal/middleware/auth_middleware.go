package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"inventory-tracker/internal/apperr"
	"inventory-tracker/internal/model"
	"inventory-tracker/internal/service"
)

const localsPrincipal = "principal"

var errMissingToken = apperr.NewUnauthorized("MISSING_TOKEN", "missing authorization token")

// RequireAuth validates the bearer token against the stored session and
// places the caller's Principal in the request locals.
func RequireAuth(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return errMissingToken
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return apperr.ErrInvalidToken.Msgf("invalid authorization format, use: Bearer <token>")
		}

		principal, err := auth.Authenticate(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}

		c.Locals(localsPrincipal, principal)
		return c.Next()
	}
}

// Principal returns the authenticated caller, or nil on public routes.
func Principal(c *fiber.Ctx) *service.Principal {
	p, _ := c.Locals(localsPrincipal).(*service.Principal)
	return p
}

// Actor returns the acting identity for the request.
func Actor(c *fiber.Ctx) model.Actor {
	if p := Principal(c); p != nil {
		return p.Actor
	}
	return model.Actor{}
}

// RequirePrivilege checks if the authenticated user has the required privilege
func RequirePrivilege(requiredPrivilege string) fiber.Handler {
	return RequireAnyPrivilege(requiredPrivilege)
}

// RequireAnyPrivilege checks if the user has at least one of the specified privileges
func RequireAnyPrivilege(requiredPrivileges ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := Principal(c)
		if p == nil {
			return errMissingToken
		}

		for _, required := range requiredPrivileges {
			if p.Has(required) {
				return c.Next()
			}
		}

		return apperr.ErrForbidden.Msgf("requires one of [%s]", strings.Join(requiredPrivileges, ", "))
	}
}
