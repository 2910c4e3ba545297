package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"github.com/tadbir/muamalat-core/internal/app/pkg"
	"github.com/tadbir/muamalat-core/internal/infrastructures"
)

// AuthUser is the identity extracted from a verified token.
type AuthUser struct {
	ID       uint
	Username string
	Role     models.UserRole
	FullName string
}

type AuthMiddleware struct{}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{}
}

// Auth verifies the bearer token and stores the caller identity in Locals.
func (m *AuthMiddleware) Auth(c *fiber.Ctx) error {
	token := c.Get("Authorization")
	if token == "" {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError())
	}
	token = strings.Replace(token, "Bearer ", "", 1)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(infrastructures.Config.JWT_SECRET), nil
	})
	if err != nil || !parsed.Valid {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("Session expired"))
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("Session expired"))
	}

	user := &AuthUser{}
	if id, ok := claims["id"].(float64); ok {
		user.ID = uint(id)
	}
	if username, ok := claims["username"].(string); ok {
		user.Username = username
	}
	if role, ok := claims["role"].(string); ok {
		user.Role = models.UserRole(role)
	}
	if fullName, ok := claims["full_name"].(string); ok {
		user.FullName = fullName
	}

	c.Locals("user", user)
	return c.Next()
}

// AdminOnly forbids callers without the admin role. Must run after Auth.
func (m *AuthMiddleware) AdminOnly(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*AuthUser)
	if !ok {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError())
	}
	if user.Role != models.UserRoleAdmin {
		return pkg.ErrorResponse(c, errors.NewForbiddenError())
	}
	return c.Next()
}

// CurrentUser returns the identity stored by Auth, or nil outside an
// authenticated route.
func CurrentUser(c *fiber.Ctx) *AuthUser {
	user, _ := c.Locals("user").(*AuthUser)
	return user
}

// ActorID is the audit identity of the caller, "system" when absent.
func ActorID(c *fiber.Ctx) string {
	if user := CurrentUser(c); user != nil && user.Username != "" {
		return user.Username
	}
	return "system"
}
