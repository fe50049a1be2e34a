package apiserver

import (
	"errors"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// AuthRequired enforces authentication for protected routes. The client
// sends the raw token in the Authorization header, no "Bearer " prefix.
func (s *Server) AuthRequired(c *fiber.Ctx) error {
	tokenString := c.Get("Authorization")
	if tokenString == "" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Missing or invalid token"))
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Unauthorized"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid token claims"))
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Email not found in token"))
	}

	c.Locals("userEmail", email)
	return c.Next()
}

// currentUser resolves the authenticated account from the request context.
func (s *Server) currentUser(c *fiber.Ctx) (*models.User, error) {
	email, ok := c.Locals("userEmail").(string)
	if !ok || email == "" {
		return nil, models.NewUnauthorizedError("Unauthorized")
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("user", email)
		}
		return nil, models.NewServerError("could not load user", err)
	}
	return &user, nil
}
