package apiserver

import (
	"log"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil in that case.
var errResponseWritten = &models.AppError{Code: models.CodeValidation, Message: "response already written"}

// parseID extracts a route parameter as a positive uint. On failure it
// writes a 400 response and returns errResponseWritten.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// LogCodeSender "delivers" reset codes to the server log. The development
// default; tests inject a capturing sender instead.
type LogCodeSender struct{}

// SendResetCode logs the code instead of mailing it.
func (LogCodeSender) SendResetCode(email, code string) error {
	log.Printf("password reset code for %s: %s (expires in 10 minutes)", email, code)
	return nil
}
