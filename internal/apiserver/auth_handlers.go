package apiserver

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"
	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetCodeTTL = 10 * time.Minute

// SignUp handles POST /api/signup.
func (s *Server) SignUp(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid input"))
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError("Email already registered"))
	}
	if err := s.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError("Username is already taken"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Error hashing password", err))
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Error saving user to db", err))
	}

	token, err := s.generateToken(user.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Error generating token", err))
	}

	return c.Status(fiber.StatusCreated).JSON(models.Envelope{
		StatusText: models.StatusOK,
		Msg:        "User registered successfully",
		Token:      token,
		UserID:     user.ID,
		Username:   user.Username,
		Email:      user.Email,
	})
}

// SignIn handles POST /api/signin.
func (s *Server) SignIn(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid input"))
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("User not found"))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("could not load user", err))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Incorrect password"))
	}

	token, err := s.generateToken(user.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Error generating token", err))
	}

	return c.JSON(models.Envelope{
		StatusText: models.StatusOK,
		Msg:        "Login successful",
		Token:      token,
		UserID:     user.ID,
		Username:   user.Username,
		Email:      user.Email,
	})
}

// RequestResetCode handles POST /api/request-reset-code: step one of the
// password-reset wizard.
func (s *Server) RequestResetCode(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request"))
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("user", req.Email))
	}

	code, err := sixDigitCode()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Failed to generate code", err))
	}

	user.ResetCode = code
	user.ResetCodeExpiry = time.Now().Add(resetCodeTTL)
	if err := s.db.Save(&user).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Failed to store code", err))
	}

	if err := s.codeSender.SendResetCode(user.Email, code); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Failed to send email", err))
	}

	return c.JSON(models.Envelope{StatusText: models.StatusOK, Msg: "Verification code sent"})
}

// VerifyResetCode handles POST /api/verify-reset-code: step two.
func (s *Server) VerifyResetCode(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request"))
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("user", req.Email))
	}

	if user.ResetCode == "" || user.ResetCode != req.Code || time.Now().After(user.ResetCodeExpiry) {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired code"))
	}

	// One successful verification consumes the code.
	user.ResetCode = ""
	if err := s.db.Save(&user).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Failed to clear code", err))
	}

	return c.JSON(models.Envelope{StatusText: models.StatusOK, Msg: "Code verified. Proceed to reset password."})
}

// ResetPassword handles POST /api/reset-password: the final wizard step.
func (s *Server) ResetPassword(c *fiber.Ctx) error {
	var req struct {
		Email       string `json:"email"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request"))
	}

	if err := validation.ValidatePassword(req.NewPassword); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("user", req.Email))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Error hashing password", err))
	}

	user.Password = string(hashed)
	if err := s.db.Save(&user).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Failed to update password", err))
	}

	return c.JSON(models.Envelope{StatusText: models.StatusOK, Msg: "Password updated successfully"})
}

// sixDigitCode draws a zero-padded code from crypto/rand.
func sixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
