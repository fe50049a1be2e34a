package apiserver

import (
	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /api/blogs/:id/comments. A zero user_id in the
// body is resolved to the authenticated user.
func (s *Server) AddComment(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	blogID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var blog models.Blog
	if err := s.db.Where("id = ?", blogID).First(&blog).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("blog", blogID))
	}

	var comment models.Comment
	if err := c.BodyParser(&comment); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid input"))
	}
	if comment.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Comment content is required"))
	}

	comment.ID = 0
	comment.BlogID = blogID
	if comment.UserID == 0 {
		comment.UserID = user.ID
		comment.UserName = user.Username
	}

	if err := s.db.Create(&comment).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Failed to add comment", err))
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetCommentsByBlogID handles GET /api/blogs/:id/comments. Returns a bare
// array, oldest first.
func (s *Server) GetCommentsByBlogID(c *fiber.Ctx) error {
	blogID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var comments []models.Comment
	if err := s.db.Where("blog_id = ?", blogID).Order("created_at asc").Find(&comments).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Failed to fetch comments", err))
	}

	// Encode an empty list as [], not null.
	if comments == nil {
		comments = []models.Comment{}
	}
	return c.JSON(comments)
}
