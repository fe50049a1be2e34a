package apiserver

import (
	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LikeBlog handles POST /api/blogs/:id/likes. The liker is derived from the
// credential; duplicate likes are rejected.
func (s *Server) LikeBlog(c *fiber.Ctx) error {
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

	var existing models.Like
	s.db.Where("user_id = ? AND blog_id = ?", user.ID, blog.ID).First(&existing)
	if existing.ID != 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Already liked"))
	}

	like := models.Like{UserID: user.ID, BlogID: blog.ID}
	if err := s.db.Create(&like).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Failed to like blog", err))
	}

	return c.Status(fiber.StatusCreated).JSON(like)
}

// UnlikeBlog handles DELETE /api/blogs/:id/likes. Removing a like that does
// not exist is reported as not found.
func (s *Server) UnlikeBlog(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	blogID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var like models.Like
	if err := s.db.Where("user_id = ? AND blog_id = ?", user.ID, blogID).First(&like).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("like", blogID))
	}

	if err := s.db.Delete(&like).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Failed to remove like", err))
	}

	return c.JSON(models.Envelope{StatusText: models.StatusOK, Msg: "Like removed"})
}

// GetLikesByBlogID handles GET /api/blogs/:id/likes. Returns the full like
// rows; clients derive the count and their own membership.
func (s *Server) GetLikesByBlogID(c *fiber.Ctx) error {
	blogID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var likes []models.Like
	if err := s.db.Where("blog_id = ?", blogID).Find(&likes).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Failed to fetch likes", err))
	}

	if likes == nil {
		likes = []models.Like{}
	}
	return c.JSON(likes)
}
