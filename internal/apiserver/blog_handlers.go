package apiserver

import (
	"encoding/json"
	"errors"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func marshalRaw(v interface{}) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}

// BlogList handles GET /api/blogs. Lists the current user's blogs,
// optionally title-filtered, with a per-user cache in front of the query.
func (s *Server) BlogList(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	titleFilter := c.Query("title")
	cacheKey := userBlogsKey(user.ID)
	if titleFilter != "" {
		cacheKey = userBlogsTitleKey(user.ID, titleFilter)
	}

	var blogs []models.Blog
	found, cacheErr := s.cache.Get(c.Context(), cacheKey, &blogs)
	if cacheErr != nil {
		// A broken cache is not a request failure.
		found = false
	}

	if !found {
		query := s.db.Where("user_id = ?", user.ID)
		if titleFilter != "" {
			query = query.Where("title LIKE ?", "%"+titleFilter+"%")
		}
		if err := query.Find(&blogs).Error; err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewServerError("Could not fetch blogs", err))
		}
		_ = s.cache.Set(c.Context(), cacheKey, blogs, blogCacheTTL)
	}

	return c.JSON(models.Envelope{
		StatusText: models.StatusOK,
		Msg:        "Blog List",
		Blogs:      marshalRaw(blogs),
	})
}

// BlogFetch handles GET /api/blogs/:id.
func (s *Server) BlogFetch(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	blogID := c.Params("id")
	cacheKey := userBlogKey(user.ID, blogID)

	var blog models.Blog
	found, cacheErr := s.cache.Get(c.Context(), cacheKey, &blog)
	if cacheErr != nil {
		found = false
	}

	if !found {
		if err := s.db.Where("id = ?", blogID).First(&blog).Error; err != nil {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewValidationError("Blog not found"))
		}
		_ = s.cache.Set(c.Context(), cacheKey, blog, blogCacheTTL)
	}

	return c.JSON(models.Envelope{
		StatusText: models.StatusOK,
		Msg:        "Fetch Blog",
		Blog:       marshalRaw(blog),
	})
}

// BlogCreate handles POST /api/blogs.
func (s *Server) BlogCreate(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	var blog models.Blog
	if err := c.BodyParser(&blog); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid input"))
	}

	blog.ID = 0
	blog.UserID = user.ID
	blog.UserName = user.Username

	if err := s.db.Create(&blog).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Could not create blog", err))
	}

	s.cache.InvalidateUserBlogs(c.Context(), user.ID)

	return c.Status(fiber.StatusCreated).JSON(models.Envelope{
		StatusText: models.StatusOK,
		Msg:        "Blog created successfully",
		Blog:       marshalRaw(blog),
	})
}

// BlogUpdate handles PUT /api/blogs/:id. Only the author may update.
func (s *Server) BlogUpdate(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	blogID := c.Params("id")

	var blog models.Blog
	if err := s.db.Where("id = ? AND user_id = ?", blogID, user.ID).First(&blog).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewValidationError("Could not fetch blog"))
	}

	var input struct {
		Title string `json:"title"`
		Post  string `json:"post"`
	}
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid input"))
	}

	blog.Title = input.Title
	blog.Post = input.Post
	if err := s.db.Save(&blog).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Could not update blog", err))
	}

	_ = s.cache.Delete(c.Context(), userBlogKey(user.ID, blogID))
	s.cache.InvalidateUserBlogs(c.Context(), user.ID)

	return c.JSON(models.Envelope{
		StatusText: models.StatusOK,
		Msg:        "Blog updated successfully",
		Blog:       marshalRaw(blog),
	})
}

// BlogDelete handles DELETE /api/blogs/:id. Only the author may delete.
func (s *Server) BlogDelete(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	blogID := c.Params("id")

	var blog models.Blog
	if err := s.db.Where("id = ? AND user_id = ?", blogID, user.ID).First(&blog).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewValidationError("Could not fetch blog"))
	}

	if err := s.db.Delete(&blog).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Could not delete blog", err))
	}

	_ = s.cache.Delete(c.Context(), userBlogKey(user.ID, blogID))
	s.cache.InvalidateUserBlogs(c.Context(), user.ID)

	return c.JSON(models.Envelope{
		StatusText: models.StatusOK,
		Msg:        "Blog deleted successfully",
		Blog:       marshalRaw(blog),
	})
}

// enrich attaches the like count and comments to each blog.
func (s *Server) enrich(blogs []models.Blog) []models.BlogWithMeta {
	enriched := make([]models.BlogWithMeta, 0, len(blogs))
	for _, blog := range blogs {
		var likeCount int64
		s.db.Model(&models.Like{}).Where("blog_id = ?", blog.ID).Count(&likeCount)

		var comments []models.Comment
		s.db.Where("blog_id = ?", blog.ID).Find(&comments)

		enriched = append(enriched, models.BlogWithMeta{
			ID:        blog.ID,
			Title:     blog.Title,
			Post:      blog.Post,
			UserID:    blog.UserID,
			UserName:  blog.UserName,
			CreatedAt: blog.CreatedAt,
			UpdatedAt: blog.UpdatedAt,
			Likes:     likeCount,
			Comments:  comments,
		})
	}
	return enriched
}

// BlogListWithMeta handles GET /api/blogs-with-meta: the current user's
// blogs with like counts and comments, optionally search-filtered.
func (s *Server) BlogListWithMeta(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	}

	query := s.db.Where("user_id = ?", user.ID)
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR post LIKE ?", like, like)
	}

	var blogs []models.Blog
	if err := query.Find(&blogs).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Failed to fetch blogs", err))
	}

	return c.JSON(models.Envelope{
		StatusText: models.StatusOK,
		Msg:        "Blogs with Meta",
		Blogs:      marshalRaw(s.enrich(blogs)),
	})
}

// AllBlogsWithMeta handles GET /api/all-blogs-with-meta: every user's blogs
// with metadata, backing the community dashboard.
func (s *Server) AllBlogsWithMeta(c *fiber.Ctx) error {
	query := s.db
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR post LIKE ?", like, like)
	}

	var blogs []models.Blog
	if err := query.Find(&blogs).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Failed to fetch blogs", err))
	}

	return c.JSON(models.Envelope{
		StatusText: models.StatusOK,
		Msg:        "All Blogs with Meta",
		Blogs:      marshalRaw(s.enrich(blogs)),
	})
}

// PopularBlogs handles GET /api/popular-blogs: the top five posts by like
// count.
func (s *Server) PopularBlogs(c *fiber.Ctx) error {
	type result struct {
		BlogID uint
		Count  int64
	}

	var results []result
	if err := s.db.
		Model(&models.Like{}).
		Select("blog_id as blog_id, COUNT(*) as count").
		Group("blog_id").
		Order("count DESC").
		Limit(5).
		Scan(&results).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewServerError("Failed to fetch top blogs", err))
	}

	popular := make([]models.BlogWithMeta, 0, len(results))
	for _, res := range results {
		var blog models.Blog
		if err := s.db.Where("id = ?", res.BlogID).First(&blog).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewServerError("Failed to fetch top blogs", err))
		}
		popular = append(popular, models.BlogWithMeta{
			ID:        blog.ID,
			Title:     blog.Title,
			Post:      blog.Post,
			UserID:    blog.UserID,
			UserName:  blog.UserName,
			CreatedAt: blog.CreatedAt,
			UpdatedAt: blog.UpdatedAt,
			Likes:     res.Count,
		})
	}

	return c.JSON(models.Envelope{
		StatusText: models.StatusOK,
		Msg:        "Top 5 Popular Blogs",
		Blogs:      marshalRaw(popular),
	})
}
