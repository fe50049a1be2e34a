// Package apiserver implements the GatorBlog REST API. It backs the
// end-to-end test suite as the real collaborator behind the client, and runs
// standalone as a development server.
package apiserver

import (
	"time"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CodeSender delivers password-reset codes. Production wires an email
// sender; development and tests log or capture the code.
type CodeSender interface {
	SendResetCode(email, code string) error
}

// Server holds all dependencies and provides handlers.
type Server struct {
	config     *config.Config
	db         *gorm.DB
	cache      *Cache
	codeSender CodeSender
}

// NewServer creates a server instance with all dependencies injected.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, sender CodeSender) *Server {
	if sender == nil {
		sender = LogCodeSender{}
	}
	return &Server{
		config:     cfg,
		db:         db,
		cache:      NewCache(redisClient),
		codeSender: sender,
	}
}

// NewApp builds the Fiber application with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "GatorBlog API",
	})

	app.Use(recover.New())
	app.Use(cors.New())

	s.SetupRoutes(app)
	return app
}

// SetupRoutes registers the API surface under /api.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/signup", s.SignUp)
	api.Post("/signin", s.SignIn)
	api.Post("/request-reset-code", s.RequestResetCode)
	api.Post("/verify-reset-code", s.VerifyResetCode)
	api.Post("/reset-password", s.ResetPassword)

	protected := api.Group("/", s.AuthRequired)

	protected.Get("/blogs", s.BlogList)
	protected.Post("/blogs", s.BlogCreate)
	protected.Get("/blogs/:id", s.BlogFetch)
	protected.Put("/blogs/:id", s.BlogUpdate)
	protected.Delete("/blogs/:id", s.BlogDelete)

	protected.Get("/blogs-with-meta", s.BlogListWithMeta)
	protected.Get("/all-blogs-with-meta", s.AllBlogsWithMeta)
	protected.Get("/popular-blogs", s.PopularBlogs)

	protected.Get("/blogs/:id/comments", s.GetCommentsByBlogID)
	protected.Post("/blogs/:id/comments", s.AddComment)

	protected.Get("/blogs/:id/likes", s.GetLikesByBlogID)
	protected.Post("/blogs/:id/likes", s.LikeBlog)
	protected.Delete("/blogs/:id/likes", s.UnlikeBlog)
}

// generateToken mints an HS256 token carrying the account email, expiring
// in 24 hours.
func (s *Server) generateToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
