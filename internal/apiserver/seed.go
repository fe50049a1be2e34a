package apiserver

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions controls how much demo data Seed creates.
type SeedOptions struct {
	Users        int
	BlogsPerUser int
	Password     string
}

// Seed fills the database with demo accounts, blogs, comments, and likes.
// Development and demos only; tests build their own fixtures.
func Seed(db *gorm.DB, opts SeedOptions) error {
	gofakeit.Seed(time.Now().UnixNano())

	if opts.Users <= 0 {
		opts.Users = 5
	}
	if opts.BlogsPerUser <= 0 {
		opts.BlogsPerUser = 3
	}
	if opts.Password == "" {
		opts.Password = "Password123"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var users []models.User
	for i := 0; i < opts.Users; i++ {
		user := models.User{
			Username: gofakeit.Username(),
			Email:    fmt.Sprintf("%s%d@ufl.edu", gofakeit.Word(), i),
			Password: string(hashed),
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, user := range users {
		for i := 0; i < opts.BlogsPerUser; i++ {
			blog := models.Blog{
				Title:    gofakeit.Sentence(4),
				Post:     "<p>" + gofakeit.Paragraph(1, 3, 8, " ") + "</p>",
				UserID:   user.ID,
				UserName: user.Username,
			}
			if err := db.Create(&blog).Error; err != nil {
				return fmt.Errorf("seed blog: %w", err)
			}

			// A few comments and likes from other accounts.
			for _, other := range users {
				if other.ID == user.ID {
					continue
				}
				if r.Intn(2) == 0 {
					comment := models.Comment{
						Content:  gofakeit.Sentence(8),
						UserID:   other.ID,
						UserName: other.Username,
						BlogID:   blog.ID,
					}
					if err := db.Create(&comment).Error; err != nil {
						return fmt.Errorf("seed comment: %w", err)
					}
				}
				if r.Intn(2) == 0 {
					like := models.Like{UserID: other.ID, BlogID: blog.ID}
					if err := db.Create(&like).Error; err != nil {
						return fmt.Errorf("seed like: %w", err)
					}
				}
			}
		}
	}

	return nil
}
