// Command apiserver runs the GatorBlog API server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/apiserver"
	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	seedUsers := flag.Int("seed", 0, "Seed the database with N fake users and exit")
	blogsPerUser := flag.Int("blogs-per-user", 4, "Blogs per seeded user")
	flag.Parse()

	// A missing .env is fine; env vars and defaults carry the rest.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := apiserver.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *seedUsers > 0 {
		if err := apiserver.Seed(db, apiserver.SeedOptions{
			Users:        *seedUsers,
			BlogsPerUser: *blogsPerUser,
		}); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		log.Printf("Seeded %d users with %d blogs each", *seedUsers, *blogsPerUser)
		return
	}

	redisClient := apiserver.InitRedis(cfg.RedisURL)

	srv := apiserver.NewServer(cfg, db, redisClient, nil)
	app := srv.NewApp()

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	log.Printf("Server starting on port %s...", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
