// Command main runs the database seeder for Inkwell.
package main

import (
	"context"
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of reader accounts to create")
	numPosts := flag.Int("posts", 25, "Number of posts to create")
	adminEmail := flag.String("admin-email", "admin@inkwell.local", "Administrator email")
	adminName := flag.String("admin-name", "Administrator", "Administrator display name")
	adminPassword := flag.String("admin-password", "changeme-now", "Administrator password")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d posts, clean=%v\n", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(context.Background(), seed.Options{
		NumUsers:      *numUsers,
		NumPosts:      *numPosts,
		AdminEmail:    *adminEmail,
		AdminName:     *adminName,
		AdminPassword: *adminPassword,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
