package repository

import (
	"context"
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.OpenTest()
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// createUser inserts a user fixture directly, bypassing the repository.
func createUser(t *testing.T, db *gorm.DB, email, name string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: name, Password: "hashed"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user fixture: %v", err)
	}
	return user
}

// createPost inserts a post via the repository so it carries a display date.
func createPost(t *testing.T, db *gorm.DB, title string, authorID uint) *models.Post {
	t.Helper()
	post, err := NewPostRepository(db).Create(context.Background(), PostFields{
		Title:    title,
		Subtitle: "A subtitle",
		Body:     "Some body text",
		ImageURL: "https://example.com/image.png",
	}, authorID)
	if err != nil {
		t.Fatalf("Failed to create post fixture: %v", err)
	}
	return post
}
