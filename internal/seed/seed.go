// Package seed provides database seeding utilities for development.
package seed

import (
	"context"
	"fmt"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers      int
	NumPosts      int
	AdminEmail    string
	AdminName     string
	AdminPassword string
}

// Seeder fills the database with development fixtures through the regular
// repositories, so seeded data obeys the same invariants as real data.
type Seeder struct {
	db       *gorm.DB
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
}

// NewSeeder returns a Seeder for the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:       db,
		users:    repository.NewUserRepository(db),
		posts:    repository.NewPostRepository(db),
		comments: repository.NewCommentRepository(db),
	}
}

// ClearAll empties the blog tables, children first.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{
		&models.Comment{},
		&models.Post{},
		&models.User{},
	} {
		if err := s.db.Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}
	return nil
}

// Run creates the administrator, a set of readers, posts by the
// administrator, and a couple of comments per post. The administrator is
// created first so it receives the distinguished id on a clean database.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	hash, err := auth.HashPassword(opts.AdminPassword)
	if err != nil {
		return err
	}
	admin := &models.User{
		Email:    opts.AdminEmail,
		Name:     opts.AdminName,
		Password: hash,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}

	readers := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		readerHash, err := auth.HashPassword(gofakeit.Password(true, true, true, false, false, 16))
		if err != nil {
			return err
		}
		reader := &models.User{
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Name:     gofakeit.Name(),
			Password: readerHash,
		}
		if err := s.users.Create(ctx, reader); err != nil {
			return fmt.Errorf("creating reader %d: %w", i, err)
		}
		readers = append(readers, reader)
	}

	for i := 0; i < opts.NumPosts; i++ {
		post, err := s.posts.Create(ctx, repository.PostFields{
			Title:    fmt.Sprintf("%s #%d", gofakeit.BookTitle(), i+1),
			Subtitle: gofakeit.Sentence(6),
			Body:     gofakeit.Paragraph(3, 5, 12, "\n\n"),
			ImageURL: fmt.Sprintf("https://picsum.photos/id/%d/800/400", i+10),
		}, admin.ID)
		if err != nil {
			return fmt.Errorf("creating post %d: %w", i, err)
		}

		if len(readers) == 0 {
			continue
		}
		for j := 0; j < 2; j++ {
			commenter := readers[gofakeit.Number(0, len(readers)-1)]
			if _, err := s.comments.Create(ctx, gofakeit.Sentence(12), commenter.ID, post.ID); err != nil {
				return fmt.Errorf("creating comment on post %d: %w", post.ID, err)
			}
		}
	}

	return nil
}
