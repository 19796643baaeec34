package repository

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// displayDateLayout is the human-readable creation date stamped on a post
// once, at write time.
const displayDateLayout = "January 02, 2006"

// PostFields are the caller-editable fields of a post. The id and display
// date are always assigned server-side and never taken from the caller.
type PostFields struct {
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

// PostRepository defines persistence operations for blog posts.
type PostRepository interface {
	Create(ctx context.Context, fields PostFields, authorID uint) (*models.Post, error)
	Update(ctx context.Context, id uint, fields PostFields) (*models.Post, error)
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a new post, assigning its id and display date server-side.
func (r *postRepository) Create(ctx context.Context, fields PostFields, authorID uint) (*models.Post, error) {
	post := &models.Post{
		Title:    fields.Title,
		Subtitle: fields.Subtitle,
		Body:     fields.Body,
		ImageURL: fields.ImageURL,
		Date:     time.Now().Format(displayDateLayout),
		AuthorID: authorID,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Post{}).
			Where("title = ?", fields.Title).Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		if count > 0 {
			return models.NewDuplicateTitleError(fields.Title)
		}
		if err := tx.Create(post).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewDuplicateTitleError(fields.Title)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Update overwrites every caller-editable field wholesale. The id and the
// original display date are immutable.
func (r *postRepository) Update(ctx context.Context, id uint, fields PostFields) (*models.Post, error) {
	var post models.Post

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}

		var count int64
		if err := tx.Model(&models.Post{}).
			Where("title = ? AND id <> ?", fields.Title, id).Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		if count > 0 {
			return models.NewDuplicateTitleError(fields.Title)
		}

		post.Title = fields.Title
		post.Subtitle = fields.Subtitle
		post.Body = fields.Body
		post.ImageURL = fields.ImageURL

		if err := tx.Save(&post).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewDuplicateTitleError(fields.Title)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes the post and, first, every comment attached to it. Both
// happen in one transaction so readers never observe a half-deleted post.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&models.Post{}, id).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.id ASC")
		}).
		Preload("Comments.Author").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}
