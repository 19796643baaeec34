package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// PostService handles blog post reads and admin-side mutations. Access
// control happens at the handler boundary; this layer assumes the caller was
// already allowed to mutate.
type PostService struct {
	postRepo repository.PostRepository
}

// PostInput carries the post form fields for create and edit.
type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (in PostInput) validate() error {
	if err := validation.ValidateRequired("title", in.Title); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateRequired("subtitle", in.Subtitle); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateRequired("body", in.Body); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateURL(in.ImageURL); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

func (in PostInput) fields() repository.PostFields {
	return repository.PostFields{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Body:     in.Body,
		ImageURL: in.ImageURL,
	}
}

// CreatePost validates the form fields and creates the post for the author.
func (s *PostService) CreatePost(ctx context.Context, in PostInput, authorID uint) (*models.Post, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.postRepo.Create(ctx, in.fields(), authorID)
}

// UpdatePost overwrites the post's editable fields wholesale.
func (s *PostService) UpdatePost(ctx context.Context, id uint, in PostInput) (*models.Post, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.postRepo.Update(ctx, id, in.fields())
}

// DeletePost removes the post and all of its comments.
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	return s.postRepo.Delete(ctx, id)
}

// GetPost returns a post with its author and comments.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts returns every post, oldest first.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}
