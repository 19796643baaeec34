package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// CommentService handles comment creation and admin-side deletion.
type CommentService struct {
	commentRepo repository.CommentRepository
}

// CreateCommentInput carries the comment form fields plus attribution.
type CreateCommentInput struct {
	Text     string
	AuthorID uint
	PostID   uint
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

// CreateComment attaches a comment to a post on behalf of its author.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	return s.commentRepo.Create(ctx, in.Text, in.AuthorID, in.PostID)
}

// DeleteComment removes a single comment.
func (s *CommentService) DeleteComment(ctx context.Context, id uint) error {
	return s.commentRepo.Delete(ctx, id)
}

// ListComments returns a post's comments, oldest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}
