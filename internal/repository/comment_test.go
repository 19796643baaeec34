package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCommentRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	author := createUser(t, db, "author@example.com", "Author")
	reader := createUser(t, db, "reader@example.com", "Reader")
	post := createPost(t, db, "A Post", author.ID)

	t.Run("Create", func(t *testing.T) {
		comment, err := repo.Create(ctx, "Nice post!", reader.ID, post.ID)
		assert.NoError(t, err)
		assert.NotZero(t, comment.ID)
		assert.Equal(t, reader.ID, comment.AuthorID)
		assert.Equal(t, post.ID, comment.PostID)
	})

	t.Run("Create blank text", func(t *testing.T) {
		for _, text := range []string{"", "   ", "\n\t "} {
			_, err := repo.Create(ctx, text, reader.ID, post.ID)
			assert.Error(t, err)
			assert.True(t, models.IsCode(err, models.CodeValidation))
		}
	})

	t.Run("Create on missing post", func(t *testing.T) {
		_, err := repo.Create(ctx, "Shouting into the void", reader.ID, 9999)
		assert.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
	})

	t.Run("GetByID preloads author", func(t *testing.T) {
		created, err := repo.Create(ctx, "Attributed", reader.ID, post.ID)
		assert.NoError(t, err)

		fetched, err := repo.GetByID(ctx, created.ID)
		assert.NoError(t, err)
		assert.Equal(t, "Reader", fetched.Author.Name)
	})

	t.Run("ListByPost ordered", func(t *testing.T) {
		comments, err := repo.ListByPost(ctx, post.ID)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, len(comments), 2)
		for i := 1; i < len(comments); i++ {
			assert.Less(t, comments[i-1].ID, comments[i].ID)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		comment, err := repo.Create(ctx, "Ephemeral", reader.ID, post.ID)
		assert.NoError(t, err)

		assert.NoError(t, repo.Delete(ctx, comment.ID))

		_, err = repo.GetByID(ctx, comment.ID)
		assert.True(t, models.IsCode(err, models.CodeNotFound))

		// Deleting again reports NotFound rather than silently succeeding.
		err = repo.Delete(ctx, comment.ID)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
	})
}
