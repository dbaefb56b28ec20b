package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"beautyshop/internal/database"
	"beautyshop/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositories(t *testing.T) {
	drivers := map[string]func(t *testing.T) UserRepository{
		"memory": func(t *testing.T) UserRepository { return NewMemoryUserRepository() },
		"gorm": func(t *testing.T) UserRepository {
			db, err := database.OpenGORM("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String()))
			require.NoError(t, err)
			t.Cleanup(func() { _ = database.CloseGORM(db) })
			return NewGORMUserRepository(db)
		},
	}

	for name, newRepo := range drivers {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)

			user := &models.User{Username: "ann", Email: "ann@example.com", Password: "hash"}
			require.NoError(t, repo.Create(ctx, user))
			require.NotEmpty(t, user.ID)

			byName, err := repo.GetByUsername(ctx, "ann")
			require.NoError(t, err)
			assert.Equal(t, user.ID, byName.ID)

			byEmail, err := repo.GetByEmail(ctx, "ann@example.com")
			require.NoError(t, err)
			assert.Equal(t, "ann", byEmail.Username)

			byID, err := repo.GetByID(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, "ann@example.com", byID.Email)

			sameName := &models.User{Username: "ann", Email: "ann2@example.com", Password: "hash"}
			assert.True(t, errors.Is(repo.Create(ctx, sameName), ErrDuplicateUser))
			sameEmail := &models.User{Username: "ann2", Email: "ann@example.com", Password: "hash"}
			assert.True(t, errors.Is(repo.Create(ctx, sameEmail), ErrDuplicateUser))

			_, err = repo.GetByUsername(ctx, "bob")
			assert.True(t, errors.Is(err, ErrUserNotFound))
			_, err = repo.GetByEmail(ctx, "bob@example.com")
			assert.True(t, errors.Is(err, ErrUserNotFound))
			_, err = repo.GetByID(ctx, uuid.New().String())
			assert.True(t, errors.Is(err, ErrUserNotFound))
		})
	}
}

func TestMemoryUserRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewMemoryUserRepository()
	assert.ErrorIs(t, repo.Create(ctx, &models.User{Username: "ann", Email: "ann@example.com"}), context.Canceled)
	_, err := repo.GetByUsername(ctx, "ann")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.GetByEmail(ctx, "ann@example.com")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.GetByID(ctx, "id")
	assert.ErrorIs(t, err, context.Canceled)
}
