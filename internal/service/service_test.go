package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopcore/shopcore/internal/domain"
	"github.com/shopcore/shopcore/internal/repository"
	"github.com/shopcore/shopcore/pkg/database"
	"github.com/stretchr/testify/require"
)

func testRepos(t *testing.T) *repository.Repositories {
	t.Helper()

	db, err := database.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return repository.NewRepositories(db)
}

func createUser(t *testing.T, repos *repository.Repositories, username string) *domain.User {
	t.Helper()

	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		IsSubscribed: true,
	}
	require.NoError(t, repos.Users.Create(context.Background(), user))
	return user
}

func createProduct(t *testing.T, repos *repository.Repositories, name string, price float64, stock int) *domain.Product {
	t.Helper()

	product := &domain.Product{
		Name:        name,
		Description: name + " description",
		Price:       price,
		Stock:       stock,
	}
	require.NoError(t, repos.Products.Create(context.Background(), product))
	return product
}
