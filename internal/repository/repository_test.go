package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopcore/shopcore/internal/domain"
	"github.com/shopcore/shopcore/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepos(t *testing.T) *Repositories {
	t.Helper()

	db, err := database.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepositories(db)
}

func createUser(t *testing.T, repos *Repositories, username string) *domain.User {
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

func createProduct(t *testing.T, repos *Repositories, name string, price float64, stock int) *domain.Product {
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

func TestUserRepo_DuplicateUsernameAndEmail(t *testing.T) {
	repos := testRepos(t)
	ctx := context.Background()

	createUser(t, repos, "alice")

	sameName := &domain.User{Username: "alice", Email: "other@example.com", PasswordHash: "hash"}
	err := repos.Users.Create(ctx, sameName)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicate)

	sameEmail := &domain.User{Username: "alice2", Email: "alice@example.com", PasswordHash: "hash"}
	err = repos.Users.Create(ctx, sameEmail)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Contains(t, err.Error(), "email")
}

func TestUserRepo_SetUnsubscribed(t *testing.T) {
	repos := testRepos(t)
	ctx := context.Background()

	user := createUser(t, repos, "alice")
	reason := "too many emails"
	require.NoError(t, repos.Users.SetUnsubscribed(ctx, user.ID, &reason))

	got, err := repos.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsSubscribed)
	require.NotNil(t, got.UnsubscribeReason)
	assert.Equal(t, reason, *got.UnsubscribeReason)

	err = repos.Users.SetUnsubscribed(ctx, "missing-id", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_Lifecycle(t *testing.T) {
	repos := testRepos(t)
	ctx := context.Background()
	now := time.Now().UTC()

	user := createUser(t, repos, "alice")

	session := &domain.Session{
		TokenHash: "hash-1",
		UserID:    user.ID,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, repos.Sessions.Create(ctx, session))

	got, err := repos.Sessions.GetByTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	assert.True(t, got.Active(now))

	require.NoError(t, repos.Sessions.RevokeByTokenHash(ctx, "hash-1"))

	got, err = repos.Sessions.GetByTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	assert.False(t, got.Active(now))

	// Revoking an already revoked session fails.
	err = repos.Sessions.RevokeByTokenHash(ctx, "hash-1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repos.Sessions.GetByTokenHash(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_RevokeAllForUser(t *testing.T) {
	repos := testRepos(t)
	ctx := context.Background()
	now := time.Now().UTC()

	user := createUser(t, repos, "alice")

	for _, hash := range []string{"hash-1", "hash-2"} {
		require.NoError(t, repos.Sessions.Create(ctx, &domain.Session{
			TokenHash: hash,
			UserID:    user.ID,
			ExpiresAt: now.Add(time.Hour),
		}))
	}

	count, err := repos.Sessions.CountActiveForUser(ctx, user.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, repos.Sessions.RevokeAllForUser(ctx, user.ID))

	count, err = repos.Sessions.CountActiveForUser(ctx, user.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSessionRepo_DeleteExpired(t *testing.T) {
	repos := testRepos(t)
	ctx := context.Background()
	now := time.Now().UTC()

	user := createUser(t, repos, "alice")

	require.NoError(t, repos.Sessions.Create(ctx, &domain.Session{
		TokenHash: "hash-expired",
		UserID:    user.ID,
		ExpiresAt: now.Add(-time.Minute),
	}))
	require.NoError(t, repos.Sessions.Create(ctx, &domain.Session{
		TokenHash: "hash-live",
		UserID:    user.ID,
		ExpiresAt: now.Add(time.Hour),
	}))

	require.NoError(t, repos.Sessions.DeleteExpired(ctx, now))

	_, err := repos.Sessions.GetByTokenHash(ctx, "hash-expired")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := repos.Sessions.GetByTokenHash(ctx, "hash-live")
	require.NoError(t, err)
	assert.True(t, got.Active(now))
}

func TestCartRepo_UpsertMergesLines(t *testing.T) {
	repos := testRepos(t)
	ctx := context.Background()

	user := createUser(t, repos, "alice")
	product := createProduct(t, repos, "widget", 9.99, 10)

	require.NoError(t, repos.Carts.Upsert(ctx, user.ID, product.ID, 2))
	require.NoError(t, repos.Carts.Upsert(ctx, user.ID, product.ID, 3))

	lines, err := repos.Carts.LinesByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, product.ID, lines[0].Product.ID)

	require.NoError(t, repos.Carts.DeleteByUser(ctx, user.ID))

	lines, err = repos.Carts.LinesByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartRepo_CascadeOnProductDelete(t *testing.T) {
	repos := testRepos(t)
	ctx := context.Background()

	user := createUser(t, repos, "alice")
	product := createProduct(t, repos, "widget", 9.99, 10)

	require.NoError(t, repos.Carts.Upsert(ctx, user.ID, product.ID, 1))
	require.NoError(t, repos.Products.Delete(ctx, product.ID))

	lines, err := repos.Carts.LinesByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestProductRepo_DecrementStock(t *testing.T) {
	repos := testRepos(t)
	ctx := context.Background()

	product := createProduct(t, repos, "widget", 9.99, 3)

	require.NoError(t, repos.Products.DecrementStock(ctx, product.ID, 2))

	got, err := repos.Products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)

	err = repos.Products.DecrementStock(ctx, product.ID, 2)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	got, err = repos.Products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock, "failed decrement must not change stock")
}

func TestProductRepo_SearchRanking(t *testing.T) {
	repos := testRepos(t)
	ctx := context.Background()

	nameHit := createProduct(t, repos, "Coffee Grinder", 50, 5)

	descHit := &domain.Product{Name: "Bean Machine", Description: "grinds coffee beans", Price: 30, Stock: 5}
	require.NoError(t, repos.Products.Create(ctx, descHit))

	miss := &domain.Product{Name: "Tea Pot", Description: "for tea", Price: 20, Stock: 5}
	require.NoError(t, repos.Products.Create(ctx, miss))

	results, err := repos.Products.Search(ctx, SearchFilter{Name: "coffee"}, 50)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Name matches outrank description-only matches.
	assert.Equal(t, nameHit.ID, results[0].Product.ID)
	assert.Greater(t, results[0].Relevance, results[1].Relevance)
	assert.Equal(t, descHit.ID, results[1].Product.ID)
}

func TestProductRepo_SearchPriceOnly(t *testing.T) {
	repos := testRepos(t)
	ctx := context.Background()

	createProduct(t, repos, "cheap", 10, 1)
	createProduct(t, repos, "mid", 20, 1)
	createProduct(t, repos, "pricey", 30, 1)

	min, max := 15.0, 35.0
	results, err := repos.Products.Search(ctx, SearchFilter{MinPrice: &min, MaxPrice: &max}, 50)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Equal relevance falls back to price ascending.
	assert.Equal(t, "mid", results[0].Product.Name)
	assert.Equal(t, "pricey", results[1].Product.Name)
	assert.Equal(t, results[0].Relevance, results[1].Relevance)
}

func TestOrderRepo_StatusTransitions(t *testing.T) {
	repos := testRepos(t)
	ctx := context.Background()

	user := createUser(t, repos, "alice")

	order := &domain.Order{
		UserID:          user.ID,
		TotalAmount:     29.99,
		ShippingAddress: "1 Main St",
		Status:          domain.OrderPending,
	}
	require.NoError(t, repos.Orders.Create(ctx, order))

	require.NoError(t, repos.Orders.UpdateStatus(ctx, order.ID, domain.OrderPending, domain.OrderSuccessful))

	got, err := repos.Orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderSuccessful, got.Status)

	// Orders are immutable once they leave pending.
	err = repos.Orders.UpdateStatus(ctx, order.ID, domain.OrderSuccessful, domain.OrderFailed)
	assert.Error(t, err)
}

func TestOrderRepo_HasSuccessfulPurchase(t *testing.T) {
	repos := testRepos(t)
	ctx := context.Background()

	user := createUser(t, repos, "alice")
	product := createProduct(t, repos, "widget", 9.99, 10)

	purchased, err := repos.Orders.HasSuccessfulPurchase(ctx, user.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, purchased)

	order := &domain.Order{UserID: user.ID, TotalAmount: 9.99, ShippingAddress: "1 Main St", Status: domain.OrderFailed}
	require.NoError(t, repos.Orders.Create(ctx, order))

	purchased, err = repos.Orders.HasSuccessfulPurchase(ctx, user.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, purchased, "failed orders do not count as purchases")

	success := &domain.Order{UserID: user.ID, TotalAmount: 9.99, ShippingAddress: "1 Main St", Status: domain.OrderSuccessful}
	require.NoError(t, repos.Orders.Create(ctx, success))
	require.NoError(t, repos.Orders.AddItem(ctx, &domain.OrderItem{
		OrderID:   success.ID,
		ProductID: product.ID,
		Quantity:  1,
		UnitPrice: 9.99,
	}))

	purchased, err = repos.Orders.HasSuccessfulPurchase(ctx, user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, purchased)
}

func TestReviewRepo_OnePerUserPerProduct(t *testing.T) {
	repos := testRepos(t)
	ctx := context.Background()

	user := createUser(t, repos, "alice")
	product := createProduct(t, repos, "widget", 9.99, 10)

	review := &domain.Review{UserID: user.ID, ProductID: product.ID, Rating: 5, Body: "great"}
	require.NoError(t, repos.Reviews.Create(ctx, review))

	second := &domain.Review{UserID: user.ID, ProductID: product.ID, Rating: 1, Body: "changed my mind"}
	err := repos.Reviews.Create(ctx, second)
	assert.ErrorIs(t, err, ErrDuplicate)

	reviews, err := repos.Reviews.ListByProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "great", reviews[0].Body)
}

func TestUnsubscribeTokenRepo_SingleUse(t *testing.T) {
	repos := testRepos(t)
	ctx := context.Background()

	user := createUser(t, repos, "alice")

	token := &domain.UnsubscribeToken{
		TokenHash: "token-hash",
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, repos.UnsubscribeTokens.Create(ctx, token))

	require.NoError(t, repos.UnsubscribeTokens.Consume(ctx, "token-hash"))

	err := repos.UnsubscribeTokens.Consume(ctx, "token-hash")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := repos.UnsubscribeTokens.GetByTokenHash(ctx, "token-hash")
	require.NoError(t, err)
	assert.True(t, got.Consumed)
}

func TestRepositories_WithTxRollsBack(t *testing.T) {
	repos := testRepos(t)
	ctx := context.Background()

	sentinel := errors.New("boom")
	err := repos.WithTx(ctx, func(tx *Repositories) error {
		if err := tx.Users.Create(ctx, &domain.User{Username: "alice", Email: "a@example.com", PasswordHash: "hash"}); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = repos.Users.GetByUsername(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}
