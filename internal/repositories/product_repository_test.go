package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"beautyshop/internal/database"
	"beautyshop/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func seedProduct(t *testing.T, repo ProductRepository, owner, name, category, gender string, price float64, offset time.Duration) models.Product {
	t.Helper()
	p := models.Product{
		OwnerID:     owner,
		Name:        name,
		Picture:     "https://cdn.example.com/" + name + ".png",
		Description: name + " description",
		Category:    category,
		Gender:      gender,
		Price:       price,
		CreatedAt:   baseTime.Add(offset),
		UpdatedAt:   baseTime.Add(offset),
	}
	require.NoError(t, repo.Create(context.Background(), &p))
	require.NotEmpty(t, p.ID)
	return p
}

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

// runProductRepositoryContract exercises behaviour every driver must share.
func runProductRepositoryContract(t *testing.T, newRepo func(t *testing.T) ProductRepository) {
	ctx := context.Background()

	t.Run("list filters by owner category gender and name", func(t *testing.T) {
		repo := newRepo(t)
		seedProduct(t, repo, "alice", "Lipstick", models.CategoryMakeup, models.GenderFemale, 12.5, 0)
		seedProduct(t, repo, "alice", "Beard Oil", models.CategoryHaircare, models.GenderMale, 9, time.Minute)
		seedProduct(t, repo, "alice", "Lip Balm", models.CategorySkincare, models.GenderFemale, 4, 2*time.Minute)
		seedProduct(t, repo, "bob", "Lip Gloss", models.CategoryMakeup, models.GenderFemale, 7, 3*time.Minute)

		all, total, err := repo.List(ctx, ProductFilter{OwnerID: "alice", SortField: "name"})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Equal(t, []string{"Beard Oil", "Lip Balm", "Lipstick"}, names(all))
		for _, p := range all {
			assert.Equal(t, "alice", p.OwnerID)
		}

		byName, total, err := repo.List(ctx, ProductFilter{OwnerID: "alice", Name: "lIP", SortField: "name"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Equal(t, []string{"Lip Balm", "Lipstick"}, names(byName))

		combined, total, err := repo.List(ctx, ProductFilter{
			OwnerID:  "alice",
			Name:     "lip",
			Category: models.CategoryMakeup,
			Gender:   models.GenderFemale,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Equal(t, []string{"Lipstick"}, names(combined))

		none, total, err := repo.List(ctx, ProductFilter{OwnerID: "carol"})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("name search is literal", func(t *testing.T) {
		repo := newRepo(t)
		seedProduct(t, repo, "alice", "100% Argan", models.CategoryHaircare, models.GenderFemale, 20, 0)
		seedProduct(t, repo, "alice", "Argan Mask", models.CategoryHaircare, models.GenderFemale, 15, time.Minute)
		seedProduct(t, repo, "alice", "Tint_01", models.CategoryMakeup, models.GenderFemale, 5, 2*time.Minute)

		for term, want := range map[string][]string{
			"%":    {"100% Argan"},
			"_0":   {"Tint_01"},
			".*":   {},
			"0% a": {"100% Argan"},
		} {
			got, total, err := repo.List(ctx, ProductFilter{OwnerID: "alice", Name: term, SortField: "name"})
			require.NoError(t, err, term)
			assert.EqualValues(t, len(want), total, term)
			assert.ElementsMatch(t, want, names(got), term)
		}
	})

	t.Run("sort and paginate", func(t *testing.T) {
		repo := newRepo(t)
		for i, price := range []float64{30, 10, 50, 20, 40} {
			seedProduct(t, repo, "alice", fmt.Sprintf("Cream %d", i), models.CategorySkincare, models.GenderFemale, price, time.Duration(i)*time.Minute)
		}

		asc, total, err := repo.List(ctx, ProductFilter{OwnerID: "alice", SortField: "price", Limit: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		require.Len(t, asc, 2)
		assert.Equal(t, 10.0, asc[0].Price)
		assert.Equal(t, 20.0, asc[1].Price)

		desc, _, err := repo.List(ctx, ProductFilter{OwnerID: "alice", SortField: "price", SortOrder: SortDesc, Offset: 2, Limit: 2})
		require.NoError(t, err)
		require.Len(t, desc, 2)
		assert.Equal(t, 30.0, desc[0].Price)
		assert.Equal(t, 20.0, desc[1].Price)

		newest, _, err := repo.List(ctx, ProductFilter{OwnerID: "alice", SortField: "created_at", SortOrder: SortDesc, Limit: 1})
		require.NoError(t, err)
		require.Len(t, newest, 1)
		assert.Equal(t, "Cream 4", newest[0].Name)

		beyond, total, err := repo.List(ctx, ProductFilter{OwnerID: "alice", Offset: 10, Limit: 5})
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		assert.Empty(t, beyond)
	})

	t.Run("get update delete are owner scoped", func(t *testing.T) {
		repo := newRepo(t)
		p := seedProduct(t, repo, "alice", "Serum", models.CategorySkincare, models.GenderFemale, 25, 0)

		got, err := repo.GetByID(ctx, "alice", p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Serum", got.Name)
		assert.Equal(t, 25.0, got.Price)

		_, err = repo.GetByID(ctx, "bob", p.ID)
		assert.True(t, errors.Is(err, ErrProductNotFound))
		_, err = repo.GetByID(ctx, "alice", uuid.New().String())
		assert.True(t, errors.Is(err, ErrProductNotFound))

		hijack := *got
		hijack.OwnerID = "bob"
		hijack.Name = "Stolen"
		assert.True(t, errors.Is(repo.Update(ctx, &hijack), ErrProductNotFound))

		updated := *got
		updated.Name = "Night Serum"
		updated.Price = 27.5
		updated.UpdatedAt = baseTime.Add(time.Hour)
		require.NoError(t, repo.Update(ctx, &updated))

		got, err = repo.GetByID(ctx, "alice", p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Night Serum", got.Name)
		assert.Equal(t, 27.5, got.Price)
		assert.True(t, got.UpdatedAt.Equal(baseTime.Add(time.Hour)))
		assert.True(t, got.CreatedAt.Equal(baseTime))

		assert.True(t, errors.Is(repo.Delete(ctx, "bob", p.ID), ErrProductNotFound))
		_, err = repo.GetByID(ctx, "alice", p.ID)
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, "alice", p.ID))
		_, err = repo.GetByID(ctx, "alice", p.ID)
		assert.True(t, errors.Is(err, ErrProductNotFound))
		assert.True(t, errors.Is(repo.Delete(ctx, "alice", p.ID), ErrProductNotFound))
	})
}

func TestMemoryProductRepository(t *testing.T) {
	runProductRepositoryContract(t, func(t *testing.T) ProductRepository {
		return NewMemoryProductRepository()
	})
}

func TestMemoryProductRepository_InsertionOrderWithoutSort(t *testing.T) {
	repo := NewMemoryProductRepository()
	seedProduct(t, repo, "alice", "Toner", models.CategorySkincare, models.GenderFemale, 3, 0)
	seedProduct(t, repo, "alice", "Blush", models.CategoryMakeup, models.GenderFemale, 6, 0)
	seedProduct(t, repo, "alice", "Gel", models.CategoryHaircare, models.GenderMale, 2, 0)

	got, _, err := repo.List(context.Background(), ProductFilter{OwnerID: "alice"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Toner", "Blush", "Gel"}, names(got))
}

func TestMemoryProductRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewMemoryProductRepository()
	p := seedProduct(t, repo, "alice", "Toner", models.CategorySkincare, models.GenderFemale, 3, 0)

	_, _, err := repo.List(ctx, ProductFilter{OwnerID: "alice"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.GetByID(ctx, "alice", p.ID)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.Create(ctx, &models.Product{OwnerID: "alice", Name: "Blush"}), context.Canceled)

	renamed := p
	renamed.Name = "Renamed"
	assert.ErrorIs(t, repo.Update(ctx, &renamed), context.Canceled)
	assert.ErrorIs(t, repo.Delete(ctx, "alice", p.ID), context.Canceled)

	got, _, err := repo.List(context.Background(), ProductFilter{OwnerID: "alice"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Toner"}, names(got))
}

func TestGORMProductRepository(t *testing.T) {
	runProductRepositoryContract(t, func(t *testing.T) ProductRepository {
		dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
		db, err := database.OpenGORM("sqlite", dsn)
		require.NoError(t, err)
		t.Cleanup(func() { _ = database.CloseGORM(db) })
		return NewGORMProductRepository(db)
	})
}

func TestMongoFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter ProductFilter
		want   bson.M
	}{
		{
			name:   "owner only",
			filter: ProductFilter{OwnerID: "alice"},
			want:   bson.M{"owner_id": "alice"},
		},
		{
			name:   "all constraints",
			filter: ProductFilter{OwnerID: "alice", Category: "makeup", Gender: "female", Name: "Lip"},
			want: bson.M{
				"owner_id": "alice",
				"category": "makeup",
				"gender":   "female",
				"name":     primitive.Regex{Pattern: "Lip", Options: "i"},
			},
		},
		{
			name:   "regex metacharacters are quoted",
			filter: ProductFilter{OwnerID: "alice", Name: "a.*(b)"},
			want: bson.M{
				"owner_id": "alice",
				"name":     primitive.Regex{Pattern: `a\.\*\(b\)`, Options: "i"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mongoFilter(tt.filter))
		})
	}
}

func TestMongoFindOptions(t *testing.T) {
	opts := mongoFindOptions(ProductFilter{SortField: "price", SortOrder: SortDesc, Offset: 20, Limit: 10})
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, opts.Sort)
	require.NotNil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.EqualValues(t, 20, *opts.Skip)
	assert.EqualValues(t, 10, *opts.Limit)

	opts = mongoFindOptions(ProductFilter{SortField: "name"})
	assert.Equal(t, bson.D{{Key: "name", Value: 1}}, opts.Sort)
	assert.Nil(t, opts.Skip)
	assert.Nil(t, opts.Limit)

	opts = mongoFindOptions(ProductFilter{})
	assert.Nil(t, opts.Sort)
}

func TestMongoProductRepository(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, database.MongoConfig{URI: uri, DBName: "catalog_test", Timeout: 10 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	runProductRepositoryContract(t, func(t *testing.T) ProductRepository {
		db := client.Database("catalog_test_" + uuid.New().String()[:8])
		t.Cleanup(func() { _ = db.Drop(ctx) })
		repo := NewMongoProductRepository(db)
		require.NoError(t, repo.EnsureIndexes(ctx))
		return repo
	})
}
