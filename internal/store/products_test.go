package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildProductFilter(t *testing.T) {
	t.Run("empty query matches everything", func(t *testing.T) {
		assert.Empty(t, buildProductFilter(ProductQuery{}))
	})

	t.Run("category all is a sentinel for no restriction", func(t *testing.T) {
		assert.Empty(t, buildProductFilter(ProductQuery{Category: "all"}))
	})

	t.Run("category restriction", func(t *testing.T) {
		filter := buildProductFilter(ProductQuery{Category: "Juice"})
		assert.Equal(t, "Juice", filter["category"])
	})

	t.Run("search matches name or description case-insensitively", func(t *testing.T) {
		filter := buildProductFilter(ProductQuery{Search: "orange"})
		clauses, ok := filter["$or"].(bson.A)
		require.True(t, ok)
		require.Len(t, clauses, 2)

		name := clauses[0].(bson.M)["name"].(primitive.Regex)
		assert.Equal(t, "orange", name.Pattern)
		assert.Equal(t, "i", name.Options)
	})

	t.Run("search text is treated literally", func(t *testing.T) {
		filter := buildProductFilter(ProductQuery{Search: "a+b (combo)"})
		clauses := filter["$or"].(bson.A)
		name := clauses[0].(bson.M)["name"].(primitive.Regex)
		assert.Equal(t, `a\+b \(combo\)`, name.Pattern)
	})

	t.Run("price bounds are inclusive", func(t *testing.T) {
		min, max := 10.0, 20.0
		filter := buildProductFilter(ProductQuery{MinPrice: &min, MaxPrice: &max})
		price, ok := filter["price"].(bson.M)
		require.True(t, ok)
		assert.Equal(t, 10.0, price["$gte"])
		assert.Equal(t, 20.0, price["$lte"])
	})
}

func TestProductSortMapping(t *testing.T) {
	cases := []struct {
		sort string
		want bson.D
	}{
		{SortFeatured, bson.D{{Key: "featured", Value: -1}, {Key: "createdAt", Value: -1}}},
		{SortBestSelling, bson.D{{Key: "bestSelling", Value: -1}, {Key: "createdAt", Value: -1}}},
		{SortAlphabetical, bson.D{{Key: "name", Value: 1}}},
		{SortPriceAsc, bson.D{{Key: "price", Value: 1}}},
		{SortPriceDesc, bson.D{{Key: "price", Value: -1}}},
		{SortNewest, bson.D{{Key: "createdAt", Value: -1}}},
		// Unrecognized keys fall back to the featured ordering
		{"garbage", bson.D{{Key: "featured", Value: -1}, {Key: "createdAt", Value: -1}}},
		{"", bson.D{{Key: "featured", Value: -1}, {Key: "createdAt", Value: -1}}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, productSort(tc.sort), "sort %q", tc.sort)
	}
}
