package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/catalog"
)

const testCompanyID = "00000000-0000-0000-0000-0000000000aa"

func newTestCache(t *testing.T) (*catalog.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return catalog.New(client, 5*time.Minute), mr
}

func countingLoader(calls *int, items []catalog.Item) catalog.Loader {
	return func(ctx context.Context, companyID string) ([]catalog.Item, error) {
		*calls++
		return items, nil
	}
}

func TestGet_ReadThrough(t *testing.T) {
	cache, _ := newTestCache(t)
	calls := 0
	cache.Register(catalog.TypeProducts, countingLoader(&calls, []catalog.Item{
		{ID: "p1", Label: "Keyboard", Amount: decimal.NewFromInt(45)},
	}))

	ctx := context.Background()

	first, err := cache.Get(ctx, testCompanyID, catalog.TypeProducts)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, calls, "first read must hit the loader")

	second, err := cache.Get(ctx, testCompanyID, catalog.TypeProducts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second read must come from the cache")
}

func TestGet_ExpiryRefetches(t *testing.T) {
	cache, mr := newTestCache(t)
	calls := 0
	cache.Register(catalog.TypeAccounts, countingLoader(&calls, nil))

	ctx := context.Background()
	_, err := cache.Get(ctx, testCompanyID, catalog.TypeAccounts)
	require.NoError(t, err)

	mr.FastForward(10 * time.Minute)

	_, err = cache.Get(ctx, testCompanyID, catalog.TypeAccounts)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "an expired entry must be reloaded")
}

func TestInvalidate_DropsCompanyLists(t *testing.T) {
	cache, _ := newTestCache(t)
	calls := 0
	cache.Register(catalog.TypeCustomers, countingLoader(&calls, []catalog.Item{{ID: "c1", Label: "ACME"}}))

	ctx := context.Background()
	_, err := cache.Get(ctx, testCompanyID, catalog.TypeCustomers)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx, testCompanyID))

	_, err = cache.Get(ctx, testCompanyID, catalog.TypeCustomers)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "invalidation must force a reload")
}

func TestGet_CompaniesAreIsolated(t *testing.T) {
	cache, _ := newTestCache(t)
	calls := 0
	cache.Register(catalog.TypeProducts, countingLoader(&calls, nil))

	ctx := context.Background()
	_, err := cache.Get(ctx, "company-a", catalog.TypeProducts)
	require.NoError(t, err)
	_, err = cache.Get(ctx, "company-b", catalog.TypeProducts)
	require.NoError(t, err)

	assert.Equal(t, 2, calls, "each company gets its own cache entry")
}

func TestGet_NilClientDegradesToLoader(t *testing.T) {
	cache := catalog.New(nil, time.Minute)
	calls := 0
	cache.Register(catalog.TypeProducts, countingLoader(&calls, nil))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := cache.Get(ctx, testCompanyID, catalog.TypeProducts)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls, "without Redis every read goes to the loader")
}

func TestResolver_LooksUpAmounts(t *testing.T) {
	cache, _ := newTestCache(t)
	cache.Register(catalog.TypeProducts, func(ctx context.Context, companyID string) ([]catalog.Item, error) {
		return []catalog.Item{{ID: "p1", Label: "Mouse", Amount: decimal.NewFromFloat(19.99)}}, nil
	})

	res, err := cache.Resolver(context.Background(), testCompanyID, catalog.TypeProducts)
	require.NoError(t, err)

	amount, ok := res.Resolve("p1")
	require.True(t, ok)
	assert.True(t, amount.Equal(decimal.NewFromFloat(19.99)))

	_, ok = res.Resolve("missing")
	assert.False(t, ok, "unknown references must not resolve")
}
