// Package catalog serves the read-mostly reference lists the console's forms
// share (products, customers, suppliers, accounts, employees, departments).
// Instead of every form refetching, reads go through a Redis-backed
// read-through cache keyed by company and entity type, injected where needed
// and explicitly invalidated on logout and on master-data writes.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/ledgerdesk/ledgerdesk-api/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/ledger"
)

// Type names one cached reference list.
type Type string

const (
	TypeProducts    Type = "products"
	TypeCustomers   Type = "customers"
	TypeSuppliers   Type = "suppliers"
	TypeAccounts    Type = "accounts"
	TypeEmployees   Type = "employees"
	TypeDepartments Type = "departments"
	TypeParticulars Type = "particulars" // expense/income voucher line types
)

var allTypes = []Type{
	TypeProducts, TypeCustomers, TypeSuppliers,
	TypeAccounts, TypeEmployees, TypeDepartments, TypeParticulars,
}

// Item is one dropdown entry: an ID, a display label and the canonical unit
// amount used to prefill line items.
type Item struct {
	ID     string          `json:"id"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Loader fetches a reference list from its repository on cache miss.
type Loader func(ctx context.Context, companyID string) ([]Item, error)

// Cache is the read-through cache. A nil Redis client degrades to calling the
// loader on every read, so the rest of the app never branches on cache
// availability.
type Cache struct {
	client  *redis.Client
	ttl     time.Duration
	loaders map[Type]Loader
}

// New builds the cache. client may be nil (cache disabled).
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		client:  client,
		ttl:     ttl,
		loaders: make(map[Type]Loader),
	}
}

// Register binds the loader for one catalog type.
func (c *Cache) Register(t Type, loader Loader) {
	c.loaders[t] = loader
}

func key(companyID string, t Type) string {
	return fmt.Sprintf("catalog:%s:%s", companyID, t)
}

// Get returns the reference list for (companyID, t): from Redis when fresh,
// otherwise through the registered loader, writing back with the cache TTL.
func (c *Cache) Get(ctx context.Context, companyID string, t Type) ([]Item, error) {
	loader, ok := c.loaders[t]
	if !ok {
		return nil, domain.ErrNotFound
	}

	if c.client != nil {
		raw, err := c.client.Get(ctx, key(companyID, t)).Bytes()
		if err == nil {
			var items []Item
			if jsonErr := json.Unmarshal(raw, &items); jsonErr == nil {
				return items, nil
			}
			// Corrupt entry: fall through to the loader and overwrite.
		} else if !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("catalog: read cache: %w", err)
		}
	}

	items, err := loader(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("catalog: load %s: %w", t, err)
	}

	if c.client != nil {
		if raw, err := json.Marshal(items); err == nil {
			if err := c.client.Set(ctx, key(companyID, t), raw, c.ttl).Err(); err != nil {
				return nil, fmt.Errorf("catalog: write cache: %w", err)
			}
		}
	}
	return items, nil
}

// Invalidate drops the cached lists for the company. With no types given it
// drops every list (logout path).
func (c *Cache) Invalidate(ctx context.Context, companyID string, types ...Type) error {
	if c.client == nil {
		return nil
	}
	if len(types) == 0 {
		types = allTypes
	}
	keys := make([]string, 0, len(types))
	for _, t := range types {
		keys = append(keys, key(companyID, t))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("catalog: invalidate: %w", err)
	}
	return nil
}

// resolver adapts a loaded list to the ledger's catalog lookup.
type resolver map[string]decimal.Decimal

func (r resolver) Resolve(referenceID string) (decimal.Decimal, bool) {
	amount, ok := r[referenceID]
	return amount, ok
}

// Resolver loads the list for (companyID, t) and returns it as a
// ledger.Catalog for line-reference resolution.
func (c *Cache) Resolver(ctx context.Context, companyID string, t Type) (ledger.Catalog, error) {
	items, err := c.Get(ctx, companyID, t)
	if err != nil {
		return nil, err
	}
	r := make(resolver, len(items))
	for _, item := range items {
		r[item.ID] = item.Amount
	}
	return r, nil
}

// ParseType validates a catalog type coming from a request path.
func ParseType(s string) (Type, bool) {
	t := Type(s)
	for _, known := range allTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}
