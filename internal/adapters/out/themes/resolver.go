// Package themes resolves a shop's mail template theme chain.
package themes

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"orderflow/internal/core/domain/model/shop"
	"orderflow/internal/pkg/errs"
)

// DefaultTheme is the theme every chain falls back to.
const DefaultTheme = "default"

const lookupTimeout = 3 * time.Second

// shopSource provides the shop aggregates the chains are derived from.
// ports.ShopRepository satisfies it.
type shopSource interface {
	GetByCode(ctx context.Context, code string) (*shop.Shop, error)
}

type cacheEntry struct {
	chain     []string
	expiresAt time.Time
}

// Resolver derives the theme chain from the shop's
// SHOP_MAIL_TEMPLATE_THEMES attribute and appends the default theme.
// Chains are cached in-process with a TTL and a hard entry bound so a
// burst of notifications does not hammer the shop table.
type Resolver struct {
	shops      shopSource
	ttl        time.Duration
	maxEntries int
	logger     *slog.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewResolver creates a theme resolver backed by the given shop source.
func NewResolver(shops shopSource, ttl time.Duration, maxEntries int, logger *slog.Logger) (*Resolver, error) {
	if shops == nil {
		return nil, errs.NewValueIsRequiredError("shops")
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsRequiredError("ttl")
	}
	if maxEntries <= 0 {
		return nil, errs.NewValueIsRequiredError("maxEntries")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Resolver{
		shops:      shops,
		ttl:        ttl,
		maxEntries: maxEntries,
		logger:     logger.With("component", "theme_resolver"),
		cache:      make(map[string]cacheEntry),
	}, nil
}

// Chain returns the ordered theme chain for the shop, most specific first.
// The default theme is always the last element. Lookup failures fall back to
// the default chain and are not cached.
func (r *Resolver) Chain(shopCode string) []string {
	if shopCode == "" {
		return []string{DefaultTheme}
	}

	now := time.Now()

	r.mu.Lock()
	if entry, ok := r.cache[shopCode]; ok && now.Before(entry.expiresAt) {
		chain := make([]string, len(entry.chain))
		copy(chain, entry.chain)
		r.mu.Unlock()
		return chain
	}
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	storefront, err := r.shops.GetByCode(ctx, shopCode)
	if err != nil {
		r.logger.Warn("Theme chain lookup failed, using default", "shop", shopCode, "error", err)
		return []string{DefaultTheme}
	}

	chain := buildChain(storefront)

	r.mu.Lock()
	r.evictLocked(now)
	r.cache[shopCode] = cacheEntry{chain: chain, expiresAt: now.Add(r.ttl)}
	r.mu.Unlock()

	result := make([]string, len(chain))
	copy(result, chain)
	return result
}

func buildChain(storefront *shop.Shop) []string {
	chain := make([]string, 0, 2)

	if raw, ok := storefront.Attribute(shop.AttrMailTemplateThemes); ok {
		for _, theme := range strings.Split(raw, ",") {
			theme = strings.TrimSpace(theme)
			if theme != "" && theme != DefaultTheme {
				chain = append(chain, theme)
			}
		}
	}

	return append(chain, DefaultTheme)
}

// evictLocked frees room for one more entry. Expired entries go first; when
// everything is still fresh an arbitrary entry is dropped to keep the bound.
func (r *Resolver) evictLocked(now time.Time) {
	if len(r.cache) < r.maxEntries {
		return
	}

	for code, entry := range r.cache {
		if !now.Before(entry.expiresAt) {
			delete(r.cache, code)
		}
	}

	for code := range r.cache {
		if len(r.cache) < r.maxEntries {
			break
		}
		delete(r.cache, code)
	}
}
