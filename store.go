package artran

import (
	"context"
	"log"

	"github.com/ZaguanLabs/artran/cache"
)

// StoreBackedProvider consults a shared store (e.g., Redis) before calling the
// wrapped provider, and fills it afterwards. Store failures never fail a translation.
type StoreBackedProvider struct {
	provider TextProvider
	store    cache.Store
	logger   *log.Logger
}

// NewStoreBackedProvider creates a provider that shares translations through store.
func NewStoreBackedProvider(provider TextProvider, store cache.Store, logger *log.Logger) *StoreBackedProvider {
	if logger == nil {
		logger = log.Default()
	}
	return &StoreBackedProvider{
		provider: provider,
		store:    store,
		logger:   logger,
	}
}

// TranslateText implements TextProvider.
func (p *StoreBackedProvider) TranslateText(ctx context.Context, req TextRequest) (string, error) {
	key := StoreKey(req)

	if val, ok := p.store.Get(ctx, key); ok {
		return val, nil
	}

	val, err := p.provider.TranslateText(ctx, req)
	if err != nil {
		return "", err
	}

	if err := p.store.Set(ctx, key, val); err != nil {
		p.logger.Printf("artran: %v", &CacheError{Message: "storing translation", Cause: err})
	}
	return val, nil
}

// StoreKey derives the shared store key for a request.
func StoreKey(req TextRequest) string {
	return CacheKeyExtended(HashText(req.Text), req.SourceLang, req.TargetLang, req.Model)
}
