package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	cacheport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/cache/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/logger"
	contractors "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/persistence/repository/port"
)

const (
	categoriesCacheKey = "catalog:categories"
	categoriesCacheTTL = 10 * time.Minute
)

// ListCatalogUseCase serves the category and skill taxonomy. Categories change
// rarely, so the list is cached and served stale-free via TTL.
type ListCatalogUseCase struct {
	Repo  repository.ContractorRepository
	Cache cacheport.Cache
}

func NewListCatalogUseCase(repo repository.ContractorRepository, cache cacheport.Cache) *ListCatalogUseCase {
	return &ListCatalogUseCase{Repo: repo, Cache: cache}
}

func (uc *ListCatalogUseCase) Categories(ctx context.Context) ([]contractors.Category, error) {
	if uc.Cache != nil {
		if cached, err := uc.Cache.Get(ctx, categoriesCacheKey); err == nil {
			var out []contractors.Category
			if err := json.Unmarshal([]byte(cached), &out); err == nil {
				return out, nil
			}
		} else if !errors.Is(err, cacheport.ErrMiss) {
			logger.Warningf("catalog: cache get: %v", err)
		}
	}

	out, err := uc.Repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if out == nil {
		out = []contractors.Category{}
	}

	if uc.Cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := uc.Cache.Set(ctx, categoriesCacheKey, string(raw), categoriesCacheTTL); err != nil {
				logger.Warningf("catalog: cache set: %v", err)
			}
		}
	}
	return out, nil
}

func (uc *ListCatalogUseCase) Skills(ctx context.Context, categoryID string) ([]contractors.Skill, error) {
	out, err := uc.Repo.ListSkills(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if out == nil {
		out = []contractors.Skill{}
	}
	return out, nil
}
