package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"equipment-system/internal/repositories"
)

// LookupService - резолв натуральных ключей во внутренние id с мемоизацией в
// Redis. Промах резолва - это "нет совпадения" (id=0), а не ошибка; ошибки кеша
// не фатальны, просто идем в базу.
type LookupService struct {
	lookupRepository repositories.LookupRepositoryInterface
	cacheRepository  repositories.CacheRepositoryInterface
	cacheTTL         time.Duration
	logger           *zap.Logger
}

func NewLookupService(
	lookupRepository repositories.LookupRepositoryInterface,
	cacheRepository repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *LookupService {
	return &LookupService{
		lookupRepository: lookupRepository,
		cacheRepository:  cacheRepository,
		cacheTTL:         cacheTTL,
		logger:           logger,
	}
}

func (s *LookupService) ResolveID(ctx context.Context, kind repositories.RefKind, naturalKey string) (uint64, error) {
	if naturalKey == "" {
		return 0, nil
	}

	cacheKey := fmt.Sprintf("lookup:%s:%s", kind, naturalKey)
	if s.cacheRepository != nil {
		if cached, err := s.cacheRepository.Get(ctx, cacheKey); err == nil {
			if id, perr := strconv.ParseUint(cached, 10, 64); perr == nil {
				return id, nil
			}
		}
	}

	id, err := s.lookupRepository.ResolveID(ctx, kind, naturalKey)
	if err != nil {
		return 0, err
	}

	// Кешируем только попадания: промах может резолвиться после довоза справочника.
	if id > 0 && s.cacheRepository != nil {
		if err := s.cacheRepository.Set(ctx, cacheKey, strconv.FormatUint(id, 10), s.cacheTTL); err != nil {
			s.logger.Debug("не удалось закешировать резолв", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return id, nil
}

func (s *LookupService) NaturalKey(ctx context.Context, kind repositories.RefKind, id uint64) (string, error) {
	return s.lookupRepository.NaturalKey(ctx, kind, id)
}
