package cooperatives

import (
	"context"
	"fmt"

	"taxibe/internal/shared/config"
	"taxibe/pkg/cache"

	"github.com/google/uuid"
)

const listCacheKey = "cooperatives:active"

type Service interface {
	Create(ctx context.Context, req CreateCooperativeRequest) (*Cooperative, error)
	Get(ctx context.Context, id string) (*Cooperative, error)
	List(ctx context.Context) ([]CooperativeResponse, error)
	Update(ctx context.Context, id string, req UpdateCooperativeRequest) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	config *config.Config
	cache  cache.Service
}

func NewService(repo Repository, cfg *config.Config, cacheService cache.Service) Service {
	return &service{
		repo:   repo,
		config: cfg,
		cache:  cacheService,
	}
}

func (s *service) Create(ctx context.Context, req CreateCooperativeRequest) (*Cooperative, error) {
	coop := &Cooperative{
		Name:     req.Name,
		Region:   req.Region,
		Phone:    req.Phone,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, coop); err != nil {
		return nil, err
	}
	s.invalidateList(ctx)
	return coop, nil
}

func (s *service) Get(ctx context.Context, id string) (*Cooperative, error) {
	coopID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid cooperative ID: %w", err)
	}
	return s.repo.GetByID(ctx, coopID)
}

// List serves the cooperative filter of the vehicle search screen, so it
// reads through the cache.
func (s *service) List(ctx context.Context) ([]CooperativeResponse, error) {
	var cached []CooperativeResponse
	if s.cache != nil {
		err := s.cache.GetOrSet(ctx, listCacheKey, s.config.Redis.CooperativeTTL, func() (interface{}, error) {
			return s.listFromDB(ctx)
		}, &cached)
		if err == nil {
			return cached, nil
		}
	}
	return s.listFromDB(ctx)
}

func (s *service) listFromDB(ctx context.Context) ([]CooperativeResponse, error) {
	coops, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]CooperativeResponse, 0, len(coops))
	for i := range coops {
		responses = append(responses, coops[i].ToResponse())
	}
	return responses, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCooperativeRequest) error {
	coopID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid cooperative ID: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Region != nil {
		updates["region"] = *req.Region
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.repo.Update(ctx, coopID, updates); err != nil {
		return err
	}
	s.invalidateList(ctx)
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	coopID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid cooperative ID: %w", err)
	}
	if err := s.repo.Delete(ctx, coopID); err != nil {
		return err
	}
	s.invalidateList(ctx)
	return nil
}

func (s *service) invalidateList(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, listCacheKey)
	}
}
