package catalog

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/pointsolution/docbooking/internal/domain"
)

type CatalogUseCase interface {
	List(ctx context.Context) ([]domain.Service, error)
	Grouped(ctx context.Context) ([]CategoryGroup, error)
	Get(ctx context.Context, id string) (*domain.Service, error)
	ByCategory(ctx context.Context, category string) ([]domain.Service, error)
	Categories(ctx context.Context) ([]string, error)
}

type Upstream interface {
	ListServices(ctx context.Context) ([]domain.Service, error)
	ServiceByID(ctx context.Context, id string) (*domain.Service, error)
	ServicesByCategory(ctx context.Context, category string) ([]domain.Service, error)
	Categories(ctx context.Context) ([]string, error)
}

type Cache interface {
	GetServices(ctx context.Context) ([]domain.Service, error)
	SetServices(ctx context.Context, services []domain.Service) error
}

type CategoryGroup struct {
	Tag      domain.CategoryTag `json:"tag"`
	Label    string             `json:"label"`
	Services []domain.Service   `json:"services"`
}

type CatalogService struct {
	api    Upstream
	cache  Cache
	logger *zap.Logger
}

func NewCatalogService(api Upstream, cache Cache, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{api: api, cache: cache, logger: logger}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Service, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetServices(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	services, err := s.api.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetServices(ctx, services); err != nil {
			s.logger.Warn("failed to cache catalog", zap.Error(err))
		}
	}
	return services, nil
}

// Grouped buckets the catalog by resolved category tag, Other last.
func (s *CatalogService) Grouped(ctx context.Context) ([]CategoryGroup, error) {
	services, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	buckets := make(map[domain.CategoryTag][]domain.Service)
	for _, svc := range services {
		tag := domain.ResolveCategory(svc.Category)
		buckets[tag] = append(buckets[tag], svc)
	}

	groups := make([]CategoryGroup, 0, len(buckets))
	for tag, list := range buckets {
		groups = append(groups, CategoryGroup{Tag: tag, Label: tag.Label(), Services: list})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Tag == domain.CategoryOther {
			return false
		}
		if groups[j].Tag == domain.CategoryOther {
			return true
		}
		return groups[i].Label < groups[j].Label
	})
	return groups, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Service, error) {
	return s.api.ServiceByID(ctx, id)
}

func (s *CatalogService) ByCategory(ctx context.Context, category string) ([]domain.Service, error) {
	return s.api.ServicesByCategory(ctx, category)
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.api.Categories(ctx)
}

var _ CatalogUseCase = (*CatalogService)(nil)
