package service

import (
	"context"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
	"github.com/sajathahamed/Unilifmobile/internal/repository"
)

type CatalogService struct {
	catalog repository.CatalogRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(catalog repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) OpenVendors(ctx context.Context) ([]domain.Vendor, error) {
	return s.catalog.ListOpenVendors(ctx)
}

func (s *CatalogService) Menu(ctx context.Context, vendorID int64) ([]domain.MenuItem, error) {
	return s.catalog.ListMenu(ctx, vendorID)
}

func (s *CatalogService) LaundryServices(ctx context.Context) ([]domain.LaundryService, error) {
	return s.catalog.ListLaundryServices(ctx)
}
