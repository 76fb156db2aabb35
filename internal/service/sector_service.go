package service

import (
	"context"
	"errors"
	"strings"

	"annonces-api/internal/domain"
	"annonces-api/internal/repository"
)

// SectorService exposes the sector reference data.
type SectorService interface {
	// ResolveNames maps sector names to sectors. Unknown names are dropped.
	ResolveNames(ctx context.Context, names []string) ([]domain.Sector, error)
	Ensure(ctx context.Context, name string) (*domain.Sector, error)
	List(ctx context.Context) ([]domain.Sector, error)
}

type sectorService struct {
	sectors repository.SectorRepository
}

func NewSectorService(sectors repository.SectorRepository) SectorService {
	return &sectorService{sectors: sectors}
}

func (s *sectorService) ResolveNames(ctx context.Context, names []string) ([]domain.Sector, error) {
	resolved := make([]domain.Sector, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		sector, err := s.sectors.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, storeError(err)
		}
		if _, ok := seen[sector.ID]; ok {
			continue
		}
		seen[sector.ID] = struct{}{}
		resolved = append(resolved, *sector)
	}
	return resolved, nil
}

func (s *sectorService) Ensure(ctx context.Context, name string) (*domain.Sector, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingFields
	}

	sector, err := s.sectors.GetByName(ctx, name)
	if err == nil {
		return sector, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeError(err)
	}

	sector = &domain.Sector{Name: name}
	if _, err := s.sectors.Create(ctx, sector); err != nil {
		return nil, storeError(err)
	}
	return sector, nil
}

func (s *sectorService) List(ctx context.Context) ([]domain.Sector, error) {
	sectors, err := s.sectors.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return sectors, nil
}
