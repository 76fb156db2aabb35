package repository

import (
	"context"

	"annonces-api/internal/domain"
)

// SectorRepository exposes the sector reference table.
type SectorRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, sector *domain.Sector) (string, error)
	GetByName(ctx context.Context, name string) (*domain.Sector, error)
	List(ctx context.Context) ([]domain.Sector, error)
}
