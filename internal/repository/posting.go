package repository

import (
	"context"

	"annonces-api/internal/domain"
)

// PostingFilter narrows Find results. Zero-valued fields do not filter.
type PostingFilter struct {
	Type           domain.PostingType
	OwnerID        string
	ExcludeOwnerID string
	// SectorIDs keeps postings sharing at least one sector with the set.
	SectorIDs []string
}

// PostingRepository exposes persistence operations for postings. Postings
// returned by Get and Find carry their owner's username and sector names.
type PostingRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, posting *domain.Posting) (string, error)
	Get(ctx context.Context, id string) (*domain.Posting, error)
	Find(ctx context.Context, filter PostingFilter) ([]domain.Posting, error)
	Delete(ctx context.Context, id string) error
}
