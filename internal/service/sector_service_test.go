package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annonces-api/internal/domain"
)

func TestResolveNames(t *testing.T) {
	svc := NewSectorService(newFakeSectorRepo("A", "B"))

	got, err := svc.ResolveNames(context.Background(), []string{"B", "Z", "A", "B"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Sector{sectorB, sectorA}, got)
}

func TestResolveNames_Empty(t *testing.T) {
	repo := newFakeSectorRepo("A")
	svc := NewSectorService(repo)

	got, err := svc.ResolveNames(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, repo.calls)
}

func TestEnsure(t *testing.T) {
	repo := newFakeSectorRepo("A")
	svc := NewSectorService(repo)

	existing, err := svc.Ensure(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, sectorA, *existing)

	created, err := svc.Ensure(context.Background(), " Plomberie ")
	require.NoError(t, err)
	assert.Equal(t, "Plomberie", created.Name)
	assert.Contains(t, repo.byName, "Plomberie")

	_, err = svc.Ensure(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingFields)
}
