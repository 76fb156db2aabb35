package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"annonces-api/internal/domain"
	"annonces-api/internal/repository"
)

const createSectorsTable = `
CREATE TABLE IF NOT EXISTS sectors (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
)`

type SectorRepository struct {
	db *DB
}

func NewSectorRepository(db *DB) repository.SectorRepository {
	return &SectorRepository{db: db}
}

func (r *SectorRepository) Init(ctx context.Context) error {
	if err := execStatements(ctx, r.db, createSectorsTable); err != nil {
		return fmt.Errorf("create sectors table: %w", err)
	}
	return nil
}

func (r *SectorRepository) Create(ctx context.Context, sector *domain.Sector) (string, error) {
	if sector.ID == "" {
		sector.ID = uuid.NewString()
	}
	_, err := exec(ctx, r.db, r.db.Builder.
		Insert("sectors").
		Columns("id", "name").
		Values(sector.ID, sector.Name))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return "", fmt.Errorf("sector already exists: %w", err)
		}
		return "", fmt.Errorf("insert sector: %w", err)
	}
	return sector.ID, nil
}

func (r *SectorRepository) GetByName(ctx context.Context, name string) (*domain.Sector, error) {
	row, err := queryRow(ctx, r.db.DB, r.db.Builder.
		Select("id", "name").
		From("sectors").
		Where(sq.Eq{"name": name}))
	if err != nil {
		return nil, err
	}

	var sector domain.Sector
	if err := row.Scan(&sector.ID, &sector.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan sector: %w", err)
	}
	return &sector, nil
}

func (r *SectorRepository) List(ctx context.Context) ([]domain.Sector, error) {
	rows, err := query(ctx, r.db, r.db.Builder.
		Select("id", "name").
		From("sectors").
		OrderBy("name ASC"))
	if err != nil {
		return nil, fmt.Errorf("query sectors: %w", err)
	}
	defer rows.Close()

	var sectors []domain.Sector
	for rows.Next() {
		var sector domain.Sector
		if err := rows.Scan(&sector.ID, &sector.Name); err != nil {
			return nil, fmt.Errorf("scan sector: %w", err)
		}
		sectors = append(sectors, sector)
	}
	return sectors, rows.Err()
}
