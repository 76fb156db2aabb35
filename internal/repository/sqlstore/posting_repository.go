package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"annonces-api/internal/domain"
	"annonces-api/internal/repository"
)

const (
	createPostingsTable = `
CREATE TABLE IF NOT EXISTS postings (
	id TEXT PRIMARY KEY,
	owner_id TEXT NOT NULL REFERENCES users(id),
	token TEXT NOT NULL UNIQUE,
	type TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	image TEXT NOT NULL DEFAULT '',
	availability TEXT NOT NULL DEFAULT '',
	max_duration TEXT NOT NULL DEFAULT '',
	experience TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
)`
	createPostingSectorsTable = `
CREATE TABLE IF NOT EXISTS posting_sectors (
	posting_id TEXT NOT NULL REFERENCES postings(id) ON DELETE CASCADE,
	sector_id TEXT NOT NULL REFERENCES sectors(id),
	position INTEGER NOT NULL,
	PRIMARY KEY (posting_id, sector_id)
)`
	createPostingsIndex       = `CREATE INDEX IF NOT EXISTS idx_postings_type_owner ON postings(type, owner_id)`
	createPostingSectorsIndex = `CREATE INDEX IF NOT EXISTS idx_posting_sectors_sector ON posting_sectors(sector_id)`
)

var postingColumns = []string{
	"p.id", "p.owner_id", "u.username", "p.token", "p.type", "p.title", "p.description",
	"p.image", "p.availability", "p.max_duration", "p.experience", "p.city", "p.created_at",
}

type PostingRepository struct {
	db *DB
}

func NewPostingRepository(db *DB) repository.PostingRepository {
	return &PostingRepository{db: db}
}

func (r *PostingRepository) Init(ctx context.Context) error {
	err := execStatements(ctx, r.db,
		createPostingsTable,
		createPostingSectorsTable,
		createPostingsIndex,
		createPostingSectorsIndex,
	)
	if err != nil {
		return fmt.Errorf("create postings tables: %w", err)
	}
	return nil
}

func (r *PostingRepository) Create(ctx context.Context, posting *domain.Posting) (string, error) {
	if posting.ID == "" {
		posting.ID = uuid.NewString()
	}
	if posting.CreatedAt.IsZero() {
		posting.CreatedAt = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = exec(ctx, tx, r.db.Builder.
		Insert("postings").
		Columns("id", "owner_id", "token", "type", "title", "description", "image",
			"availability", "max_duration", "experience", "city", "created_at").
		Values(
			posting.ID,
			posting.OwnerID,
			posting.Token,
			string(posting.Type),
			posting.Title,
			posting.Description,
			posting.Image,
			posting.Availability,
			posting.MaxDuration,
			posting.Experience,
			posting.City,
			posting.CreatedAt.UTC(),
		))
	if err != nil {
		return "", fmt.Errorf("insert posting: %w", err)
	}

	for i, sector := range posting.Sectors {
		_, err := exec(ctx, tx, r.db.Builder.
			Insert("posting_sectors").
			Columns("posting_id", "sector_id", "position").
			Values(posting.ID, sector.ID, i))
		if err != nil {
			return "", fmt.Errorf("insert posting sector: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit posting insert: %w", err)
	}
	return posting.ID, nil
}

func (r *PostingRepository) Get(ctx context.Context, id string) (*domain.Posting, error) {
	postings, err := r.find(ctx, sq.Eq{"p.id": id})
	if err != nil {
		return nil, err
	}
	if len(postings) == 0 {
		return nil, repository.ErrNotFound
	}
	return &postings[0], nil
}

func (r *PostingRepository) Find(ctx context.Context, filter repository.PostingFilter) ([]domain.Posting, error) {
	conds := sq.And{}
	if filter.Type != "" {
		conds = append(conds, sq.Eq{"p.type": string(filter.Type)})
	}
	if filter.OwnerID != "" {
		conds = append(conds, sq.Eq{"p.owner_id": filter.OwnerID})
	}
	if filter.ExcludeOwnerID != "" {
		conds = append(conds, sq.NotEq{"p.owner_id": filter.ExcludeOwnerID})
	}
	if len(filter.SectorIDs) > 0 {
		sub, args, err := sq.Select("1").
			From("posting_sectors ps").
			Where("ps.posting_id = p.id").
			Where(sq.Eq{"ps.sector_id": filter.SectorIDs}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build sector filter: %w", err)
		}
		conds = append(conds, sq.Expr("EXISTS ("+sub+")", args...))
	}
	return r.find(ctx, conds)
}

func (r *PostingRepository) find(ctx context.Context, where sq.Sqlizer) ([]domain.Posting, error) {
	rows, err := query(ctx, r.db, r.db.Builder.
		Select(postingColumns...).
		From("postings p").
		Join("users u ON u.id = p.owner_id").
		Where(where).
		OrderBy("p.created_at ASC", "p.id ASC"))
	if err != nil {
		return nil, fmt.Errorf("query postings: %w", err)
	}
	defer rows.Close()

	var postings []domain.Posting
	for rows.Next() {
		posting, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		postings = append(postings, *posting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate postings: %w", err)
	}

	if err := r.loadSectors(ctx, postings); err != nil {
		return nil, err
	}
	return postings, nil
}

func (r *PostingRepository) loadSectors(ctx context.Context, postings []domain.Posting) error {
	if len(postings) == 0 {
		return nil
	}

	index := make(map[string]int, len(postings))
	ids := make([]string, len(postings))
	for i := range postings {
		index[postings[i].ID] = i
		ids[i] = postings[i].ID
		postings[i].Sectors = []domain.Sector{}
	}

	rows, err := query(ctx, r.db, r.db.Builder.
		Select("ps.posting_id", "s.id", "s.name").
		From("posting_sectors ps").
		Join("sectors s ON s.id = ps.sector_id").
		Where(sq.Eq{"ps.posting_id": ids}).
		OrderBy("ps.posting_id ASC", "ps.position ASC"))
	if err != nil {
		return fmt.Errorf("query posting sectors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			postingID string
			sector    domain.Sector
		)
		if err := rows.Scan(&postingID, &sector.ID, &sector.Name); err != nil {
			return fmt.Errorf("scan posting sector: %w", err)
		}
		if i, ok := index[postingID]; ok {
			postings[i].Sectors = append(postings[i].Sectors, sector)
		}
	}
	return rows.Err()
}

func (r *PostingRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := exec(ctx, tx, r.db.Builder.Delete("posting_sectors").Where(sq.Eq{"posting_id": id})); err != nil {
		return fmt.Errorf("delete posting sectors: %w", err)
	}

	res, err := exec(ctx, tx, r.db.Builder.Delete("postings").Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("delete posting: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("posting delete rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit posting delete: %w", err)
	}
	return nil
}

func scanPosting(scanner interface {
	Scan(dest ...any) error
}) (*domain.Posting, error) {
	var (
		posting     domain.Posting
		postingType string
		createdAt   time.Time
	)
	if err := scanner.Scan(
		&posting.ID,
		&posting.OwnerID,
		&posting.OwnerUsername,
		&posting.Token,
		&postingType,
		&posting.Title,
		&posting.Description,
		&posting.Image,
		&posting.Availability,
		&posting.MaxDuration,
		&posting.Experience,
		&posting.City,
		&createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan posting: %w", err)
	}

	posting.Type = domain.PostingType(postingType)
	posting.CreatedAt = createdAt.Local()
	return &posting, nil
}
