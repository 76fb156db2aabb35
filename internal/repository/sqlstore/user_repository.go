package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"annonces-api/internal/domain"
	"annonces-api/internal/repository"
)

const (
	createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	token TEXT NOT NULL UNIQUE,
	created_at TIMESTAMP NOT NULL
)`
	createUserSectorsTable = `
CREATE TABLE IF NOT EXISTS user_sectors (
	user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	sector_id TEXT NOT NULL REFERENCES sectors(id),
	kind TEXT NOT NULL,
	position INTEGER NOT NULL,
	PRIMARY KEY (user_id, sector_id, kind)
)`
)

const (
	interestWants = "wants"
	interestCanDo = "can_do"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if err := execStatements(ctx, r.db, createUsersTable, createUserSectorsTable); err != nil {
		return fmt.Errorf("create users tables: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = exec(ctx, tx, r.db.Builder.
		Insert("users").
		Columns("id", "username", "token", "created_at").
		Values(user.ID, user.Username, user.Token, user.CreatedAt))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return "", fmt.Errorf("user already exists: %w", err)
		}
		return "", fmt.Errorf("insert user: %w", err)
	}

	if err := r.insertInterests(ctx, tx, user.ID, interestWants, user.Wants); err != nil {
		return "", err
	}
	if err := r.insertInterests(ctx, tx, user.ID, interestCanDo, user.CanDo); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit user insert: %w", err)
	}
	return user.ID, nil
}

func (r *UserRepository) insertInterests(ctx context.Context, tx *sql.Tx, userID, kind string, sectors []domain.Sector) error {
	for i, sector := range sectors {
		_, err := exec(ctx, tx, r.db.Builder.
			Insert("user_sectors").
			Columns("user_id", "sector_id", "kind", "position").
			Values(userID, sector.ID, kind, i))
		if err != nil {
			return fmt.Errorf("insert user sector: %w", err)
		}
	}
	return nil
}

func (r *UserRepository) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	row, err := queryRow(ctx, r.db.DB, r.db.Builder.
		Select("id", "username", "token", "created_at").
		From("users").
		Where(sq.Eq{"token": token}))
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := row.Scan(&user.ID, &user.Username, &user.Token, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	if err := r.loadInterests(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) loadInterests(ctx context.Context, user *domain.User) error {
	rows, err := query(ctx, r.db, r.db.Builder.
		Select("us.kind", "s.id", "s.name").
		From("user_sectors us").
		Join("sectors s ON s.id = us.sector_id").
		Where(sq.Eq{"us.user_id": user.ID}).
		OrderBy("us.kind ASC", "us.position ASC"))
	if err != nil {
		return fmt.Errorf("query user sectors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind   string
			sector domain.Sector
		)
		if err := rows.Scan(&kind, &sector.ID, &sector.Name); err != nil {
			return fmt.Errorf("scan user sector: %w", err)
		}
		switch kind {
		case interestWants:
			user.Wants = append(user.Wants, sector)
		case interestCanDo:
			user.CanDo = append(user.CanDo, sector)
		}
	}
	return rows.Err()
}
