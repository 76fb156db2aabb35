package service

import (
	"context"
	"errors"
	"strings"

	"annonces-api/internal/domain"
	"annonces-api/internal/repository"
)

// ErrUserAlreadyExists is returned when registering a username that is taken.
var ErrUserAlreadyExists = errors.New("user already exists")

// UserService resolves session tokens and registers users.
type UserService interface {
	// Resolve returns the identity owning the session token.
	Resolve(ctx context.Context, token string) (domain.Identity, error)
	// Register creates a user with a freshly minted session token. Interest
	// sectors are given by name; unknown names are dropped.
	Register(ctx context.Context, username string, wants, canDo []string) (*domain.User, error)
}

type userService struct {
	users   repository.UserRepository
	sectors SectorService
}

func NewUserService(users repository.UserRepository, sectors SectorService) UserService {
	return &userService{
		users:   users,
		sectors: sectors,
	}
}

func (s *userService) Resolve(ctx context.Context, token string) (domain.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Identity{}, ErrUserNotFound
	}

	user, err := s.users.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Identity{}, ErrUserNotFound
		}
		return domain.Identity{}, storeError(err)
	}
	return domain.IdentityOf(*user), nil
}

func (s *userService) Register(ctx context.Context, username string, wants, canDo []string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrMissingFields
	}

	wantSectors, err := s.sectors.ResolveNames(ctx, wants)
	if err != nil {
		return nil, err
	}
	canDoSectors, err := s.sectors.ResolveNames(ctx, canDo)
	if err != nil {
		return nil, err
	}

	token, err := NewToken()
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username: username,
		Token:    token,
		Wants:    wantSectors,
		CanDo:    canDoSectors,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already exists") {
			return nil, ErrUserAlreadyExists
		}
		return nil, storeError(err)
	}
	return user, nil
}
