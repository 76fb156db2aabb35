package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"annonces-api/internal/domain"
	"annonces-api/internal/repository"
)

// DeletedMessage confirms a successful posting deletion.
const DeletedMessage = "Votre annonce a été supprimé"

// CreatePostingInput carries the fields of a new posting. Sectors are given by
// name.
type CreatePostingInput struct {
	Type         domain.PostingType
	Title        string
	Description  string
	MaxDuration  string
	Experience   string
	Availability string
	City         string
	Sectors      []string
}

// PostingService coordinates posting operations for an authenticated identity.
type PostingService interface {
	ListOffers(ctx context.Context, id domain.Identity) ([]domain.Posting, error)
	ListRequests(ctx context.Context, id domain.Identity) ([]domain.Posting, error)
	ListOwn(ctx context.Context, id domain.Identity) ([]domain.Posting, error)
	Create(ctx context.Context, id domain.Identity, input CreatePostingInput) (*domain.Posting, error)
	Delete(ctx context.Context, id domain.Identity, postingID string) error
}

type postingService struct {
	postings repository.PostingRepository
	sectors  SectorService
	now      func() time.Time
}

func NewPostingService(postings repository.PostingRepository, sectors SectorService) PostingService {
	return &postingService{
		postings: postings,
		sectors:  sectors,
		now:      time.Now,
	}
}

func (s *postingService) ListOffers(ctx context.Context, id domain.Identity) ([]domain.Posting, error) {
	return s.listMatching(ctx, id, domain.PostingTypeOffer, id.Wants)
}

func (s *postingService) ListRequests(ctx context.Context, id domain.Identity) ([]domain.Posting, error) {
	return s.listMatching(ctx, id, domain.PostingTypeRequest, id.CanDo)
}

// listMatching returns postings of the given type published by other users
// that share at least one sector with interests.
func (s *postingService) listMatching(ctx context.Context, id domain.Identity, postingType domain.PostingType, interests []domain.Sector) ([]domain.Posting, error) {
	if len(interests) == 0 {
		return []domain.Posting{}, nil
	}

	postings, err := s.postings.Find(ctx, repository.PostingFilter{
		Type:           postingType,
		ExcludeOwnerID: id.UserID,
		SectorIDs:      domain.SectorIDs(interests),
	})
	if err != nil {
		return nil, storeError(err)
	}
	return nonNil(postings), nil
}

func (s *postingService) ListOwn(ctx context.Context, id domain.Identity) ([]domain.Posting, error) {
	postings, err := s.postings.Find(ctx, repository.PostingFilter{OwnerID: id.UserID})
	if err != nil {
		return nil, storeError(err)
	}
	return nonNil(postings), nil
}

func (s *postingService) Create(ctx context.Context, id domain.Identity, input CreatePostingInput) (*domain.Posting, error) {
	if !input.Type.Valid() {
		return nil, ErrInvalidPostingType
	}

	sectors, err := s.sectors.ResolveNames(ctx, input.Sectors)
	if err != nil {
		return nil, err
	}

	token, err := NewToken()
	if err != nil {
		return nil, err
	}

	posting := &domain.Posting{
		OwnerID:       id.UserID,
		OwnerUsername: id.Username,
		Token:         token,
		Type:          input.Type,
		Title:         input.Title,
		Description:   input.Description,
		Sectors:       sectors,
		Availability:  input.Availability,
		MaxDuration:   input.MaxDuration,
		Experience:    input.Experience,
		City:          input.City,
		CreatedAt:     s.now(),
	}
	if _, err := s.postings.Create(ctx, posting); err != nil {
		return nil, storeError(err)
	}
	return posting, nil
}

func (s *postingService) Delete(ctx context.Context, id domain.Identity, postingID string) error {
	postingID = strings.TrimSpace(postingID)
	if postingID == "" {
		return ErrMissingFields
	}

	posting, err := s.postings.Get(ctx, postingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostingNotFound
		}
		return storeError(err)
	}
	if posting.OwnerID != id.UserID {
		return ErrNotOwner
	}

	if err := s.postings.Delete(ctx, postingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostingNotFound
		}
		return storeError(err)
	}
	return nil
}

func nonNil(postings []domain.Posting) []domain.Posting {
	if postings == nil {
		return []domain.Posting{}
	}
	return postings
}
