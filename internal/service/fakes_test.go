package service

import (
	"context"
	"errors"
	"fmt"

	"annonces-api/internal/domain"
	"annonces-api/internal/repository"
)

// fakeSectorRepo is an in-memory SectorRepository.
type fakeSectorRepo struct {
	byName map[string]domain.Sector
	err    error
	calls  int
}

func newFakeSectorRepo(names ...string) *fakeSectorRepo {
	r := &fakeSectorRepo{byName: map[string]domain.Sector{}}
	for _, name := range names {
		r.byName[name] = domain.Sector{ID: "sector-" + name, Name: name}
	}
	return r
}

func (r *fakeSectorRepo) Init(context.Context) error { return nil }

func (r *fakeSectorRepo) Create(_ context.Context, sector *domain.Sector) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	sector.ID = "sector-" + sector.Name
	r.byName[sector.Name] = *sector
	return sector.ID, nil
}

func (r *fakeSectorRepo) GetByName(_ context.Context, name string) (*domain.Sector, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.byName[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *fakeSectorRepo) List(context.Context) ([]domain.Sector, error) {
	r.calls++
	out := make([]domain.Sector, 0, len(r.byName))
	for _, s := range r.byName {
		out = append(out, s)
	}
	return out, r.err
}

// fakeUserRepo is an in-memory UserRepository keyed by token.
type fakeUserRepo struct {
	byToken map[string]domain.User
	err     error
	calls   int
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	r := &fakeUserRepo{byToken: map[string]domain.User{}}
	for _, u := range users {
		r.byToken[u.Token] = u
	}
	return r
}

func (r *fakeUserRepo) Init(context.Context) error { return nil }

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	for _, u := range r.byToken {
		if u.Username == user.Username {
			return "", errors.New("user already exists: unique constraint")
		}
	}
	user.ID = "user-" + user.Username
	r.byToken[user.Token] = *user
	return user.ID, nil
}

func (r *fakeUserRepo) GetByToken(_ context.Context, token string) (*domain.User, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byToken[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

// fakePostingRepo records calls and keeps postings in memory. Find returns
// findResult regardless of the filter, which is captured for inspection.
type fakePostingRepo struct {
	byID       map[string]domain.Posting
	findResult []domain.Posting
	lastFilter *repository.PostingFilter
	err        error
	calls      int
	seq        int
}

func newFakePostingRepo(postings ...domain.Posting) *fakePostingRepo {
	r := &fakePostingRepo{byID: map[string]domain.Posting{}}
	for _, p := range postings {
		r.byID[p.ID] = p
	}
	return r
}

func (r *fakePostingRepo) Init(context.Context) error { return nil }

func (r *fakePostingRepo) Create(_ context.Context, posting *domain.Posting) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	r.seq++
	posting.ID = fmt.Sprintf("posting-%d", r.seq)
	r.byID[posting.ID] = *posting
	return posting.ID, nil
}

func (r *fakePostingRepo) Get(_ context.Context, id string) (*domain.Posting, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *fakePostingRepo) Find(_ context.Context, filter repository.PostingFilter) ([]domain.Posting, error) {
	r.calls++
	r.lastFilter = &filter
	if r.err != nil {
		return nil, r.err
	}
	return r.findResult, nil
}

func (r *fakePostingRepo) Delete(_ context.Context, id string) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
