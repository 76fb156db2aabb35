package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annonces-api/internal/domain"
)

func TestResolve(t *testing.T) {
	users := newFakeUserRepo(domain.User{
		ID:       "u1",
		Username: "alice",
		Token:    "alice-token",
		Wants:    []domain.Sector{sectorA},
		CanDo:    []domain.Sector{sectorB},
	})
	svc := NewUserService(users, NewSectorService(newFakeSectorRepo()))

	id, err := svc.Resolve(context.Background(), "alice-token")
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{
		UserID:   "u1",
		Username: "alice",
		Wants:    []domain.Sector{sectorA},
		CanDo:    []domain.Sector{sectorB},
	}, id)
}

func TestResolve_UnknownToken(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, NewSectorService(newFakeSectorRepo()))

	_, err := svc.Resolve(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, "Utilisateur introuvable", err.Error())
}

func TestResolve_BlankTokenSkipsStore(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, NewSectorService(newFakeSectorRepo()))

	_, err := svc.Resolve(context.Background(), " ")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Zero(t, users.calls)
}

func TestResolve_StoreFailure(t *testing.T) {
	users := newFakeUserRepo()
	users.err = errors.New("scan user: connection reset")
	svc := NewUserService(users, NewSectorService(newFakeSectorRepo()))

	_, err := svc.Resolve(context.Background(), "alice-token")
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "scan user: connection reset", err.Error())
}

func TestRegister(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, NewSectorService(newFakeSectorRepo("A", "B")))

	user, err := svc.Register(context.Background(), " alice ", []string{"A", "Z"}, []string{"B"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Len(t, user.Token, tokenLength)
	assert.Equal(t, []domain.Sector{sectorA}, user.Wants)
	assert.Equal(t, []domain.Sector{sectorB}, user.CanDo)

	id, err := svc.Resolve(context.Background(), user.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id.UserID)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), NewSectorService(newFakeSectorRepo()))

	_, err := svc.Register(context.Background(), "", nil, nil)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestRegister_Duplicate(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), NewSectorService(newFakeSectorRepo()))

	_, err := svc.Register(context.Background(), "alice", nil, nil)
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "alice", nil, nil)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}
