package service_test

import (
	"context"
	"hotelier/config"
	"hotelier/infras/otel/mocks"
	"hotelier/infras/recordstore"
	"hotelier/internal/domains/user/model"
	"hotelier/internal/domains/user/model/dto"
	"hotelier/internal/domains/user/repository"
	"hotelier/internal/domains/user/service"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/failure"
	"hotelier/shared/password"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (service.User, repository.User) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Store.MaxConflictRetry = 3

	otl := mocks.NewOtel()
	store := recordstore.New(recordstore.NewMemoryBackend(), cfg, otl)
	repo := repository.New(store, otl)

	return service.New(store, repo, cfg, cache.NewNoopCache(), otl), repo
}

func TestCreate(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, dto.CreateUserRequest{Email: "desk@hotel.test", Password: "front-desk-1", FullName: "Front Desk"})
	require.NoError(t, err)
	assert.Equal(t, "staff", res.Role)
	assert.True(t, res.Active)

	stored, err := repo.Get(ctx, shared.FilterByID(res.ID, model.FieldID))
	require.NoError(t, err)
	assert.NotEqual(t, "front-desk-1", stored.PasswordHash)
	require.NoError(t, password.Verify("front-desk-1", stored.PasswordHash))

	_, err = svc.Create(ctx, dto.CreateUserRequest{Email: "desk@hotel.test", Password: "another-one", FullName: "Copy"})
	assert.ErrorIs(t, err, failure.ErrConflict)
}

func TestChangePassword(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateUserRequest{Email: "night@hotel.test", Password: "old-secret", FullName: "Night Audit"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "wrong-secret", NewPassword: "new-secret"}, created.ID)
	assert.ErrorIs(t, err, failure.ErrValidation)

	require.NoError(t, svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "old-secret", NewPassword: "new-secret"}, created.ID))

	stored, err := repo.Get(ctx, shared.FilterByID(created.ID, model.FieldID))
	require.NoError(t, err)
	assert.NoError(t, password.Verify("new-secret", stored.PasswordHash))

	err = svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "x", NewPassword: "new-secret"}, created.ID+1)
	assert.ErrorIs(t, err, failure.ErrNotFound)
}

func TestDeleteDeactivates(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateUserRequest{Email: "temp@hotel.test", Password: "temporary", FullName: "Temp", Role: "admin"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	res, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, res.Active)
	assert.Equal(t, "admin", res.Role)
}
