package repository_test

import (
	"context"
	"hotelier/config"
	"hotelier/infras/otel/mocks"
	"hotelier/infras/recordstore"
	"hotelier/shared"
	"hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type channel struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Commission float64 `json:"commission_percent"`
	Active     bool    `json:"active"`
}

func newRepository(t *testing.T) (repository.Repository[channel], recordstore.Store) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Store.MaxConflictRetry = 3

	store := recordstore.New(recordstore.NewMemoryBackend(), cfg, mocks.NewOtel())
	repo := repository.NewRepository[channel]("channel", "channels", func(c *channel) *int64 { return &c.ID }, store, mocks.NewOtel())

	return repo, store
}

func seed(t *testing.T, repo *repository.Repository[channel], names ...string) {
	t.Helper()

	for idx, name := range names {
		ch := channel{Name: name, Commission: float64(idx * 5), Active: idx%2 == 0}
		require.NoError(t, repo.Insert(context.Background(), &ch))
		require.Equal(t, int64(idx+1), ch.ID)
	}
}

func TestRepositoryInsertAndGet(t *testing.T) {
	repo, _ := newRepository(t)
	ctx := context.Background()

	seed(t, &repo, "Walk-in", "Phone", "Booking.com")

	got, err := repo.Get(ctx, shared.FilterByID(2, "id"))
	require.NoError(t, err)
	assert.Equal(t, "Phone", got.Name)

	missing, err := repo.Get(ctx, shared.FilterByID(99, "id"))
	require.NoError(t, err)
	assert.Zero(t, missing.ID)

	exist, err := repo.Exist(ctx, dto.FilterGroup{Filters: []dto.Matcher{shared.FilterByField("name", "Walk-in")}})
	require.NoError(t, err)
	assert.True(t, exist)
}

func TestRepositoryGetAll(t *testing.T) {
	repo, _ := newRepository(t)
	ctx := context.Background()

	seed(t, &repo, "Walk-in", "Phone", "Booking.com", "Agoda", "Email")

	tests := []struct {
		name   string
		params dto.QueryParams
		filter dto.FilterGroup
		want   []string
		count  int
	}{
		{
			name:  "all in insertion order",
			want:  []string{"Walk-in", "Phone", "Booking.com", "Agoda", "Email"},
			count: 5,
		},
		{
			name:   "sorted by name ascending, second page",
			params: dto.QueryParams{Page: 2, Limit: 2, SortBy: "name", SortDir: dto.SortDirAsc},
			want:   []string{"Email", "Phone"},
			count:  5,
		},
		{
			name:   "sorted by commission descending",
			params: dto.QueryParams{Limit: 2, SortBy: "commission_percent", SortDir: dto.SortDirDesc},
			want:   []string{"Email", "Agoda"},
			count:  5,
		},
		{
			name:   "filtered to active",
			filter: dto.FilterGroup{Filters: []dto.Matcher{shared.FilterByField("active", true)}},
			want:   []string{"Walk-in", "Booking.com", "Email"},
			count:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			models, err := repo.GetAll(ctx, tt.params, tt.filter)
			require.NoError(t, err)

			names := []string{}
			for _, m := range models {
				names = append(names, m.Name)
			}

			assert.Equal(t, tt.want, names)

			count, err := repo.Count(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.count, count)
		})
	}
}

func TestRepositoryUpdate(t *testing.T) {
	repo, _ := newRepository(t)
	ctx := context.Background()

	seed(t, &repo, "Walk-in")

	require.NoError(t, repo.Update(ctx, channel{ID: 1, Name: "Front desk", Active: true}))

	got, err := repo.Get(ctx, shared.FilterByID(1, "id"))
	require.NoError(t, err)
	assert.Equal(t, "Front desk", got.Name)

	err = repo.Update(ctx, channel{ID: 7, Name: "Ghost"})
	assert.ErrorIs(t, err, failure.ErrNotFound)
}

func TestRepositoryDelete(t *testing.T) {
	repo, _ := newRepository(t)
	ctx := context.Background()

	seed(t, &repo, "Walk-in", "Phone")

	assert.Error(t, repo.Delete(ctx, dto.FilterGroup{}))
	require.NoError(t, repo.Delete(ctx, shared.FilterByID(1, "id")))

	count, err := repo.Count(ctx, dto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Identifiers are never reused after a delete.
	ch := channel{Name: "Email"}
	require.NoError(t, repo.Insert(ctx, &ch))
	assert.Equal(t, int64(3), ch.ID)
}

func TestRepositoryTxJoinsOneWrite(t *testing.T) {
	repo, store := newRepository(t)
	ctx := context.Background()

	err := store.Update(ctx, func(tx *recordstore.Tx) error {
		first := channel{Name: "Walk-in"}
		if err := repo.InsertTx(ctx, tx, &first); err != nil {
			return err
		}

		second := channel{Name: "Phone"}
		if err := repo.InsertTx(ctx, tx, &second); err != nil {
			return err
		}

		return failure.BadRequestFromString("abort")
	})
	assert.ErrorIs(t, err, failure.ErrValidation)

	count, err := repo.Count(ctx, dto.FilterGroup{})
	require.NoError(t, err)
	assert.Zero(t, count)
}
