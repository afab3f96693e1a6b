package recordstore_test

import (
	"context"
	"errors"
	"hotelier/config"
	"hotelier/infras/otel/mocks"
	"hotelier/infras/recordstore"
	"hotelier/shared/failure"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(retry int) *config.Config {
	cfg := &config.Config{}
	cfg.Store.MaxConflictRetry = retry

	return cfg
}

func backends(t *testing.T) map[string]recordstore.Backend {
	t.Helper()

	file, err := recordstore.NewFileBackend(filepath.Join(t.TempDir(), "data", "db.json"))
	require.NoError(t, err)

	return map[string]recordstore.Backend{
		"memory": recordstore.NewMemoryBackend(),
		"file":   file,
	}
}

func insertRoom(tx *recordstore.Tx, number string) (int64, error) {
	rooms, err := recordstore.Load[room](tx, "rooms")
	if err != nil {
		return 0, err
	}

	id, err := tx.NextID("rooms")
	if err != nil {
		return 0, err
	}

	rooms = append(rooms, room{ID: id, Number: number})

	return id, recordstore.Save(tx, "rooms", rooms)
}

func TestStoreUpdateAndView(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := recordstore.New(backend, newConfig(3), mocks.NewOtel())

			require.NoError(t, store.Update(ctx, func(tx *recordstore.Tx) error {
				_, err := insertRoom(tx, "101")

				return err
			}))

			var rooms []room
			require.NoError(t, store.View(ctx, func(tx *recordstore.Tx) error {
				var err error
				rooms, err = recordstore.Load[room](tx, "rooms")

				return err
			}))

			assert.Equal(t, []room{{ID: 1, Number: "101"}}, rooms)
			assert.NoError(t, store.Ping(ctx))
		})
	}
}

func TestStoreUpdateCallbackErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	backend := recordstore.NewMemoryBackend()
	store := recordstore.New(backend, newConfig(3), mocks.NewOtel())

	errRejected := failure.RoomUnavailable("room 101 is booked")

	err := store.Update(ctx, func(tx *recordstore.Tx) error {
		if _, err := insertRoom(tx, "101"); err != nil {
			return err
		}

		return errRejected
	})
	assert.ErrorIs(t, err, failure.ErrRoomUnavailable)

	doc, err := backend.ReadDocument(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), doc.Version)
	assert.Empty(t, doc.Collections())
}

func TestStoreViewIsReadOnly(t *testing.T) {
	store := recordstore.New(recordstore.NewMemoryBackend(), newConfig(3), mocks.NewOtel())

	err := store.View(context.Background(), func(tx *recordstore.Tx) error {
		assert.False(t, tx.Writable())

		_, err := insertRoom(tx, "101")

		return err
	})

	assert.ErrorIs(t, err, recordstore.ErrReadOnly)
}

func TestStoreRetriesOnVersionConflict(t *testing.T) {
	ctx := context.Background()
	backend := recordstore.NewMemoryBackend()
	store := recordstore.New(backend, newConfig(3), mocks.NewOtel())

	attempts := 0

	err := store.Update(ctx, func(tx *recordstore.Tx) error {
		attempts++

		if attempts == 1 {
			// Another process writes between our read and our write.
			other, err := backend.ReadDocument(ctx)
			require.NoError(t, err)
			require.NoError(t, recordstore.EncodeCollection(other, "rooms", []room{{ID: other.NextID("rooms"), Number: "999"}}))
			require.NoError(t, backend.WriteDocument(ctx, other))
		}

		_, err := insertRoom(tx, "101")

		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)

	doc, err := backend.ReadDocument(ctx)
	require.NoError(t, err)

	rooms, err := recordstore.DecodeCollection[room](doc, "rooms")
	require.NoError(t, err)
	assert.Equal(t, []room{{ID: 1, Number: "999"}, {ID: 2, Number: "101"}}, rooms)
}

type conflictingBackend struct {
	recordstore.Backend
	writes int
}

func (c *conflictingBackend) WriteDocument(context.Context, *recordstore.Document) error {
	c.writes++

	return recordstore.ErrVersionConflict
}

func TestStoreGivesUpAfterMaxRetry(t *testing.T) {
	backend := &conflictingBackend{Backend: recordstore.NewMemoryBackend()}
	store := recordstore.New(backend, newConfig(2), mocks.NewOtel())

	err := store.Update(context.Background(), func(tx *recordstore.Tx) error {
		_, err := insertRoom(tx, "101")

		return err
	})

	assert.ErrorIs(t, err, failure.ErrConflict)
	assert.Equal(t, 3, backend.writes)
}

type brokenBackend struct {
	readErr  error
	writeErr error
}

func (b brokenBackend) ReadDocument(context.Context) (*recordstore.Document, error) {
	if b.readErr != nil {
		return nil, b.readErr
	}

	return recordstore.NewDocument(), nil
}

func (b brokenBackend) WriteDocument(context.Context, *recordstore.Document) error {
	return b.writeErr
}

func (b brokenBackend) Close() error {
	return nil
}

func TestStoreReportsStorageUnavailable(t *testing.T) {
	ctx := context.Background()

	unreadable := recordstore.New(brokenBackend{readErr: recordstore.ErrCorruptDocument}, newConfig(3), mocks.NewOtel())

	err := unreadable.View(ctx, func(*recordstore.Tx) error { return nil })
	assert.ErrorIs(t, err, failure.ErrStorageUnavailable)
	assert.ErrorIs(t, unreadable.Ping(ctx), failure.ErrStorageUnavailable)

	unwritable := recordstore.New(brokenBackend{writeErr: errors.New("disk full")}, newConfig(3), mocks.NewOtel())

	err = unwritable.Update(ctx, func(*recordstore.Tx) error { return nil })
	assert.ErrorIs(t, err, failure.ErrStorageUnavailable)
}

func TestStoreConcurrentInsertsGetUniqueIDs(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := recordstore.New(backend, newConfig(3), mocks.NewOtel())

			const writers = 25

			var wg sync.WaitGroup
			ids := make(chan int64, writers)

			for range writers {
				wg.Add(1)

				go func() {
					defer wg.Done()

					var id int64
					err := store.Update(ctx, func(tx *recordstore.Tx) error {
						var err error
						id, err = insertRoom(tx, "x")

						return err
					})
					assert.NoError(t, err)

					ids <- id
				}()
			}

			wg.Wait()
			close(ids)

			seen := map[int64]bool{}
			for id := range ids {
				assert.False(t, seen[id], "duplicate id %d", id)
				seen[id] = true
			}

			assert.Len(t, seen, writers)
		})
	}
}

func TestFileBackendCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	backend, err := recordstore.NewFileBackend(path)
	require.NoError(t, err)

	_, err = backend.ReadDocument(context.Background())
	assert.ErrorIs(t, err, recordstore.ErrCorruptDocument)
}

func TestFileBackendRejectsStaleVersion(t *testing.T) {
	ctx := context.Background()

	backend, err := recordstore.NewFileBackend(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	first, err := backend.ReadDocument(ctx)
	require.NoError(t, err)

	second, err := backend.ReadDocument(ctx)
	require.NoError(t, err)

	require.NoError(t, backend.WriteDocument(ctx, first))
	assert.Equal(t, int64(1), first.Version)

	assert.ErrorIs(t, backend.WriteDocument(ctx, second), recordstore.ErrVersionConflict)
}
