package recordstore

import (
	"context"
	"errors"
	"fmt"

	goRedis "github.com/redis/go-redis/v9"
)

type stringGetter interface {
	Get(ctx context.Context, key string) *goRedis.StringCmd
}

type redisBackend struct {
	client *goRedis.Client
	key    string
}

// NewRedisBackend keeps the document under one key, written through WATCH/MULTI.
func NewRedisBackend(client *goRedis.Client, name string) Backend {
	return &redisBackend{client: client, key: "recordstore:" + name}
}

func (r *redisBackend) ReadDocument(ctx context.Context) (*Document, error) {
	return r.get(ctx, r.client)
}

func (r *redisBackend) get(ctx context.Context, cmd stringGetter) (*Document, error) {
	data, err := cmd.Get(ctx, r.key).Bytes()
	if errors.Is(err, goRedis.Nil) {
		return NewDocument(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get record document: %w", err)
	}

	return Decode(data)
}

func (r *redisBackend) WriteDocument(ctx context.Context, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}

	err = r.client.Watch(ctx, func(tx *goRedis.Tx) error {
		current, err := r.get(ctx, tx)
		if err != nil {
			return err
		}

		if current.Version != doc.Version {
			return ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe goRedis.Pipeliner) error {
			pipe.Set(ctx, r.key, data, 0)

			return nil
		})

		return err //nolint:wrapcheck
	}, r.key)

	switch {
	case errors.Is(err, goRedis.TxFailedErr), errors.Is(err, ErrVersionConflict):
		return ErrVersionConflict
	case err != nil:
		return fmt.Errorf("failed to write record document: %w", err)
	}

	doc.Version++

	return nil
}

func (r *redisBackend) Close() error {
	return r.client.Close() //nolint:wrapcheck
}
