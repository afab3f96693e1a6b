package recordstore

import (
	"context"
	"errors"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"sync"

	"github.com/rs/zerolog/log"
)

// Backend persists the whole document. WriteDocument must fail with ErrVersionConflict
// when the stored version no longer equals doc.Version, and advance doc.Version on success.
type Backend interface {
	ReadDocument(ctx context.Context) (*Document, error)
	WriteDocument(ctx context.Context, doc *Document) error
	Close() error
}

type Store interface {
	// View runs fn against a snapshot of the document. Nothing is written.
	View(ctx context.Context, fn func(tx *Tx) error) error
	// Update runs fn and persists every change it made as one document write.
	// fn is re-run on a fresh document when another writer got there first, so it must not
	// have side effects outside tx.
	Update(ctx context.Context, fn func(tx *Tx) error) error
	Ping(ctx context.Context) error
	Close() error
}

type store struct {
	backend  Backend
	otel     otel.Otel
	maxRetry int
	mu       sync.Mutex
}

func New(backend Backend, cfg *config.Config, otel otel.Otel) Store {
	return &store{
		backend:  backend,
		otel:     otel,
		maxRetry: max(cfg.Store.MaxConflictRetry, 0),
	}
}

func (s *store) View(ctx context.Context, fn func(tx *Tx) error) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".View")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	doc, err := s.read(ctx)
	if err != nil {
		return err
	}

	return fn(&Tx{doc: doc})
}

func (s *store) Update(ctx context.Context, fn func(tx *Tx) error) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 0; attempt <= s.maxRetry; attempt++ {
		scope.SetAttribute("attempt", attempt)

		doc, err := s.read(ctx)
		if err != nil {
			return err
		}

		if err = fn(&Tx{doc: doc, writable: true}); err != nil {
			return err
		}

		err = s.backend.WriteDocument(ctx, doc)
		if err == nil {
			return nil
		}

		if !errors.Is(err, ErrVersionConflict) {
			log.Error().Err(err).Msg("failed to write record document")

			return failure.StorageUnavailable(fmt.Errorf("failed to write record document: %w", err)) //nolint:wrapcheck
		}

		log.Warn().Int("attempt", attempt+1).Int64("version", doc.Version).Msg("record document changed underneath, retrying")
		scope.AddEvent("version_conflict")
	}

	return failure.Conflict("record document kept changing concurrently, giving up") //nolint:wrapcheck
}

func (s *store) Ping(ctx context.Context) error {
	_, err := s.read(ctx)

	return err
}

func (s *store) Close() error {
	return s.backend.Close() //nolint:wrapcheck
}

func (s *store) read(ctx context.Context) (*Document, error) {
	doc, err := s.backend.ReadDocument(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read record document")

		return nil, failure.StorageUnavailable(fmt.Errorf("failed to read record document: %w", err)) //nolint:wrapcheck
	}

	return doc, nil
}
