package http_test

import (
	"context"
	"errors"
	"hotelier/config"
	"hotelier/infras/kafka"
	"hotelier/infras/otel/mocks"
	"hotelier/infras/recordstore"
	roomRepo "hotelier/internal/domains/room/repository"
	"hotelier/internal/domains/roomtype/model/dto"
	roomTypeRepo "hotelier/internal/domains/roomtype/repository"
	roomTypeService "hotelier/internal/domains/roomtype/service"
	roomTypeHandler "hotelier/internal/handlers/roomtype"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	server "hotelier/transport/http"
	"hotelier/transport/http/middleware"
	"hotelier/transport/http/router"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{}

func (brokenStore) View(context.Context, func(tx *recordstore.Tx) error) error {
	return errors.New("backend down")
}

func (brokenStore) Update(context.Context, func(tx *recordstore.Tx) error) error {
	return errors.New("backend down")
}

func (brokenStore) Ping(context.Context) error {
	return errors.New("backend down")
}

func (brokenStore) Close() error {
	return nil
}

func newServer(t *testing.T, store recordstore.Store, otl *mocks.Otel) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Store.MaxConflictRetry = 3

	noCache := cache.NewNoopCache()

	roomTypes := roomTypeService.New(store, roomTypeRepo.New(store, otl), roomRepo.New(store, otl), cfg, noCache, otl)

	r := router.New(router.DomainHandlers{
		RoomType: roomTypeHandler.New(roomTypes, otl),
	})

	srv := server.New(cfg, r, middleware.NewAppMiddleware(otl, cfg, noCache), store, kafka.NewNoop(), otl)
	require.Equal(t, server.ServerState(0), srv.State())

	handler := srv.Handler()
	require.Equal(t, server.ServerStateReady, srv.State())

	return handler
}

func TestHealth(t *testing.T) {
	memory := recordstore.New(recordstore.NewMemoryBackend(), &config.Config{}, mocks.NewOtel())

	tests := []struct {
		name  string
		store recordstore.Store
		code  int
	}{
		{name: "store readable", store: memory, code: http.StatusOK},
		{name: "store down", store: brokenStore{}, code: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newServer(t, tt.store, mocks.NewRecorder())

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.code, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(constant.RequestHeaderRequestID))
		})
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	handler := newServer(t, recordstore.New(recordstore.NewMemoryBackend(), &config.Config{}, mocks.NewOtel()), mocks.NewRecorder())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(constant.RequestHeaderRequestID, "req-42")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get(constant.RequestHeaderRequestID))
}

func TestRoomTypeRoutes(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.MaxConflictRetry = 3
	otl := mocks.NewRecorder()
	handler := newServer(t, recordstore.New(recordstore.NewMemoryBackend(), cfg, otl), otl)

	req := httptest.NewRequest(http.MethodPost, "/v1/room-types", strings.NewReader(`{"name":"Deluxe","base_price":120,"capacity":2}`))
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderStaffID, "alice")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data dto.RoomTypeResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Deluxe", created.Data.Name)
	assert.Equal(t, "alice", created.Data.CreatedBy)
	assert.Positive(t, created.Data.ID)

	createScopes := otl.Scopes("handler.CreateRoomType")
	require.Len(t, createScopes, 1)
	assert.Contains(t, createScopes[0].Events, "Room type created successfully by user alice")
	assert.True(t, createScopes[0].Ended)

	tests := []struct {
		name string
		path string
		code int
	}{
		{name: "malformed id", path: "/v1/room-types/abc", code: http.StatusBadRequest},
		{name: "unknown id", path: "/v1/room-types/999", code: http.StatusNotFound},
		{name: "listed", path: "/v1/room-types", code: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}

	getScopes := otl.Scopes("handler.GetRoomTypeByID")
	require.Len(t, getScopes, 2)
	assert.Empty(t, getScopes[0].Errors)
	require.Len(t, getScopes[1].Errors, 1)
	assert.ErrorIs(t, getScopes[1].Errors[0], failure.ErrNotFound)

	t.Run("invalid body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/room-types", strings.NewReader(`{"base_price":-1}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	})
}
