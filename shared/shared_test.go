package shared_test

import (
	"context"
	"errors"
	"hotelier/shared"
	"hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
	"hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/model"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "valid true string", input: "true", expected: boolPtr(true)},
		{name: "valid false string", input: "false", expected: boolPtr(false)},
		{name: "valid 1 string", input: "1", expected: boolPtr(true)},
		{name: "valid 0 string", input: "0", expected: boolPtr(false)},
		{name: "invalid string returns nil", input: "invalid", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := shared.ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, input := range []string{"", "0", "-1", "abc", "1.5"} {
		_, err := shared.ParseID(input)
		assert.Error(t, err, input)
	}
}

func TestPathID(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(constant.RequestParamID, "17")

	req := httptest.NewRequest(http.MethodGet, "/v1/rooms/17", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	id, err := shared.PathID(req, constant.RequestParamID)
	require.NoError(t, err)
	assert.Equal(t, int64(17), id)

	_, err = shared.PathID(req, "missing")
	assert.ErrorIs(t, err, failure.ErrValidation)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "negative limit returns 1", total: 100, limit: -5, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "limit greater than total", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

type patchTarget struct {
	Name     string     `json:"name"`
	Adults   int        `json:"adults"`
	CheckIn  model.Date `json:"check_in"`
	Internal string     `json:"-"`
}

type patchRequest struct {
	Name    *string     `json:"name"`
	Adults  *int        `json:"adults"`
	CheckIn *model.Date `json:"check_in"`
	Unknown *string     `json:"unknown"`
}

func TestApplyPatch(t *testing.T) {
	target := patchTarget{Name: "Ann", Adults: 2, CheckIn: model.NewDate(2025, time.May, 1)}

	t.Run("empty patch changes nothing", func(t *testing.T) {
		before := target

		changed := shared.ApplyPatch(&target, patchRequest{})

		assert.Empty(t, changed)
		assert.Equal(t, before, target)
	})

	t.Run("same values are not reported", func(t *testing.T) {
		changed := shared.ApplyPatch(&target, patchRequest{Name: stringPtr("Ann")})

		assert.Empty(t, changed)
	})

	t.Run("set fields are copied", func(t *testing.T) {
		checkIn := model.NewDate(2025, time.June, 1)

		changed := shared.ApplyPatch(&target, patchRequest{Adults: intPtr(3), CheckIn: &checkIn, Unknown: stringPtr("x")})

		assert.ElementsMatch(t, []string{"adults", "check_in"}, changed)
		assert.Equal(t, 3, target.Adults)
		assert.Equal(t, checkIn, target.CheckIn)
		assert.Equal(t, "Ann", target.Name)
	})
}

func TestFilterByID(t *testing.T) {
	type record struct {
		ID int64 `json:"id"`
	}

	filter := shared.FilterByID(7, "id")

	require.Len(t, filter.Filters, 1)
	assert.True(t, filter.Match(record{ID: 7}))
	assert.False(t, filter.Match(record{ID: 8}))
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:12", shared.BuildCacheKey("room:get", int64(12)))
	assert.Equal(t, "room:gets", shared.BuildCacheKey("room:gets"))

	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := dto.FilterGroup{Filters: []dto.Matcher{shared.FilterByField("status", "AVAILABLE")}}

	first := shared.BuildCacheKeyWithQuery("room:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("room:gets", params, filter)
	other := shared.BuildCacheKeyWithQuery("room:gets", dto.QueryParams{Page: 2, Limit: 10}, filter)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Contains(t, first, "room:gets:")
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "room:gets*").Return(nil)
	redisCache.EXPECT().Clear(gomock.Any(), "room:count*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), redisCache, "room:gets")
	shared.InvalidateCaches(context.Background(), redisCache, "room:count")
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}
