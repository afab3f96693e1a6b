package dto_test

import (
	"hotelier/shared/constant"
	"hotelier/shared/dto"
	"hotelier/shared/model"
	"math"
	"net/http"
	"net/url"
	"testing"
	"time"
)

func TestMetadata_FromModel(t *testing.T) {
	// Create test time values
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	modelMetadata := model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	}

	metadata := &dto.Metadata{}
	metadata.FromModel(modelMetadata)

	expectedCreatedAt := createdAt.Format(constant.DateFormat)
	expectedModifiedAt := modifiedAt.Format(constant.DateFormat)

	if metadata.CreatedAt != expectedCreatedAt {
		t.Errorf("expected CreatedAt to be %s, got %s", expectedCreatedAt, metadata.CreatedAt)
	}

	if metadata.ModifiedAt != expectedModifiedAt {
		t.Errorf("expected ModifiedAt to be %s, got %s", expectedModifiedAt, metadata.ModifiedAt)
	}

	if metadata.CreatedBy != "creator" {
		t.Errorf("expected CreatedBy to be 'creator', got %s", metadata.CreatedBy)
	}

	if metadata.ModifiedBy != "modifier" {
		t.Errorf("expected ModifiedBy to be 'modifier', got %s", metadata.ModifiedBy)
	}

	if !metadata.Edited {
		t.Error("expected a record modified after creation to be marked edited")
	}

	fresh := model.Metadata{}
	fresh.Stamp(createdAt, "creator")

	metadata.FromModel(fresh)

	if metadata.Edited {
		t.Error("expected a freshly stamped record not to be marked edited")
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "name",
				"sort_dir": "ASC",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    2,
				Limit:   20,
				SortBy:  "name",
				SortDir: "ASC",
			},
		},
		{
			name:           "with default request enabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name:           "with default request disabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    0,
				Limit:   0,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with invalid page parameter",
			queryParams: map[string]string{
				"page": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage, // Should use default
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with negative page parameter",
			queryParams: map[string]string{
				"page": "-1",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage, // Should use default
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},

		{
			name: "with invalid limit parameter",
			queryParams: map[string]string{
				"limit": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit, // Should use default
				SortBy:  "",
				SortDir: "",
			},
		},

		{
			name: "with limit above the maximum",
			queryParams: map[string]string{
				"page":  "9223372036854775807",
				"limit": "9223372036854775807",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    math.MaxInt,
				Limit:   constant.MaxValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with partial parameters and defaults enabled",
			queryParams: map[string]string{
				"page":    "3",
				"sort_by": "email",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    3,
				Limit:   constant.DefaultValueLimit, // Should use default
				SortBy:  "email",
				SortDir: "", // Empty when not provided
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create a URL with query parameters
			baseURL := "http://example.com/test"
			u, err := url.Parse(baseURL)
			if err != nil {
				t.Fatalf("failed to parse URL: %v", err)
			}

			// Add query parameters
			query := u.Query()
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}
			u.RawQuery = query.Encode()

			// Create HTTP request
			req, err := http.NewRequest("GET", u.String(), nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}

			// Test the method
			queryParams := &dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			// Verify results
			if queryParams.Page != tt.expected.Page {
				t.Errorf("expected Page to be %d, got %d", tt.expected.Page, queryParams.Page)
			}
			if queryParams.Limit != tt.expected.Limit {
				t.Errorf("expected Limit to be %d, got %d", tt.expected.Limit, queryParams.Limit)
			}
			if queryParams.SortBy != tt.expected.SortBy {
				t.Errorf("expected SortBy to be %s, got %s", tt.expected.SortBy, queryParams.SortBy)
			}
			if queryParams.SortDir != tt.expected.SortDir {
				t.Errorf("expected SortDir to be %s, got %s", tt.expected.SortDir, queryParams.SortDir)
			}
		})
	}
}

func TestQueryParams_Window(t *testing.T) {
	tests := []struct {
		name      string
		params    dto.QueryParams
		total     int
		wantStart int
		wantEnd   int
	}{
		{name: "first page", params: dto.QueryParams{Page: 1, Limit: 10}, total: 25, wantStart: 0, wantEnd: 10},
		{name: "last partial page", params: dto.QueryParams{Page: 3, Limit: 10}, total: 25, wantStart: 20, wantEnd: 25},
		{name: "past the end", params: dto.QueryParams{Page: 5, Limit: 10}, total: 25, wantStart: 25, wantEnd: 25},
		{name: "no limit", params: dto.QueryParams{}, total: 7, wantStart: 0, wantEnd: 7},
		{name: "page zero treated as first", params: dto.QueryParams{Limit: 5}, total: 7, wantStart: 0, wantEnd: 5},
		{name: "empty collection", params: dto.QueryParams{Page: 1, Limit: 10}, total: 0, wantStart: 0, wantEnd: 0},
		{name: "huge page", params: dto.QueryParams{Page: math.MaxInt, Limit: 10}, total: 25, wantStart: 25, wantEnd: 25},
		{name: "huge limit on second page", params: dto.QueryParams{Page: 2, Limit: math.MaxInt}, total: 25, wantStart: 25, wantEnd: 25},
		{name: "huge limit on first page", params: dto.QueryParams{Page: 1, Limit: math.MaxInt}, total: 25, wantStart: 0, wantEnd: 25},
		{name: "huge page and limit", params: dto.QueryParams{Page: math.MaxInt, Limit: math.MaxInt}, total: 25, wantStart: 25, wantEnd: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.params.Window(tt.total)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("expected [%d, %d), got [%d, %d)", tt.wantStart, tt.wantEnd, start, end)
			}
		})
	}
}

type filterRecord struct {
	model.Metadata
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Status   string     `json:"status"`
	Price    float64    `json:"price"`
	CheckIn  model.Date `json:"check_in"`
	RoomID   *int64     `json:"room_id"`
}

func TestFilter_Match(t *testing.T) {
	roomID := int64(7)
	record := filterRecord{
		Metadata: model.Metadata{CreatedBy: "alice"},
		ID:       3,
		Name:     "Deluxe Suite",
		Status:   "AVAILABLE",
		Price:    150.5,
		CheckIn:  model.NewDate(2025, time.May, 1),
		RoomID:   &roomID,
	}

	tests := []struct {
		name   string
		filter dto.Filter
		want   bool
	}{
		{name: "eq string", filter: dto.Filter{Field: "status", Value: "AVAILABLE", Operator: dto.FilterOperatorEq}, want: true},
		{name: "eq number from query string", filter: dto.Filter{Field: "id", Value: "3", Operator: dto.FilterOperatorEq}, want: true},
		{name: "not eq", filter: dto.Filter{Field: "status", Value: "INACTIVE", Operator: dto.FilterOperatorNotEq}, want: true},
		{name: "like is case insensitive", filter: dto.Filter{Field: "name", Value: "suite", Operator: dto.FilterOperatorLike}, want: true},
		{name: "in slice", filter: dto.Filter{Field: "status", Value: []string{"OCCUPIED", "AVAILABLE"}, Operator: dto.FilterOperatorIn}, want: true},
		{name: "in slice miss", filter: dto.Filter{Field: "status", Value: []string{"OCCUPIED"}, Operator: dto.FilterOperatorIn}, want: false},
		{name: "less eq numeric", filter: dto.Filter{Field: "price", Value: 200, Operator: dto.FilterOperatorLessEq}, want: true},
		{name: "greater eq date", filter: dto.Filter{Field: "check_in", Value: "2025-05-02", Operator: dto.FilterOperatorGreaterEq}, want: false},
		{name: "embedded field", filter: dto.Filter{Field: "created_by", Value: "alice", Operator: dto.FilterOperatorEq}, want: true},
		{name: "pointer is not null", filter: dto.Filter{Field: "room_id", Operator: dto.FilterIsNotNull}, want: true},
		{name: "zero time is null", filter: dto.Filter{Field: "created_at", Operator: dto.FilterIsNull}, want: true},
		{name: "unknown field", filter: dto.Filter{Field: "missing", Value: "x", Operator: dto.FilterOperatorEq}, want: false},
		{name: "unknown operator", filter: dto.Filter{Field: "status", Value: "AVAILABLE", Operator: "between"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Match(&record); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilterGroup_Match(t *testing.T) {
	record := filterRecord{Status: "PENDING", Name: "Booking"}

	pending := dto.Filter{Field: "status", Value: "PENDING", Operator: dto.FilterOperatorEq}
	confirmed := dto.Filter{Field: "status", Value: "CONFIRMED", Operator: dto.FilterOperatorEq}

	and := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd, Filters: []dto.Matcher{pending, confirmed}}
	if and.Match(record) {
		t.Error("expected AND group to fail")
	}

	or := dto.FilterGroup{Operator: dto.FilterGroupOperatorOr, Filters: []dto.Matcher{confirmed, pending}}
	if !or.Match(record) {
		t.Error("expected OR group to match")
	}

	nested := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []dto.Matcher{
			or,
			dto.Filter{Field: "name", Value: "book", Operator: dto.FilterOperatorLike},
		},
	}
	if !nested.Match(record) {
		t.Error("expected nested group to match")
	}

	if !(dto.FilterGroup{}).Match(record) {
		t.Error("expected empty group to match everything")
	}
}

func TestFilterFromQuery(t *testing.T) {
	req := &http.Request{URL: &url.URL{RawQuery: "status=CONFIRMED&room_id=&name=%20suite%20&ignored=1"}}

	group := dto.FilterFromQuery(req,
		dto.QueryFilter{Field: "status"},
		dto.QueryFilter{Field: "room_id"},
		dto.QueryFilter{Field: "name", Operator: dto.FilterOperatorLike},
	)

	want := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []dto.Matcher{
			dto.Filter{Field: "status", Value: "CONFIRMED", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "name", Value: "suite", Operator: dto.FilterOperatorLike},
		},
	}

	if len(group.Filters) != len(want.Filters) || group.Operator != want.Operator {
		t.Fatalf("expected %+v, got %+v", want, group)
	}

	for idx := range want.Filters {
		if group.Filters[idx] != want.Filters[idx] {
			t.Errorf("filter %d: expected %+v, got %+v", idx, want.Filters[idx], group.Filters[idx])
		}
	}

	if !group.Match(filterRecord{Name: "Junior Suite", Status: "CONFIRMED"}) {
		t.Error("expected record to match")
	}
}
