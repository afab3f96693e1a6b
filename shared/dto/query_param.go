package dto

import (
	"hotelier/shared/constant"
	"net/http"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest populates QueryParams from the HTTP request.
// It's recommended to call this method with `defaultRequest` set to true if data is large
// Example:
//
//	q := &dto.QueryParams{}
//	q.FromRequest(req, true)
//
// This will set default values for Page, Limit, SortBy, and SortDir if they are not provided in the request.
// If `defaultRequest` is false, it will only populate the fields that are present in the request.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = min(limitInt, constant.MaxValueLimit)
		}
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := queryParams.Get(constant.RequestParamSortDir); strings.ToUpper(sortDir) == SortDirAsc || strings.ToUpper(sortDir) == SortDirDesc {
		q.SortDir = strings.ToUpper(sortDir)
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

// Window returns the slice bounds of the requested page over total records. A zero limit selects everything.
func (q *QueryParams) Window(total int) (int, int) {
	if q.Limit <= 0 {
		return 0, total
	}

	page := max(q.Page, 1)

	// checked before multiplying so huge pages cannot overflow
	if total <= 0 || page-1 > (total-1)/q.Limit {
		return total, total
	}

	start := (page - 1) * q.Limit
	end := start + min(q.Limit, total-start)

	return start, end
}

// QueryFilter names a query parameter that maps onto a record field.
type QueryFilter struct {
	Field    string
	Operator string
}

// FilterFromQuery ANDs together the listed query parameters that are present on the request.
// The order of fields is kept so equal requests build equal groups.
func FilterFromQuery(r *http.Request, fields ...QueryFilter) FilterGroup {
	group := FilterGroup{Operator: FilterGroupOperatorAnd}
	query := r.URL.Query()

	for _, field := range fields {
		value := strings.TrimSpace(query.Get(field.Field))
		if value == "" {
			continue
		}

		operator := field.Operator
		if operator == "" {
			operator = FilterOperatorEq
		}

		group.Filters = append(group.Filters, Filter{
			Field:    field.Field,
			Value:    value,
			Operator: operator,
		})
	}

	return group
}
