package shared

import (
	"context"
	"fmt"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	"hotelier/shared/dto"
	"hotelier/shared/failure"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

// ParseID parses a path identifier; anything but a positive integer is rejected.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", value)
	}

	return id, nil
}

// PathID reads the route parameter named key as an identifier, failing with a validation error.
func PathID(r *http.Request, key string) (int64, error) {
	id, err := ParseID(chi.URLParam(r, key))
	if err != nil {
		return 0, failure.BadRequest(err) //nolint:wrapcheck
	}

	return id, nil
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// ApplyPatch copies every non-nil pointer field of patch onto the field of target carrying the same json tag.
// It returns the json names of the fields whose value actually changed.
func ApplyPatch(target any, patch any) []string {
	dst := reflect.ValueOf(target).Elem()
	src := reflect.ValueOf(patch)
	srcType := src.Type()

	changed := []string{}

	for index := range src.NumField() {
		field := src.Field(index)
		if field.Kind() != reflect.Pointer || field.IsNil() {
			continue
		}

		name, _, _ := strings.Cut(srcType.Field(index).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}

		dstField, ok := fieldByJSONName(dst, name)
		if !ok || !dstField.CanSet() || field.Elem().Type() != dstField.Type() {
			continue
		}

		if reflect.DeepEqual(dstField.Interface(), field.Elem().Interface()) {
			continue
		}

		dstField.Set(field.Elem())

		changed = append(changed, name)
	}

	return changed
}

func fieldByJSONName(val reflect.Value, name string) (reflect.Value, bool) {
	typ := val.Type()

	for index := range typ.NumField() {
		tag, _, _ := strings.Cut(typ.Field(index).Tag.Get("json"), ",")
		if tag == name {
			return val.Field(index), true
		}
	}

	return reflect.Value{}, false
}

func FilterByID(id int64, fieldID string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []dto.Matcher{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
			},
		},
	}
}

// FilterByField matches records whose field equals value.
func FilterByField(field string, value any) dto.Filter {
	return dto.Filter{
		Field:    field,
		Value:    value,
		Operator: dto.FilterOperatorEq,
	}
}

func BuildCacheKey(prefix string, parts ...any) string {
	key := prefix
	for _, part := range parts {
		key = fmt.Sprintf("%s:%v", key, part)
	}

	return key
}

// BuildCacheKeyWithQuery derives a stable key from the pagination parameters and the filter tree.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	fingerprint := fmt.Sprintf("%+v|%+v", params, filter)

	return BuildCacheKey(prefix, uuid.NewSHA1(uuid.NameSpaceOID, []byte(fingerprint)).String())
}

// InvalidateCaches removes every key under prefix. Failures are logged only.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	if err := c.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
