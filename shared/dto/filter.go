package dto

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterIsNotNull         = "is_not_null"
	FilterIsNull            = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// Matcher is satisfied by Filter and FilterGroup.
type Matcher interface {
	Match(record any) bool
}

// Filter matches a single record field, addressed by its json tag.
type Filter struct {
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq less_eq greater_eq is_null is_not_null"`
}

func (f Filter) Match(record any) bool {
	value, ok := FieldValue(record, f.Field)
	if !ok {
		return false
	}

	switch f.Operator {
	case FilterOperatorEq:
		return Compare(value, f.Value) == 0
	case FilterOperatorNotEq:
		return Compare(value, f.Value) != 0
	case FilterOperatorLike:
		return strings.Contains(strings.ToLower(fmt.Sprint(value)), strings.ToLower(fmt.Sprint(f.Value)))
	case FilterOperatorIn:
		val := reflect.ValueOf(f.Value)
		if val.Kind() != reflect.Array && val.Kind() != reflect.Slice {
			return Compare(value, f.Value) == 0
		}

		for idx := range val.Len() {
			if Compare(value, val.Index(idx).Interface()) == 0 {
				return true
			}
		}

		return false
	case FilterOperatorLessEq:
		return Compare(value, f.Value) <= 0
	case FilterOperatorGreaterEq:
		return Compare(value, f.Value) >= 0
	case FilterIsNull:
		return value == nil
	case FilterIsNotNull:
		return value != nil
	default:
		return false
	}
}

type FilterGroup struct {
	Filters  []Matcher
	Operator string
}

func (f FilterGroup) Match(record any) bool {
	if len(f.Filters) == 0 {
		return true
	}

	for _, filter := range f.Filters {
		matched := filter.Match(record)

		if f.Operator == FilterGroupOperatorOr && matched {
			return true
		}

		if f.Operator != FilterGroupOperatorOr && !matched {
			return false
		}
	}

	return f.Operator != FilterGroupOperatorOr
}

// FieldValue returns the scalar value of the field tagged json:"field", looking through embedded structs.
// Nil pointers and zero times yield nil.
func FieldValue(record any, field string) (any, bool) {
	val := reflect.ValueOf(record)
	for val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil, false
		}

		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return nil, false
	}

	found, ok := lookupField(val, field)
	if !ok {
		return nil, false
	}

	return scalar(found), true
}

func lookupField(val reflect.Value, field string) (reflect.Value, bool) {
	typ := val.Type()

	for idx := range typ.NumField() {
		structField := typ.Field(idx)
		if !structField.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(structField.Tag.Get("json"), ",")
		if name == field {
			return val.Field(idx), true
		}

		if structField.Anonymous && name == "" && structField.Type.Kind() == reflect.Struct {
			if found, ok := lookupField(val.Field(idx), field); ok {
				return found, true
			}
		}
	}

	return reflect.Value{}, false
}

func scalar(val reflect.Value) any {
	for val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil
		}

		val = val.Elem()
	}

	switch v := val.Interface().(type) {
	case time.Time:
		if v.IsZero() {
			return nil
		}

		return v.Format(time.RFC3339)
	case fmt.Stringer:
		s := v.String()
		if s == "" {
			return nil
		}

		return s
	}

	return val.Interface()
}

// Compare orders two scalars numerically when both are numbers and lexically otherwise.
// Calendar dates and RFC3339 timestamps compare correctly as strings.
func Compare(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	af, aok := toFloat(a)
	bf, bok := toFloat(b)

	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	val := reflect.ValueOf(v)

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(val.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(val.Uint()), true
	case reflect.Float32, reflect.Float64:
		return val.Float(), true
	case reflect.String:
		f, err := strconv.ParseFloat(val.String(), 64)

		return f, err == nil
	default:
		return 0, false
	}
}
