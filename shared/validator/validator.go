package validator

import (
	"fmt"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"io"
	"math"
	"reflect"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

var validate *val.Validate

const moneyScale = 100

// validDate accepts strict YYYY-MM-DD calendar dates.
func validDate(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(constant.CalendarDate, value)

	return err == nil
}

// validMoney accepts amounts with at most two decimal places.
func validMoney(field val.FieldLevel) bool {
	var amount float64

	switch field.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		amount = field.Field().Float()
	case reflect.Int, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}

	cents := amount * moneyScale

	return math.Abs(cents-math.Round(cents)) < 1e-6
}

func jsonTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)

	for tag, fn := range map[string]val.Func{
		"date":  validDate,
		"money": validMoney,
	} {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
