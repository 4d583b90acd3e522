package binder

import (
	"fmt"
	"reflect"
	"strings"
	timepkg "time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/segmentio/encoding/json"
)

const (
	email     = "email"
	gt        = "gt"
	gte       = "gte"
	mx        = "max"
	mn        = "min"
	ne        = "ne"
	oneof     = "oneof"
	phone     = "phone"
	required  = "required"
	starttime = "starttime"
	urltag    = "url"
	usstate   = "usstate"
)

var (
	timeType = reflect.TypeOf(timepkg.Time{})
)

func formatUnmarshalTypeError(err *json.UnmarshalTypeError) string {
	return fmt.Sprintf("%q should be of type %s", strings.Trim(err.Field, "."), err.Type)
}

func formatSchemaConversionError(err schema.ConversionError) string {
	return fmt.Sprintf("%q should be of type %s", err.Key, err.Type)
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case email:
		return fmt.Sprintf("%q is not a valid email", field)
	case gt:
		v := err.Param()
		if v == "" && err.Type() == timeType {
			v = "now"
		}
		return fmt.Sprintf("%q must be greater than %s", field, v)
	case gte:
		v := err.Param()
		if v == "" && err.Type() == timeType {
			v = "now"
		}
		return fmt.Sprintf("%q must be greater than or equal to %s", field, v)
	case mx:
		return formatBound(err, field, "less")
	case mn:
		return formatBound(err, field, "greater")
	case ne:
		return fmt.Sprintf("%q can't be %q", field, err.Param())
	case oneof:
		valids := []string{}
		for _, p := range strings.Fields(err.Param()) {
			valids = append(valids, fmt.Sprintf("%q", p))
		}
		return fmt.Sprintf("%q must be one of the following: %s", field, strings.Join(valids, ", "))
	case phone:
		return fmt.Sprintf("%q should be in the format of XXX-XXX-XXXX", field)
	case required:
		return fmt.Sprintf("%q is required", field)
	case starttime:
		return fmt.Sprintf("%q should be in the format of YYYY-MM-DD HH:MM:SS or RFC 3339", field)
	case urltag:
		return fmt.Sprintf("%q is not a valid URL", field)
	case usstate:
		return fmt.Sprintf("%q is not a valid US state", field)
	default:
		// these print statements aid in determining how to construct
		// the error messages for validation functions that haven't been
		// implemented yet
		fmt.Println("actual tag", err.ActualTag())
		fmt.Println("field", field)
		fmt.Println("param", err.Param())
		fmt.Println("struct field", err.StructField())
		fmt.Println("tag", err.Tag())
		fmt.Println("kind", err.Kind())

		return "NOT IMPLEMENTED YET"
	}
}

// formatBound renders min/max failures. Numbers compare by value, strings by
// character count and slices by element count.
func formatBound(err validator.FieldError, field, direction string) string {
	//exhaustive:ignore
	switch err.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%q must be %s than or equal to %s", field, direction, err.Param())
	case reflect.Slice:
		return fmt.Sprintf("%q length must be %s than or equal to %s %s", field, direction, err.Param(), plural("element", err.Param()))
	default:
		return fmt.Sprintf("%q length must be %s than or equal to %s %s", field, direction, err.Param(), plural("character", err.Param()))
	}
}

func plural(resource, count string) string {
	if count != "1" {
		return resource + "s"
	}
	return resource
}
