package validator

import (
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// Custom struct tags understood by Validator.Struct.
const (
	TagPrintable = "printable"
	TagISSN      = "issn"
	TagDate      = "catdate"
)

var structValidate = newStructValidate()

func newStructValidate() *playground.Validate {
	v := playground.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Registration only fails on an empty tag or a nil func.
	mustRegister(v, TagPrintable, IsValidText)
	mustRegister(v, TagISSN, IsValidISSN)
	mustRegister(v, TagDate, IsValidDate)

	return v
}

func mustRegister(v *playground.Validate, tag string, fn func(string) bool) {
	err := v.RegisterValidation(tag, func(fl playground.FieldLevel) bool {
		return fn(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// Struct evaluates the validate tags of s and records one message per
// failing field in v, keyed by the field's json name.
func (v *Validator) Struct(s any) {
	err := structValidate.Struct(s)
	if err == nil {
		return
	}

	fieldErrs, ok := err.(playground.ValidationErrors)
	if !ok {
		v.AddError("input", err.Error())
		return
	}

	for _, fe := range fieldErrs {
		v.AddError(fe.Field(), messageFor(fe))
	}
}

func messageFor(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must be provided"
	case "min", "gte":
		return "must not be negative"
	case TagPrintable:
		return "must contain only printable ASCII characters"
	case TagISSN:
		return "must have the format DDDD-DDDX"
	case TagDate:
		return "must be a valid date in the format DD.MM.YYYY"
	default:
		return "is invalid"
	}
}
