package validator

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

var tDecimal = reflect.TypeOf(decimal.Decimal{})

// New returns a validator that also understands the money tags:
// "dpositive" requires a decimal > 0, "dscale=2" caps its fraction digits.
func New() *validator.Validate {
	v := validator.New()
	// struct kinds skip field tags, so decimals are validated as their string form
	v.RegisterCustomTypeFunc(decimalString, decimal.Decimal{})
	_ = v.RegisterValidation("dpositive", isPositiveDecimal)
	_ = v.RegisterValidation("dscale", hasDecimalScale)
	return v
}

func decimalString(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func decimalOf(fl validator.FieldLevel) (decimal.Decimal, bool) {
	field := fl.Field()
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return decimal.Decimal{}, false
		}
		field = field.Elem()
	}
	switch {
	case field.Type() == tDecimal:
		return field.Interface().(decimal.Decimal), true
	case field.Kind() == reflect.String:
		d, err := decimal.NewFromString(field.String())
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

func isPositiveDecimal(fl validator.FieldLevel) bool {
	d, ok := decimalOf(fl)
	return ok && d.IsPositive()
}

func hasDecimalScale(fl validator.FieldLevel) bool {
	d, ok := decimalOf(fl)
	if !ok {
		return false
	}
	places, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return d.Equal(d.Round(int32(places)))
}

// FirstFailure returns the json style name and the tag of the first failed field
func FirstFailure(err error) (field, tag string, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", "", false
	}
	f := verrs[0].Field()
	if f != "" {
		f = strings.ToLower(f[:1]) + f[1:]
	}
	return f, verrs[0].Tag(), true
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
