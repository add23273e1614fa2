package validators

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Form wraps a parsed urlencoded body and collects per-field problems
// so one response can report them all.
type Form struct {
	values  map[string][]string
	details map[string]string
}

// ParseForm reads the urlencoded body. An unparseable body is a
// validation failure, not a server error.
func ParseForm(r *http.Request) (*Form, error) {
	if err := r.ParseForm(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body").
			WithDetails(map[string]string{"body": "must be application/x-www-form-urlencoded"})
	}
	return &Form{values: r.PostForm, details: map[string]string{}}, nil
}

// String returns the trimmed field value.
func (f *Form) String(name string) string {
	vals, ok := f.values[name]
	if !ok || len(vals) == 0 {
		return ""
	}
	return strings.TrimSpace(vals[0])
}

// Float parses the field as a number, recording a problem when the
// field is absent or unparseable. Numeric form fields are always
// required; a silent zero here would let an empty post wipe stock.
func (f *Form) Float(name string) float64 {
	raw := f.String(name)
	if raw == "" {
		f.details[name] = "is required"
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		f.details[name] = "must be a number"
		return 0
	}
	return value
}

// Err reports the accumulated parse problems, if any.
func (f *Form) Err() error {
	if len(f.details) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(f.details)
}

// Check runs the struct validation tags over a decoded request.
func Check(dest any) error {
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}
