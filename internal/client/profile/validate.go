package profile

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/dmitrijs2005/portal/internal/client/models"
	"github.com/dmitrijs2005/portal/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var fieldMessages = map[string]string{
	"username": "Username is required",
	"jobTitle": "Job title is required",
}

// FieldErrors maps a form field name ("username", "jobTitle") to a message
// suitable for showing next to that field.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fe[k])
	}
	return fmt.Sprintf("%s: %s", common.ErrValidation, strings.Join(parts, "; "))
}

func (fe FieldErrors) Unwrap() error { return common.ErrValidation }

// Validate checks that both fields are non-blank after trimming whitespace.
// It returns nil or a FieldErrors value.
func Validate(username, jobTitle string) error {
	p := models.Profile{
		Username: strings.TrimSpace(username),
		JobTitle: strings.TrimSpace(jobTitle),
	}

	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fe := make(FieldErrors, len(verrs))
	for _, v := range verrs {
		msg, ok := fieldMessages[v.Field()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", v.Field())
		}
		fe[v.Field()] = msg
	}
	return fe
}
