package service

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their form/JSON name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterAlias("password", "min="+strconv.Itoa(MinPasswordLength))
	return v
}

// messages maps "<Go field path>.<tag>" to the text shown next to the field,
// e.g. "Exercises.Name.required". Slice indexes are not part of the path.
type messages map[string]string

var indexPattern = regexp.MustCompile(`\[\d+\]`)

// validateInto runs the struct rules on form and adds every failure to errs.
// All fields are checked; nothing short-circuits across fields.
func validateInto(form any, msgs messages, errs FieldErrors) {
	err := validate.Struct(form)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("form", err.Error())
		return
	}
	for _, fe := range verrs {
		field := topField(fe.Namespace())
		key := indexPattern.ReplaceAllString(trimRoot(fe.StructNamespace()), "") + "." + fe.Tag()
		msg, ok := msgs[key]
		if !ok {
			msg = field + " is invalid"
		}
		errs.Add(field, msg)
	}
}

// trimRoot drops the struct type name from a validator namespace.
func trimRoot(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// topField is the form field a nested error is reported under.
func topField(ns string) string {
	rest := trimRoot(ns)
	if i := strings.IndexAny(rest, ".["); i >= 0 {
		return rest[:i]
	}
	return rest
}

// parseCount reads a sets/repetitions value. Blank means 0.
func parseCount(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}
