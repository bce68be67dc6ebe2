// Package validation holds the shared struct validator with Spanish
// messages, keyed by JSON field name.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	NotBlankTag  = "notblank"
	notBlankText = "{0} no puede estar vacío"

	mu            sync.RWMutex
	fieldMessages = map[string]string{}
)

func init() {
	Validate = validator.New()

	_es := es.New()
	uni := ut.New(_es, _es)
	Translator, _ = uni.GetTranslator("es")
	_ = es_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON/YAML tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "yaml"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	_ = Validate.RegisterValidation(NotBlankTag, notBlankValidation)
	RegisterCustomTranslation(NotBlankTag, notBlankText)
}

// RegisterCustomTranslation registers the message for a custom tag. The
// text may reference the field name as {0} and the tag param as {1}.
func RegisterCustomTranslation(tag, text string) {
	registerFn := func(ut.Translator) error { return nil }
	translateFn := func(_ ut.Translator, fe validator.FieldError) string {
		msg := strings.ReplaceAll(text, "{0}", fe.Field())
		return strings.ReplaceAll(msg, "{1}", fe.Param())
	}
	_ = Validate.RegisterTranslation(tag, Translator, registerFn, translateFn)
}

// RegisterFieldMessage overrides the message of any failure on field.
func RegisterFieldMessage(field, msg string) {
	mu.Lock()
	defer mu.Unlock()
	fieldMessages[field] = msg
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// FieldErrors translates a validation error into messages keyed by field.
// Nested fields keep their namespace below the top-level struct, e.g.
// "criteriaEvaluations[2].score". Non-validation errors yield nil.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	mu.RLock()
	defer mu.RUnlock()

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fe.Namespace()
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		if msg, ok := fieldMessages[key]; ok {
			out[key] = msg
			continue
		}
		out[key] = fe.Translate(Translator)
	}
	return out
}
