package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"lessonpress/internal/models"
)

// Custom validation tags.
const (
	notBlankTag  = "notblank"
	blockTypeTag = "blocktype"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	translator, _ = ut.New(english, english).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report JSON field names instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlank)
	_ = validate.RegisterValidation(blockTypeTag, knownBlockType)

	noop := func(ut.Translator) error { return nil }
	for _, tag := range []string{notBlankTag, blockTypeTag} {
		_ = validate.RegisterTranslation(tag, translator, noop, translateCustom)
	}
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " cannot be blank"
	case blockTypeTag:
		return fe.Field() + " is not a known block type"
	}
	return fe.Field() + " is invalid"
}

func notBlank(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}

func knownBlockType(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case models.BlockType:
		return v.IsValid()
	case string:
		return models.BlockType(v).IsValid()
	}
	return false
}

// validationMessage validates v and returns the first problem as a
// sentence, or "" when v is valid.
func validationMessage(v any) string {
	err := validate.Struct(v)
	if err == nil {
		return ""
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fieldErrs[0].Translate(translator) + "."
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return ""
	}
	return err.Error()
}
