package client

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// OptionError reports the fields of an option value that failed validation.
// Fields maps each field's json name to an English message.
type OptionError struct {
	Option string
	Fields map[string]string
}

func (e *OptionError) Error() string {
	names := slices.Sorted(maps.Keys(e.Fields))

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = e.Fields[name]
	}

	return fmt.Sprintf("invalid %s: %s", e.Option, strings.Join(parts, "; "))
}

type optionChecker struct {
	validate *validator.Validate
	trans    ut.Translator
}

// loadChecker builds the validator on first use. Field names in messages
// are the json tags of the option structs.
var loadChecker = sync.OnceValues(func() (*optionChecker, error) {
	trans, ok := ut.New(en.New(), en.New()).GetTranslator("en")
	if !ok {
		return nil, errors.New("en translator unavailable")
	}

	v := validator.New()
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("registering translations: %w", err)
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	return &optionChecker{validate: v, trans: trans}, nil
})

// validateOption checks val against its validate tags and names option
// in the returned *OptionError.
func validateOption(option string, val any) error {
	chk, err := loadChecker()
	if err != nil {
		return fmt.Errorf("loading validator: %w", err)
	}

	err = chk.validate.Struct(val)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	oerr := OptionError{Option: option, Fields: make(map[string]string, len(verrs))}
	for _, ferr := range verrs {
		oerr.Fields[ferr.Field()] = ferr.Translate(chk.trans)
	}

	return &oerr
}
