package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Limit bounds mirror domain.MaxListLimit and domain.MaxPerCategoryLimit.
type publishedQuery struct {
	Featured   *bool
	EditorPick *bool
	Breaking   *bool
	Region     string `validate:"omitempty,max=64,printascii"`
	Limit      int    `validate:"min=1,max=100"`
}

type limitQuery struct {
	Limit int `validate:"min=1,max=100"`
}

type perCategoryQuery struct {
	LimitPerCategory int `validate:"min=1,max=50"`
}

// validateQuery returns a client-facing message for the first failing field.
func validateQuery(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "min":
			return fmt.Errorf("%s must be at least %s", lowerFirst(fe.Field()), fe.Param())
		case "max":
			return fmt.Errorf("%s must be at most %s", lowerFirst(fe.Field()), fe.Param())
		default:
			return fmt.Errorf("%s is invalid", lowerFirst(fe.Field()))
		}
	}
	return err
}

func intParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

func boolParam(r *http.Request, key string) (*bool, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("%s must be a boolean", key)
	}
	return &b, nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
