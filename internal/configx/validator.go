package configx

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"go.eggybyte.com/mobilestructure/internal/errors"
)

// ValidatorOption configures the validator.
type ValidatorOption func(*validator.Validate)

// WithMapstructureNames reports fields by their config key instead of the Go name.
func WithMapstructureNames() ValidatorOption {
	return func(v *validator.Validate) {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	}
}

// NewValidator creates a new validator instance.
func NewValidator(opts ...ValidatorOption) *validator.Validate {
	v := validator.New()
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateStruct validates a struct using validator tags.
func ValidateStruct(v *validator.Validate, target any) error {
	if v == nil {
		v = validator.New()
	}

	if err := v.Struct(target); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.Build(errors.CodeConfig).
				WithOp("validate settings").
				WithMsgf("invalid value %v for %s (%s)", fe.Value(), fe.Field(), fe.Tag()).
				WithErr(err).
				Err()
		}
		return errors.Wrap(errors.CodeConfig, "validate settings", err)
	}

	return nil
}
