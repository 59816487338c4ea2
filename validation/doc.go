// Package validation checks client and transport configuration.
//
// Struct tag validation uses go-playground/validator; the Validator type
// collects checks that tags cannot express. Both report a configuration
// error whose "fields" detail lists each failing field by its config key.
//
//	type Config struct {
//	    Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
//	}
//	err := validation.Validate(cfg)
package validation
