// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// `loader.go` calls validateStruct right after unmarshalling the merged
// Koanf tree.  Any failure aborts startup so the binary never runs with a
// partial configuration.

package config

import "github.com/go-playground/validator/v10"

var v = validator.New()

// validateStruct returns the validation errors, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
