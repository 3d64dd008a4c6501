// Package config handles application configuration loading and validation.
//
// Configuration is loaded from a yaml file and validated using struct tags.
// The API key may also be supplied via the TNSW_API_KEY environment
// variable, which takes precedence over the file.
package config
