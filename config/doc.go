// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Every section is optional; missing values take the defaults applied by
// Parse, so an empty file yields a working engine on the bundled fixtures.
package config
