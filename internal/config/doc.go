// Package config defines the application's configuration structures and
// loading logic. Configuration is read from an optional config.yaml file
// and from environment variables with the STUDYFLASH_ prefix, with
// environment variables taking precedence. All loaded configuration is
// validated before use.
package config
