// Package embed provides files embedded into the birthday binary: the default
// config written by `birthday config --init` and the README shipped in releases.
package embed

import (
	_ "embed"
	"strings"
)

//go:embed config.yaml
var defaultConfig string

//go:embed readme.txt
var readmeTemplate string

// GetDefaultConfig returns the commented default config.yaml.
func GetDefaultConfig() string {
	return defaultConfig
}

// GetReadme returns the release README with the platform name substituted.
func GetReadme(osName string) string {
	return strings.ReplaceAll(readmeTemplate, "{{OS}}", osName)
}
