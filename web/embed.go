// Package web bundles the HTML templates, static assets and default site
// content into the binary.
package web

import "embed"

//go:embed templates/*.tmpl
var Templates embed.FS

//go:embed static
var Static embed.FS

//go:embed content/site.yaml
var DefaultContent []byte
