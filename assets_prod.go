//go:build release

package main

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var embedTemplatesFS embed.FS

//go:embed all:static
var embedStaticFS embed.FS

func init() {
	assetMode = "embedded"
	var err error
	templatesFS, err = fs.Sub(embedTemplatesFS, "templates")
	if err != nil {
		panic("failed to create sub filesystem for embedded templates: " + err.Error())
	}
	staticFS, err = fs.Sub(embedStaticFS, "static")
	if err != nil {
		panic("failed to create sub filesystem for embedded static files: " + err.Error())
	}
}
