//go:build !release

package main

import "os"

// Debug builds read templates and static files from the working directory so
// edits show up without a rebuild.
func init() {
	assetMode = "filesystem"
	templatesFS = os.DirFS("templates")
	staticFS = os.DirFS("static")
}
