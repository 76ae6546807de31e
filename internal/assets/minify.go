// Package assets minifies the stylesheets and scripts of the static tree at
// startup and serves the minified copies.
package assets

import (
	"bytes"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
)

var mediaTypes = map[string]string{
	".css": "text/css",
	".js":  "text/javascript",
}

type asset struct {
	mediaType string
	data      []byte
}

// Bundle holds minified copies keyed by their path in the static tree.
type Bundle struct {
	files   map[string]asset
	modTime time.Time
}

// Minify walks static and minifies every .css and .js file in memory.
func Minify(static fs.FS) (*Bundle, error) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/javascript", js.Minify)

	b := &Bundle{files: make(map[string]asset), modTime: time.Now()}
	err := fs.WalkDir(static, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		mediaType, ok := mediaTypes[path.Ext(p)]
		if !ok {
			return nil
		}

		raw, err := fs.ReadFile(static, p)
		if err != nil {
			return err
		}
		out, err := m.Bytes(mediaType, raw)
		if err != nil {
			return fmt.Errorf("failed to minify %s: %w", p, err)
		}
		b.files[p] = asset{mediaType: mediaType, data: out}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Len reports how many files were minified.
func (b *Bundle) Len() int {
	return len(b.files)
}

// Handler serves a "/*filepath" route, preferring minified copies and
// falling back to the static tree for everything else.
func (b *Bundle) Handler(static fs.FS) gin.HandlerFunc {
	fileServer := http.FileServer(http.FS(static))
	return func(c *gin.Context) {
		name := strings.TrimPrefix(c.Param("filepath"), "/")
		if a, ok := b.files[name]; ok {
			c.Header("Content-Type", a.mediaType+"; charset=utf-8")
			http.ServeContent(c.Writer, c.Request, name, b.modTime, bytes.NewReader(a.data))
			return
		}

		req := c.Request.Clone(c.Request.Context())
		req.URL.Path = "/" + name
		fileServer.ServeHTTP(c.Writer, req)
	}
}
