package utils

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Post bodies are plain paragraphs. Raw HTML is omitted since AI output is
// untrusted.
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Linkify),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

var whitespace = regexp.MustCompile(`\s+`)

// RenderContent converts a post body to HTML.
func RenderContent(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// GenerateExcerpt returns the first length runes of content with whitespace
// collapsed, always followed by an ellipsis.
func GenerateExcerpt(content string, length int) string {
	plainText := strings.TrimSpace(whitespace.ReplaceAllString(content, " "))
	// runes, not bytes, so multi-byte characters are never split
	runes := []rune(plainText)
	if len(runes) > length {
		runes = runes[:length]
	}
	return string(runes) + "..."
}
