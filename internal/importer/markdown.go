// Package importer turns a directory of markdown files with YAML front
// matter into posts.
package importer

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"strings"
	"time"

	"gemblog/internal/models"

	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"
)

var frontMatterRegex = regexp.MustCompile(`(?s)^---\r?\n(.*?)\r?\n---\r?\n?`)

var (
	ErrNoFrontMatter = errors.New("no front matter found")
	ErrEmptyContent  = errors.New("post has no content")
)

type frontMatter struct {
	Title       string `yaml:"title"`
	Category    string `yaml:"category"`
	Image       string `yaml:"image"`
	ImageAlt    string `yaml:"imageAlt"`
	PublishDate any    `yaml:"publishDate"` // string or timestamp
	Draft       bool   `yaml:"draft"`
}

// Parse converts one markdown file. The id is derived from name so a second
// import of the same file is recognised. publish is false for drafts.
func Parse(name string, raw []byte, now time.Time) (post models.Post, publish bool, err error) {
	content := string(raw)
	matches := frontMatterRegex.FindStringSubmatch(content)
	if len(matches) < 2 {
		return models.Post{}, false, ErrNoFrontMatter
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(matches[1]), &fm); err != nil {
		return models.Post{}, false, fmt.Errorf("failed to parse front matter: %w", err)
	}
	if fm.Draft {
		return models.Post{}, false, nil
	}

	body := strings.TrimSpace(content[len(matches[0]):])
	if body == "" {
		return models.Post{}, false, ErrEmptyContent
	}

	base := strings.TrimSuffix(name, path.Ext(name))
	title := fm.Title
	if title == "" {
		title = path.Base(base)
	}

	return models.Post{
		ID:        "import-" + slug.Make(base),
		Title:     title,
		Content:   body,
		ImageURL:  fm.Image,
		ImageAlt:  fm.ImageAlt,
		CreatedAt: models.FormatTimestamp(publishDate(fm.PublishDate, now)),
		Category:  fm.Category,
	}, true, nil
}

func publishDate(v any, now time.Time) time.Time {
	switch d := v.(type) {
	case time.Time:
		return d
	case string:
		for _, layout := range []string{"2006-01-02", time.RFC3339} {
			if t, err := time.Parse(layout, d); err == nil {
				return t
			}
		}
	}
	return now
}

// Dir parses every .md file under fsys in lexical order. Files that cannot be
// parsed are logged and skipped.
func Dir(fsys fs.FS, now time.Time, log *slog.Logger) ([]models.Post, error) {
	var posts []models.Post
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			log.Warn("skipping unreadable file", slog.String("path", p), slog.Any("err", err))
			return nil
		}
		post, publish, err := Parse(p, raw, now)
		if err != nil {
			log.Warn("skipping file", slog.String("path", p), slog.Any("err", err))
			return nil
		}
		if !publish {
			log.Info("skipping draft", slog.String("path", p))
			return nil
		}
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}
