package storage

import (
	_ "embed"
	"fmt"
	"time"

	"gemblog/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// seedPost is a sample post whose createdAt is relative to startup.
type seedPost struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Content  string `yaml:"content"`
	ImageURL string `yaml:"imageUrl"`
	ImageAlt string `yaml:"imageAlt"`
	Age      string `yaml:"age"`
	Category string `yaml:"category"`
}

var seeds = mustParseSeed(seedYAML)

func mustParseSeed(raw []byte) []seedPost {
	var out []seedPost
	if err := yaml.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("invalid embedded seed posts: %v", err))
	}
	for _, s := range out {
		if _, err := time.ParseDuration(s.Age); err != nil {
			panic(fmt.Sprintf("invalid age %q for seed post %s: %v", s.Age, s.ID, err))
		}
	}
	return out
}

// SeedPosts returns the sample collection used when nothing is stored yet.
func SeedPosts(now time.Time) []models.Post {
	posts := make([]models.Post, len(seeds))
	for i, s := range seeds {
		age, _ := time.ParseDuration(s.Age)
		posts[i] = models.Post{
			ID:        s.ID,
			Title:     s.Title,
			Content:   s.Content,
			ImageURL:  s.ImageURL,
			ImageAlt:  s.ImageAlt,
			CreatedAt: models.FormatTimestamp(now.Add(-age)),
			Category:  s.Category,
		}
	}
	return posts
}
