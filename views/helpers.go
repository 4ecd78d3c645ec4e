package views

import (
	"encoding/json"
	"time"

	"github.com/eringen/paintdry"
	"github.com/eringen/paintdry/markdown"
)

const summaryLength = 160

// WebsiteJsonLD produces a Schema.org Blog JSON-LD block for the site.
func WebsiteJsonLD(cfg paintdry.SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Blog",
		"name":     cfg.Title,
		"url":      paintdry.BuildURL(cfg.URL),
	}
	if cfg.Subtitle != "" {
		data["description"] = cfg.Subtitle
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(cfg paintdry.SiteConfig, post *paintdry.Post) string {
	postURL := paintdry.BuildURL(cfg.URL, "posts", post.PublicID)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   markdown.Summary(post.Body, summaryLength),
		"datePublished": post.PubDate.UTC().Format(time.RFC3339),
		"url":           postURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Title,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if post.IsPicture() {
		data["image"] = paintdry.AbsoluteURL(cfg.URL, post.ImageURL)
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func formatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
