package paintdry

import (
	"encoding/xml"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/paintdry/markdown"
)

const feedSummaryLength = 280

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	Description string        `xml:"description"`
	PubDate     string        `xml:"pubDate"`
	GUID        string        `xml:"guid"`
	Enclosure   *rssEnclosure `xml:"enclosure,omitempty"`
}

type rssEnclosure struct {
	URL  string `xml:"url,attr"`
	Type string `xml:"type,attr"`
}

// renderRSS writes posts, already in feed order, as an RSS 2.0 document.
func (a *App) renderRSS(c echo.Context, posts []*Post) error {
	base := a.Config.URL
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		postURL := BuildURL(base, "posts", p.PublicID)
		item := rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: markdown.Summary(p.Body, feedSummaryLength),
			PubDate:     p.PubDate.Format(time.RFC1123Z),
			GUID:        postURL,
		}
		if p.IsPicture() {
			item.Enclosure = &rssEnclosure{URL: AbsoluteURL(base, p.ImageURL), Type: "image/jpeg"}
		}
		items = append(items, item)
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Blog.Title,
			Link:        BuildURL(base),
			Description: a.Blog.Subtitle,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(feed)
}

// AbsoluteURL resolves a site-relative reference such as an image path
// against base. Absolute references are returned unchanged.
func AbsoluteURL(base, ref string) string {
	b, err := url.Parse(BuildURL(base))
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
