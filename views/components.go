// Package views holds the HTML components of the blog. Components are
// plain templ.Components so the server can render them without a
// generation step.
package views

import (
	"context"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/paintdry"
	"github.com/eringen/paintdry/exhibit"
	"github.com/eringen/paintdry/markdown"
)

var errNoPost = errors.New("views: partial rendered without a post")

type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) url(s string) {
	h.text(string(templ.URL(s)))
}

func (h *htmlWriter) render(ctx context.Context, c templ.Component) {
	if h.err == nil {
		h.err = c.Render(ctx, h.w)
	}
}

func (h *htmlWriter) fail(err error) {
	if h.err == nil {
		h.err = err
	}
}

func component(fn func(ctx context.Context, h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		fn(ctx, h)
		return h.err
	})
}

// Views renders pages for one site.
type Views struct {
	cfg paintdry.SiteConfig
}

// New returns the view functions for cfg, ready to hand to paintdry.New.
func New(cfg paintdry.SiteConfig) paintdry.ViewFuncs {
	v := &Views{cfg: cfg}
	return paintdry.ViewFuncs{
		Home:           v.Home,
		Post:           v.Post,
		AdminLogin:     v.AdminLogin,
		AdminDashboard: v.AdminDashboard,
		AdminImages:    v.AdminImages,
		NotFound:       v.NotFound,
		ServerError:    v.ServerError,
		Partials:       Partials(),
	}
}

// Partials returns the body partials used by the post exhibits.
func Partials() exhibit.Partials {
	return exhibit.Partials{
		exhibit.PicturePartial: PictureBody,
		exhibit.TextPartial:    TextBody,
	}
}

func (v *Views) layout(blog *paintdry.Blog, meta PageMeta, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(meta.Title)
		h.raw(`</title>`)
		if meta.Description != "" {
			h.raw(`<meta name="description" content="`)
			h.text(meta.Description)
			h.raw(`">`)
		}
		if meta.URL != "" {
			h.raw(`<link rel="canonical" href="`)
			h.url(meta.URL)
			h.raw(`"><meta property="og:url" content="`)
			h.url(meta.URL)
			h.raw(`">`)
		}
		h.raw(`<meta property="og:title" content="`)
		h.text(meta.Title)
		h.raw(`">`)
		if meta.OGType != "" {
			h.raw(`<meta property="og:type" content="`)
			h.text(meta.OGType)
			h.raw(`">`)
		}
		h.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml">`)
		h.raw(`<link rel="stylesheet" href="/public/style.css">`)
		if meta.JSONLD != "" {
			// json.Marshal escapes <, > and &, so the block cannot close the script early.
			h.raw(`<script type="application/ld+json">`)
			h.raw(meta.JSONLD)
			h.raw(`</script>`)
		}
		h.raw(`</head><body><header class="masthead"><a href="/"><h1>`)
		h.text(blog.Title)
		h.raw(`</h1></a><p class="subtitle">`)
		h.text(blog.Subtitle)
		h.raw(`</p></header><main>`)
		h.render(ctx, body)
		h.raw(`</main><footer><a href="/feed.xml">RSS</a></footer></body></html>`)
	})
}

func (v *Views) siteBlog() *paintdry.Blog {
	return paintdry.NewBlog(nil, paintdry.WithTitle(v.cfg.Title), paintdry.WithSubtitle(v.cfg.Subtitle))
}

// Home renders the front page with the exhibited entries.
func (v *Views) Home(blog *paintdry.Blog, entries []any, siteURL string) templ.Component {
	meta := PageMeta{
		Title:       blog.Title,
		Description: blog.Subtitle,
		URL:         paintdry.BuildURL(siteURL),
		OGType:      "website",
		JSONLD:      WebsiteJsonLD(v.cfg),
	}
	return v.layout(blog, meta, component(func(ctx context.Context, h *htmlWriter) {
		if len(entries) == 0 {
			h.raw(`<p class="empty">Nothing has dried yet.</p>`)
			return
		}
		for _, e := range entries {
			entry(ctx, h, e, true)
		}
	}))
}

// Post renders a single exhibited post.
func (v *Views) Post(blog *paintdry.Blog, e any, siteURL string) templ.Component {
	post, ok := exhibit.As[*paintdry.Post](e)
	if !ok {
		return v.NotFound()
	}
	meta := PageMeta{
		Title:       post.Title + " | " + blog.Title,
		Description: markdown.Summary(post.Body, summaryLength),
		URL:         paintdry.BuildURL(siteURL, "posts", post.PublicID),
		OGType:      "article",
		JSONLD:      BlogPostingJsonLD(v.cfg, post),
	}
	return v.layout(blog, meta, component(func(ctx context.Context, h *htmlWriter) {
		entry(ctx, h, e, false)
	}))
}

func entry(ctx context.Context, h *htmlWriter, e any, linked bool) {
	post, ok := exhibit.As[*paintdry.Post](e)
	if !ok {
		return
	}
	h.raw(`<article class="entry"><h2>`)
	if linked && post.Link() != "" {
		h.raw(`<a href="`)
		h.url(post.Link())
		h.raw(`">`)
		h.text(post.Title)
		h.raw(`</a>`)
	} else {
		h.text(post.Title)
	}
	h.raw(`</h2>`)
	if post.Published() {
		h.raw(`<time datetime="`)
		h.text(post.PubDate.UTC().Format(time.RFC3339))
		h.raw(`">`)
		h.text(formatDate(post.PubDate))
		h.raw(`</time>`)
	}
	if br, ok := e.(exhibit.BodyRenderer); ok {
		out, err := br.RenderBody()
		if err != nil {
			h.fail(err)
			return
		}
		h.raw(out)
	} else {
		h.raw(`<div class="body">`)
		h.render(ctx, markdown.Markdown(post.Body))
		h.raw(`</div>`)
	}
	h.raw(`</article>`)
}

// PictureBody is the body partial of picture posts.
func PictureBody(locals exhibit.Locals) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		post, ok := exhibit.As[*paintdry.Post](locals["post"])
		if !ok {
			h.fail(errNoPost)
			return
		}
		h.raw(`<figure class="picture"><img src="`)
		h.url(post.ImageURL)
		h.raw(`" alt="`)
		h.text(post.Title)
		h.raw(`" loading="lazy"></figure><div class="body">`)
		h.render(ctx, markdown.Markdown(post.Body))
		h.raw(`</div>`)
	})
}

// TextBody is the body partial of text posts.
func TextBody(locals exhibit.Locals) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		post, ok := exhibit.As[*paintdry.Post](locals["post"])
		if !ok {
			h.fail(errNoPost)
			return
		}
		h.raw(`<div class="body">`)
		h.render(ctx, markdown.Markdown(post.Body))
		h.raw(`</div>`)
	})
}

// NotFound renders the 404 page.
func (v *Views) NotFound() templ.Component {
	blog := v.siteBlog()
	return v.layout(blog, PageMeta{Title: "Not found | " + blog.Title}, component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="error"><h2>Not found</h2><p>That page has dried up. <a href="/">Back to the blog</a>.</p></section>`)
	}))
}

// ServerError renders the 500 page.
func (v *Views) ServerError() templ.Component {
	blog := v.siteBlog()
	return v.layout(blog, PageMeta{Title: "Error | " + blog.Title}, component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="error"><h2>Something went wrong</h2><p>Please try again in a moment.</p></section>`)
	}))
}

func csrfField(h *htmlWriter, token string) {
	h.raw(`<input type="hidden" name="_csrf" value="`)
	h.text(token)
	h.raw(`">`)
}

// AdminLogin renders the admin login form.
func (v *Views) AdminLogin(showError bool, csrfToken string) templ.Component {
	blog := v.siteBlog()
	return v.layout(blog, PageMeta{Title: "Admin | " + blog.Title}, component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="admin"><h2>Admin</h2>`)
		if showError {
			h.raw(`<p class="error">Wrong password.</p>`)
		}
		h.raw(`<form method="post" action="/admin/login/">`)
		csrfField(h, csrfToken)
		h.raw(`<label>Password <input type="password" name="password" autofocus></label>`)
		h.raw(`<button type="submit">Log in</button></form></section>`)
	}))
}

// AdminDashboard renders every post with its publish state and the new post form.
func (v *Views) AdminDashboard(posts []*paintdry.Post, message string, csrfToken string) templ.Component {
	blog := v.siteBlog()
	return v.layout(blog, PageMeta{Title: "Dashboard | " + blog.Title}, component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="admin"><h2>Dashboard</h2>`)
		if message != "" {
			h.raw(`<p class="message">`)
			h.text(message)
			h.raw(`</p>`)
		}
		h.raw(`<nav><a href="/admin/images/">Images</a> <form method="post" action="/admin/logout/" class="inline">`)
		csrfField(h, csrfToken)
		h.raw(`<button type="submit">Log out</button></form></nav>`)

		h.raw(`<h3>New post</h3><form method="post" action="/admin/posts/">`)
		csrfField(h, csrfToken)
		h.raw(`<label>Title <input type="text" name="title"></label>`)
		h.raw(`<label>Image URL <input type="text" name="image_url" placeholder="/public/uploads/…"></label>`)
		h.raw(`<label>Body <textarea name="body" rows="12"></textarea></label>`)
		h.raw(`<button type="submit" name="action" value="draft">Save draft</button>`)
		h.raw(`<button type="submit" name="action" value="publish">Publish</button></form>`)

		h.raw(`<h3>Posts</h3><table><thead><tr><th>Title</th><th>Kind</th><th>Status</th><th></th></tr></thead><tbody>`)
		for _, p := range posts {
			id := strconv.FormatInt(p.ID, 10)
			h.raw(`<tr><td>`)
			if p.Published() {
				h.raw(`<a href="`)
				h.url(p.Link())
				h.raw(`">`)
				h.text(p.Title)
				h.raw(`</a>`)
			} else {
				h.text(p.Title)
			}
			h.raw(`</td><td>`)
			if p.IsPicture() {
				h.raw(`picture`)
			} else {
				h.raw(`text`)
			}
			h.raw(`</td><td>`)
			if p.Published() {
				h.text("Published " + formatDate(p.PubDate))
			} else {
				h.raw(`Draft`)
			}
			h.raw(`</td><td>`)
			if !p.Published() {
				h.raw(`<form method="post" class="inline" action="/admin/posts/` + id + `/publish/">`)
				csrfField(h, csrfToken)
				h.raw(`<button type="submit">Publish</button></form>`)
			}
			h.raw(`<form method="post" class="inline" action="/admin/posts/` + id + `/delete/">`)
			csrfField(h, csrfToken)
			h.raw(`<button type="submit">Delete</button></form></td></tr>`)
		}
		h.raw(`</tbody></table></section>`)
	}))
}

// AdminImages renders the uploaded images and the upload form.
func (v *Views) AdminImages(images []paintdry.Image, csrfToken string) templ.Component {
	blog := v.siteBlog()
	return v.layout(blog, PageMeta{Title: "Images | " + blog.Title}, component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="admin"><h2>Images</h2><nav><a href="/admin/">Dashboard</a></nav>`)
		h.raw(`<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
		csrfField(h, csrfToken)
		h.raw(`<input type="file" name="image" accept="image/*"><button type="submit">Upload</button></form><ul class="images">`)
		for _, img := range images {
			h.raw(`<li><img src="`)
			h.url(img.URL())
			h.raw(`" alt="" width="160"><code>`)
			h.text(img.URL())
			h.raw(`</code> `)
			h.text(strconv.Itoa(img.Width) + "×" + strconv.Itoa(img.Height))
			h.raw(`<form method="post" class="inline" action="/admin/images/`)
			h.text(paintdry.PathEscape(img.Filename))
			h.raw(`/delete/">`)
			csrfField(h, csrfToken)
			h.raw(`<button type="submit">Delete</button></form></li>`)
		}
		h.raw(`</ul></section>`)
	}))
}
