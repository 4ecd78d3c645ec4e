package paintdry

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/paintdry/exhibit"
)

// renderContext returns the exhibit rendering context for the request.
func (a *App) renderContext(c echo.Context) exhibit.Context {
	return exhibit.NewTemplContext(c.Request().Context(), a.Views.Partials)
}

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Blog.Entries()
	if err != nil {
		return err
	}
	entries := exhibit.All(a.Exhibits, posts, a.renderContext(c))
	return Render(c, a.Views.Home(a.Blog, entries, a.Config.URL))
}

func (a *App) handlePost(c echo.Context) error {
	post, err := a.Store.GetPostByPublicID(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	if !post.Published() {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	post.Blog = a.Blog
	entry := a.Exhibits.Exhibit(post, a.renderContext(c))
	return Render(c, a.Views.Post(a.Blog, entry, a.Config.URL))
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Blog.Entries()
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.Fetch()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
