package paintdry

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const msgTitleRequired = "A post needs a title before it can be published."

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// handleAdminCreate builds a post through the blog and either saves it as
// a draft or publishes it, depending on the "action" form value.
func (a *App) handleAdminCreate(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	post, err := a.Blog.NewPost(Attrs{
		"title":     strings.TrimSpace(c.FormValue("title")),
		"body":      c.FormValue("body"),
		"image_url": strings.TrimSpace(c.FormValue("image_url")),
	})
	if err != nil {
		return err
	}

	if c.FormValue("action") != "publish" {
		if err := post.Save(); err != nil {
			return err
		}
		return a.renderAdminDashboard(c, "Draft saved.")
	}

	ok, err := post.Publish(a.clock)
	if err != nil {
		return err
	}
	if !ok {
		return a.renderAdminDashboard(c, msgTitleRequired)
	}
	a.Cache.Invalidate()
	c.Logger().Infof("published post %d %q", post.ID, post.Title)
	return a.renderAdminDashboard(c, "Published.")
}

func (a *App) handleAdminPublish(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	post, err := a.adminPost(c)
	if err != nil {
		return err
	}
	if post == nil {
		return c.NoContent(http.StatusNotFound)
	}
	post.Blog = a.Blog
	ok, err := post.Publish(a.clock)
	if errors.Is(err, ErrAlreadyPublished) {
		return a.renderAdminDashboard(c, "That post is already published.")
	}
	if err != nil {
		return err
	}
	if !ok {
		return a.renderAdminDashboard(c, msgTitleRequired)
	}
	a.Cache.Invalidate()
	c.Logger().Infof("published post %d %q", post.ID, post.Title)
	return a.renderAdminDashboard(c, "Published.")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	post, err := a.adminPost(c)
	if err != nil {
		return err
	}
	if post == nil {
		return c.NoContent(http.StatusNotFound)
	}
	if err := a.Store.DeletePost(post.ID); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "Deleted.")
}

// adminPost loads the post named by the :id path parameter. A missing or
// malformed ID yields a nil post and a nil error.
func (a *App) adminPost(c echo.Context) (*Post, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return nil, nil
	}
	post, err := a.Store.GetPost(id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return post, err
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Store.ListAllPosts()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(posts, msg, CsrfToken(c)))
}
