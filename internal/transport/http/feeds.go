package http

import (
	"encoding/xml"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"portfolio/internal/domain/models"
	"portfolio/internal/lib/logger/sl"

	"github.com/labstack/echo/v4"
)

const (
	contentNS = "http://purl.org/rss/1.0/modules/content/"
	dcNS      = "http://purl.org/dc/elements/1.1/"
)

type rssXML struct {
	XMLName   xml.Name   `xml:"rss"`
	Version   string     `xml:"version,attr"`
	ContentNS string     `xml:"xmlns:content,attr"`
	DCNS      string     `xml:"xmlns:dc,attr"`
	Channel   rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Creator     string    `xml:"dc:creator,omitempty"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Creator     string    `xml:"dc:creator"`
	Content     *rssCDATA `xml:"content:encoded,omitempty"`
	PubDate     string    `xml:"pubDate"`
	GUID        string    `xml:"guid"`
	Categories  []string  `xml:"category"`
}

type rssCDATA struct {
	Text string `xml:",cdata"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// RSS godoc
// @Summary RSS feed of published posts
// @Tags feeds
// @Produce xml
// @Success 200 {string} string "RSS 2.0 document"
// @Failure 503 {object} response.ErrorResponse "Content source unavailable"
// @Router /rss.xml [get]
func (r *Routers) RSS(c echo.Context) error {
	const op = "http.routers.RSS"

	log := r.log.With(slog.String("op", op))

	posts, err := r.ContentService.ListPublishedPosts(c.Request().Context())
	if err != nil {
		return r.contentError(c, log, err)
	}

	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		link := buildURL(r.site.URL, "blog", p.Slug)

		categories := make([]string, 0, len(p.Tags))
		for _, t := range p.Tags {
			categories = append(categories, t.Name)
		}

		item := rssItem{
			Title:       p.Title,
			Link:        link,
			Description: p.Summary,
			Creator:     p.AuthorName(),
			PubDate:     p.DisplayDate().Format(time.RFC1123Z),
			GUID:        link,
			Categories:  categories,
		}
		if p.ContentHTML != "" {
			item.Content = &rssCDATA{Text: p.ContentHTML}
		}

		items = append(items, item)
	}

	feed := rssXML{
		Version:   "2.0",
		ContentNS: contentNS,
		DCNS:      dcNS,
		Channel: rssChannel{
			Title:       r.site.Name,
			Link:        buildURL(r.site.URL),
			Description: r.site.Description,
			Creator:     r.site.Author,
			Items:       items,
		},
	}

	return writeXML(c, log, "application/rss+xml; charset=utf-8", feed)
}

// Sitemap godoc
// @Summary Sitemap of the public pages
// @Tags feeds
// @Produce xml
// @Success 200 {string} string "sitemap document"
// @Failure 503 {object} response.ErrorResponse "Content source unavailable"
// @Router /sitemap.xml [get]
func (r *Routers) Sitemap(c echo.Context) error {
	const op = "http.routers.Sitemap"

	log := r.log.With(slog.String("op", op))
	ctx := c.Request().Context()

	posts, err := r.ContentService.ListPublishedPosts(ctx)
	if err != nil {
		return r.contentError(c, log, err)
	}

	projects, err := r.ContentService.ListProjects(ctx)
	if err != nil {
		return r.contentError(c, log, err)
	}

	urls := []sitemapURL{
		{Loc: buildURL(r.site.URL)},
		{Loc: buildURL(r.site.URL, "blog")},
		{Loc: buildURL(r.site.URL, "projects")},
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     buildURL(r.site.URL, "blog", p.Slug),
			LastMod: lastMod(p),
		})
	}
	for _, p := range projects {
		lm := p.CreatedAt
		if p.UpdatedAt != nil {
			lm = *p.UpdatedAt
		}
		urls = append(urls, sitemapURL{
			Loc:     buildURL(r.site.URL, "projects", p.Slug),
			LastMod: lm.Format(time.DateOnly),
		})
	}

	return writeXML(c, log, "application/xml; charset=utf-8", sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}

func lastMod(p models.BlogPost) string {
	if p.UpdatedAt != nil && p.UpdatedAt.After(p.DisplayDate()) {
		return p.UpdatedAt.Format(time.DateOnly)
	}
	return p.DisplayDate().Format(time.DateOnly)
}

func writeXML(c echo.Context, log *slog.Logger, contentType string, v any) error {
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().WriteHeader(http.StatusOK)

	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		log.Error("failed to write xml header", sl.Err(err))
		return err
	}

	if err := xml.NewEncoder(c.Response()).Encode(v); err != nil {
		log.Error("failed to encode xml", sl.Err(err))
		return err
	}

	return nil
}

// buildURL joins path segments onto base, escaping each segment.
func buildURL(base string, parts ...string) string {
	u, err := url.JoinPath(base, parts...)
	if err != nil {
		return base
	}
	if len(parts) == 0 && !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}
